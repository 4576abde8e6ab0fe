package api

import (
	"context"
	"fmt"
	"net/url"
	"summoner-card/internal/config"
	"summoner-card/internal/constants"
	"summoner-card/internal/fetch"
)

type RiotClient struct {
	apiKey      string
	accountURL  string
	platformURL string
	fetcher     *fetch.Fetcher
}

func NewRiotClient(cfg *config.Config, fetcher *fetch.Fetcher) *RiotClient {
	return &RiotClient{
		apiKey:      cfg.RiotAPIKey,
		accountURL:  cfg.AccountBaseURL,
		platformURL: cfg.PlatformBaseURL,
		fetcher:     fetcher,
	}
}

func (c *RiotClient) header() fetch.Header {
	return fetch.Header{constants.RiotTokenHeader: c.apiKey}
}

func (c *RiotClient) GetAccountByRiotID(ctx context.Context, name, tag string) (*AccountResponse, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s", c.accountURL, url.PathEscape(name), url.PathEscape(tag))
	return fetch.GetJSON[AccountResponse](ctx, c.fetcher, u, c.header())
}

func (c *RiotClient) GetSummonerByPUUID(ctx context.Context, puuid string) (*SummonerResponse, error) {
	u := fmt.Sprintf("%s/lol/summoner/v4/summoners/by-puuid/%s", c.platformURL, url.PathEscape(puuid))
	return fetch.GetJSON[SummonerResponse](ctx, c.fetcher, u, c.header())
}

func (c *RiotClient) GetLeagueEntriesBySummoner(ctx context.Context, summonerID string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-summoner/%s", c.platformURL, url.PathEscape(summonerID))
	return c.getEntries(ctx, u)
}

func (c *RiotClient) GetLeagueEntriesByPUUID(ctx context.Context, puuid string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformURL, url.PathEscape(puuid))
	return c.getEntries(ctx, u)
}

func (c *RiotClient) getEntries(ctx context.Context, u string) ([]LeagueEntry, error) {
	entries, err := fetch.GetJSON[[]LeagueEntry](ctx, c.fetcher, u, c.header())
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

type AccountResponse struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type SummonerResponse struct {
	// ID is no longer returned by newer platform responses.
	ID            string `json:"id"`
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	Puuid        string `json:"puuid"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}
