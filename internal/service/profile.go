package service

import (
	"context"
	"fmt"
	"summoner-card/internal/api"
	"summoner-card/internal/constants"
	"summoner-card/internal/domain"

	"github.com/rs/zerolog"
)

type ProfileService struct {
	riot   *api.RiotClient
	logger zerolog.Logger
}

func NewProfileService(riot *api.RiotClient, logger zerolog.Logger) *ProfileService {
	return &ProfileService{riot: riot, logger: logger}
}

// Resolve walks account -> summoner -> league entries. Each step needs the previous result.
// Only a missing account is an error (domain.ErrNotFound); any later gap leaves the
// player unranked.
func (s *ProfileService) Resolve(ctx context.Context, id domain.Identity) (*domain.Profile, error) {
	log := s.logger.With().Str("identity", id.String()).Logger()

	accCtx, accCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer accCancel()

	// every fetch failure is ErrAbsent, so any error here means no such account
	account, err := s.riot.GetAccountByRiotID(accCtx, id.Name, id.Tag)
	if err != nil {
		log.Info().Err(err).Msg("account not found")
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	profile := &domain.Profile{Identity: id, Standing: domain.Unranked{}}

	sumCtx, sumCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer sumCancel()

	summoner, err := s.riot.GetSummonerByPUUID(sumCtx, account.Puuid)
	if err != nil {
		log.Warn().Err(err).Str("puuid", account.Puuid).Msg("failed to fetch summoner, treating as unranked")
		return profile, nil
	}
	profile.Level = summoner.SummonerLevel

	entriesCtx, entriesCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer entriesCancel()

	var entries []api.LeagueEntry
	if summoner.ID != "" {
		entries, err = s.riot.GetLeagueEntriesBySummoner(entriesCtx, summoner.ID)
	} else {
		log.Debug().Str("puuid", account.Puuid).Msg("summoner id missing, looking up entries by puuid")
		entries, err = s.riot.GetLeagueEntriesByPUUID(entriesCtx, account.Puuid)
	}
	if err != nil {
		log.Warn().Err(err).Str("puuid", account.Puuid).Msg("failed to fetch league entries, treating as unranked")
		return profile, nil
	}

	rank := SoloRank(entries)
	profile.Standing = domain.NewStanding(rank)

	log.Debug().
		Int("level", profile.Level).
		Bool("ranked", rank != nil).
		Msg("profile resolved")
	return profile, nil
}

// SoloRank picks the solo/duo queue entry, or nil when the player has none.
func SoloRank(entries []api.LeagueEntry) *domain.RankRecord {
	for _, e := range entries {
		if e.QueueType != constants.SoloQueueType {
			continue
		}
		return &domain.RankRecord{
			Tier:         domain.ParseTier(e.Tier),
			Division:     e.Rank,
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
		}
	}
	return nil
}
