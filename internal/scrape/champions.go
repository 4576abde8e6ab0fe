package scrape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"summoner-card/internal/config"
	"summoner-card/internal/constants"
	"summoner-card/internal/domain"
	"summoner-card/internal/fetch"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

const statsTableSelector = "table.tablesorter"

type ChampionScraper struct {
	baseURL string
	timeout time.Duration
	fetcher *fetch.Fetcher
	logger  zerolog.Logger
}

func NewChampionScraper(cfg *config.Config, fetcher *fetch.Fetcher, logger zerolog.Logger) *ChampionScraper {
	return &ChampionScraper{
		baseURL: cfg.ScrapeBaseURL,
		timeout: constants.ExternalAPITimeout,
		fetcher: fetcher,
		logger:  logger,
	}
}

// PageURL is the stats page for an identity, e.g. https://fow.kr/find/name-tag.
func (s *ChampionScraper) PageURL(id domain.Identity) string {
	return fmt.Sprintf("%s/find/%s-%s", s.baseURL, url.PathEscape(id.Name), url.PathEscape(id.Tag))
}

// MostPlayed never fails: an unreachable page or a missing table yields no champions.
func (s *ChampionScraper) MostPlayed(ctx context.Context, id domain.Identity) []domain.ChampionStat {
	page := s.PageURL(id)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := s.fetcher.GetText(ctx, page, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", page).Msg("stats page unavailable")
		return nil
	}

	champions, err := ParseChampionStats(body)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", page).Msg("failed to parse stats page")
		return nil
	}

	s.logger.Debug().Str("identity", id.String()).Int("count", len(champions)).Msg("champion stats scraped")
	return champions
}

// ParseChampionStats reads the first sortable table, skips its header row and keeps at most
// three champion rows in page order.
func ParseChampionStats(page string) ([]domain.ChampionStat, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, err
	}

	table := doc.Find(statsTableSelector).First()
	if table.Length() == 0 {
		return nil, nil
	}

	var champions []domain.ChampionStat
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		if i > constants.MaxChampions {
			return false
		}

		cells := row.Find("td")
		if cells.Length() < 4 {
			return true
		}

		champions = append(champions, domain.ChampionStat{
			Name:    cellText(cells.Eq(0)),
			Games:   cellText(cells.Eq(1)),
			WinRate: cellText(cells.Eq(2)),
			KDA:     cellText(cells.Eq(3)),
		})
		return true
	})

	return champions, nil
}

// cellText joins every text node of the cell with surrounding whitespace removed.
func cellText(cell *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range cell.Nodes {
		walk(n)
	}
	return b.String()
}
