package asset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"strings"
	"summoner-card/internal/config"
	"summoner-card/internal/constants"
	"summoner-card/internal/domain"
	"summoner-card/internal/fetch"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	BadgeSize = 170
	IconSize  = 45
)

var errNoVersion = errors.New("version feed is empty")

// SlugResolver translates a champion display name to the slug used in CDN paths.
type SlugResolver interface {
	Slug(name string) (string, bool)
}

type Loader struct {
	emblemURL        string
	ddragonURL       string
	fallbackBadgeURL string
	slugs            SlugResolver
	fetcher          *fetch.Fetcher
	logger           zerolog.Logger
}

func NewLoader(cfg *config.Config, fetcher *fetch.Fetcher, slugs SlugResolver, logger zerolog.Logger) *Loader {
	return &Loader{
		emblemURL:        cfg.EmblemBaseURL,
		ddragonURL:       cfg.DDragonBaseURL,
		fallbackBadgeURL: cfg.FallbackBadgeURL,
		slugs:            slugs,
		fetcher:          fetcher,
		logger:           logger,
	}
}

// BadgeURL is the emblem for the player's tier, or the fallback image when unranked or
// the tier has no emblem.
func (l *Loader) BadgeURL(s domain.Standing) string {
	rank, ok := domain.RankOf(s)
	if !ok || !rank.Tier.Known() {
		return l.fallbackBadgeURL
	}
	return fmt.Sprintf("%s/%s.png", l.emblemURL, strings.ToLower(rank.Tier.String()))
}

// Badge returns nil when the emblem cannot be fetched or decoded.
func (l *Loader) Badge(ctx context.Context, s domain.Standing) image.Image {
	u := l.BadgeURL(s)
	img, err := l.fetchImage(ctx, u, BadgeSize)
	if err != nil {
		l.logger.Warn().Err(err).Str("url", u).Msg("tier badge unavailable")
		return nil
	}
	return img
}

// LatestVersion returns the first entry of the Data Dragon version feed.
func (l *Loader) LatestVersion(ctx context.Context) (string, error) {
	versions, err := fetch.GetJSON[[]string](ctx, l.fetcher, l.ddragonURL+"/api/versions.json", nil)
	if err != nil {
		return "", err
	}
	if len(*versions) == 0 || (*versions)[0] == "" {
		return "", errNoVersion
	}
	return (*versions)[0], nil
}

func (l *Loader) IconURL(version, slug string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", l.ddragonURL, url.PathEscape(version), url.PathEscape(slug))
}

// ChampionIcons returns one slot per champion, at most three. A slot is nil when the slug is
// unknown, the version is empty or the icon fetch fails; other slots are unaffected.
func (l *Loader) ChampionIcons(ctx context.Context, version string, champions []domain.ChampionStat) []image.Image {
	if len(champions) > constants.MaxChampions {
		champions = champions[:constants.MaxChampions]
	}
	icons := make([]image.Image, len(champions))
	if version == "" {
		return icons
	}

	var g errgroup.Group
	for i, champ := range champions {
		slug, ok := l.slugs.Slug(champ.Name)
		if !ok {
			l.logger.Warn().Str("champion", champ.Name).Msg("no slug for champion")
			continue
		}

		g.Go(func() error {
			u := l.IconURL(version, slug)
			img, err := l.fetchImage(ctx, u, IconSize)
			if err != nil {
				l.logger.Warn().Err(err).Str("champion", champ.Name).Str("url", u).Msg("champion icon unavailable")
				return nil
			}
			icons[i] = img
			return nil
		})
	}
	_ = g.Wait()

	return icons
}

func (l *Loader) fetchImage(ctx context.Context, u string, size int) (image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	body, err := l.fetcher.Get(ctx, u, nil)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}
