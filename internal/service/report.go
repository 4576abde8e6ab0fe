package service

import (
	"context"
	"fmt"
	"image"
	"summoner-card/internal/asset"
	"summoner-card/internal/constants"
	"summoner-card/internal/domain"
	"summoner-card/internal/render"
	"summoner-card/internal/scrape"
	"summoner-card/internal/theme"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ReportService struct {
	profiles *ProfileService
	scraper  *scrape.ChampionScraper
	assets   *asset.Loader
	renderer *render.Renderer
	logger   zerolog.Logger
}

func NewReportService(profiles *ProfileService, scraper *scrape.ChampionScraper, assets *asset.Loader, renderer *render.Renderer, logger zerolog.Logger) *ReportService {
	return &ReportService{profiles: profiles, scraper: scraper, assets: assets, renderer: renderer, logger: logger}
}

// Generate builds the card for id. The only error a caller needs to branch on is
// domain.ErrNotFound; missing assets and an empty stats page still produce a card.
func (s *ReportService) Generate(ctx context.Context, id domain.Identity) (*domain.RenderedReport, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	start := time.Now()

	reportID, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate report id: %w", err)
	}
	log := s.logger.With().Str("report_id", reportID).Str("identity", id.String()).Logger()

	log.Info().Msg("generating report")

	profile, err := s.profiles.Resolve(ctx, id)
	if err != nil {
		log.Info().Err(err).Msg("profile resolution failed")
		return nil, err
	}

	var (
		champions []domain.ChampionStat
		badge     image.Image
		version   string
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		champions = s.scraper.MostPlayed(gCtx, id)
		return nil
	})
	g.Go(func() error {
		badge = s.assets.Badge(gCtx, profile.Standing)
		return nil
	})
	g.Go(func() error {
		vCtx, vCancel := context.WithTimeout(gCtx, constants.ExternalAPITimeout)
		defer vCancel()

		v, err := s.assets.LatestVersion(vCtx)
		if err != nil {
			log.Warn().Err(err).Msg("version feed unavailable, champion icons omitted")
			return nil
		}
		version = v
		return nil
	})
	_ = g.Wait()

	icons := s.assets.ChampionIcons(ctx, version, champions)

	report := render.Report{
		Identity:  id,
		Level:     profile.Level,
		Standing:  profile.Standing,
		Theme:     theme.ForStanding(profile.Standing),
		Badge:     badge,
		Champions: champions,
		Icons:     icons,
	}

	png, err := s.renderer.Render(render.Compose(report))
	if err != nil {
		log.Error().Err(err).Msg("failed to render report")
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	log.Info().
		Str("tier_line", render.TierLine(profile.Standing)).
		Int("champions", len(champions)).
		Bool("badge", badge != nil).
		Int("bytes", len(png)).
		Dur("duration", time.Since(start)).
		Msg("report generated")

	return &domain.RenderedReport{
		ID:       reportID,
		Identity: id,
		Standing: profile.Standing,
		PNG:      png,
	}, nil
}
