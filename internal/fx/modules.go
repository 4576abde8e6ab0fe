package fx

import (
	"summoner-card/internal/api"
	"summoner-card/internal/asset"
	"summoner-card/internal/config"
	"summoner-card/internal/fetch"
	"summoner-card/internal/logger"
	"summoner-card/internal/render"
	"summoner-card/internal/scrape"
	"summoner-card/internal/server"
	"summoner-card/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideChampionTable(cfg *config.Config, logger zerolog.Logger) (asset.SlugResolver, error) {
	table, err := asset.LoadChampionTable(cfg.ChampionTablePath)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("champions", len(table)).Str("path", cfg.ChampionTablePath).Msg("champion table loaded")
	return table, nil
}

func ProvideCardServer(reports *service.ReportService, fetcher *fetch.Fetcher, logger zerolog.Logger) *server.CardServer {
	return server.NewCardServer(reports, fetcher, logger)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	// clients
	fx.Provide(fetch.New),
	fx.Provide(api.NewRiotClient),
	fx.Provide(scrape.NewChampionScraper),
	// assets
	fx.Provide(ProvideChampionTable),
	fx.Provide(asset.NewLoader),
	fx.Provide(render.NewRenderer),
	// svc
	fx.Provide(service.NewProfileService),
	fx.Provide(service.NewReportService),
	// server
	fx.Provide(ProvideCardServer),
)
