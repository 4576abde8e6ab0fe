package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const DefaultFallbackBadgeURL = "https://i.namu.wiki/i/X8NG78aNjvyaK59CES1IThMB9W5WSMthgksBaVnY8kyRTkqe9wMk1SmfvZJbBZPTHykbCAz7VLLMIpoObf3dvUlsaYUid5QaW-5LAm2fJMwmYEjwh3GpBVhbd0qPVngtgSiWxug3KJZ9l64J9OBCIw.webp"

type Config struct {
	RiotAPIKey string
	FontName   string
	FontPath   string
	ServerPort string
	LogLevel   string

	AccountBaseURL    string
	PlatformBaseURL   string
	ScrapeBaseURL     string
	EmblemBaseURL     string
	DDragonBaseURL    string
	FallbackBadgeURL  string
	ChampionTablePath string
}

func Load() (*Config, error) {
	// a missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := &Config{
		RiotAPIKey: getEnv("RIOT_API_KEY", ""),
		FontName:   getEnv("FONT_NAME", "malgunbd.ttf"),
		FontPath:   getEnv("FONT_PATH", ""),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		AccountBaseURL:    getEnv("RIOT_ACCOUNT_URL", "https://asia.api.riotgames.com"),
		PlatformBaseURL:   getEnv("RIOT_PLATFORM_URL", "https://kr.api.riotgames.com"),
		ScrapeBaseURL:     getEnv("SCRAPE_BASE_URL", "https://fow.kr"),
		EmblemBaseURL:     getEnv("EMBLEM_BASE_URL", "https://z.fow.kr/img/emblem"),
		DDragonBaseURL:    getEnv("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"),
		FallbackBadgeURL:  getEnv("FALLBACK_BADGE_URL", DefaultFallbackBadgeURL),
		ChampionTablePath: getEnv("CHAMPION_TABLE_PATH", ""),
	}

	if cfg.RiotAPIKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is required")
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	return cfg, nil
}

// Log writes the non-secret settings.
func (c *Config) Log(logger zerolog.Logger) {
	logger.Info().
		Str("server_port", c.ServerPort).
		Str("log_level", c.LogLevel).
		Str("font_name", c.FontName).
		Str("font_path", c.FontPath).
		Str("account_url", c.AccountBaseURL).
		Str("platform_url", c.PlatformBaseURL).
		Str("champion_table", c.ChampionTablePath).
		Msg("configuration loaded")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
