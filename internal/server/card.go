package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"summoner-card/internal/domain"
	"summoner-card/internal/fetch"
	"time"

	"github.com/rs/zerolog"
)

const (
	CardPath   = "GET /v1/summoners/{name}/{tag}/card.png"
	HealthPath = "GET /healthz"
)

type ReportGenerator interface {
	Generate(ctx context.Context, id domain.Identity) (*domain.RenderedReport, error)
}

type RateLimitReporter interface {
	RateLimit() fetch.RateLimitInfo
}

type CardServer struct {
	reports ReportGenerator
	limits  RateLimitReporter
	logger  zerolog.Logger
}

func NewCardServer(reports ReportGenerator, limits RateLimitReporter, logger zerolog.Logger) *CardServer {
	return &CardServer{reports: reports, limits: limits, logger: logger}
}

func (s *CardServer) Register(mux *http.ServeMux) {
	mux.HandleFunc(CardPath, s.GetCard)
	mux.HandleFunc(HealthPath, s.Health)
}

// GetCard streams the PNG card for {name}#{tag}.
func (s *CardServer) GetCard(w http.ResponseWriter, r *http.Request) {
	log := zerolog.Ctx(r.Context())
	if log.GetLevel() == zerolog.Disabled {
		log = &s.logger
	}

	id := domain.Identity{
		Name: strings.TrimSpace(r.PathValue("name")),
		Tag:  strings.TrimSpace(r.PathValue("tag")),
	}
	if id.Name == "" || id.Tag == "" {
		http.Error(w, "name and tag are required", http.StatusBadRequest)
		return
	}

	report, err := s.reports.Generate(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, fmt.Sprintf("summoner %s not found", id), http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("identity", id.String()).Msg("failed to generate card")
		http.Error(w, "failed to generate card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(report.PNG)))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, report.ID))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.PNG); err != nil {
		log.Warn().Err(err).Msg("failed to write card")
	}
}

type healthResponse struct {
	Status    string              `json:"status"`
	Time      time.Time           `json:"time"`
	RateLimit fetch.RateLimitInfo `json:"rate_limit"`
}

func (s *CardServer) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(healthResponse{
		Status:    "ok",
		Time:      time.Now().UTC(),
		RateLimit: s.limits.RateLimit(),
	})
}
