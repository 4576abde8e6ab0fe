package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"summoner-card/internal/constants"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// ErrAbsent wraps every failed fetch: transport errors, non-200 responses and undecodable bodies.
var ErrAbsent = errors.New("resource unavailable")

type Header map[string]string

type Fetcher struct {
	client      *fasthttp.Client
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

// RateLimitInfo mirrors the last Riot rate-limit headers seen.
type RateLimitInfo struct {
	AppLimit       string    `json:"app_limit"`
	AppCount       string    `json:"app_count"`
	MethodLimit    string    `json:"method_limit"`
	MethodCount    string    `json:"method_count"`
	RetryAfter     string    `json:"retry_after,omitempty"`
	LastStatusCode int       `json:"last_status_code"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func New(logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		logger: logger,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (f *Fetcher) RateLimit() RateLimitInfo {
	f.rateLimitMu.RLock()
	defer f.rateLimitMu.RUnlock()
	return f.rateLimit
}

func (f *Fetcher) updateRateLimit(resp *fasthttp.Response) {
	appLimit := string(resp.Header.Peek("X-App-Rate-Limit"))
	if appLimit == "" {
		return
	}

	f.rateLimitMu.Lock()
	defer f.rateLimitMu.Unlock()

	f.rateLimit.AppLimit = appLimit
	f.rateLimit.AppCount = string(resp.Header.Peek("X-App-Rate-Limit-Count"))
	f.rateLimit.MethodLimit = string(resp.Header.Peek("X-Method-Rate-Limit"))
	f.rateLimit.MethodCount = string(resp.Header.Peek("X-Method-Rate-Limit-Count"))
	f.rateLimit.RetryAfter = string(resp.Header.Peek("Retry-After"))
	f.rateLimit.LastStatusCode = resp.StatusCode()
	f.rateLimit.UpdatedAt = time.Now()
}

// Get performs a GET and returns a copy of the body. Redirects are followed.
func (f *Fetcher) Get(ctx context.Context, url string, header Header) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.URI().DisablePathNormalizing = true
	req.Header.SetMethod(fasthttp.MethodGet)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	origin := string(req.URI().Host())

	for redirects := 0; ; redirects++ {
		if err := f.do(ctx, req, resp); err != nil {
			f.logger.Debug().Err(err).Str("url", url).Msg("fetch failed")
			return nil, fmt.Errorf("%w: GET %s: %w", ErrAbsent, url, err)
		}
		if !fasthttp.StatusCodeIsRedirect(resp.StatusCode()) || redirects >= constants.FetchMaxRedirects {
			break
		}
		location := resp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			break
		}
		req.URI().UpdateBytes(location)

		// caller headers carry credentials and stay with the original host
		if host := string(req.URI().Host()); host != origin {
			for k := range header {
				req.Header.Del(k)
			}
			f.logger.Debug().Str("url", url).Str("host", host).Msg("redirected off origin, caller headers dropped")
		}
	}

	f.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		f.logger.Debug().Int("status", resp.StatusCode()).Str("url", url).Msg("fetch returned non-success status")
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrAbsent, url, resp.StatusCode())
	}

	return append([]byte(nil), resp.Body()...), nil
}

func (f *Fetcher) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return f.client.DoDeadline(req, resp, deadline)
	}
	return f.client.Do(req, resp)
}

// GetText returns the body as a string.
func (f *Fetcher) GetText(ctx context.Context, url string, header Header) (string, error) {
	body, err := f.Get(ctx, url, header)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// GetJSON decodes the body into T. A body that does not decode counts as absent.
func GetJSON[T any](ctx context.Context, f *Fetcher, url string, header Header) (*T, error) {
	body, err := f.Get(ctx, url, header)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrAbsent, url, err)
	}
	return &result, nil
}
