package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"summoner-card/internal/api"
	"summoner-card/internal/asset"
	"summoner-card/internal/config"
	"summoner-card/internal/fetch"
	"summoner-card/internal/render"
	"summoner-card/internal/scrape"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

const statsPage = `<table class="tablesorter">
<tr><th>챔피언</th><th>게임</th><th>승률</th><th>KDA</th></tr>
<tr><td>아리</td><td>120</td><td>55.00%</td><td>3.21</td></tr>
<tr><td>제드</td><td>80</td><td>48.75%</td><td>2.90</td></tr>
</table>`

// fakeRiot stands in for the Riot API, fow.kr, the emblem host and Data Dragon.
type fakeRiot struct {
	server  *httptest.Server
	mu      sync.Mutex
	hits    map[string]int
	routes  map[string]string
	icon    []byte
	emblem  []byte
	missing map[string]bool
}

func newFakeRiot(t *testing.T) *fakeRiot {
	f := &fakeRiot{
		hits:    map[string]int{},
		routes:  map[string]string{},
		missing: map[string]bool{},
		icon:    encodePNG(t, 64, color.RGBA{B: 200, A: 255}),
		emblem:  encodePNG(t, 200, color.RGBA{R: 200, A: 255}),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)

	f.routes["/riot/account/v1/accounts/by-riot-id/Hide on bush/KR1"] = `{"puuid":"puuid-1","gameName":"Hide on bush","tagLine":"KR1"}`
	f.routes["/lol/summoner/v4/summoners/by-puuid/puuid-1"] = `{"id":"sid-1","puuid":"puuid-1","summonerLevel":512}`
	f.routes["/lol/league/v4/entries/by-summoner/sid-1"] = `[{"queueType":"RANKED_SOLO_5x5","tier":"GOLD","rank":"II","leaguePoints":40,"wins":10,"losses":5}]`
	f.routes["/find/Hide on bush-KR1"] = statsPage
	f.routes["/api/versions.json"] = `["14.23.1","14.22.1"]`
	return f
}

func (f *fakeRiot) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.hits[r.URL.Path]++
	missing := f.missing[r.URL.Path]
	body, ok := f.routes[r.URL.Path]
	f.mu.Unlock()

	if missing {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch {
	case ok:
		_, _ = w.Write([]byte(body))
	case len(r.URL.Path) > len("/cdn/") && r.URL.Path[:5] == "/cdn/":
		_, _ = w.Write(f.icon)
	case len(r.URL.Path) > len("/img/emblem/") && r.URL.Path[:12] == "/img/emblem/":
		_, _ = w.Write(f.emblem)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeRiot) set(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = body
}

func (f *fakeRiot) fail(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[path] = true
}

func (f *fakeRiot) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *fakeRiot) config() *config.Config {
	return &config.Config{
		RiotAPIKey:       "test-key",
		AccountBaseURL:   f.server.URL,
		PlatformBaseURL:  f.server.URL,
		ScrapeBaseURL:    f.server.URL,
		EmblemBaseURL:    f.server.URL + "/img/emblem",
		DDragonBaseURL:   f.server.URL,
		FallbackBadgeURL: f.server.URL + "/img/emblem/unranked.png",
	}
}

func encodePNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newProfileService(f *fakeRiot) *ProfileService {
	logger := zerolog.New(io.Discard)
	return NewProfileService(api.NewRiotClient(f.config(), fetch.New(logger)), logger)
}

func newReportService(t *testing.T, f *fakeRiot) *ReportService {
	t.Helper()
	logger := zerolog.New(io.Discard)
	cfg := f.config()
	fetcher := fetch.New(logger)

	font, err := opentype.Parse(gobold.TTF)
	require.NoError(t, err)

	slugs := asset.ChampionTable{"아리": "Ahri", "제드": "Zed"}

	return NewReportService(
		NewProfileService(api.NewRiotClient(cfg, fetcher), logger),
		scrape.NewChampionScraper(cfg, fetcher, logger),
		asset.NewLoader(cfg, fetcher, slugs, logger),
		render.NewRendererFromFont(font),
		logger,
	)
}
