package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"summoner-card/internal/config"
	"summoner-card/internal/domain"
	"summoner-card/internal/theme"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

func writeFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gobold.ttf")
	require.NoError(t, os.WriteFile(path, gobold.TTF, 0o644))
	return path
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestLoadFont_FallsBackToPath(t *testing.T) {
	path := writeFont(t)

	f, source, err := LoadFont(filepath.Join(t.TempDir(), "malgunbd.ttf"), path)
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, path, source)
}

func TestLoadFont_SearchesFontDirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "truetype", "malgun")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := filepath.Join(nested, "MALGUNBD.TTF")
	require.NoError(t, os.WriteFile(want, gobold.TTF, 0o644))

	saved := FontDirs
	FontDirs = []string{filepath.Join(dir, "missing"), dir}
	t.Cleanup(func() { FontDirs = saved })

	f, source, err := LoadFont("malgunbd.ttf")
	require.NoError(t, err)
	assert.NotNil(t, f)
	assert.Equal(t, want, source)

	_, _, err = LoadFont("nanumgothic.ttf")
	assert.ErrorIs(t, err, errNoFont)
}

func TestLoadFont_NoCandidate(t *testing.T) {
	_, _, err := LoadFont("", filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorIs(t, err, errNoFont)

	_, _, err = LoadFont()
	assert.ErrorIs(t, err, errNoFont)
}

func TestLoadFont_RejectsNonFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	_, _, err := LoadFont(path)
	assert.ErrorIs(t, err, errNoFont)
}

func TestNewRenderer(t *testing.T) {
	cfg := &config.Config{FontName: "does-not-exist.ttf", FontPath: writeFont(t)}
	r, err := NewRenderer(cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = NewRenderer(&config.Config{FontName: "does-not-exist.ttf"}, zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestRenderer_Render(t *testing.T) {
	f, err := opentype.Parse(gobold.TTF)
	require.NoError(t, err)
	r := NewRendererFromFont(f)

	red := color.RGBA{R: 250, G: 0, B: 0, A: 255}
	blue := color.RGBA{R: 0, G: 0, B: 250, A: 255}
	gold := theme.ForTier(domain.TierGold)

	ops := Compose(Report{
		Identity:  domain.Identity{Name: "Hide on bush", Tag: "KR1"},
		Level:     512,
		Standing:  goldStanding(),
		Theme:     gold,
		Badge:     solid(170, 170, red),
		Champions: []domain.ChampionStat{{Name: "Ahri", Games: "120", WinRate: "55.00%", KDA: "3.21"}},
		Icons:     []image.Image{solid(45, 45, blue)},
	})

	out, err := r.Render(ops)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, CanvasWidth, CanvasHeight), img.Bounds())

	assert.Equal(t, gold.Accent, rgbaAt(img, 5, 5))
	assert.Equal(t, gold.Shade, rgbaAt(img, 15, 15))
	assert.Equal(t, black, rgbaAt(img, 25, 25))
	assert.Equal(t, red, rgbaAt(img, 195, 145))
	assert.Equal(t, navy, rgbaAt(img, 25, 245))
	assert.Equal(t, blue, rgbaAt(img, 60, 430))
	assert.Equal(t, navy, rgbaAt(img, 120, 430), "second icon slot is empty")
	assert.Equal(t, slate, rgbaAt(img, 35, 545))

	// the title text puts some non-black pixels into its line
	lit := false
	for x := 40; x < 200 && !lit; x++ {
		for y := 35; y < 55; y++ {
			if rgbaAt(img, x, y) != black {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "identity text was not drawn")
}
