package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"summoner-card/internal/config"

	"github.com/fogleman/gg"
	"github.com/rs/zerolog"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

const (
	TitleSize = 17
	BodySize  = 15
)

var errNoFont = errors.New("no usable font")

type Renderer struct {
	font *opentype.Font
}

// NewRenderer resolves FontName first and falls back to FontPath.
func NewRenderer(cfg *config.Config, logger zerolog.Logger) (*Renderer, error) {
	f, source, err := LoadFont(cfg.FontName, cfg.FontPath)
	if err != nil {
		logger.Error().Err(err).Str("font_name", cfg.FontName).Str("font_path", cfg.FontPath).Msg("failed to load font")
		return nil, err
	}
	logger.Info().Str("font", source).Msg("font loaded")
	return NewRendererFromFont(f), nil
}

func NewRendererFromFont(f *opentype.Font) *Renderer {
	return &Renderer{font: f}
}

// FontDirs are searched, recursively, for a candidate given as a bare file name.
var FontDirs = defaultFontDirs()

func defaultFontDirs() []string {
	dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts", "/Library/Fonts", "/System/Library/Fonts"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
			filepath.Join(home, "Library", "Fonts"),
		)
	}
	if windir := os.Getenv("WINDIR"); windir != "" {
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
	}
	return dirs
}

// LoadFont returns the first candidate that reads and parses, plus its path. A bare file
// name is tried in the working directory and then in FontDirs.
func LoadFont(candidates ...string) (*opentype.Font, string, error) {
	var errs []error
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		for _, path := range fontPaths(candidate) {
			data, err := os.ReadFile(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			f, err := opentype.Parse(data)
			if err != nil {
				errs = append(errs, fmt.Errorf("parse %s: %w", path, err))
				continue
			}
			return f, path, nil
		}
	}
	if len(errs) == 0 {
		return nil, "", errNoFont
	}
	return nil, "", fmt.Errorf("%w: %w", errNoFont, errors.Join(errs...))
}

func fontPaths(candidate string) []string {
	paths := []string{candidate}
	if filepath.Base(candidate) != candidate {
		return paths
	}
	if _, err := os.Stat(candidate); err == nil {
		return paths
	}
	for _, dir := range FontDirs {
		if found := findFont(dir, candidate); found != "" {
			paths = append(paths, found)
		}
	}
	return paths
}

// findFont walks dir for a file named name, ignoring case as Windows font names vary.
func findFont(dir, name string) string {
	var found string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}
		if !d.IsDir() && strings.EqualFold(d.Name(), name) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// Render draws the instructions in order and encodes the canvas as PNG.
func (r *Renderer) Render(ops []Instruction) ([]byte, error) {
	// faces carry glyph buffers, so each render gets its own
	title, err := r.newFace(TitleSize)
	if err != nil {
		return nil, err
	}
	defer title.Close()
	body, err := r.newFace(BodySize)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	dc := gg.NewContext(CanvasWidth, CanvasHeight)

	for _, op := range ops {
		switch op.Kind {
		case KindRect:
			dc.SetColor(op.Color)
			dc.DrawRectangle(float64(op.X), float64(op.Y), float64(op.W), float64(op.H))
			dc.Fill()
		case KindImage:
			if op.Image != nil {
				dc.DrawImage(op.Image, op.X, op.Y)
			}
		case KindText:
			face := body
			if op.Face == FaceTitle {
				face = title
			}
			dc.SetFontFace(face)
			dc.SetColor(op.Color)
			// X/Y is the top-left of the text box, gg draws from the baseline
			ascent := face.Metrics().Ascent.Ceil()
			dc.DrawString(op.Text, float64(op.X), float64(op.Y+ascent))
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) newFace(size float64) (font.Face, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	return face, nil
}
