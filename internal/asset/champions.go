package asset

import (
	_ "embed"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed champions.yaml
var defaultChampionTable []byte

// ChampionTable maps a champion's display name to its CDN slug.
type ChampionTable map[string]string

// LoadChampionTable reads a YAML table from path, or the embedded table when path is empty.
func LoadChampionTable(path string) (ChampionTable, error) {
	data := defaultChampionTable
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read champion table: %w", err)
		}
		data = b
	}
	return ParseChampionTable(data)
}

func ParseChampionTable(data []byte) (ChampionTable, error) {
	raw := map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse champion table: %w", err)
	}

	table := make(ChampionTable, len(raw))
	for name, slug := range raw {
		table[norm.NFC.String(name)] = slug
	}
	return table, nil
}

// Slug looks the name up in composed (NFC) form so decomposed Hangul from scraped pages matches.
func (t ChampionTable) Slug(name string) (string, bool) {
	slug, ok := t[norm.NFC.String(name)]
	return slug, ok && slug != ""
}
