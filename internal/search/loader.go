package search

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sitemap.yaml
var defaultSiteMap []byte

// Entry is one page of the site map.
type Entry struct {
	URL      string   `yaml:"url" json:"url"`
	Title    string   `yaml:"title" json:"title"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// LoadSiteMap reads the site map at path, or the built-in one when path is empty.
func LoadSiteMap(path string) ([]Entry, error) {
	data := defaultSiteMap
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read site map: %w", err)
		}
		data = raw
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse site map: %w", err)
	}
	for i, e := range entries {
		if e.URL == "" {
			return nil, fmt.Errorf("site map entry %d has no url", i)
		}
	}
	return entries, nil
}
