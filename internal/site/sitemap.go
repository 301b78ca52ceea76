package site

import (
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	changeFreq = "daily"
	priority   = "0.7"
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders sitemap.xml for every page under baseURL.
func Sitemap(baseURL string) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")

	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range pages {
		loc := base + p
		if p == "/" {
			loc = base
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: loc, ChangeFreq: changeFreq, Priority: priority})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Robots renders robots.txt allowing every crawler.
func Robots(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nHost: %s\nSitemap: %s/sitemap.xml\n", base, base)
}
