// Package search answers keyword lookups over the static site map.
package search

import "strings"

// Result is one keyword hit and the page it leads to.
type Result struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
}

// Index is the flattened keyword list, built once and read-only afterwards.
type Index struct {
	items []Result
}

func NewIndex(entries []Entry) *Index {
	idx := &Index{}
	for _, e := range entries {
		for _, kw := range e.Keywords {
			idx.items = append(idx.items, Result{Keyword: strings.ToLower(kw), URL: e.URL})
		}
	}
	return idx
}

// Search returns every keyword starting with q, case-insensitively, in
// site-map order. An empty query matches nothing.
func (idx *Index) Search(q string) []Result {
	q = strings.ToLower(q)
	out := []Result{}
	if q == "" {
		return out
	}
	for _, it := range idx.items {
		if strings.HasPrefix(it.Keyword, q) {
			out = append(out, it)
		}
	}
	return out
}

func (idx *Index) Len() int { return len(idx.items) }
