package normalize

import (
	"github.com/spf13/cast"
)

// RawPage is the list envelope of a paginated API reply before its items
// are normalized.
type RawPage struct {
	Items       []any
	CurrentPage int
	TotalPages  int
	Total       int
}

// ParsePage understands the envelopes the API uses for lists:
//
//	{"data": {"data": [...], "current_page": 1, "last_page": 3, "total": 25}}
//	{"data": [...], "meta": {"current_page": 1, "last_page": 3, "total": 25}}
//	{"data": [...]}
//	[...]
//
// Missing pagination fields default to a single page.
func ParsePage(body any) RawPage {
	var p RawPage

	switch b := body.(type) {
	case []any:
		p.Items = b
	case map[string]any:
		p = parseEnvelope(b)
	}

	if p.Items == nil {
		p.Items = []any{}
	}
	if p.Total <= 0 {
		p.Total = len(p.Items)
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	return p
}

func parseEnvelope(b map[string]any) RawPage {
	var p RawPage
	meta := b

	switch data := b["data"].(type) {
	case []any:
		p.Items = data
		if m, ok := b["meta"].(map[string]any); ok {
			meta = m
		}
	case map[string]any:
		meta = data
		for _, key := range []string{"data", "items", "results"} {
			if items, ok := data[key].([]any); ok {
				p.Items = items
				break
			}
		}
	default:
		for _, key := range []string{"items", "results"} {
			if items, ok := b[key].([]any); ok {
				p.Items = items
				break
			}
		}
	}

	p.CurrentPage = intField(meta, "current_page|currentPage|page")
	p.TotalPages = intField(meta, "last_page|lastPage|total_pages|totalPages")
	p.Total = intField(meta, "total")
	return p
}

func intField(m map[string]any, paths string) int {
	v, ok := First(m, paths)
	if !ok {
		return 0
	}
	return cast.ToInt(v)
}
