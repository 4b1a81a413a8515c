package resource

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/hilthontt/powersite/internal/domain"
)

const (
	pageParam     = "page"
	orderingParam = "ordering"
	searchParam   = "search"
)

// ErrInvalidPage is returned for pages that do not exist.
var ErrInvalidPage = &domain.NotFoundError{Detail: "Invalid page."}

// Query is a list request: a page number, equality filters, an optional
// ordering override and a search term.
type Query struct {
	Page     int
	Filters  map[string]string
	Ordering []string
	Search   string
}

// ParseQuery reads a list request from URL parameters. Every parameter that
// is not page, ordering or search is treated as a filter.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{Page: 1, Filters: make(map[string]string)}

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]

		switch key {
		case pageParam:
			if val == "last" {
				q.Page = -1
				continue
			}
			page, err := strconv.Atoi(val)
			if err != nil || page < 1 {
				return Query{}, ErrInvalidPage
			}
			q.Page = page
		case orderingParam:
			for _, term := range strings.Split(val, ",") {
				if term = strings.TrimSpace(term); term != "" {
					q.Ordering = append(q.Ordering, term)
				}
			}
		case searchParam:
			q.Search = strings.TrimSpace(val)
		default:
			q.Filters[key] = val
		}
	}

	return q, nil
}

// Page is one slice of a list result.
type Page[T any] struct {
	Count   int64
	Number  int
	Size    int
	Results []T
}

func (p Page[T]) HasNext() bool {
	return int64(p.Number*p.Size) < p.Count
}

func (p Page[T]) HasPrevious() bool {
	return p.Number > 1
}

func (p Page[T]) erase() Page[any] {
	results := make([]any, len(p.Results))
	for i := range p.Results {
		results[i] = p.Results[i]
	}
	return Page[any]{Count: p.Count, Number: p.Number, Size: p.Size, Results: results}
}

func lastPage(count int64, size int) int {
	if count == 0 {
		return 1
	}
	return int((count + int64(size) - 1) / int64(size))
}
