package names

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultLimit caps search results when the caller passes a non-positive limit.
const DefaultLimit = 10

// Match is a single search hit.
type Match struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Result holds the first matches of a search. HasMore reports that at least
// one further match exists past the cap.
type Result struct {
	Matches []Match `json:"results"`
	HasMore bool    `json:"hasMore"`
}

// Resolver answers lookups against one name table. It is immutable and safe
// for concurrent use.
type Resolver struct {
	names  []string
	folded []string
}

// NewResolver folds the table once so searches only fold the query.
func NewResolver(table []string) *Resolver {
	caser := cases.Lower(language.Und)
	folded := make([]string, len(table))
	for i, name := range table {
		folded[i] = caser.String(name)
	}
	return &Resolver{names: table, folded: folded}
}

// Len returns the number of entries in the table.
func (r *Resolver) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Resolve returns the name stored at id.
func (r *Resolver) Resolve(id int) (string, bool) {
	if r == nil || id < 0 || id >= len(r.names) {
		return "", false
	}
	return r.names[id], true
}

// Search scans the table in index order for names containing query,
// ignoring case. Scanning stops at limit+1 hits.
func (r *Resolver) Search(query string, limit int) Result {
	if r == nil || strings.TrimSpace(query) == "" {
		return Result{}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	needle := cases.Lower(language.Und).String(query)

	var result Result
	for id, name := range r.folded {
		if !strings.Contains(name, needle) {
			continue
		}
		if len(result.Matches) == limit {
			result.HasMore = true
			break
		}
		result.Matches = append(result.Matches, Match{ID: id, Name: r.names[id]})
	}
	return result
}
