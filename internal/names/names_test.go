package names_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"castedit/internal/names"
)

func TestSearchCapsResultsAndReportsMore(t *testing.T) {
	table := make([]string, 50000)
	for i := range table {
		table[i] = fmt.Sprintf("Name%05d", i)
	}
	for _, i := range []int{7, 900, 1200, 4000, 8000, 12000, 20000, 30000, 40000, 45000, 49999} {
		table[i] = fmt.Sprintf("Smithson %d", i)
	}

	result := names.NewResolver(table).Search("smith", 10)
	if len(result.Matches) != 10 || !result.HasMore {
		t.Fatalf("expected 10 matches with more, got %d hasMore=%v", len(result.Matches), result.HasMore)
	}
	if result.Matches[0].ID != 7 || result.Matches[9].ID != 45000 {
		t.Fatalf("matches must follow table order: %+v", result.Matches)
	}
}

func TestSearchCases(t *testing.T) {
	r := names.NewResolver([]string{"Adam", "Madison", "Eve", "ADAMS"})
	tests := []struct {
		query   string
		max     int
		ids     []int
		hasMore bool
	}{
		{query: "", max: 10},
		{query: "   ", max: 10},
		{query: "ADA", max: 10, ids: []int{0, 3}},
		{query: "adi", max: 10, ids: []int{1}},
		{query: "a", max: 2, ids: []int{0, 1}, hasMore: true},
		{query: "a", max: 3, ids: []int{0, 1, 3}},
		{query: "zz", max: 10},
	}
	for _, tc := range tests {
		got := r.Search(tc.query, tc.max)
		if got.HasMore != tc.hasMore || len(got.Matches) != len(tc.ids) {
			t.Fatalf("Search(%q,%d) = %+v", tc.query, tc.max, got)
		}
		for i, id := range tc.ids {
			if got.Matches[i].ID != id {
				t.Fatalf("Search(%q,%d) match %d = %+v, want id %d", tc.query, tc.max, i, got.Matches[i], id)
			}
		}
	}
}

func TestResolve(t *testing.T) {
	r := names.NewResolver([]string{"Adam", "Eve"})
	if name, ok := r.Resolve(1); !ok || name != "Eve" {
		t.Fatalf("Resolve(1) = %q, %v", name, ok)
	}
	for _, id := range []int{-1, 2} {
		if _, ok := r.Resolve(id); ok {
			t.Fatalf("Resolve(%d) should miss", id)
		}
	}
	var nilResolver *names.Resolver
	if _, ok := nilResolver.Resolve(0); ok || nilResolver.Len() != 0 {
		t.Fatal("nil resolver must be empty")
	}
}

func TestCacheMemoizesAndInvalidates(t *testing.T) {
	calls := map[string]int{}
	fail := true
	loader := names.LoaderFunc(func(_ context.Context, lang string) ([]string, error) {
		calls[lang]++
		if lang == "de" && fail {
			return nil, errors.New("missing file")
		}
		return []string{lang + "-name"}, nil
	})
	cache := names.NewCache(loader, nil)
	ctx := context.Background()

	for range 3 {
		r, err := cache.Get(ctx, "EN")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if name, _ := r.Resolve(0); name != "en-name" {
			t.Fatalf("unexpected name %q", name)
		}
	}
	if calls["en"] != 1 {
		t.Fatalf("expected one load, got %d", calls["en"])
	}

	if _, err := cache.Get(ctx, "de"); err == nil {
		t.Fatal("expected load error")
	}
	fail = false
	if _, err := cache.Get(ctx, "de"); err != nil {
		t.Fatalf("failed loads must not be cached: %v", err)
	}

	cache.Invalidate("en")
	if _, err := cache.Get(ctx, "en"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if calls["en"] != 2 || calls["de"] != 2 {
		t.Fatalf("unexpected load counts %v", calls)
	}
	cache.Invalidate()
	_, _ = cache.Get(ctx, "de")
	if calls["de"] != 3 {
		t.Fatalf("full invalidate must drop every language, calls=%v", calls)
	}
}
