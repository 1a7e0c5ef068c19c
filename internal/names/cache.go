package names

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"castedit/internal/logging"
)

// Loader fetches the raw name table for a language.
type Loader interface {
	TranslationTable(ctx context.Context, lang string) ([]string, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, lang string) ([]string, error)

func (f LoaderFunc) TranslationTable(ctx context.Context, lang string) ([]string, error) {
	return f(ctx, lang)
}

// Cache memoizes one Resolver per language. Failed loads are not cached, so
// the next Get retries.
type Cache struct {
	loader Loader
	logger *slog.Logger

	mu        sync.Mutex
	resolvers map[string]*Resolver
}

func NewCache(loader Loader, logger *slog.Logger) *Cache {
	return &Cache{
		loader:    loader,
		logger:    logging.NewComponentLogger(logger, "names"),
		resolvers: make(map[string]*Resolver),
	}
}

// Get returns the resolver for lang, loading it on first use.
func (c *Cache) Get(ctx context.Context, lang string) (*Resolver, error) {
	if c == nil || c.loader == nil {
		return nil, errors.New("name cache has no loader")
	}
	key := canonicalLanguage(lang)

	c.mu.Lock()
	defer c.mu.Unlock()
	if resolver, ok := c.resolvers[key]; ok {
		return resolver, nil
	}

	table, err := c.loader.TranslationTable(ctx, key)
	if err != nil {
		logging.WarnWithContext(c.logger, "name table load failed", "names_load_failed",
			logging.String("language", key),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.localization_dir and the language code"),
			logging.String(logging.FieldImpact, "records display raw name ids"))
		return nil, fmt.Errorf("load name table %q: %w", key, err)
	}
	resolver := NewResolver(table)
	c.resolvers[key] = resolver
	c.logger.Debug("name table loaded",
		logging.String("language", key),
		logging.Int("entries", resolver.Len()))
	return resolver, nil
}

// Invalidate drops cached tables. With no arguments every language is dropped.
func (c *Cache) Invalidate(langs ...string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(langs) == 0 {
		clear(c.resolvers)
		return
	}
	for _, lang := range langs {
		delete(c.resolvers, canonicalLanguage(lang))
	}
}

func canonicalLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if tag, err := language.Parse(lang); err == nil {
		return tag.String()
	}
	return strings.ToLower(lang)
}
