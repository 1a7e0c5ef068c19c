package savefile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const nameTableFile = "CHARACTER_NAMES.json"

// TranslationTable reads <localization>/<lang>/CHARACTER_NAMES.json.
func (f *File) TranslationTable(ctx context.Context, lang string) ([]string, error) {
	return LoadNameTable(ctx, f.localizationDir, lang)
}

// LoadNameTable reads the locStrings array of a language's name file.
func LoadNameTable(ctx context.Context, dir, lang string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("localization directory not configured")
	}
	if lang == "" || strings.ContainsAny(lang, `/\`) || lang == ".." {
		return nil, fmt.Errorf("invalid language code %q", lang)
	}
	path := filepath.Join(dir, lang, nameTableFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read language file at %q: %w", path, err)
	}
	data = bytes.TrimPrefix(data, bom)

	var doc struct {
		LocStrings []json.RawMessage `json:"locStrings"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse language file: %w", err)
	}
	if doc.LocStrings == nil {
		return nil, errors.New("missing locStrings")
	}
	table := make([]string, len(doc.LocStrings))
	for i, entry := range doc.LocStrings {
		if len(entry) == 0 || entry[0] != '"' || json.Unmarshal(entry, &table[i]) != nil {
			return nil, fmt.Errorf("invalid locString entry %d", i)
		}
	}
	return table, nil
}
