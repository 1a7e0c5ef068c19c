package testsupport

import (
	"path/filepath"
	"testing"

	"castedit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config rooted in a per-test temp directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LocalizationDir = filepath.Join(base, "localization")
	cfgVal.Editor.SaveDelayMS = 5

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithSampleSave writes SampleCharacters to a save file and points the
// config at it.
func WithSampleSave() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.SaveFile = WriteSave(b.t, filepath.Join(b.baseDir, "saves", "slot1.json"), SampleCharacters()...)
	}
}

// WithNameTable writes a name table for lang under the localization dir.
func WithNameTable(lang string, names ...string) ConfigOption {
	return func(b *configBuilder) {
		WriteNameTable(b.t, b.cfg.Paths.LocalizationDir, lang, names...)
	}
}

// WithJournalDisabled turns the edit journal off.
func WithJournalDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Journal.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
