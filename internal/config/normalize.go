package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEditor()
	c.normalizeLogging()
	if c.Journal.RetentionDays < 0 {
		c.Journal.RetentionDays = 0
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.SaveFile) == "" {
		if value, ok := os.LookupEnv(envSaveFile); ok {
			c.Paths.SaveFile = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.LocalizationDir) == "" {
		c.Paths.LocalizationDir = defaultLocalizationDir
		if value, ok := os.LookupEnv(envLocalizationDir); ok && strings.TrimSpace(value) != "" {
			c.Paths.LocalizationDir = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.SaveFile, err = expandPath(strings.TrimSpace(c.Paths.SaveFile)); err != nil {
		return fmt.Errorf("paths.save_file: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.LocalizationDir, err = expandPath(strings.TrimSpace(c.Paths.LocalizationDir)); err != nil {
		return fmt.Errorf("paths.localization_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEditor() {
	lang := strings.TrimSpace(c.Editor.Language)
	if lang == "" {
		lang = defaultLanguage
	}
	// Canonical form keeps the translation cache keyed consistently (EN, en).
	if tag, err := language.Parse(lang); err == nil {
		lang = tag.String()
	}
	c.Editor.Language = lang

	c.Editor.PlayerStudio = strings.ToUpper(strings.TrimSpace(c.Editor.PlayerStudio))
	if c.Editor.PlayerStudio == "" {
		c.Editor.PlayerStudio = defaultPlayerStudio
	}
	if c.Editor.NameSearchLimit == 0 {
		c.Editor.NameSearchLimit = defaultNameSearchLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
