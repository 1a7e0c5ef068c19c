package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEditor(); err != nil {
		return err
	}
	if err := c.validateAdjust(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEditor() error {
	if _, err := language.Parse(c.Editor.Language); err != nil {
		return fmt.Errorf("editor.language %q is not a valid language code: %w", c.Editor.Language, err)
	}
	if c.Editor.SaveDelayMS < 0 {
		return errors.New("editor.save_delay_ms must be zero or positive")
	}
	if c.Editor.NameSearchLimit < 0 {
		return errors.New("editor.name_search_limit must be positive")
	}
	return nil
}

func (c *Config) validateAdjust() error {
	if err := ensurePositiveMap(map[string]int{
		"adjust.hold_delay_ms":      c.Adjust.HoldDelayMS,
		"adjust.repeat_interval_ms": c.Adjust.RepeatIntervalMS,
	}); err != nil {
		return err
	}
	if c.Adjust.SnapToGrid && c.Adjust.GridSize <= 0 {
		return errors.New("adjust.grid_size must be positive when snap_to_grid is enabled")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q must be console or json", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
