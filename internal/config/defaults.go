package config

const (
	defaultStateDir          = "~/.local/share/castedit"
	defaultLogDir            = "~/.local/share/castedit/logs"
	defaultLocalizationDir   = "~/.local/share/castedit/localization"
	defaultLanguage          = "en"
	defaultSaveDelayMS       = 300
	defaultPlayerStudio      = "PL"
	defaultNameSearchLimit   = 10
	defaultHoldDelayMS       = 500
	defaultRepeatIntervalMS  = 100
	defaultGridSize          = 10
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 14
	defaultJournalRetainDays = 30

	envSaveFile        = "CASTEDIT_SAVE_FILE"
	envLocalizationDir = "CASTEDIT_LOCALIZATION_DIR"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Editor: Editor{
			Language:        defaultLanguage,
			SaveDelayMS:     defaultSaveDelayMS,
			PlayerStudio:    defaultPlayerStudio,
			NameSearchLimit: defaultNameSearchLimit,
		},
		Adjust: Adjust{
			HoldDelayMS:      defaultHoldDelayMS,
			RepeatIntervalMS: defaultRepeatIntervalMS,
			GridSize:         defaultGridSize,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Journal: Journal{
			Enabled:       true,
			RetentionDays: defaultJournalRetainDays,
		},
	}
}
