package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"castedit/internal/backend"
	"castedit/internal/config"
	"castedit/internal/editor"
	"castedit/internal/journal"
	"castedit/internal/logging"
	"castedit/internal/names"
	"castedit/internal/savefile"
)

type commandContext struct {
	configFlag *string
	saveFlag   *string
	outFlag    *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, saveFlag, outFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		saveFlag:   saveFlag,
		outFlag:    outFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.saveFlag != nil && strings.TrimSpace(*c.saveFlag) != "" {
			expanded, err := config.ExpandPath(strings.TrimSpace(*c.saveFlag))
			if err != nil {
				c.configErr = fmt.Errorf("resolve save path: %w", err)
				return
			}
			cfg.Paths.SaveFile = expanded
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loggerFor builds the process logger once and prunes expired log files.
// Logging failures fall back to a no-op logger rather than failing the
// command.
func (c *commandContext) loggerFor(cfg *config.Config) *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
		now := time.Now()
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, now, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: logging.LogFilePattern,
			Exclude: []string{logging.DailyLogPath(cfg.Paths.LogDir, now)},
		})
	})
	return c.logger
}

// openJournal opens the edit journal and prunes expired entries. A nil
// store with a nil error means journaling is off. Callers close the store.
func (c *commandContext) openJournal(ctx context.Context, cfg *config.Config) (*journal.Store, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if cfg.Journal.RetentionDays > 0 {
		retention := time.Duration(cfg.Journal.RetentionDays) * 24 * time.Hour
		if _, err := store.Prune(ctx, retention); err != nil {
			logging.WarnWithContext(c.loggerFor(cfg), "journal prune failed", "journal_prune_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "old history entries are kept"))
		}
	}
	return store, nil
}

func (c *commandContext) nameResolver(ctx context.Context, cfg *config.Config) (*names.Resolver, error) {
	loader := names.LoaderFunc(func(ctx context.Context, lang string) ([]string, error) {
		return savefile.LoadNameTable(ctx, cfg.Paths.LocalizationDir, lang)
	})
	return names.NewCache(loader, c.loggerFor(cfg)).Get(ctx, cfg.Editor.Language)
}

// editorEnv is an open save file with a session bound to one category.
type editorEnv struct {
	cfg     *config.Config
	file    *savefile.File
	session *editor.Session
	logger  *slog.Logger
}

// outputPath resolves --out. Empty means edits go back to the save file.
func (c *commandContext) outputPath() (string, error) {
	if c.outFlag == nil || strings.TrimSpace(*c.outFlag) == "" {
		return "", nil
	}
	path, err := config.ExpandPath(strings.TrimSpace(*c.outFlag))
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	return path, nil
}

// withEditor opens the configured save file, loads category into a fresh
// session and runs fn. Pending edits are then flushed and, when anything
// changed, the save is written. Failed backend calls are reported and turn
// into the command's error.
func (c *commandContext) withEditor(cmd *cobra.Command, category string, fn func(*editorEnv) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := c.loggerFor(cfg)

	file, err := savefile.Open(cfg.Paths.SaveFile, savefile.Options{
		LockDir:         cfg.Paths.StateDir,
		LocalizationDir: cfg.Paths.LocalizationDir,
		Backup:          true,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("open save: %w", err)
	}
	defer file.Close()

	opts := editor.Options{
		Backend:   file,
		Language:  cfg.Editor.Language,
		SaveDelay: cfg.SaveDelay(),
		SavePath:  file.Path(),
		Logger:    logger,
	}
	store, err := c.openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		opts.Journal = store
	}
	session, err := editor.New(opts)
	if err != nil {
		return err
	}
	defer session.Close()

	if category != "" {
		if err := session.Load(ctx, category); err != nil {
			return err
		}
	}

	env := &editorEnv{cfg: cfg, file: file, session: session, logger: logger}
	runErr := fn(env)
	session.Flush()
	failures := reportNotices(cmd, session)

	if file.Dirty() {
		target, err := c.outputPath()
		if err != nil {
			return err
		}
		if target == "" {
			target = file.Path()
			err = file.Save(ctx)
		} else {
			err = file.SaveAs(ctx, target)
		}
		if err != nil {
			return fmt.Errorf("save %s: %w", target, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", target)
	}
	if runErr != nil {
		return runErr
	}
	if failures > 0 {
		return fmt.Errorf("%d edit(s) were not persisted", failures)
	}
	return nil
}

// reportNotices prints queued notices and returns how many were errors.
func reportNotices(cmd *cobra.Command, session *editor.Session) int {
	out := cmd.ErrOrStderr()
	colorize := shouldColorize(out)
	failures := 0
	for {
		select {
		case n := <-session.Notices():
			if n.Severity == editor.SeverityError {
				failures++
			}
			fmt.Fprintln(out, renderNotice(n, colorize))
		default:
			return failures
		}
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func notFound(category, id string) error {
	return fmt.Errorf("%w: %s %s", backend.ErrNotFound, category, id)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
