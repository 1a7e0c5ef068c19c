package editor

import (
	"context"

	"castedit/internal/logging"
	"castedit/internal/savefile"
)

// Reloader re-reads the backing store.
type Reloader interface {
	Dirty() bool
	Reload() error
}

// Follow reloads the session when the save changes on disk. A change that
// arrives while edits are unsaved is reported and not applied, so the
// user's work is never silently replaced. It returns when events closes or
// ctx is done.
func (s *Session) Follow(ctx context.Context, events <-chan savefile.Event, src Reloader) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.handleChange(ctx, ev, src)
		}
	}
}

func (s *Session) handleChange(ctx context.Context, ev savefile.Event, src Reloader) {
	if s.Pending() > 0 || src.Dirty() {
		logging.WarnWithContext(s.logger, "save file changed with unsaved edits", "savefile_conflict",
			logging.String(logging.FieldPath, ev.Path),
			logging.String(logging.FieldErrorHint, "save to overwrite or reopen to discard edits"),
			logging.String(logging.FieldImpact, "external changes are not shown"))
		s.notify(Notice{Severity: SeverityWarning, Message: "save file changed on disk; unsaved edits kept"})
		return
	}
	if ev.Removed {
		s.notify(Notice{Severity: SeverityWarning, Message: "save file was removed"})
		return
	}
	if err := src.Reload(); err != nil {
		s.notify(Notice{Severity: SeverityError, Message: "reload failed", Err: err})
		return
	}
	if category := s.Category(); category != "" {
		if err := s.Load(ctx, category); err != nil {
			s.notify(Notice{Severity: SeverityError, Category: category, Message: "reload failed", Err: err})
			return
		}
	}
	s.logger.Info("save file reloaded", logging.String(logging.FieldPath, ev.Path))
	s.notify(Notice{Severity: SeverityInfo, Message: "save file reloaded"})
}
