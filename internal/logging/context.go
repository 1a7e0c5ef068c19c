package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType names the event a log line records.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldSessionID identifies one editor session.
	FieldSessionID = "session_id"
	// FieldPersonID is the record id an entry concerns.
	FieldPersonID = "person_id"
	// FieldCategory is the person category (Actor, Executive, ...).
	FieldCategory = "category"
	// FieldField is the edited field name.
	FieldField = "field"
	// FieldEditKey is the coalescer key an edit was scheduled under.
	FieldEditKey = "edit_key"
	// FieldPath is a filesystem path.
	FieldPath = "path"
)

type contextKey int

const (
	sessionKey contextKey = iota
	personKey
)

// WithSession tags ctx with an editor session id.
func WithSession(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// WithPerson tags ctx with the category and record id being edited.
func WithPerson(ctx context.Context, category, id string) context.Context {
	return context.WithValue(ctx, personKey, [2]string{category, id})
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := ctx.Value(sessionKey).(string); ok && id != "" {
		fields = append(fields, slog.String(FieldSessionID, id))
	}
	if p, ok := ctx.Value(personKey).([2]string); ok {
		fields = append(fields, slog.String(FieldCategory, p[0]), slog.String(FieldPersonID, p[1]))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
