package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"castedit/internal/backend"
	"castedit/internal/calendar"
	"castedit/internal/coalesce"
	"castedit/internal/journal"
	"castedit/internal/logging"
	"castedit/internal/mutation"
	"castedit/internal/names"
	"castedit/internal/person"
	"castedit/internal/roster"
)

// Journal receives one entry per dispatched backend call.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) (journal.Entry, error)
}

// Options configures a Session.
type Options struct {
	Backend    backend.Backend
	Names      *names.Cache
	Journal    Journal
	Language   string
	SaveDelay  time.Duration
	SavePath   string
	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

// Session edits one category at a time.
type Session struct {
	id        string
	backend   backend.Backend
	names     *names.Cache
	journal   Journal
	language  string
	savePath  string
	logger    *slog.Logger
	coalescer *coalesce.Coalescer
	notices   chan Notice

	mu       sync.RWMutex
	category string
	records  []person.Record
	order    roster.OrderCache
}

func New(opts Options) (*Session, error) {
	if opts.Backend == nil {
		return nil, errors.New("editor: backend is required")
	}
	id := uuid.NewString()
	logger := logging.NewComponentLogger(opts.Logger, "editor").With(logging.String(logging.FieldSessionID, id))
	cache := opts.Names
	if cache == nil {
		cache = names.NewCache(opts.Backend, opts.Logger)
	}
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}
	return &Session{
		id:       id,
		backend:  opts.Backend,
		names:    cache,
		journal:  opts.Journal,
		language: lang,
		savePath: opts.SavePath,
		logger:   logger,
		coalescer: coalesce.New(coalesce.Options{
			Delay:      opts.SaveDelay,
			Logger:     opts.Logger,
			Registerer: opts.Registerer,
		}),
		notices: make(chan Notice, noticeBuffer),
	}, nil
}

// ID identifies the session in logs and the journal.
func (s *Session) ID() string { return s.id }

// Notices delivers background failures and reload messages. Undelivered
// notices are dropped once the buffer is full.
func (s *Session) Notices() <-chan Notice { return s.notices }

// Metrics exposes the coalescer counters.
func (s *Session) Metrics() *coalesce.Metrics { return s.coalescer.Metrics() }

// Category returns the loaded category.
func (s *Session) Category() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// Load replaces the snapshot with the backend's records for category.
func (s *Session) Load(ctx context.Context, category string) error {
	if !person.IsCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	records, err := s.backend.ListByCategory(ctx, category)
	if err != nil {
		return fmt.Errorf("list %s: %w", category, err)
	}
	s.mu.Lock()
	s.category = category
	s.records = records
	s.order.Invalidate()
	s.mu.Unlock()

	s.logger.Debug("category loaded",
		logging.String(logging.FieldCategory, category),
		logging.Int("records", len(records)))
	return nil
}

// Records returns the current snapshot. Callers must not modify it.
func (s *Session) Records() []person.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Find returns the record with id from the current snapshot.
func (s *Session) Find(id person.ID) (person.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.records[i], true
	}
	return person.Record{}, false
}

func (s *Session) indexLocked(id person.ID) int {
	return slices.IndexFunc(s.records, func(r person.Record) bool { return r.ID == id })
}

// Names returns the resolver for the session language.
func (s *Session) Names(ctx context.Context) (*names.Resolver, error) {
	return s.names.Get(ctx, s.language)
}

// CurrentDate returns the in-game date.
func (s *Session) CurrentDate(ctx context.Context) (calendar.Date, error) {
	text, err := s.backend.CurrentDate(ctx)
	if err != nil {
		return calendar.Epoch, err
	}
	date, ok := calendar.ParseLong(text)
	if !ok {
		return calendar.Epoch, fmt.Errorf("unrecognized current date %q", text)
	}
	return date, nil
}

// View filters and orders the snapshot. Rows already shown under the same
// sort settings keep their positions, so editing a sort key does not make
// the edited row jump.
func (s *Session) View(ctx context.Context, f roster.Filter, field roster.Field, order roster.Order) ([]person.Record, error) {
	var table person.NameTable
	if resolver, err := s.Names(ctx); err == nil {
		table = resolver
	} else if f.Search != "" {
		return nil, err
	}
	var sortCtx roster.Context
	if field == roster.FieldAge {
		text, err := s.backend.CurrentDate(ctx)
		if err != nil {
			return nil, err
		}
		sortCtx.CurrentDate = text
	}

	filtered := roster.ApplyAll(s.Records(), f, table)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Apply(filtered, field, order, sortCtx), nil
}

// Update applies edit to record id locally and schedules the backend call.
// It returns false when the record is not in the snapshot.
func (s *Session) Update(ctx context.Context, id person.ID, edit mutation.Edit) (bool, error) {
	if err := edit.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		s.logger.Debug("edit for missing record ignored",
			logging.String(logging.FieldPersonID, id.String()),
			logging.String(logging.FieldEditKey, edit.Key()))
		return false, nil
	}
	updated, err := mutation.Apply(s.records[i], edit)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	next := slices.Clone(s.records)
	next[i] = updated
	s.records = next
	category := s.category
	s.mu.Unlock()

	key := category + "/" + id.String() + "/" + edit.Key()
	s.coalescer.Schedule(ctx, key, func(ctx context.Context) error {
		return s.dispatch(ctx, category, id, edit)
	})
	return true, nil
}

// UpdateMany sets field on every record of the loaded category owned by
// group and reloads the snapshot. It bypasses the coalescer.
func (s *Session) UpdateMany(ctx context.Context, group, field string, value float64) (int, error) {
	edit := mutation.SetValue(field, value)
	if err := edit.Validate(); err != nil {
		return 0, err
	}
	category := s.Category()
	if category == "" {
		return 0, errors.New("no category loaded")
	}
	count, err := s.backend.UpdateMany(ctx, category, group, field, value)
	s.journalCall(ctx, journal.Entry{
		Category: category,
		EditKey:  "batch:" + group + ":" + field,
		Payload:  edit.String(),
		Affected: count,
	}, err)
	if err != nil {
		return count, err
	}
	return count, s.Load(ctx, category)
}

// Flush runs every pending backend call now and waits for completion.
func (s *Session) Flush() {
	s.coalescer.Drain()
}

// Close drops pending backend calls without running them. Call Flush first
// to keep them.
func (s *Session) Close() {
	s.coalescer.FlushAll()
}

// Pending reports backend calls still waiting on their delay.
func (s *Session) Pending() int {
	return s.coalescer.PendingCount()
}

func (s *Session) dispatch(ctx context.Context, category string, id person.ID, edit mutation.Edit) error {
	ctx = logging.WithPerson(logging.WithSession(ctx, s.id), category, id.String())
	logger := logging.WithContext(ctx, s.logger)

	err := s.backend.UpdateOne(ctx, category, id, edit)
	s.journalCall(ctx, journal.Entry{
		Category: category,
		PersonID: id.String(),
		EditKey:  edit.Key(),
		Payload:  edit.String(),
	}, err)
	if err != nil {
		logging.ErrorWithContext(logger, "edit not persisted", "edit_persist_failed",
			logging.String(logging.FieldEditKey, edit.Key()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "retry the edit or reload the save"),
			logging.String(logging.FieldImpact, "the displayed value differs from the save file"))
		s.notify(Notice{
			Severity: SeverityError,
			Category: category,
			PersonID: id.String(),
			EditKey:  edit.Key(),
			Message:  "failed to save " + edit.Key(),
			Err:      err,
		})
		return err
	}
	logger.Debug("edit persisted", logging.String(logging.FieldEditKey, edit.Key()))
	return nil
}

func (s *Session) journalCall(ctx context.Context, e journal.Entry, callErr error) {
	if s.journal == nil {
		return
	}
	e.SessionID = s.id
	e.SavePath = s.savePath
	e.Outcome = journal.OutcomeApplied
	if callErr != nil {
		e.Outcome = journal.OutcomeFailed
		e.Error = callErr.Error()
	}
	if _, err := s.journal.Record(context.WithoutCancel(ctx), e); err != nil {
		logging.WarnWithContext(s.logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "edit history is incomplete"))
	}
}

func (s *Session) notify(n Notice) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	select {
	case s.notices <- n:
	default:
		s.logger.Debug("notice dropped", logging.String("message", n.Message))
	}
}
