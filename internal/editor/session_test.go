package editor_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"castedit/internal/backend"
	"castedit/internal/editor"
	"castedit/internal/journal"
	"castedit/internal/mutation"
	"castedit/internal/person"
	"castedit/internal/roster"
	"castedit/internal/savefile"
	"castedit/internal/testsupport"
)

type recordingJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (j *recordingJournal) Record(_ context.Context, e journal.Entry) (journal.Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, e)
	return e, nil
}

func (j *recordingJournal) snapshot() []journal.Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]journal.Entry(nil), j.entries...)
}

// countingBackend wraps a backend, counts UpdateOne calls and optionally
// fails them.
type countingBackend struct {
	backend.Backend
	mu    sync.Mutex
	calls []mutation.Edit
	fail  error
}

func (b *countingBackend) UpdateOne(ctx context.Context, category string, id person.ID, edit mutation.Edit) error {
	b.mu.Lock()
	b.calls = append(b.calls, edit)
	fail := b.fail
	b.mu.Unlock()
	if fail != nil {
		return fail
	}
	return b.Backend.UpdateOne(ctx, category, id, edit)
}

func (b *countingBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type fixture struct {
	file    *savefile.File
	backend *countingBackend
	journal *recordingJournal
	session *editor.Session
}

func newFixture(t *testing.T, delay time.Duration) fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, testsupport.WithSampleSave(), testsupport.WithNameTable("en", testsupport.SampleNames()...))
	file, err := savefile.Open(cfg.Paths.SaveFile, savefile.Options{LocalizationDir: cfg.Paths.LocalizationDir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { file.Close() })

	be := &countingBackend{Backend: file}
	j := &recordingJournal{}
	session, err := editor.New(editor.Options{
		Backend:   be,
		Journal:   j,
		SaveDelay: delay,
		SavePath:  cfg.Paths.SaveFile,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(session.Close)
	if err := session.Load(context.Background(), "Actor"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return fixture{file: file, backend: be, journal: j, session: session}
}

func TestNewRequiresBackend(t *testing.T) {
	if _, err := editor.New(editor.Options{}); err == nil {
		t.Fatalf("expected error without backend")
	}
}

func TestLoadRejectsUnknownCategory(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	if err := f.session.Load(context.Background(), "Stuntman"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if f.session.Category() != "Actor" {
		t.Fatalf("failed load must keep the previous category, got %q", f.session.Category())
	}
}

func TestUpdateIsOptimisticAndCoalesced(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	before := f.session.Records()

	for _, v := range []float64{0.5, 0.6, 0.7} {
		ok, err := f.session.Update(ctx, "1042", mutation.SetValue(mutation.FieldMood, v))
		if err != nil || !ok {
			t.Fatalf("Update(%v) = %v, %v", v, ok, err)
		}
	}

	rec, ok := f.session.Find("1042")
	if !ok || rec.Mood.Float() != 0.7 {
		t.Fatalf("expected optimistic mood 0.7, got %v", rec.Mood)
	}
	if before[0].Mood.Float() != 0.4 {
		t.Fatalf("previous snapshot must not change, got %v", before[0].Mood)
	}
	if f.session.Pending() != 1 {
		t.Fatalf("expected 1 pending call, got %d", f.session.Pending())
	}
	if f.backend.callCount() != 0 {
		t.Fatalf("backend must not be called before the delay")
	}

	f.session.Flush()
	if f.backend.callCount() != 1 {
		t.Fatalf("expected one coalesced backend call, got %d", f.backend.callCount())
	}
	if got := f.backend.calls[0].Value; got == nil || *got != 0.7 {
		t.Fatalf("expected last value to win, got %v", got)
	}
	if !f.file.Dirty() {
		t.Fatalf("backend should hold the edit")
	}

	entries := f.journal.snapshot()
	if len(entries) != 1 || entries[0].Outcome != journal.OutcomeApplied || entries[0].PersonID != "1042" {
		t.Fatalf("unexpected journal entries %+v", entries)
	}
	if entries[0].SessionID != f.session.ID() || entries[0].EditKey != mutation.FieldMood {
		t.Fatalf("journal entry missing session or key: %+v", entries[0])
	}
}

func TestUpdateDistinctFieldsAreNotMerged(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()
	if _, err := f.session.Update(ctx, "1042", mutation.SetValue(mutation.FieldMood, 0.5)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := f.session.Update(ctx, "1042", mutation.SetValue(mutation.FieldAttitude, 0.5)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := f.session.Update(ctx, "1043", mutation.SetValue(mutation.FieldMood, 0.5)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if f.session.Pending() != 3 {
		t.Fatalf("expected 3 pending calls, got %d", f.session.Pending())
	}
	f.session.Flush()
	if f.backend.callCount() != 3 {
		t.Fatalf("expected 3 backend calls, got %d", f.backend.callCount())
	}
}

func TestUpdateMissingRecord(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ok, err := f.session.Update(context.Background(), "9999", mutation.SetValue(mutation.FieldMood, 0.5))
	if err != nil || ok {
		t.Fatalf("expected (false, nil) for missing record, got %v, %v", ok, err)
	}
	if f.session.Pending() != 0 {
		t.Fatalf("no call should be scheduled")
	}
}

func TestUpdateRejectsInvalidEdit(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	ok, err := f.session.Update(context.Background(), "1042", mutation.SetValue("salary", 1))
	if !errors.Is(err, mutation.ErrUnsupportedField) || ok {
		t.Fatalf("expected ErrUnsupportedField, got %v, %v", ok, err)
	}
}

func TestBackendFailureKeepsLocalValueAndNotifies(t *testing.T) {
	f := newFixture(t, time.Millisecond)
	f.backend.fail = errors.New("disk full")

	if _, err := f.session.Update(context.Background(), "1042", mutation.SetValue(mutation.FieldMood, 0.9)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.session.Flush()

	rec, _ := f.session.Find("1042")
	if rec.Mood.Float() != 0.9 {
		t.Fatalf("optimistic value must survive a failed call, got %v", rec.Mood)
	}
	select {
	case n := <-f.session.Notices():
		if n.Severity != editor.SeverityError || n.PersonID != "1042" || n.Err == nil {
			t.Fatalf("unexpected notice %+v", n)
		}
	default:
		t.Fatalf("expected a failure notice")
	}
	entries := f.journal.snapshot()
	if len(entries) != 1 || entries[0].Outcome != journal.OutcomeFailed || entries[0].Error != "disk full" {
		t.Fatalf("unexpected journal entries %+v", entries)
	}
	if f.session.Metrics() == nil {
		t.Fatalf("expected metrics")
	}
}

func TestCloseDropsPendingEdits(t *testing.T) {
	f := newFixture(t, time.Hour)
	if _, err := f.session.Update(context.Background(), "1042", mutation.SetValue(mutation.FieldMood, 0.9)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	f.session.Close()
	if f.session.Pending() != 0 || f.backend.callCount() != 0 {
		t.Fatalf("Close must drop pending calls")
	}
}

func TestViewSearchesNamesAndKeepsPositions(t *testing.T) {
	f := newFixture(t, time.Hour)
	ctx := context.Background()

	found, err := f.session.View(ctx, roster.Filter{Search: "eve"}, roster.FieldSkill, roster.Desc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(found) != 1 || found[0].ID != "1042" {
		t.Fatalf("expected only Eve Smith, got %v", found)
	}

	first, err := f.session.View(ctx, roster.Filter{}, roster.FieldSkill, roster.Desc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(first) != 3 || first[0].ID != "1043" {
		t.Fatalf("expected 1043 first by skill, got %v", first)
	}

	if _, err := f.session.Update(ctx, "1042", mutation.SetValue(mutation.FieldSkill, 0.95)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	second, err := f.session.View(ctx, roster.Filter{}, roster.FieldSkill, roster.Desc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Fatalf("edited row moved: %v -> %v", first, second)
		}
	}
	if second[1].Skill() != 0.95 {
		t.Fatalf("expected refreshed record in place, got %v", second[1].Skill())
	}
}

func TestViewByAgeUsesCurrentDate(t *testing.T) {
	f := newFixture(t, time.Hour)
	got, err := f.session.View(context.Background(), roster.Filter{ExcludeDead: true}, roster.FieldAge, roster.Asc)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1042" {
		t.Fatalf("expected youngest living actor first, got %v", got)
	}
}

func TestCurrentDate(t *testing.T) {
	f := newFixture(t, time.Hour)
	date, err := f.session.CurrentDate(context.Background())
	if err != nil {
		t.Fatalf("CurrentDate: %v", err)
	}
	if date.Long() != "March 12, 1931" {
		t.Fatalf("unexpected date %s", date.Long())
	}
}

func TestUpdateManyReloads(t *testing.T) {
	f := newFixture(t, time.Hour)
	n, err := f.session.UpdateMany(context.Background(), "PL", mutation.FieldMood, 1)
	if err != nil {
		t.Fatalf("UpdateMany: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 PL actor, got %d", n)
	}
	rec, _ := f.session.Find("1042")
	if rec.Mood.Float() != 1 {
		t.Fatalf("expected reloaded mood 1, got %v", rec.Mood)
	}
	entries := f.journal.snapshot()
	if len(entries) != 1 || entries[0].Affected != 1 || entries[0].EditKey != "batch:PL:mood" {
		t.Fatalf("unexpected journal entries %+v", entries)
	}
}

type stubReloader struct {
	dirty    bool
	reloaded int
	err      error
}

func (r *stubReloader) Dirty() bool { return r.dirty }

func (r *stubReloader) Reload() error {
	r.reloaded++
	return r.err
}

func drainNotice(t *testing.T, s *editor.Session) editor.Notice {
	t.Helper()
	select {
	case n := <-s.Notices():
		return n
	case <-time.After(time.Second):
		t.Fatalf("expected a notice")
	}
	return editor.Notice{}
}

func TestFollowReloadsCleanSession(t *testing.T) {
	f := newFixture(t, time.Hour)
	events := make(chan savefile.Event, 1)
	src := &stubReloader{}
	events <- savefile.Event{Path: f.file.Path()}
	close(events)

	f.session.Follow(context.Background(), events, src)
	if src.reloaded != 1 {
		t.Fatalf("expected one reload, got %d", src.reloaded)
	}
	if n := drainNotice(t, f.session); n.Severity != editor.SeverityInfo {
		t.Fatalf("unexpected notice %+v", n)
	}
}

func TestFollowKeepsUnsavedEdits(t *testing.T) {
	f := newFixture(t, time.Hour)
	if _, err := f.session.Update(context.Background(), "1042", mutation.SetValue(mutation.FieldMood, 0.9)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	events := make(chan savefile.Event, 1)
	src := &stubReloader{}
	events <- savefile.Event{Path: filepath.Join(t.TempDir(), "slot1.json")}
	close(events)

	f.session.Follow(context.Background(), events, src)
	if src.reloaded != 0 {
		t.Fatalf("reload must be skipped while edits are pending")
	}
	if n := drainNotice(t, f.session); n.Severity != editor.SeverityWarning {
		t.Fatalf("unexpected notice %+v", n)
	}
	rec, _ := f.session.Find("1042")
	if rec.Mood.Float() != 0.9 {
		t.Fatalf("local edit lost, got %v", rec.Mood)
	}
}

func TestFollowReportsReloadFailure(t *testing.T) {
	f := newFixture(t, time.Hour)
	events := make(chan savefile.Event, 1)
	src := &stubReloader{err: savefile.ErrMissingState}
	events <- savefile.Event{Path: f.file.Path()}
	close(events)

	f.session.Follow(context.Background(), events, src)
	n := drainNotice(t, f.session)
	if n.Severity != editor.SeverityError || !errors.Is(n.Err, savefile.ErrMissingState) {
		t.Fatalf("unexpected notice %+v", n)
	}
}
