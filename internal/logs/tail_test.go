package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"castedit/internal/logs"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "castedit-20310312.log")
	writeLog(t, path, "a\nb\nc\npartial")

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"fewer than available", 2, []string{"b", "c"}},
		{"more than available", 10, []string{"a", "b", "c"}},
		{"exact", 3, []string{"a", "b", "c"}},
		{"none", 0, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lines, offset, err := logs.Last(path, tc.limit)
			if err != nil {
				t.Fatalf("Last: %v", err)
			}
			if !slices.Equal(lines, tc.want) {
				t.Fatalf("Last(%d) = %#v, want %#v", tc.limit, lines, tc.want)
			}
			if tc.limit > 0 && offset != int64(len("a\nb\nc\n")) {
				t.Fatalf("offset must stop before the partial line, got %d", offset)
			}
		})
	}

	lines, offset, err := logs.Last(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil || lines != nil || offset != 0 {
		t.Fatalf("missing file: %v %d %v", lines, offset, err)
	}
}

func TestReadFromHandlesTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "castedit.log")
	writeLog(t, path, "first\n")
	_, offset, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	appendLog(t, path, "second\n")
	lines, offset, err := logs.ReadFrom(path, offset)
	if err != nil || !slices.Equal(lines, []string{"second"}) {
		t.Fatalf("ReadFrom = %#v, %v", lines, err)
	}

	writeLog(t, path, "x\n")
	lines, _, err = logs.ReadFrom(path, offset)
	if err != nil || !slices.Equal(lines, []string{"x"}) {
		t.Fatalf("truncated ReadFrom = %#v, %v", lines, err)
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"castedit-20310311.log", "castedit-20310312.log", "other.txt"} {
		writeLog(t, filepath.Join(dir, name), "")
	}
	got, err := logs.Latest(dir, "castedit-*.log")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if filepath.Base(got) != "castedit-20310312.log" {
		t.Fatalf("unexpected latest %s", got)
	}
	if _, err := logs.Latest(t.TempDir(), "castedit-*.log"); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "castedit.log")
	writeLog(t, path, "start\n")
	_, offset, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	got := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, offset, func(line string) { got <- line })
	}()

	time.Sleep(100 * time.Millisecond)
	appendLog(t, path, "later\n")

	select {
	case line := <-got:
		if line != "later" {
			t.Fatalf("unexpected line %q", line)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("follow did not emit the appended line")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow returned %v", err)
	}
}
