package savefile

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"castedit/internal/backend"
	"castedit/internal/fileutil"
	"castedit/internal/logging"
	"castedit/internal/person"
)

var (
	// ErrLocked reports that another editor holds the save file.
	ErrLocked = errors.New("save file is locked by another editor")
	// ErrMissingState reports a save without a stateJson object.
	ErrMissingState = errors.New("missing stateJson in save file")
	// ErrMissingCharacters reports a stateJson without a characters array.
	ErrMissingCharacters = errors.New("missing or invalid characters array")
)

var bom = []byte("\ufeff")

const (
	keyStateJSON  = "stateJson"
	keyCharacters = "characters"
)

// Options configures Open.
type Options struct {
	// LockDir holds the advisory lock file. Empty disables locking.
	LockDir string
	// LocalizationDir contains <lang>/CHARACTER_NAMES.json.
	LocalizationDir string
	// Backup copies the original file to <path>.bak before the first save.
	Backup bool
	Logger *slog.Logger
}

type character struct {
	raw   json.RawMessage
	obj   person.Raw
	dirty bool
}

// File is an opened save. It is safe for concurrent use.
type File struct {
	path            string
	localizationDir string
	backup          bool
	logger          *slog.Logger
	lock            *flock.Flock

	mu         sync.RWMutex
	bom        bool
	root       map[string]json.RawMessage
	state      map[string]json.RawMessage
	characters []character
	dirty      bool
	backedUp   bool

	lastWrite atomic.Int64
}

var _ backend.Backend = (*File)(nil)

// Open reads and parses the save at path and takes its lock.
func Open(path string, opts Options) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, backend.ErrNoSaveLoaded
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve save path: %w", err)
	}
	f := &File{
		path:            abs,
		localizationDir: opts.LocalizationDir,
		backup:          opts.Backup,
		logger:          logging.NewComponentLogger(opts.Logger, "savefile"),
	}
	if opts.LockDir != "" {
		if err := os.MkdirAll(opts.LockDir, 0o755); err != nil {
			return nil, fmt.Errorf("create lock directory: %w", err)
		}
		f.lock = flock.New(filepath.Join(opts.LockDir, lockName(abs)))
		ok, err := f.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire save lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrLocked, abs)
		}
	}
	if err := f.Reload(); err != nil {
		f.unlock()
		return nil, err
	}
	return f, nil
}

// lockName keys the lock on the absolute save path so saves with the same
// base name in different folders do not collide.
func lockName(path string) string {
	sum := sha256.Sum256([]byte(path))
	return filepath.Base(path) + "-" + hex.EncodeToString(sum[:4]) + ".lock"
}

// Path returns the absolute save path.
func (f *File) Path() string { return f.path }

// Dirty reports unsaved edits.
func (f *File) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty
}

// Reload re-reads the save from disk, discarding unsaved edits.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read save file: %w", err)
	}
	hasBOM := bytes.HasPrefix(data, bom)
	data = bytes.TrimPrefix(data, bom)

	root, state, characters, err := parse(data)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.bom = hasBOM
	f.root = root
	f.state = state
	f.characters = characters
	f.dirty = false
	f.mu.Unlock()

	f.logger.Debug("save file loaded",
		logging.String(logging.FieldPath, f.path),
		logging.Int("characters", len(characters)))
	return nil
}

func parse(data []byte) (map[string]json.RawMessage, map[string]json.RawMessage, []character, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, nil, nil, fmt.Errorf("parse save file: %w (starts with %q)", err, preview(data))
	}
	var state map[string]json.RawMessage
	if err := json.Unmarshal(root[keyStateJSON], &state); err != nil || state == nil {
		return nil, nil, nil, ErrMissingState
	}
	var items []json.RawMessage
	if err := json.Unmarshal(state[keyCharacters], &items); err != nil || items == nil {
		return nil, nil, nil, ErrMissingCharacters
	}
	characters := make([]character, len(items))
	for i, item := range items {
		characters[i].raw = item
		var obj person.Raw
		if json.Unmarshal(item, &obj) == nil {
			characters[i].obj = obj
		}
	}
	return root, state, characters, nil
}

func preview(data []byte) string {
	const n = 100
	if len(data) > n {
		data = data[:n]
	}
	return string(data)
}

// Save writes the document back to its own path.
func (f *File) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.backup && !f.backedUp {
		dst, err := fileutil.Backup(f.path)
		if err != nil {
			return fmt.Errorf("backup save file: %w", err)
		}
		f.backedUp = true
		f.logger.Info("save file backed up", logging.String(logging.FieldPath, dst))
	}
	if err := f.writeLocked(f.path); err != nil {
		return err
	}
	f.dirty = false
	return nil
}

// SaveAs writes the document to another path. The file stays bound to its
// original path and dirty state is unchanged.
func (f *File) SaveAs(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(path)
}

func (f *File) writeLocked(path string) error {
	data, err := f.encodeLocked()
	if err != nil {
		return err
	}
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if path == f.path {
		f.lastWrite.Store(time.Now().UnixNano())
	}
	if err := fileutil.WriteFileAtomic(path, data, perm); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	f.logger.Info("save file written",
		logging.String(logging.FieldPath, path),
		logging.Int("bytes", len(data)))
	return nil
}

func (f *File) encodeLocked() ([]byte, error) {
	items := make([]json.RawMessage, len(f.characters))
	for i := range f.characters {
		ch := &f.characters[i]
		if ch.dirty {
			data, err := encode(ch.obj)
			if err != nil {
				return nil, fmt.Errorf("encode character %d: %w", i, err)
			}
			ch.raw = data
			ch.dirty = false
		}
		items[i] = ch.raw
	}
	chars, err := encode(items)
	if err != nil {
		return nil, fmt.Errorf("encode characters: %w", err)
	}
	f.state[keyCharacters] = chars
	state, err := encode(f.state)
	if err != nil {
		return nil, fmt.Errorf("encode stateJson: %w", err)
	}
	f.root[keyStateJSON] = state
	data, err := encode(f.root)
	if err != nil {
		return nil, fmt.Errorf("encode save file: %w", err)
	}
	if f.bom {
		data = append(append([]byte(nil), bom...), data...)
	}
	return data, nil
}

// encode marshals without HTML escaping; the game writes plain characters.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Close releases the lock. Unsaved edits are discarded.
func (f *File) Close() error {
	return f.unlock()
}

func (f *File) unlock() error {
	if f.lock == nil {
		return nil
	}
	if err := f.lock.Unlock(); err != nil {
		logging.WarnWithContext(f.logger, "failed to release save lock", "savefile_unlock_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the stale lock file in state_dir"))
		return err
	}
	return nil
}
