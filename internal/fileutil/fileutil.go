package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(stage string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s temp file: %w", stage, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Backup copies path to path+".bak", verifying size and SHA-256 of the copy.
// A mismatched copy is removed.
func Backup(path string) (string, error) {
	dst := path + ".bak"
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}

	srcHash := sha256.New()
	var copied bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&copied, srcHash), in); err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	if int64(copied.Len()) != info.Size() {
		return "", fmt.Errorf("backup size mismatch: source %d bytes, read %d bytes", info.Size(), copied.Len())
	}
	want := srcHash.Sum(nil)
	if err := WriteFileAtomic(dst, copied.Bytes(), info.Mode().Perm()); err != nil {
		return "", err
	}

	written, err := os.ReadFile(dst)
	if err != nil {
		return "", fmt.Errorf("verify backup: %w", err)
	}
	if got := sha256.Sum256(written); !bytes.Equal(got[:], want) {
		_ = os.Remove(dst)
		return "", fmt.Errorf("backup hash mismatch: file corrupted during copy")
	}
	return dst, nil
}
