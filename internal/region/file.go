package region

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
)

const defaultFileMode = 0o644

// FS is the filesystem ReplaceFile reads from and writes back to.
type FS interface {
	fs.FS
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

type osFS struct{}

// OSFS returns an [FS] backed by the host filesystem. Names are plain OS
// paths, relative to the working directory or absolute.
func OSFS() FS { //nolint:ireturn
	return osFS{}
}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// FileOptions tune ReplaceFile.
type FileOptions struct {
	// Backup, when set, is appended to name and receives the original
	// content before the file is overwritten.
	Backup string
	// Strict refuses to write when the start marker is missing or the
	// block is never closed. See [Result.Err].
	Strict bool
}

// FileResult extends Result with what ReplaceFile did on disk.
type FileResult struct {
	Result
	// Written is set when name was overwritten.
	Written bool
	// BackupName is the backup written before the overwrite, if any.
	BackupName string
}

// ReplaceFile loads name in full, replaces the marker-delimited block with
// replacement and overwrites name with the result. The file is only written
// when its content changed. In strict mode nothing is written unless the
// block was found and closed. The overwrite is not atomic.
func ReplaceFile(fsys FS, name string, m Markers, replacement Lines, opts FileOptions) (FileResult, error) {
	var result FileResult

	if err := m.Validate(); err != nil {
		return result, err
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return result, err
	}

	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return result, err
	}

	var lines Lines

	lines, result.Result = Replace(Split(src), m, replacement)

	if err := result.Err(opts.Strict); err != nil {
		return result, err
	}

	out := lines.Join()
	if bytes.Equal(out, src) {
		return result, nil
	}

	perm := info.Mode().Perm()
	if perm == 0 {
		perm = defaultFileMode
	}

	if len(opts.Backup) != 0 {
		if err := fsys.WriteFile(name+opts.Backup, src, perm); err != nil {
			return result, fmt.Errorf("backup %s: %w", name, err)
		}

		result.BackupName = name + opts.Backup
	}

	if err := fsys.WriteFile(name, out, perm); err != nil {
		return result, err
	}

	result.Written = true

	return result, nil
}

// ReadFile loads name and returns the block ReplaceFile would remove.
func ReadFile(fsys fs.FS, name string, m Markers) (Lines, Result, error) {
	if err := m.Validate(); err != nil {
		return nil, Result{}, err
	}

	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, Result{}, err
	}

	block, result := Read(Split(src), m)

	return block, result, nil
}
