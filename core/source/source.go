// Package source locates the named byte streams PRM tables are read from.
//
// A Source is a flat namespace of entries ("bunches.prm", "price.prm", ...)
// backed by an OS folder, an fs.FS, an in-memory map, or a tar archive.
package source

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"

	"github.com/zeebo/blake3"
)

// Source is a locatable set of named entries.
type Source interface {
	// Open opens the entry with the given name for reading.
	Open(name string) (io.ReadCloser, error)

	// Names lists the entries available at the top level, sorted.
	Names() ([]string, error)

	// String describes the source for diagnostics.
	String() string
}

// Fingerprint returns the hex BLAKE3-256 digest of data.
func Fingerprint(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ReadAll opens name in src and reads it fully.
func ReadAll(src Source, name string) ([]byte, error) {
	rc, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// fsSource adapts an fs.FS.
type fsSource struct {
	fsys fs.FS
	desc string
}

// FS returns a Source reading from fsys. desc is used by String.
func FS(fsys fs.FS, desc string) Source {
	return &fsSource{fsys: fsys, desc: desc}
}

// Dir returns a Source reading from an OS folder.
func Dir(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	return FS(os.DirFS(path), path), nil
}

func (s *fsSource) Open(name string) (io.ReadCloser, error) {
	return s.fsys.Open(name)
}

func (s *fsSource) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *fsSource) String() string {
	return s.desc
}

// memorySource holds entries in memory.
type memorySource struct {
	files map[string][]byte
	desc  string
}

// Memory returns a Source over the given entries. The map is copied.
func Memory(desc string, files map[string][]byte) Source {
	m := make(map[string][]byte, len(files))
	for k, v := range files {
		m[k] = v
	}
	return &memorySource{files: m, desc: desc}
}

func (s *memorySource) Open(name string) (io.ReadCloser, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memorySource) Names() ([]string, error) {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memorySource) String() string {
	return s.desc
}
