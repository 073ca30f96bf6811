// Package fsys implements the shell's filesystem service on top of afero.
package fsys

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/josephlewis42/mithlsh/core/kshell"
	"github.com/spf13/afero"
	"github.com/spf13/afero/tarfs"
)

// ListingHeader starts every directory listing.
const ListingHeader = "Files in current directory:\n\n"

var (
	// ErrIsDir is returned when reading a directory as a file.
	ErrIsDir = errors.New("is a directory")
)

// Entry types shown in a listing.
const (
	TypeText = "TEXT"
	TypeDir  = "DIR"
	TypeFile = "FILE"
)

var textExtensions = map[string]bool{
	".txt":  true,
	".log":  true,
	".md":   true,
	".cfg":  true,
	".conf": true,
}

// Store serves listings and file reads from a single directory of an
// afero filesystem.
type Store struct {
	fs  afero.Fs
	dir string
}

var _ kshell.FileStore = (*Store)(nil)

// New creates a Store rooted at dir within base.
func New(base afero.Fs, dir string) *Store {
	if dir == "" {
		dir = "/"
	}
	return &Store{fs: base, dir: path.Clean(dir)}
}

// NewMemStore creates a Store in memory populated with seed files.
func NewMemStore(seed map[string]string) (*Store, error) {
	memFs := afero.NewMemMapFs()
	if err := Seed(memFs, "/", seed); err != nil {
		return nil, err
	}
	return New(memFs, "/"), nil
}

// NewTarStore creates a Store whose base layer is a read-only tar archive,
// gzip compressed or not. Writes, including seeds, land in a memory layer on
// top.
func NewTarStore(r io.Reader, seed map[string]string) (*Store, error) {
	br := bufio.NewReader(r)
	var archive io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("root fs: %w", err)
		}
		defer gz.Close()
		archive = gz
	}

	tarFs := tarfs.New(tar.NewReader(archive))
	if tarFs == nil {
		return nil, errors.New("root fs: malformed tar archive")
	}

	base := afero.NewReadOnlyFs(tarFs)
	layered := afero.NewCopyOnWriteFs(base, afero.NewMemMapFs())
	if err := Seed(layered, "/", seed); err != nil {
		return nil, err
	}

	return New(layered, "/"), nil
}

// Seed writes files into dir, a trailing slash on a name creates a directory.
func Seed(base afero.Fs, dir string, files map[string]string) error {
	for name, contents := range files {
		target := path.Join(dir, name)
		if strings.HasSuffix(name, "/") {
			if err := base.MkdirAll(target, 0755); err != nil {
				return fmt.Errorf("seed %q: %w", name, err)
			}
			continue
		}

		if err := afero.WriteFile(base, target, []byte(contents), 0644); err != nil {
			return fmt.Errorf("seed %q: %w", name, err)
		}
	}
	return nil
}

// Fs returns the backing filesystem.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// ListFiles writes a header followed by one line per entry into buf, entries
// that don't fit are left off.
func (s *Store) ListFiles(buf []byte) (int, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return -1, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	n := copy(buf, ListingHeader)
	if n < len(ListingHeader) {
		return n, nil
	}

	for _, entry := range entries {
		line := FormatEntry(entry)
		if len(line) > len(buf)-n {
			break
		}
		n += copy(buf[n:], line)
	}

	return n, nil
}

// FormatEntry renders a single listing line.
func FormatEntry(fi os.FileInfo) string {
	var size int64
	if !fi.IsDir() {
		size = fi.Size()
	}
	return fmt.Sprintf("%-20s %-6s %6d bytes\n", fi.Name(), entryType(fi), size)
}

func entryType(fi os.FileInfo) string {
	switch {
	case fi.IsDir():
		return TypeDir
	case textExtensions[strings.ToLower(path.Ext(fi.Name()))]:
		return TypeText
	default:
		return TypeFile
	}
}

// ReadFile copies the start of the named file into buf. Files larger than buf
// are cut short.
func (s *Store) ReadFile(name string, buf []byte) (int, error) {
	if name == "" || strings.ContainsRune(name, '/') {
		return -1, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	fd, err := s.fs.Open(path.Join(s.dir, name))
	if err != nil {
		return -1, err
	}
	defer fd.Close()

	fi, err := fd.Stat()
	if err != nil {
		return -1, err
	}
	if fi.IsDir() {
		return -1, &fs.PathError{Op: "read", Path: name, Err: ErrIsDir}
	}

	n, err := io.ReadFull(fd, buf)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return n, nil
	default:
		return -1, err
	}
}
