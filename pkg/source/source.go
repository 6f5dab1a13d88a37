// Package source exposes a file as a forward-only sequence of line records.
//
// Records are delimited by '\r', '\n' or "\r\n". Delimiters are never part of
// a record and runs of delimiters produce no empty records. A record is a
// slice of the source buffer: it stays valid until the next call to Next,
// because the buffer is released once the source is exhausted or closed.
package source

import (
	"bytes"
	"io/fs"
	"iter"
	"os"

	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/spf13/afero"
)

// Source yields records of one file, one per Next call.
type Source struct {
	data    []byte
	pos     int
	release func() error
	closed  bool
	err     error
}

// Open maps the file at path read-only.
//
// Only the bytes present at open time are read; later appends are not seen.
// On unix the file is memory mapped, and truncating it while the Source is
// open makes reads past the new end fault with SIGBUS. Use OpenFs for files
// that may shrink under the reader.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceOpen, "failed to open %s", path).
			WithDetail("path", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceOpen, "failed to stat %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(&fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid},
			errors.ErrSourceOpen, "%s is a directory", path).WithDetail("path", path)
	}

	data, release, err := mapFile(f, info.Size())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceMap, "failed to map %s", path).
			WithDetail("path", path)
	}
	return &Source{data: data, release: release}, nil
}

// OpenFs reads the file at path from fsys into memory.
func OpenFs(fsys afero.Fs, path string) (*Source, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceOpen, "failed to open %s", path).
			WithDetail("path", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(&fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid},
			errors.ErrSourceOpen, "%s is a directory", path).WithDetail("path", path)
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceOpen, "failed to read %s", path).
			WithDetail("path", path)
	}
	return FromBytes(data), nil
}

// FromBytes returns a Source over data. data must not change while the
// source is in use.
func FromBytes(data []byte) *Source {
	return &Source{data: data}
}

// Ok reports whether the source can still yield records.
func (s *Source) Ok() bool {
	return !s.closed
}

// Next returns the next record. Once the data is exhausted the source closes
// itself and Next keeps returning false.
func (s *Source) Next() ([]byte, bool) {
	if s.closed {
		return nil, false
	}

	data := s.data
	for s.pos < len(data) && isDelimiter(data[s.pos]) {
		s.pos++
	}
	if s.pos >= len(data) {
		s.err = s.Close()
		return nil, false
	}

	start := s.pos
	if n := bytes.IndexAny(data[start:], "\r\n"); n >= 0 {
		s.pos = start + n
	} else {
		s.pos = len(data)
	}
	return data[start:s.pos], true
}

// All returns an iterator over the remaining records.
func (s *Source) All() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for {
			record, ok := s.Next()
			if !ok || !yield(record) {
				return
			}
		}
	}
}

// Err returns the error met while releasing the buffer at exhaustion, if any.
func (s *Source) Err() error {
	return s.err
}

// Close releases the buffer. Closing a closed source does nothing.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.data = nil

	if s.release == nil {
		return nil
	}
	release := s.release
	s.release = nil
	if err := release(); err != nil {
		return errors.Wrap(err, errors.ErrSourceMap, "failed to release mapping")
	}
	return nil
}

func isDelimiter(c byte) bool {
	return c == '\r' || c == '\n'
}
