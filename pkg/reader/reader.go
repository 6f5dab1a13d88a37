// Package reader filters the records of one log file through a wildcard mask.
package reader

import (
	"bufio"
	"io"

	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/palchukovsky/logreader/pkg/logging"
	"github.com/palchukovsky/logreader/pkg/mask"
	"github.com/palchukovsky/logreader/pkg/source"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Stats counts records seen by a LogReader.
type Stats struct {
	Scanned   int
	Matched   int
	Truncated int
}

// Option configures a LogReader
type Option func(*LogReader)

// WithLogger replaces the default component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(r *LogReader) {
		r.logger = logger
	}
}

// WithMaxRules limits the size of compiled filters, see mask.WithMaxRules
func WithMaxRules(n int) Option {
	return func(r *LogReader) {
		r.maxRules = n
	}
}

// LogReader reads records of an open file that match the active filter.
// Without a filter every record matches. A LogReader is not safe for
// concurrent use.
type LogReader struct {
	logger   zerolog.Logger
	maxRules int

	src     *source.Source
	path    string
	matcher *mask.Matcher
	stats   Stats
}

// New creates a LogReader with no file and no filter
func New(opts ...Option) *LogReader {
	r := &LogReader{
		logger: logging.GetLogger("reader"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open maps the file at path. It fails if a file is already open, even when
// all its records have been read.
func (r *LogReader) Open(path string) error {
	return r.attach(path, func() (*source.Source, error) {
		return source.Open(path)
	})
}

// OpenFs opens the file at path from fsys
func (r *LogReader) OpenFs(fsys afero.Fs, path string) error {
	return r.attach(path, func() (*source.Source, error) {
		return source.OpenFs(fsys, path)
	})
}

func (r *LogReader) attach(path string, open func() (*source.Source, error)) error {
	if r.src != nil {
		return errors.Newf(errors.ErrAlreadyOpen, "%s is already open", r.path).
			WithDetail("path", path)
	}

	src, err := open()
	if err != nil {
		r.logger.Debug().Err(err).Str("path", path).Msg("Failed to open source")
		return err
	}

	r.src = src
	r.path = path
	r.stats = Stats{}
	r.logger.Debug().Str("path", path).Msg("Source opened")
	return nil
}

// Close closes the file and drops the filter. Closing a reader without an
// open file does nothing.
func (r *LogReader) Close() error {
	r.matcher = nil
	if r.src == nil {
		return nil
	}

	src := r.src
	r.src = nil
	r.path = ""
	return src.Close()
}

// SetFilter compiles filter and makes it the active filter. A nil filter
// fails with errors.ErrNullMask. On failure the previous filter, or the lack
// of one, stays in effect.
func (r *LogReader) SetFilter(filter *string) error {
	var opts []mask.Option
	if r.maxRules > 0 {
		opts = append(opts, mask.WithMaxRules(r.maxRules))
	}

	matcher := r.matcher
	if matcher == nil {
		matcher = mask.NewMatcher()
	}
	if err := matcher.Compile(filter, opts...); err != nil {
		return err
	}
	r.matcher = matcher

	r.logger.Debug().
		Str("filter", *filter).
		Str("canonical", matcher.Sequence().String()).
		Int("rules", matcher.Sequence().Len()).
		Msg("Filter set")
	return nil
}

// HasFilter reports whether a filter is active
func (r *LogReader) HasFilter() bool {
	return r.matcher != nil
}

// NextLine copies the next matching record into buf and terminates it with a
// zero byte. Records longer than len(buf)-1 are truncated. It returns the
// number of record bytes copied, or false when buf is empty, no file is open
// or the records are exhausted.
func (r *LogReader) NextLine(buf []byte) (int, bool) {
	if r.src == nil || len(buf) < 1 {
		return 0, false
	}

	for record := range r.src.All() {
		r.stats.Scanned++
		if r.matcher != nil && !r.matcher.Match(record) {
			continue
		}
		r.stats.Matched++

		n := len(record)
		if n >= len(buf) {
			n = len(buf) - 1
			r.stats.Truncated++
		}
		copy(buf, record[:n])
		buf[n] = 0
		return n, true
	}
	return 0, false
}

// Stats returns the counters of the currently open file
func (r *LogReader) Stats() Stats {
	return r.stats
}

// Copy writes every remaining matching record to w, one per line, each
// truncated to bufferSize-1 bytes. The returned Stats cover this call only.
func (r *LogReader) Copy(w io.Writer, bufferSize int) (Stats, error) {
	if bufferSize < 1 {
		return Stats{}, errors.Newf(errors.ErrInvalidInput, "buffer size must be positive, got %d", bufferSize)
	}
	if r.src == nil {
		return Stats{}, errors.New(errors.ErrNotOpen, "no file is open")
	}

	done := logging.LogOperationStart(r.logger, "copy")
	defer done()

	before := r.stats
	buf := make([]byte, bufferSize)
	out := bufio.NewWriter(w)
	for {
		n, ok := r.NextLine(buf)
		if !ok {
			break
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return r.since(before), errors.Wrap(err, errors.ErrOutputWrite, "failed to write record")
		}
		if err := out.WriteByte('\n'); err != nil {
			return r.since(before), errors.Wrap(err, errors.ErrOutputWrite, "failed to write record")
		}
	}
	if err := out.Flush(); err != nil {
		return r.since(before), errors.Wrap(err, errors.ErrOutputWrite, "failed to flush output")
	}

	stats := r.since(before)
	r.logger.Info().
		Str("path", r.path).
		Int("scanned", stats.Scanned).
		Int("matched", stats.Matched).
		Int("truncated", stats.Truncated).
		Msg("Records copied")
	return stats, r.src.Err()
}

func (r *LogReader) since(before Stats) Stats {
	return Stats{
		Scanned:   r.stats.Scanned - before.Scanned,
		Matched:   r.stats.Matched - before.Matched,
		Truncated: r.stats.Truncated - before.Truncated,
	}
}
