package mask

import (
	"github.com/palchukovsky/logreader/pkg/errors"
)

// Matcher holds the active Sequence of a filter and a reusable Scratch.
// The zero value holds the empty Sequence. A Matcher is not safe for
// concurrent use; give each goroutine its own or share the Sequence instead.
type Matcher struct {
	seq     *Sequence
	scratch Scratch
}

// NewMatcher returns a Matcher holding the empty Sequence.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Compile compiles mask and installs it as the active Sequence. A nil mask
// fails with errors.ErrNullMask. On any failure the previous Sequence stays
// active.
func (m *Matcher) Compile(mask *string, opts ...Option) error {
	if mask == nil {
		return errors.New(errors.ErrNullMask, "mask is absent")
	}
	seq, err := Compile(*mask, opts...)
	if err != nil {
		return err
	}
	m.seq = seq
	return nil
}

// Sequence returns the active Sequence.
func (m *Matcher) Sequence() *Sequence {
	if m.seq == nil {
		return &Sequence{}
	}
	return m.seq
}

// Match reports whether data matches the active mask.
func (m *Matcher) Match(data []byte) bool {
	return m.seq.MatchScratch(&m.scratch, data)
}

// MatchString is Match for a string.
func (m *Matcher) MatchString(s string) bool {
	return m.Match([]byte(s))
}
