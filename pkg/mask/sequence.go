package mask

import "strings"

// Sequence is an immutable ordered list of rules compiled from one mask.
// A nil or empty Sequence matches only empty input.
//
// A Sequence is safe for concurrent use. Per-match state lives in Scratch.
type Sequence struct {
	rules []Rule
}

// Len returns the number of rules.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns a copy of the compiled rules.
func (s *Sequence) Rules() []Rule {
	if s == nil {
		return nil
	}
	out := make([]Rule, len(s.rules))
	for i, r := range s.rules {
		out[i] = r
		if r.Literal != nil {
			out[i].Literal = append([]byte(nil), r.Literal...)
		}
	}
	return out
}

// String renders the canonical mask of the sequence. Compiling it yields an
// equal Sequence.
func (s *Sequence) String() string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range s.rules {
		b.WriteString(r.String())
	}
	return b.String()
}

// Scratch is the per-match state of a Sequence: one scan memo per rule and
// the set of wildcard states known to fail.
// A Scratch must not be used by two goroutines at once.
type Scratch struct {
	memo []scanMemo
	// failed is a bitset indexed by rule*stride + offset.
	failed []uint64
	stride int
	dirty  bool
}

// NewScratch allocates a Scratch sized for s.
func (s *Sequence) NewScratch() *Scratch {
	return &Scratch{memo: make([]scanMemo, s.Len())}
}

func (sc *Scratch) reset(n, dataLen int) {
	if cap(sc.memo) < n {
		sc.memo = make([]scanMemo, n)
	} else {
		sc.memo = sc.memo[:n]
		for i := range sc.memo {
			sc.memo[i].valid = false
		}
	}

	sc.stride = dataLen + 1
	if sc.dirty {
		clear(sc.failed[:cap(sc.failed)])
		sc.dirty = false
	}
}

func (sc *Scratch) failedAt(rule, offset int) bool {
	if !sc.dirty {
		return false
	}
	bit := rule*sc.stride + offset
	return sc.failed[bit>>6]&(1<<(bit&63)) != 0
}

// markFailed records that rule cannot be resolved from offset. The bitset is
// only grown once a match records its first failure.
func (sc *Scratch) markFailed(rule, offset int) {
	if words := (len(sc.memo)*sc.stride + 63) >> 6; len(sc.failed) < words {
		if cap(sc.failed) >= words {
			sc.failed = sc.failed[:words]
		} else {
			sc.failed = make([]uint64, words)
		}
	}
	bit := rule*sc.stride + offset
	sc.failed[bit>>6] |= 1 << (bit & 63)
	sc.dirty = true
}

// Match reports whether data matches the whole mask.
func (s *Sequence) Match(data []byte) bool {
	if s.Len() == 0 {
		return len(data) == 0
	}
	return s.MatchScratch(s.NewScratch(), data)
}

// MatchScratch is Match reusing sc for the per-match state.
func (s *Sequence) MatchScratch(sc *Scratch, data []byte) bool {
	if s.Len() == 0 {
		return len(data) == 0
	}
	e := s.newEngine(sc, data)
	return e.run(0, 0, 0)
}

func (s *Sequence) newEngine(sc *Scratch, data []byte) *engine {
	sc.reset(len(s.rules), len(data))
	return &engine{rules: s.rules, sc: sc, data: data}
}
