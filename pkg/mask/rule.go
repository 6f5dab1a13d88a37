package mask

import (
	"bytes"
	"strconv"
)

// Kind identifies a rule variant.
type Kind uint8

const (
	// KindFixed matches an exact byte run.
	KindFixed Kind = iota
	// KindBounded matches from zero up to MaxLen arbitrary bytes.
	KindBounded
	// KindUnbounded matches any number of arbitrary bytes.
	KindUnbounded
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindBounded:
		return "bounded"
	case KindUnbounded:
		return "unbounded"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Rule is one compiled unit of a mask.
type Rule struct {
	Kind Kind
	// Literal is the byte run of a KindFixed rule.
	Literal []byte
	// MaxLen is the field limit of a KindBounded rule.
	MaxLen int
}

// FixedString returns a literal rule holding a copy of pattern.
func FixedString(pattern []byte) Rule {
	return Rule{Kind: KindFixed, Literal: bytes.Clone(pattern)}
}

// BoundedWildcard returns a rule matching 0..maxLen arbitrary bytes.
func BoundedWildcard(maxLen int) Rule {
	return Rule{Kind: KindBounded, MaxLen: maxLen}
}

// UnboundedWildcard returns a rule matching any number of arbitrary bytes.
func UnboundedWildcard() Rule {
	return Rule{Kind: KindUnbounded}
}

// IsWildcard reports whether the rule matches a variable-length field.
func (r Rule) IsWildcard() bool {
	return r.Kind == KindBounded || r.Kind == KindUnbounded
}

// String renders the rule in mask syntax.
func (r Rule) String() string {
	switch r.Kind {
	case KindFixed:
		return string(escapeLiteral(nil, r.Literal))
	case KindBounded:
		return string(bytes.Repeat([]byte{'?'}, r.MaxLen))
	case KindUnbounded:
		return "*"
	default:
		return ""
	}
}

// result is the outcome of one rule check.
type result uint8

const (
	resultFailed result = iota
	// resultFull means the field borders are fixed.
	resultFull
	// resultGreedy means the field may end anywhere up to the returned field end.
	resultGreedy
)

// check applies the rule to data[begin:].
//
// strictBegin is the last offset at which the current field may still start.
// On resultFull the second value is where the next field begins; on
// resultGreedy the values are the field begin and the furthest field end.
func (r *Rule) check(data []byte, begin, strictBegin int, memo *scanMemo) (result, int, int) {
	end := len(data)
	if begin > end {
		return resultFailed, 0, 0
	}

	switch r.Kind {
	case KindFixed:
		return r.checkFixed(data, begin, strictBegin, memo)
	case KindBounded:
		if begin == end {
			return resultFull, begin, begin
		}
		fieldEnd := begin + r.MaxLen
		if fieldEnd > end {
			fieldEnd = end
		}
		return resultGreedy, begin, fieldEnd
	case KindUnbounded:
		if begin == end {
			return resultFull, begin, begin
		}
		return resultGreedy, begin, end
	default:
		return resultFailed, 0, 0
	}
}

// checkFixed finds the first occurrence of the literal starting in
// [begin, max(begin, strictBegin)].
func (r *Rule) checkFixed(data []byte, begin, strictBegin int, memo *scanMemo) (result, int, int) {
	n := len(r.Literal)
	limit := begin
	if strictBegin > limit {
		limit = strictBegin
	}
	if last := len(data) - n; last < limit {
		limit = last
	}
	if limit < begin {
		return resultFailed, 0, 0
	}

	pos := memo.find(data, r.Literal, begin, limit)
	if pos < 0 {
		return resultFailed, 0, 0
	}
	return resultFull, pos + n, pos + n
}

// scanMemo caches literal scan progress within one top-level match.
type scanMemo struct {
	valid bool
	// from is where the cached scan started.
	from int
	// next is the first occurrence at or after from, or -1 when there is
	// none in [from, scanned].
	next    int
	scanned int
}

// find returns the first occurrence of pattern starting in [begin, limit],
// or -1. limit must not exceed len(data)-len(pattern).
func (m *scanMemo) find(data, pattern []byte, begin, limit int) int {
	if m.valid && begin >= m.from {
		if m.next >= 0 && begin <= m.next {
			if m.next <= limit {
				return m.next
			}
			return -1
		}

		if m.next < 0 && begin <= m.scanned+1 {
			if limit <= m.scanned {
				return -1
			}
			// Nothing up to scanned, resume right after it.
			pos := indexIn(data, pattern, m.scanned+1, limit)
			if pos >= 0 {
				m.next = pos
			} else {
				m.scanned = limit
			}
			return pos
		}
	}

	pos := indexIn(data, pattern, begin, limit)
	*m = scanMemo{valid: true, from: begin, next: pos, scanned: limit}
	return pos
}

// indexIn returns the first occurrence of pattern starting in [from, limit], or -1.
func indexIn(data, pattern []byte, from, limit int) int {
	i := bytes.Index(data[from:limit+len(pattern)], pattern)
	if i < 0 {
		return -1
	}
	return from + i
}

// escapeLiteral appends literal to dst with mask metacharacters escaped.
func escapeLiteral(dst, literal []byte) []byte {
	for _, c := range literal {
		switch c {
		case '\\', '?', '*':
			dst = append(dst, '\\')
		}
		dst = append(dst, c)
	}
	return dst
}
