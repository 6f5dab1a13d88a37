package mask

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// token is one element of a mask as read by referenceMatch.
type token struct {
	wildcard byte // 0, '?' or '*'
	literal  byte
}

func tokenize(mask string) []token {
	var tokens []token
	for i := 0; i < len(mask); i++ {
		switch mask[i] {
		case '\\':
			if i+1 < len(mask) {
				i++
				tokens = append(tokens, token{literal: mask[i]})
			}
		case '?', '*':
			tokens = append(tokens, token{wildcard: mask[i]})
		default:
			tokens = append(tokens, token{literal: mask[i]})
		}
	}
	return tokens
}

// referenceMatch is a plain dynamic-programming glob matcher with the same
// syntax: `?` is zero or one byte, `*` is any run of bytes.
func referenceMatch(mask string, input []byte) bool {
	tokens := tokenize(mask)
	// reach[j] reports whether tokens[:i] can consume input[:j].
	reach := make([]bool, len(input)+1)
	reach[0] = true
	for _, tok := range tokens {
		next := make([]bool, len(input)+1)
		for j := 0; j <= len(input); j++ {
			if !reach[j] {
				continue
			}
			switch tok.wildcard {
			case '?':
				next[j] = true
				if j < len(input) {
					next[j+1] = true
				}
			case '*':
				for k := j; k <= len(input); k++ {
					next[k] = true
				}
			default:
				if j < len(input) && input[j] == tok.literal {
					next[j+1] = true
				}
			}
		}
		reach = next
	}
	return reach[len(input)]
}

func randomString(r *rand.Rand, alphabet string, maxLen int) string {
	n := r.Intn(maxLen + 1)
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[r.Intn(len(alphabet))])
	}
	return b.String()
}

func TestMatchAgreesWithReference(t *testing.T) {
	r := rand.New(rand.NewSource(20190331))

	for i := 0; i < 3000; i++ {
		mask := randomString(r, `ab?*\`, 8)
		seq, err := Compile(mask)
		require.NoError(t, err)
		scratch := seq.NewScratch()

		for j := 0; j < 20; j++ {
			input := []byte(randomString(r, "ab?*", 12))
			want := referenceMatch(mask, input)
			assert.Equal(t, want, seq.MatchScratch(scratch, input), "mask %q input %q", mask, input)
			assert.Equal(t, want, seq.Match(input), "mask %q input %q (fresh scratch)", mask, input)
		}
	}
}

func TestMatchProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		x := randomString(r, "abc", 4)
		s := []byte(randomString(r, "abc", 10))

		literal, err := Compile(x)
		require.NoError(t, err)
		assert.Equal(t, string(s) == x, literal.Match(s), "literal %q on %q", x, s)

		contains, err := Compile("*" + x + "*")
		require.NoError(t, err)
		assert.Equal(t, bytes.Contains(s, []byte(x)), contains.Match(s), "*%s* on %q", x, s)

		prefix, err := Compile(x + "*")
		require.NoError(t, err)
		assert.Equal(t, bytes.HasPrefix(s, []byte(x)), prefix.Match(s), "%s* on %q", x, s)

		suffix, err := Compile("*" + x)
		require.NoError(t, err)
		assert.Equal(t, bytes.HasSuffix(s, []byte(x)), suffix.Match(s), "*%s on %q", x, s)

		y := randomString(r, "abc", 3)
		optional, err := Compile(x + "?" + y)
		require.NoError(t, err)
		want := len(s) >= len(x)+len(y) && len(s) <= len(x)+len(y)+1 &&
			bytes.HasPrefix(s, []byte(x)) && bytes.HasSuffix(s[len(x):], []byte(y))
		assert.Equal(t, want, optional.Match(s), "%s?%s on %q", x, y, s)
	}
}

func TestEmptyMaskMatchesOnlyEmpty(t *testing.T) {
	seq, err := Compile("")
	require.NoError(t, err)

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		s := []byte(randomString(r, "ab", 5))
		assert.Equal(t, len(s) == 0, seq.Match(s))
	}
}

func TestRuleCheckWildcards(t *testing.T) {
	data := []byte("abcdef")
	var memo scanMemo

	bounded := BoundedWildcard(2)
	res, b, e := bounded.check(data, 1, 1, &memo)
	assert.Equal(t, resultGreedy, res)
	assert.Equal(t, 1, b)
	assert.Equal(t, 3, e)

	res, _, e = bounded.check(data, 5, 5, &memo)
	assert.Equal(t, resultGreedy, res)
	assert.Equal(t, 6, e, "field end is clipped to the data end")

	res, b, _ = bounded.check(data, 6, 6, &memo)
	assert.Equal(t, resultFull, res)
	assert.Equal(t, 6, b)

	res, _, _ = bounded.check(data, 7, 7, &memo)
	assert.Equal(t, resultFailed, res)

	unbounded := UnboundedWildcard()
	res, b, e = unbounded.check(data, 2, 2, &memo)
	assert.Equal(t, resultGreedy, res)
	assert.Equal(t, 2, b)
	assert.Equal(t, 6, e)

	res, b, _ = unbounded.check(data, 6, 6, &memo)
	assert.Equal(t, resultFull, res)
	assert.Equal(t, 6, b)
}

func TestRuleCheckFixedRespectsStrictBegin(t *testing.T) {
	data := []byte("xxabxxab")
	rule := fixed("ab")

	// Anchored: the field must start exactly at begin.
	var memo scanMemo
	res, _, _ := rule.check(data, 0, 0, &memo)
	assert.Equal(t, resultFailed, res)

	memo = scanMemo{}
	res, next, _ := rule.check(data, 2, 2, &memo)
	assert.Equal(t, resultFull, res)
	assert.Equal(t, 4, next)

	// Window up to strictBegin.
	memo = scanMemo{}
	res, _, _ = rule.check(data, 0, 1, &memo)
	assert.Equal(t, resultFailed, res)

	memo = scanMemo{}
	res, next, _ = rule.check(data, 0, 2, &memo)
	assert.Equal(t, resultFull, res)
	assert.Equal(t, 4, next)

	memo = scanMemo{}
	res, next, _ = rule.check(data, 3, 8, &memo)
	assert.Equal(t, resultFull, res)
	assert.Equal(t, 8, next)

	memo = scanMemo{}
	res, _, _ = rule.check(data, 7, 8, &memo)
	assert.Equal(t, resultFailed, res, "literal does not fit before the end")
}

func TestScanMemoResumes(t *testing.T) {
	data := []byte("aaaaaaaaab")
	pattern := []byte("ab")
	var memo scanMemo

	assert.Equal(t, -1, memo.find(data, pattern, 0, 4))
	assert.Equal(t, 4, memo.scanned)
	assert.Equal(t, 0, memo.from)

	// Resumes after the scanned window.
	assert.Equal(t, 8, memo.find(data, pattern, 2, 8))
	assert.Equal(t, 8, memo.next)
	assert.Equal(t, 0, memo.from)

	// Cached occurrence is reused for any begin up to it.
	assert.Equal(t, 8, memo.find(data, pattern, 5, 8))
	assert.Equal(t, -1, memo.find(data, pattern, 5, 7), "occurrence beyond the window")
}

func TestScanMemoFreshScanBeforeCachedWindow(t *testing.T) {
	data := []byte("abxxxxab")
	pattern := []byte("ab")
	var memo scanMemo

	assert.Equal(t, 6, memo.find(data, pattern, 3, 6))
	// An earlier begin is not covered by the memo.
	assert.Equal(t, 0, memo.find(data, pattern, 0, 6))
	assert.Equal(t, 0, memo.from)

	// Begin past the cached occurrence forces a fresh scan too.
	assert.Equal(t, 6, memo.find(data, pattern, 1, 6))
	assert.Equal(t, 1, memo.from)
}

func TestScratchReuseAcrossSequences(t *testing.T) {
	short, err := Compile("a*b")
	require.NoError(t, err)
	long, err := Compile("a*b*c*d")
	require.NoError(t, err)

	scratch := short.NewScratch()
	assert.True(t, long.MatchScratch(scratch, []byte("aXbXcXd")))
	assert.True(t, short.MatchScratch(scratch, []byte("aXXb")))
	assert.False(t, long.MatchScratch(scratch, []byte("aXbXcX")))
}

func TestManyStarsExpandEachStateOnce(t *testing.T) {
	tests := []struct {
		name  string
		mask  string
		input []byte
		want  bool
	}{
		{"repeated literal miss", strings.Repeat("*a", 6) + "*b", bytes.Repeat([]byte("a"), 400), false},
		{"repeated literal hit", strings.Repeat("*a", 6) + "*b", append(bytes.Repeat([]byte("a"), 400), 'b'), true},
		{"separated fields miss", "* * * * * * *ERROR", []byte(strings.Repeat("10.0.0.1 - - GET /index.html 200 ", 10)), false},
		{"bounded runs miss", strings.Repeat("*a??", 5) + "b", bytes.Repeat([]byte("a"), 300), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Compile(tt.mask)
			require.NoError(t, err)

			e := seq.newEngine(seq.NewScratch(), tt.input)
			assert.Equal(t, tt.want, e.run(0, 0, 0))
			assert.Equal(t, referenceMatch(tt.mask, tt.input), tt.want)
			assert.LessOrEqual(t, e.expanded, seq.Len()*(len(tt.input)+1))
		})
	}
}

func TestScratchFailuresDoNotLeakAcrossMatches(t *testing.T) {
	seq, err := Compile("*a*a*b")
	require.NoError(t, err)
	scratch := seq.NewScratch()

	assert.False(t, seq.MatchScratch(scratch, bytes.Repeat([]byte("a"), 64)))
	assert.True(t, seq.MatchScratch(scratch, []byte("aab")))
	assert.False(t, seq.MatchScratch(scratch, []byte("aaaaaaaaaaaa")))
	assert.True(t, seq.MatchScratch(scratch, append(bytes.Repeat([]byte("a"), 200), 'b')))
}
