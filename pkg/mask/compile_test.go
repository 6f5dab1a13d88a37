package mask

import (
	"testing"

	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(s string) Rule { return FixedString([]byte(s)) }

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		mask string
		want []Rule
	}{
		{"empty", "", nil},
		{"literal", "abc", []Rule{fixed("abc")}},
		{"single question", "a?b", []Rule{fixed("a"), BoundedWildcard(1), fixed("b")}},
		{"question run", "test???test", []Rule{fixed("test"), BoundedWildcard(3), fixed("test")}},
		{"star run collapses", "test****test", []Rule{fixed("test"), UnboundedWildcard(), fixed("test")}},
		{"star absorbs preceding questions", "a??*b", []Rule{fixed("a"), UnboundedWildcard(), fixed("b")}},
		{"star absorbs following questions", "a*??b", []Rule{fixed("a"), UnboundedWildcard(), fixed("b")}},
		{"mixed run", "a?*?*?b", []Rule{fixed("a"), UnboundedWildcard(), fixed("b")}},
		{"leading and trailing wildcards", "*abc?", []Rule{UnboundedWildcard(), fixed("abc"), BoundedWildcard(1)}},
		{"only wildcards", "?*", []Rule{UnboundedWildcard()}},
		{"escaped star", `abc?abc\*abs*`, []Rule{fixed("abc"), BoundedWildcard(1), fixed("abc*abs"), UnboundedWildcard()}},
		{"escaped question", `test1\?test2?test3`, []Rule{fixed("test1?test2"), BoundedWildcard(1), fixed("test3")}},
		{"escaped backslash then star", `test1\\\*test2\\*test3`, []Rule{fixed(`test1\*test2\`), UnboundedWildcard(), fixed("test3")}},
		{"escape splits question run", `??\???`, []Rule{BoundedWildcard(2), fixed("?"), BoundedWildcard(2)}},
		{"escaped plain byte", `a\bc`, []Rule{fixed("abc")}},
		{"trailing backslash dropped", `abc\`, []Rule{fixed("abc")}},
		{"lone backslash", `\`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := Compile(tt.mask)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.Rules())
			assert.Equal(t, len(tt.want), seq.Len())
		})
	}
}

func TestCompileNeverEmitsAdjacentWildcards(t *testing.T) {
	masks := []string{"??**??", "*?*?*", "a?*b*?c", `?\*?`, "?a?*?b??", "***"}
	for _, m := range masks {
		seq, err := Compile(m)
		require.NoError(t, err)
		rules := seq.Rules()
		for i := 1; i < len(rules); i++ {
			assert.False(t, rules[i-1].IsWildcard() && rules[i].IsWildcard(),
				"mask %q has adjacent wildcards at %d: %v", m, i, rules)
		}
	}
}

func TestCompileMaxRules(t *testing.T) {
	_, err := Compile("a*b*c", WithMaxRules(4))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrOutOfMemory))

	seq, err := Compile("a*b*c", WithMaxRules(5))
	require.NoError(t, err)
	assert.Equal(t, 5, seq.Len())

	// Merged runs do not count twice.
	seq, err = Compile("a???*b", WithMaxRules(3))
	require.NoError(t, err)
	assert.Equal(t, 3, seq.Len())

	seq, err = Compile("a*b*c", WithMaxRules(0))
	require.NoError(t, err)
	assert.Equal(t, 5, seq.Len())
}

func TestSequenceString(t *testing.T) {
	tests := []struct {
		mask string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{"a?*??b", "a*b"},
		{"a???b", "a???b"},
		{`abc?abc\*abs*`, `abc?abc\*abs*`},
		{`x\\y\?`, `x\\y\?`},
		{`a\bc`, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.mask, func(t *testing.T) {
			seq, err := Compile(tt.mask)
			require.NoError(t, err)
			assert.Equal(t, tt.want, seq.String())

			again, err := Compile(seq.String())
			require.NoError(t, err)
			assert.Equal(t, seq.Rules(), again.Rules())
		})
	}
}

func TestSequenceRulesReturnsCopy(t *testing.T) {
	seq, err := Compile("abc*")
	require.NoError(t, err)

	rules := seq.Rules()
	rules[0].Literal[0] = 'X'

	assert.True(t, seq.Match([]byte("abcdef")))
	assert.Equal(t, "abc*", seq.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fixed", KindFixed.String())
	assert.Equal(t, "bounded", KindBounded.String())
	assert.Equal(t, "unbounded", KindUnbounded.String())
	assert.Equal(t, "kind(7)", Kind(7).String())
}
