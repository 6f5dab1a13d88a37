package mask

import (
	"github.com/palchukovsky/logreader/pkg/errors"
)

// Option configures Compile.
type Option func(*compileOptions)

type compileOptions struct {
	maxRules int
}

// WithMaxRules limits the number of rules a compiled mask may hold.
// Zero or a negative value means no limit.
func WithMaxRules(n int) Option {
	return func(o *compileOptions) {
		o.maxRules = n
	}
}

// wildcardRun tracks which kind of wildcard run the last mask byte belongs to.
type wildcardRun uint8

const (
	runNone wildcardRun = iota
	runBounded
	runUnbounded
)

// compiler holds the single-pass scanner state.
type compiler struct {
	opts    compileOptions
	rules   []Rule
	literal []byte
	run     wildcardRun
	escaped bool
}

// Compile translates mask into a rule Sequence.
//
// The only failure is exceeding the WithMaxRules limit, reported with code
// errors.ErrOutOfMemory.
func Compile(mask string, opts ...Option) (*Sequence, error) {
	c := compiler{literal: make([]byte, 0, len(mask))}
	for _, opt := range opts {
		opt(&c.opts)
	}

	for i := 0; i < len(mask); i++ {
		ch := mask[i]
		if c.escaped {
			c.escaped = false
			c.appendLiteral(ch)
			continue
		}

		var err error
		switch ch {
		case '\\':
			c.escaped = true
			c.run = runNone
		case '?':
			err = c.question()
		case '*':
			err = c.star()
		default:
			c.appendLiteral(ch)
		}
		if err != nil {
			return nil, err
		}
	}

	// A trailing lone backslash escapes nothing and is dropped.
	if err := c.flush(); err != nil {
		return nil, err
	}

	return &Sequence{rules: c.rules}, nil
}

func (c *compiler) appendLiteral(ch byte) {
	c.literal = append(c.literal, ch)
	c.run = runNone
}

func (c *compiler) question() error {
	switch c.run {
	case runUnbounded:
		// `*?` behaves as `*`.
		return nil
	case runBounded:
		c.rules[len(c.rules)-1].MaxLen++
		return nil
	}

	if err := c.flush(); err != nil {
		return err
	}
	if err := c.add(BoundedWildcard(1)); err != nil {
		return err
	}
	c.run = runBounded
	return nil
}

func (c *compiler) star() error {
	switch c.run {
	case runBounded:
		// `*` absorbs the preceding `?` run.
		c.rules[len(c.rules)-1] = UnboundedWildcard()
		c.run = runUnbounded
		return nil
	case runUnbounded:
		return nil
	}

	if err := c.flush(); err != nil {
		return err
	}
	if err := c.add(UnboundedWildcard()); err != nil {
		return err
	}
	c.run = runUnbounded
	return nil
}

// flush turns the literal accumulator into a fixed rule.
func (c *compiler) flush() error {
	if len(c.literal) == 0 {
		return nil
	}
	if err := c.add(FixedString(c.literal)); err != nil {
		return err
	}
	c.literal = c.literal[:0]
	return nil
}

func (c *compiler) add(rule Rule) error {
	if c.opts.maxRules > 0 && len(c.rules) >= c.opts.maxRules {
		return errors.Newf(errors.ErrOutOfMemory, "mask needs more than %d rules", c.opts.maxRules).
			WithDetail("maxRules", c.opts.maxRules)
	}
	c.rules = append(c.rules, rule)
	return nil
}
