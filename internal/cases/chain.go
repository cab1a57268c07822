package cases

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyChain is returned by NewChain when no cases are given.
	ErrEmptyChain = errors.New("cases: chain has no cases")
	// ErrNotTotal is returned by NewChain when the last case does not match
	// every request.
	ErrNotTotal = errors.New("cases: last case does not match every request")
)

// Chain is an ordered, immutable list of cases. The first case whose test
// succeeds handles the request.
type Chain struct {
	cases []Case
}

// NewChain validates and returns a chain of cs in the given order.
// The last case must implement Total and report MatchesAll.
func NewChain(cs ...Case) (*Chain, error) {
	if len(cs) == 0 {
		return nil, ErrEmptyChain
	}
	for i, c := range cs {
		if c == nil {
			return nil, errors.Errorf("cases: case %d is nil", i)
		}
	}
	last := cs[len(cs)-1]
	if t, ok := last.(Total); !ok || !t.MatchesAll() {
		return nil, errors.Wrapf(ErrNotTotal, "last case %q", last.Name())
	}
	return &Chain{cases: append([]Case(nil), cs...)}, nil
}

// Cases returns the cases in evaluation order.
func (c *Chain) Cases() []Case {
	return append([]Case(nil), c.cases...)
}

// Match returns the first case whose test succeeds for req.
func (c *Chain) Match(req *Request) Case {
	for _, cs := range c.cases {
		if cs.Test(req) {
			return cs
		}
	}
	// Unreachable: NewChain guarantees the last case matches.
	return c.cases[len(c.cases)-1]
}

// Resolve runs the matching case for req and returns it together with its
// outcome. Exactly one of the content and the error is non-nil.
func (c *Chain) Resolve(ctx context.Context, req *Request) (Case, *Content, error) {
	cs := c.Match(req)
	content, err := cs.Act(ctx, req)
	if err != nil {
		return cs, nil, err
	}
	if content == nil {
		return cs, nil, errors.Errorf("case %q produced no content for '%s'", cs.Name(), req.Path)
	}
	return cs, content, nil
}
