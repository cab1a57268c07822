package cases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCase is a case with a fixed test result that records how often it acts.
type stubCase struct {
	name    string
	matches bool
	total   bool
	content *Content
	err     error
	acted   int
}

func (s *stubCase) Name() string       { return s.name }
func (s *stubCase) Test(*Request) bool { return s.matches }
func (s *stubCase) MatchesAll() bool   { return s.total }

func (s *stubCase) Act(context.Context, *Request) (*Content, error) {
	s.acted++
	return s.content, s.err
}

func TestNewChainValidation(t *testing.T) {
	tests := []struct {
		name    string
		cases   []Case
		wantErr error
	}{
		{
			name:    "Empty",
			cases:   nil,
			wantErr: ErrEmptyChain,
		},
		{
			name:    "Last case not total",
			cases:   []Case{NoFile{}, ExistingFile{}},
			wantErr: ErrNotTotal,
		},
		{
			name:    "Last case claims totality falsely",
			cases:   []Case{&stubCase{name: "liar", matches: true, total: false}},
			wantErr: ErrNotTotal,
		},
		{
			name:  "Fallback last",
			cases: []Case{NoFile{}, Fallback{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain, err := NewChain(tt.cases...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, chain)
				return
			}
			require.NoError(t, err)
			assert.Len(t, chain.Cases(), len(tt.cases))
		})
	}
}

func TestNewChainRejectsNilCase(t *testing.T) {
	_, err := NewChain(NoFile{}, nil, Fallback{})
	assert.Error(t, err)
}

func TestNewChainCopiesCases(t *testing.T) {
	cs := []Case{NoFile{}, Fallback{}}
	chain, err := NewChain(cs...)
	require.NoError(t, err)

	cs[0] = ExistingFile{}
	assert.Equal(t, "NoFile", chain.Cases()[0].Name())
}

func TestFirstMatchWins(t *testing.T) {
	first := &stubCase{name: "first", matches: true, content: HTML([]byte("first"))}
	second := &stubCase{name: "second", matches: true, content: HTML([]byte("second"))}
	last := &stubCase{name: "last", matches: true, total: true, content: HTML([]byte("last"))}

	chain, err := NewChain(first, second, last)
	require.NoError(t, err)

	matched, content, err := chain.Resolve(context.Background(), &Request{Path: "/x"})
	require.NoError(t, err)
	assert.Equal(t, "first", matched.Name())
	assert.Equal(t, []byte("first"), content.Body)
	assert.Equal(t, 1, first.acted)
	assert.Zero(t, second.acted)
	assert.Zero(t, last.acted)
}

func TestResolveFallsThroughToLast(t *testing.T) {
	skipped := &stubCase{name: "skipped"}
	last := &stubCase{name: "last", matches: true, total: true, err: unknownObject("/x")}

	chain, err := NewChain(skipped, last)
	require.NoError(t, err)

	matched, content, err := chain.Resolve(context.Background(), &Request{Path: "/x"})
	assert.Equal(t, "last", matched.Name())
	assert.Nil(t, content)
	assert.Equal(t, UnknownObject, KindOf(err))
	assert.Zero(t, skipped.acted)
}

func TestResolveRejectsEmptyOutcome(t *testing.T) {
	empty := &stubCase{name: "empty", matches: true, total: true}

	chain, err := NewChain(empty)
	require.NoError(t, err)

	_, content, err := chain.Resolve(context.Background(), &Request{Path: "/x"})
	assert.Nil(t, content)
	assert.Error(t, err)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, NotFound, KindOf(notFound("/a")))
	assert.Equal(t, ReadError, KindOf(readError("/a", errors.New("boom"))))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))
	assert.Equal(t, "ListError", ListError.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestFailureUnwrapsCause(t *testing.T) {
	cause := errors.New("permission denied")
	err := readError("/srv/a.txt", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "'/srv/a.txt' cannot be read: permission denied", err.Error())
}
