package listing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
	return dir
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		files  []string
		want   []string
	}{
		{
			name:   "Hidden entries dropped",
			prefix: ".",
			files:  []string{"b.txt", ".hidden", "a.txt"},
			want:   []string{"a.txt", "b.txt"},
		},
		{
			name:   "Empty prefix shows everything",
			prefix: "",
			files:  []string{"b.txt", ".hidden", "a.txt"},
			want:   []string{".hidden", "a.txt", "b.txt"},
		},
		{
			name:   "Custom prefix",
			prefix: "_",
			files:  []string{"_draft.md", "post.md", ".keep"},
			want:   []string{".keep", "post.md"},
		},
		{
			name:   "Byte order",
			prefix: ".",
			files:  []string{"b", "B", "a", "A", "10", "9"},
			want:   []string{"10", "9", "A", "B", "a", "b"},
		},
		{
			name:   "Empty directory",
			prefix: ".",
			files:  nil,
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeDir(t, tt.files...)
			got, err := New(tt.prefix).List(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListSubdirectoriesNotRecursed(t *testing.T) {
	dir := makeDir(t, "top.txt")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "inner.txt"), nil, 0o644))

	got, err := New(DefaultHiddenPrefix).List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sub", "top.txt"}, got)
}

func TestListStable(t *testing.T) {
	dir := makeDir(t, "c", "a", "b", "d")
	l := New(DefaultHiddenPrefix)

	first, err := l.List(dir)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := l.List(dir)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestListKeepsUnicodeSpellings(t *testing.T) {
	composed := "caf\u00e9.txt"
	// "e" followed by a combining acute accent.
	decomposed := "cafe\u0301.txt"

	tests := []struct {
		name  string
		files []string
		want  []string
	}{
		{
			name:  "Decomposed name returned as stored",
			files: []string{decomposed},
			want:  []string{decomposed},
		},
		{
			name:  "Both spellings listed once each",
			files: []string{composed, decomposed, "cafe.txt", "cafz.txt"},
			want:  []string{"cafe.txt", "cafz.txt", decomposed, composed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := makeDir(t, tt.files...)
			got, err := New(DefaultHiddenPrefix).List(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListMissingDirectory(t *testing.T) {
	_, err := New(DefaultHiddenPrefix).List(filepath.Join(t.TempDir(), "gone"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
