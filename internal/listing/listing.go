// Package listing enumerates directories for generated index pages.
package listing

import (
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultHiddenPrefix hides dot files.
const DefaultHiddenPrefix = "."

// Lister lists the direct children of a directory.
//
// Names starting with HiddenPrefix are left out; an empty HiddenPrefix shows
// everything. Names are returned exactly as stored. They are ordered by
// their NFC form so that composed and decomposed spellings of a name sort
// together, with ties broken by the raw bytes.
type Lister struct {
	HiddenPrefix string
}

// New returns a Lister hiding names that start with hiddenPrefix.
func New(hiddenPrefix string) *Lister {
	return &Lister{HiddenPrefix: hiddenPrefix}
}

// List returns the visible entry names of dir. It does not recurse.
func (l *Lister) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if l.hidden(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return less(names[i], names[j])
	})
	return names, nil
}

func (l *Lister) hidden(name string) bool {
	return l.HiddenPrefix != "" && strings.HasPrefix(name, l.HiddenPrefix)
}

func less(a, b string) bool {
	na, nb := norm.NFC.String(a), norm.NFC.String(b)
	if na != nb {
		return na < nb
	}
	return a < b
}
