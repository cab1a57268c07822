package cases

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Default values for Options.
const (
	DefaultIndexFile    = "index.html"
	DefaultScriptSuffix = ".py"
)

// ScriptRunner executes a script file and returns its standard output.
// A script that runs and exits with a failure status is not an error.
type ScriptRunner interface {
	Run(ctx context.Context, path string) ([]byte, error)
}

// DirectoryLister returns the visible entries of a directory in a stable
// order.
type DirectoryLister interface {
	List(dir string) ([]string, error)
}

// ErrMissingCollaborator is returned by NewDefaultChain when Options lacks a
// script runner, lister or listing renderer.
var ErrMissingCollaborator = errors.New("cases: missing collaborator")

// Options configures the default cases. Scripts, Lister and RenderListing
// are required.
type Options struct {
	// IndexFile is the file served for a directory. Defaults to index.html.
	IndexFile string
	// ScriptSuffix marks regular files that are executed instead of served.
	// Defaults to .py.
	ScriptSuffix string
	// Scripts runs script files.
	Scripts ScriptRunner
	// Lister enumerates directories without an index file.
	Lister DirectoryLister
	// RenderListing turns listed names into a page.
	RenderListing func(names []string) []byte
}

// DefaultCases returns the standard rules in priority order: missing entry,
// script, plain file, directory with index, directory without index and
// finally the catch-all. The script and listing cases panic if the matching
// Options field is nil; NewDefaultChain checks for that.
func DefaultCases(opts Options) []Case {
	if opts.IndexFile == "" {
		opts.IndexFile = DefaultIndexFile
	}
	if opts.ScriptSuffix == "" {
		opts.ScriptSuffix = DefaultScriptSuffix
	}
	return []Case{
		NoFile{},
		ScriptFile{Suffix: opts.ScriptSuffix, Runner: opts.Scripts},
		ExistingFile{},
		DirectoryWithIndex{IndexFile: opts.IndexFile},
		DirectoryNoIndex{IndexFile: opts.IndexFile, Lister: opts.Lister, Render: opts.RenderListing},
		Fallback{},
	}
}

// NewDefaultChain is NewChain(DefaultCases(opts)...). It fails when a
// required collaborator is nil.
func NewDefaultChain(opts Options) (*Chain, error) {
	switch {
	case opts.Scripts == nil:
		return nil, errors.Wrap(ErrMissingCollaborator, "script runner")
	case opts.Lister == nil:
		return nil, errors.Wrap(ErrMissingCollaborator, "directory lister")
	case opts.RenderListing == nil:
		return nil, errors.Wrap(ErrMissingCollaborator, "listing renderer")
	}
	return NewChain(DefaultCases(opts)...)
}

// NoFile handles paths with no filesystem entry.
type NoFile struct{}

func (NoFile) Name() string { return "NoFile" }

func (NoFile) Test(req *Request) bool {
	return !exists(req.ResolvedPath)
}

func (NoFile) Act(_ context.Context, req *Request) (*Content, error) {
	return nil, notFound(req.Path)
}

// ScriptFile runs regular files carrying the script suffix and serves
// their output.
type ScriptFile struct {
	Suffix string
	Runner ScriptRunner
}

func (ScriptFile) Name() string { return "ScriptFile" }

func (c ScriptFile) Test(req *Request) bool {
	return isRegular(req.ResolvedPath) && strings.HasSuffix(filepath.Base(req.ResolvedPath), c.Suffix)
}

func (c ScriptFile) Act(ctx context.Context, req *Request) (*Content, error) {
	out, err := c.Runner.Run(ctx, req.ResolvedPath)
	if err != nil {
		return nil, scriptError(req.Path, err)
	}
	return HTML(out), nil
}

// ExistingFile serves regular files as they are.
type ExistingFile struct{}

func (ExistingFile) Name() string { return "ExistingFile" }

func (ExistingFile) Test(req *Request) bool {
	return isRegular(req.ResolvedPath)
}

func (ExistingFile) Act(_ context.Context, req *Request) (*Content, error) {
	return readFile(req.ResolvedPath)
}

// DirectoryWithIndex serves the index file of a directory.
type DirectoryWithIndex struct {
	IndexFile string
}

func (DirectoryWithIndex) Name() string { return "DirectoryWithIndex" }

func (c DirectoryWithIndex) Test(req *Request) bool {
	return isDir(req.ResolvedPath) && isRegular(filepath.Join(req.ResolvedPath, c.IndexFile))
}

func (c DirectoryWithIndex) Act(_ context.Context, req *Request) (*Content, error) {
	return readFile(filepath.Join(req.ResolvedPath, c.IndexFile))
}

// DirectoryNoIndex lists directories that have no index file.
type DirectoryNoIndex struct {
	IndexFile string
	Lister    DirectoryLister
	Render    func(names []string) []byte
}

func (DirectoryNoIndex) Name() string { return "DirectoryNoIndex" }

func (c DirectoryNoIndex) Test(req *Request) bool {
	return isDir(req.ResolvedPath) && !isRegular(filepath.Join(req.ResolvedPath, c.IndexFile))
}

func (c DirectoryNoIndex) Act(_ context.Context, req *Request) (*Content, error) {
	names, err := c.Lister.List(req.ResolvedPath)
	if err != nil {
		return nil, listError(req.Path, err)
	}
	return HTML(c.Render(names)), nil
}

// Fallback matches everything and fails. It is reached for entries that are
// neither regular files nor directories.
type Fallback struct{}

func (Fallback) Name() string { return "Fallback" }

func (Fallback) Test(*Request) bool { return true }

func (Fallback) MatchesAll() bool { return true }

func (Fallback) Act(_ context.Context, req *Request) (*Content, error) {
	return nil, unknownObject(req.Path)
}

func readFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	return HTML(data), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isRegular(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
