package cases

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a Failure.
type Kind int

const (
	// NotFound means no filesystem entry exists for the request.
	NotFound Kind = iota + 1
	// ReadError means the entry exists but could not be read.
	ReadError
	// ListError means the directory exists but could not be enumerated.
	ListError
	// UnknownObject means the entry exists but no rule handles it
	// (sockets, device files, named pipes).
	UnknownObject
	// ScriptError means a script could not be started at all.
	ScriptError
)

var kindNames = map[Kind]string{
	NotFound:      "NotFound",
	ReadError:     "ReadError",
	ListError:     "ListError",
	UnknownObject: "UnknownObject",
	ScriptError:   "ScriptError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Failure is the error outcome of a case. Message is shown to the client
// verbatim (after HTML escaping); Err, when set, is the underlying cause.
type Failure struct {
	Kind    Kind
	Path    string
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// KindOf returns the kind of the first Failure in err's chain, or zero if
// there is none.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return 0
}

func notFound(path string) *Failure {
	return &Failure{
		Kind:    NotFound,
		Path:    path,
		Message: fmt.Sprintf("'%s' not found", path),
	}
}

func unknownObject(path string) *Failure {
	return &Failure{
		Kind:    UnknownObject,
		Path:    path,
		Message: fmt.Sprintf("Unknown object '%s'", path),
	}
}

func readError(path string, cause error) *Failure {
	return &Failure{
		Kind:    ReadError,
		Path:    path,
		Message: fmt.Sprintf("'%s' cannot be read: %v", path, cause),
		Err:     errors.Wrapf(cause, "read %s", path),
	}
}

func listError(path string, cause error) *Failure {
	return &Failure{
		Kind:    ListError,
		Path:    path,
		Message: fmt.Sprintf("'%s' cannot be listed: %v", path, cause),
		Err:     errors.Wrapf(cause, "list %s", path),
	}
}

func scriptError(path string, cause error) *Failure {
	return &Failure{
		Kind:    ScriptError,
		Path:    path,
		Message: fmt.Sprintf("'%s' cannot be run: %v", path, cause),
		Err:     errors.Wrapf(cause, "run %s", path),
	}
}
