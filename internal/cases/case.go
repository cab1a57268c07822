// Package cases implements request resolution for the file server.
//
// A request is resolved by an ordered chain of rules ("cases"). Each case
// tests whether it applies to the filesystem path a request resolves to and,
// if it does, acts on it to produce the response content. The first case
// whose test succeeds wins; the chain always ends in a case that matches
// everything, so every request produces exactly one outcome.
package cases

import (
	"context"
	"net/http"
)

// ContentTypeHTML is the content type reported for every response, whatever
// the payload actually is.
const ContentTypeHTML = "text/html"

// Request is a single incoming request after path resolution.
type Request struct {
	// Path is the URL path as received, starting with '/'.
	Path string
	// ResolvedPath is the filesystem location Path maps to.
	ResolvedPath string
}

// Content is a successful outcome.
type Content struct {
	// Status is the HTTP status code. Zero means 200.
	Status int
	// ContentType is the value of the Content-type header. Empty means text/html.
	ContentType string
	// Body is the complete, fully buffered response body.
	Body []byte
}

// HTML returns a 200 text/html content carrying body.
func HTML(body []byte) *Content {
	return &Content{Status: http.StatusOK, ContentType: ContentTypeHTML, Body: body}
}

// Case is one resolution rule.
//
// Test must not have side effects beyond querying the filesystem. Act does
// the actual I/O and returns either content or an error, normally a
// *Failure. Cases are shared between all requests and must be safe for
// concurrent use.
type Case interface {
	Name() string
	Test(req *Request) bool
	Act(ctx context.Context, req *Request) (*Content, error)
}

// Total is implemented by cases whose Test returns true for every request.
// A chain must end in one.
type Total interface {
	MatchesAll() bool
}
