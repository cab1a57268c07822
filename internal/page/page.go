// Package page renders the HTML pages the server generates itself: error
// pages and directory listings.
//
// Pages are built as golang.org/x/net/html node trees, so request paths and
// file names are always escaped.
package page

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Error renders the page shown for a failed request.
func Error(path, msg string) []byte {
	return render(
		element(atom.H1, text("Error accessing "+path)),
		text("\n"),
		element(atom.P, text(msg)),
	)
}

// Listing renders names as a bulleted list, one item per name, in the given
// order.
func Listing(names []string) []byte {
	ul := element(atom.Ul, text("\n"))
	for _, name := range names {
		ul.AppendChild(element(atom.Li, text(name)))
		ul.AppendChild(text("\n"))
	}
	return render(ul)
}

// render wraps content in <html><body> and serializes it.
func render(content ...*html.Node) []byte {
	body := element(atom.Body, text("\n"))
	for _, n := range content {
		body.AppendChild(n)
	}
	body.AppendChild(text("\n"))

	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(element(atom.Html, text("\n"), body, text("\n")))

	var buf bytes.Buffer
	// Writes to a bytes.Buffer cannot fail and the tree only holds known nodes.
	_ = html.Render(&buf, doc)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func element(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
