// Package server exposes the case chain over HTTP.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/f4ah6o/simple-web-server-go/internal/cases"
	"github.com/f4ah6o/simple-web-server-go/internal/page"
)

// Response is a fully buffered reply.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Handler resolves GET requests against a directory with a case chain.
type Handler struct {
	root  string
	chain *cases.Chain
	log   logrus.FieldLogger
}

// NewHandler returns a Handler serving root through chain.
func NewHandler(root string, chain *cases.Chain, log logrus.FieldLogger) *Handler {
	return &Handler{root: root, chain: chain, log: log}
}

// ResolvePath maps a URL path to its location under root. The path is not
// confined to root: "/../x" resolves to x in root's parent.
func ResolvePath(root, urlPath string) string {
	return filepath.Join(root, filepath.FromSlash(urlPath))
}

// HandleGet resolves path and returns the response for it. Failures become
// 404 error pages.
func (h *Handler) HandleGet(ctx context.Context, path string) Response {
	req := &cases.Request{Path: path, ResolvedPath: ResolvePath(h.root, path)}
	log := h.log.WithFields(logrus.Fields{"path": path, "resolved": req.ResolvedPath})

	matched, content, err := h.chain.Resolve(ctx, req)
	log = log.WithField("case", matched.Name())
	if err != nil {
		log.WithError(err).WithField("kind", cases.KindOf(err).String()).Warn("request failed")
		return errorResponse(http.StatusNotFound, path, err.Error())
	}
	log.Debug("request resolved")

	resp := Response{Status: content.Status, ContentType: content.ContentType, Body: content.Body}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	if resp.ContentType == "" {
		resp.ContentType = cases.ContentTypeHTML
	}
	return resp
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var resp Response
	if r.Method == http.MethodGet {
		resp = h.HandleGet(r.Context(), r.URL.Path)
	} else {
		resp = errorResponse(http.StatusNotImplemented, r.URL.Path,
			fmt.Sprintf("Unsupported method ('%s')", r.Method))
	}
	write(w, resp)
}

func errorResponse(status int, path, msg string) Response {
	return Response{
		Status:      status,
		ContentType: cases.ContentTypeHTML,
		Body:        page.Error(path, msg),
	}
}

// write sends headers, then the body, once.
func write(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-type", resp.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
