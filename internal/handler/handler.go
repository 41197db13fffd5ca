// Package handler adapts the plain-text command protocol to HTTP: the first
// path segment is the command token, query parameters are the request
// parameters, and the response body is the rendered wire string.
package handler

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/eadrium-canteen/internal/dispatch"
)

// Handler serves the command protocol over HTTP GET requests, e.g.
//
//	GET /placeOrder?orderId=o1&itemId=i1&userId=u1&orderType=dine-in
type Handler struct {
	dispatcher *dispatch.Dispatcher
}

// New creates a Handler over the given dispatcher.
func New(d *dispatch.Dispatcher) *Handler {
	return &Handler{dispatcher: d}
}

// ServeHTTP dispatches one command. Every dispatched command answers 200 with
// a text body; legacy clients distinguish failures by the "Error:" prefix,
// not the status code.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cmd := strings.Trim(r.URL.Path, "/")

	// Raw-request logging is a transport concern; the core never sees framing.
	zctx.From(ctx).Info("Request",
		zap.String("command", cmd),
		zap.String("query", r.URL.RawQuery),
	)

	resp := h.dispatcher.Dispatch(ctx, queryRequest{command: cmd, query: r.URL.Query()})

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, resp.Render())
}

// queryRequest exposes URL query parameters as a dispatch.Request.
type queryRequest struct {
	command string
	query   url.Values
}

func (r queryRequest) Command() string {
	return r.command
}

func (r queryRequest) Param(name string) (string, bool) {
	if !r.query.Has(name) {
		return "", false
	}
	return r.query.Get(name), true
}
