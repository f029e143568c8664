// Package server exposes a staged deck over a loopback HTTP endpoint so
// the browser can load slides with correct content types.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/alnah/go-webslider2pdf/internal/slides"
)

const readHeaderTimeout = 10 * time.Second

// Server is a static file server bound to an ephemeral loopback port.
type Server struct {
	url  string
	ln   net.Listener
	http *http.Server
}

// Start serves root on 127.0.0.1 with a kernel-assigned port and begins
// accepting connections in the background.
func Start(root string) (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("binding loopback listener: %w", err)
	}

	srv := &http.Server{
		Handler:           deckHandler{root: root},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s := &Server{
		url:  fmt.Sprintf("http://%s", ln.Addr().String()),
		ln:   ln,
		http: srv,
	}

	// Serve returns http.ErrServerClosed after Shutdown; nothing to report.
	go func() { _ = srv.Serve(ln) }()

	return s, nil
}

// URL returns the server's base URL, e.g. "http://127.0.0.1:43817".
func (s *Server) URL() string {
	return s.url
}

// Shutdown stops the listener, waiting briefly for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// deckHandler serves the staged tree. Unlike http.FileServer it never
// canonicalizes index paths with a redirect and never emits directory
// listings: a request for a directory serves its index.html directly
// and 404s without one. Existence checks against the deck therefore see
// a plain status, and a slide directory missing its index document is
// genuinely absent rather than answered with a listing page.
type deckHandler struct {
	root string
}

func (h deckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	// Clean("/"+p) confines the lookup to the staged root.
	name := filepath.Join(h.root, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	info, err := os.Stat(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		name = filepath.Join(name, slides.IndexFile)
		info, err = os.Stat(name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
	}

	f, err := os.Open(name) // #nosec G304 -- lookup is confined to the staged root
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
