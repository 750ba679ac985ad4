// Package davtest runs an in-memory WebDAV server for tests.
package davtest

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"testing"

	"golang.org/x/net/webdav"
)

type Server struct {
	*httptest.Server
	FS webdav.FileSystem
}

// New serves a fresh MemFS. When username is set, requests must carry
// matching basic auth credentials.
func New(t *testing.T, username, password string) *Server {
	t.Helper()
	fs := webdav.NewMemFS()
	h := &webdav.Handler{FileSystem: fs, LockSystem: webdav.NewMemLS()}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if username != "" {
			u, p, ok := r.BasicAuth()
			if !ok || u != username || p != password {
				w.Header().Set("WWW-Authenticate", `Basic realm="dav"`)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
		}
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return &Server{Server: srv, FS: fs}
}

// Files lists the file names directly under dir, sorted.
func (s *Server) Files(t *testing.T, dir string) []string {
	t.Helper()
	f, err := s.FS.OpenFile(context.Background(), dir, os.O_RDONLY, 0)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("open %s: %v", dir, err)
	}
	defer f.Close()
	infos, err := f.Readdir(-1)
	if err != nil {
		t.Fatalf("readdir %s: %v", dir, err)
	}
	var names []string
	for _, fi := range infos {
		if !fi.IsDir() {
			names = append(names, fi.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ReadFile returns the stored content of name.
func (s *Server) ReadFile(t *testing.T, name string) []byte {
	t.Helper()
	f, err := s.FS.OpenFile(context.Background(), name, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("open %s: %v", name, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return b
}
