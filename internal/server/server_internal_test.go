package server

// Tests in this file poke at the server's internals (the history store)
// to exercise shutdown and storage failure paths.

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DakshC17/reciperecommendation/internal/config"
)

// nullLLM satisfies llm.Client for tests that never reach the model.
type nullLLM struct{}

func (nullLLM) Complete(context.Context, string, string) (string, error) { return "", nil }

func newInternalTestServer(t *testing.T, addr string) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		ServerAddr:     addr,
		DataDir:        dir,
		DatabasePath:   filepath.Join(dir, "test.db"),
		RequestTimeout: time.Minute,
	}
	s, err := NewWithClient(cfg, nullLLM{})
	if err != nil {
		t.Fatalf("NewWithClient: %v", err)
	}
	return s
}

func TestStart_ClosesStoreOnListenError(t *testing.T) {
	s := newInternalTestServer(t, "localhost:notaport")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err == nil {
		t.Fatal("Start: expected listen error for invalid address")
	}
	if _, err := s.store.List(); err == nil {
		t.Fatal("List: expected error after Start closed the store")
	}
}

func TestGetSuggestion_StoreFailureIsServerError(t *testing.T) {
	s := newInternalTestServer(t, ":0")
	if err := s.store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions/abc12345", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "failed to load suggestion") {
		t.Errorf("body = %q, want failure detail", w.Body.String())
	}
}
