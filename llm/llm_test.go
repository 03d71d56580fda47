package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DakshC17/reciperecommendation/llm"
)

func TestDoJSONRoundTrip_DecodesResponse(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		gotBody = req["prompt"]
		w.Write([]byte(`{"answer":"tomato soup"}`))
	}))
	defer srv.Close()

	var result struct {
		Answer string `json:"answer"`
	}
	err := llm.DoJSONRoundTrip(context.Background(), srv.Client(), "POST", srv.URL,
		map[string]string{"Authorization": "Bearer test-key"},
		map[string]string{"prompt": "tomatoes"}, &result)
	if err != nil {
		t.Fatalf("DoJSONRoundTrip: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer test-key")
	}
	if gotBody != "tomatoes" {
		t.Errorf("request prompt = %q, want %q", gotBody, "tomatoes")
	}
	if result.Answer != "tomato soup" {
		t.Errorf("answer = %q, want %q", result.Answer, "tomato soup")
	}
}

func TestDoJSONRoundTrip_Non200ReturnsBodyInError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	var result map[string]any
	err := llm.DoJSONRoundTrip(context.Background(), srv.Client(), "POST", srv.URL,
		nil, map[string]string{}, &result)
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("error = %q, want status code and body", err)
	}
}

func TestDoJSONRoundTrip_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	var result map[string]any
	err := llm.DoJSONRoundTrip(context.Background(), srv.Client(), "POST", srv.URL,
		nil, map[string]string{}, &result)
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	if !strings.Contains(err.Error(), "parsing response") {
		t.Errorf("error = %q, want parsing error", err)
	}
}
