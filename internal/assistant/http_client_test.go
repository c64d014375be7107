package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func newTestClient(t *testing.T, server *httptest.Server) *httpClient {
	t.Helper()
	c, err := New(Config{BaseURL: server.URL + "/", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c.(*httpClient)
}

func TestQuerySendsTrimmedPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Fatal("expected a request id header")
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if len(payload) != 1 || payload["prompt"] != "What are the top-selling products?" {
			t.Fatalf("unexpected payload: %#v", payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":"Hello **world**","best_summary_file":"a.json","schema_summary":"x"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	answer, err := client.Query(context.Background(), "  What are the top-selling products?\n")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	want := Answer{Response: "Hello **world**", BestSummaryFile: "a.json", SchemaSummary: "x"}
	if answer != want {
		t.Fatalf("unexpected answer: %#v", answer)
	}
}

func TestQueryRejectsEmptyPromptWithoutRequest(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.Query(context.Background(), " \t\n")
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if Classify(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", Classify(err))
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatal("empty prompt must not reach the server")
	}
}

func TestQueryServerErrorIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		// A well-formed answer body must still be rejected.
		w.Write([]byte(`{"response":"ignored","best_summary_file":"a.json","schema_summary":"x","error":"vLLM request failed","detail":"connection refused"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	answer, err := client.Query(context.Background(), "revenue?")
	if err == nil {
		t.Fatal("expected error for status 500")
	}
	if answer != (Answer{}) {
		t.Fatalf("no answer should be returned, got %#v", answer)
	}
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if transportErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", transportErr.StatusCode)
	}
	if transportErr.Detail != "vLLM request failed: connection refused" {
		t.Fatalf("unexpected detail: %q", transportErr.Detail)
	}
}

func TestQueryPlainErrorBodyKeepsWholeRunes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("  " + strings.Repeat("é", 300) + "\n"))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).Query(context.Background(), "revenue?")
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %T", err)
	}
	if !utf8.ValidString(transportErr.Detail) {
		t.Fatalf("detail was cut inside a rune: %q", transportErr.Detail)
	}
	if transportErr.Detail != strings.Repeat("é", 200) {
		t.Fatalf("expected 200 runes of detail, got %d", utf8.RuneCountInString(transportErr.Detail))
	}
}

func TestQueryMalformedPayloadIsProtocol(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing field", `{"response":"hi","best_summary_file":"a.json"}`},
		{"wrong type", `{"response":42,"best_summary_file":"a.json","schema_summary":"x"}`},
		{"not json", `<html>gateway</html>`},
		{"array", `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(t, server)
			_, err := client.Query(context.Background(), "revenue?")
			if Classify(err) != KindProtocol {
				t.Fatalf("expected protocol error, got %v", err)
			}
		})
	}
}

func TestQueryUnreachableIsTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, server)
	server.Close()

	_, err := client.Query(context.Background(), "revenue?")
	if Classify(err) != KindTransport {
		t.Fatalf("expected transport error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unreachable") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestQueryHonorsContextDeadline(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := newTestClient(t, server)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Query(ctx, "slow question")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
