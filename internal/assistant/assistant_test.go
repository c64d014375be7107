package assistant

import (
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom, time.Second); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesConfiguredTimeout(t *testing.T) {
	if client := pickHTTPClient(nil, 0); client.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultHTTPTimeout, client.Timeout)
	}
	if client := pickHTTPClient(nil, 5*time.Second); client.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", client.Timeout)
	}
}

func TestNewBuildsQueryEndpoint(t *testing.T) {
	t.Setenv("DATAQUERY_SERVER_BASE_URL", "")
	client, err := New(Config{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := client.Endpoint(); got != "http://localhost:5000/query" {
		t.Fatalf("unexpected endpoint: %s", got)
	}

	client, err = New(Config{BaseURL: "https://bi.example.com/api/"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if got := client.Endpoint(); got != "https://bi.example.com/api/query" {
		t.Fatalf("unexpected endpoint: %s", got)
	}

	if _, err := New(Config{BaseURL: "localhost"}); err == nil {
		t.Fatal("expected error for base url without scheme")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{nil, KindNone},
		{ErrEmptyPrompt, KindValidation},
		{&TransportError{StatusCode: 502, Status: "502 Bad Gateway"}, KindTransport},
		{&ProtocolError{Reason: "missing response"}, KindProtocol},
		{errors.New("job panicked"), KindTransport},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestTransportErrorMessages(t *testing.T) {
	err := &TransportError{StatusCode: 500, Status: "500 Internal Server Error", Detail: "vLLM request failed"}
	if got := err.Error(); got != "query endpoint returned 500 Internal Server Error: vLLM request failed" {
		t.Fatalf("unexpected message: %s", got)
	}
	wrapped := &TransportError{Err: errors.New("dial tcp: refused")}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Fatal("transport error should unwrap")
	}
}
