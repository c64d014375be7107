package assistant

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/csheth/dataquery/internal/logger"
)

const (
	defaultBaseURL     = "http://localhost:5000"
	defaultHTTPTimeout = 2 * time.Minute
	queryPath          = "/query"
	// Answers are a few KB of markdown; anything far larger is not an answer.
	maxResponseBytes = 8 << 20
	errorDetailWidth = 200
)

// Config describes how to reach the data assistant backend.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Answer is the backend's reply to one prompt.
type Answer struct {
	Response        string `json:"response"`
	BestSummaryFile string `json:"best_summary_file"`
	SchemaSummary   string `json:"schema_summary"`
}

// Client sends prompts to the backend.
type Client interface {
	Query(ctx context.Context, prompt string) (Answer, error)
	Endpoint() string
}

// New builds an HTTP client for cfg. An empty BaseURL falls back to
// DATAQUERY_SERVER_BASE_URL and then to the local default.
func New(cfg Config) (Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		if env := os.Getenv("DATAQUERY_SERVER_BASE_URL"); env != "" {
			base = env
		} else {
			base = defaultBaseURL
		}
	}
	base = strings.TrimRight(base, "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", base, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host are required", base)
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &httpClient{
		endpoint: base + queryPath,
		client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
		log:      log.WithComponent("assistant"),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	// Schema matching plus LLM generation regularly takes tens of seconds.
	return &http.Client{Timeout: timeout}
}
