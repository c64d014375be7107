package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/dataquery/internal/logger"
	"github.com/csheth/dataquery/internal/metrics"
)

type httpClient struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

type queryRequest struct {
	Prompt string `json:"prompt"`
}

// errorBody is what the backend sends alongside 4xx/5xx statuses.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func (c *httpClient) Endpoint() string {
	return c.endpoint
}

func (c *httpClient) Query(ctx context.Context, prompt string) (Answer, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Answer{}, ErrEmptyPrompt
	}

	requestID := uuid.NewString()
	ctx = logger.WithOperation(logger.WithRequestID(ctx, requestID), "query")
	log := c.log.WithContext(ctx)

	metrics.QueriesInFlight.Inc()
	defer metrics.QueriesInFlight.Dec()

	start := time.Now()
	log.Debug("sending query", "endpoint", c.endpoint, "prompt_chars", len(prompt))
	answer, err := c.post(ctx, requestID, prompt)
	elapsed := time.Since(start)
	kind := Classify(err)
	metrics.ObserveQuery(kind.String(), elapsed)
	if err != nil {
		c.log.LogError(ctx, err, "query failed", "kind", kind.String(), "duration", elapsed)
		return Answer{}, err
	}
	log.Info("query answered",
		"duration", elapsed,
		"best_summary_file", answer.BestSummaryFile,
		"response_chars", len(answer.Response),
	)
	return answer, nil
}

func (c *httpClient) post(ctx context.Context, requestID, prompt string) (Answer, error) {
	buf, err := json.Marshal(queryRequest{Prompt: prompt})
	if err != nil {
		return Answer{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Answer{}, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return Answer{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Answer{}, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Answer{}, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     describeErrorBody(body),
		}
	}

	if err := validateAnswer(body); err != nil {
		return Answer{}, err
	}
	var answer Answer
	if err := json.Unmarshal(body, &answer); err != nil {
		return Answer{}, &ProtocolError{Reason: "decode answer", Err: err}
	}
	return answer, nil
}

func describeErrorBody(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		if parsed.Detail != "" {
			return parsed.Error + ": " + parsed.Detail
		}
		return parsed.Error
	}
	return truncate.String(strings.TrimSpace(string(body)), errorDetailWidth)
}
