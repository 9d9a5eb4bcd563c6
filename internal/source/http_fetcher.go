package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cfudash/fundboard/internal/contract"
	"github.com/cfudash/fundboard/schema"
)

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 512

// HTTPFetcher reads datasets from the JSON API at <base>/api/<name>.
type HTTPFetcher struct {
	baseURL string
	client  *http.Client
}

var _ contract.Fetcher = &HTTPFetcher{} // Compile-time check

// NewHTTPFetcher creates a fetcher for the given API base URL.
func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(timeout),
	}
}

// Fetch issues one GET for the dataset and decodes the JSON array body.
func (f *HTTPFetcher) Fetch(ctx context.Context, name schema.DatasetName) (schema.Dataset, error) {
	if err := contract.ValidateDatasetName(name); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+name.Path(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: build request: %w", name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: unexpected status %s: %s", name, resp.Status, errorMessage(body))
	}

	ds, err := DecodeDataset(body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return ds, nil
}

// DecodeDataset parses a JSON array of objects.
func DecodeDataset(body []byte) (schema.Dataset, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array, got %s", describeBody(trimmed))
	}
	var ds schema.Dataset
	if err := json.Unmarshal(trimmed, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return ds, nil
}

// errorMessage extracts the backend's {"error": "..."} message or quotes the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty body"
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}

func describeBody(body []byte) string {
	switch {
	case len(body) == 0:
		return "an empty body"
	case body[0] == '{':
		if msg := errorMessage(body); msg != string(body) {
			return "an error object: " + msg
		}
		return "an object"
	default:
		return fmt.Sprintf("%q", string(body[:min(len(body), 32)]))
	}
}
