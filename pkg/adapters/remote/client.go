package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every fetch made with the default client.
const DefaultTimeout = 10 * time.Second

// MaxBodySize caps the documents read from the network.
const MaxBodySize = 8 << 20

// DefaultClient returns the HTTP client used when none is injected.
func DefaultClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// StatusError reports a non-success HTTP status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// get fetches url and returns the body and its content type.
func get(ctx context.Context, client *http.Client, url string) ([]byte, string, error) {
	if client == nil {
		client = DefaultClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, "", fmt.Errorf("GET %s: reading body: %w", url, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
