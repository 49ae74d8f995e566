package requests

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const DEFAULT_TIMEOUT = 8 * time.Second

// Creates a client with the given timeout. A timeout of zero falls back to DEFAULT_TIMEOUT
// since a client without one can hang forever on a stalled connection.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}

	return &http.Client{Timeout: timeout}
}

// Reads the response body all at once with [io.ReadAll], but only if the status code is 2xx.
// Anything else is returned as a [TransportError] so that error pages are never handed to a decoder.
func ReadResponseBody(r *http.Response, url string) ([]byte, error) {
	defer r.Body.Close()

	if r.StatusCode < 200 || r.StatusCode > 299 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(r.Body, 4096))
		return nil, &TransportError{
			URL:        url,
			StatusCode: r.StatusCode,
			Status:     r.Status,
			Err:        fmt.Errorf("unexpected status %s", r.Status),
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &TransportError{URL: url, StatusCode: r.StatusCode, Status: r.Status, Err: err}
	}

	return body, nil
}
