package requests

import (
	"context"
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Sends a single GET request to url and returns the body of a 2xx response.
// Every failure is a [*TransportError].
func Get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	log.WithField("url", url).Debug("sending GET request")

	res, err := client.Do(req)
	if err != nil {
		log.WithField("url", url).Warnf("GET request failed: %v", err)
		return nil, &TransportError{URL: url, Err: err}
	}

	body, err := ReadResponseBody(res, url)
	if err != nil {
		log.WithFields(log.Fields{"url": url, "status": res.StatusCode}).Warn("GET request returned an error status")
		return nil, err
	}

	return body, nil
}

// Sends a GET request and unmarshals the response body into T.
// On any failure the zero value of T is returned, never a partially decoded one.
func JsonGet[T any](ctx context.Context, client *http.Client, url string) (T, error) {
	var data T

	res, err := Get(ctx, client, url)
	if err != nil {
		return data, err
	}

	if err := json.Unmarshal(res, &data); err != nil {
		log.WithField("url", url).Errorf("failed to unmarshal response body: %v", err)

		var zero T
		return zero, &DecodeError{URL: url, Err: err}
	}

	return data, nil
}
