package requests

import "fmt"

// Returned when a request could not complete: connection or DNS failure, timeout,
// cancelled context, an unreadable body, or a non-2xx status.
// StatusCode is zero when no response was received at all.
type TransportError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s failed with status %s: %v", e.URL, e.Status, e.Err)
	}

	return fmt.Sprintf("GET %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Returned when a response body was received but could not be turned into the expected type.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
