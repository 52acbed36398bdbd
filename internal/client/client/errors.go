package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport failure")
	ErrDecoding  = errors.New("failed to decode server response")
)

// TransportError wraps a failure that happened before any HTTP response
// was received.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StatusError is returned when the backend responds with a status the call
// does not accept.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d.", e.Status)
}

func decodingError(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrDecoding, what, err)
}

// extractErrorMessage looks for "error", "message" or "detail" in a JSON
// object body, in that order.
func extractErrorMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"error", "message", "detail"} {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// HumanMessage renders err as a message suitable for showing to the user.
func HumanMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if errors.Is(err, ErrDecoding) {
		return "Failed to decode server response."
	}
	var te *TransportError
	if errors.As(err, &te) {
		return fmt.Sprintf("Could not reach the server: %v", te.Err)
	}
	return err.Error()
}
