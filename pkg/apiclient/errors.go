package apiclient

import (
	"fmt"
	"net/url"
	"strings"
)

const maxBodyInError = 512

func truncateBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyInError {
		return s[:maxBodyInError] + "..."
	}

	return s
}

// AuthenticationError is returned when the server rejects a password login.
type AuthenticationError struct {
	StatusCode int
	Body       []byte
}

func (e *AuthenticationError) Error() string {
	msg := fmt.Sprintf("authentication failed: http code %d", e.StatusCode)
	if b := truncateBody(e.Body); b != "" {
		msg += ": " + b
	}

	return msg
}

// AuthorizationError is returned when a call made with a stored credential
// receives a 401.
type AuthorizationError struct {
	Method string
	URL    string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("unauthorized %s %s: the stored API key was rejected, run 'jellyctl reconfigure'", e.Method, e.URL)
}

// TransportError wraps a failure to reach the server at all.
type TransportError struct {
	Err *url.Error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach server: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is any non-2xx, non-401 answer.
type ProtocolError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("%s %s: http code %d", e.Method, e.URL, e.StatusCode)
	if b := truncateBody(e.Body); b != "" {
		msg += ", response: " + b
	}

	return msg
}

// ContractViolation means the server acknowledged the creation of an entity
// that a subsequent lookup cannot find.
type ContractViolation struct {
	What string
}

func (e *ContractViolation) Error() string {
	return "server contract violation: " + e.What
}
