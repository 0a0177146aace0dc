package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

type OutcomeKind int

const (
	Success OutcomeKind = iota
	Unauthorized
	Other
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "success"
	case Unauthorized:
		return "unauthorized"
	default:
		return "other"
	}
}

// Outcome is the classified result of one HTTP exchange.
type Outcome struct {
	Kind       OutcomeKind
	StatusCode int
	Body       []byte

	method string
	url    string
}

// Classify is the single mapping from a response status to an outcome.
func Classify(resp *http.Response, body []byte) *Outcome {
	o := &Outcome{
		StatusCode: resp.StatusCode,
		Body:       body,
	}

	if resp.Request != nil {
		o.method = resp.Request.Method
		o.url = resp.Request.URL.Redacted()
	}

	switch c := resp.StatusCode; {
	case 200 <= c && c <= 299:
		o.Kind = Success
	case c == http.StatusUnauthorized:
		o.Kind = Unauthorized
	default:
		o.Kind = Other
	}

	return o
}

func (o *Outcome) IsSuccess() bool {
	return o.Kind == Success
}

// Err converts a non-success outcome into its typed error, nil otherwise.
func (o *Outcome) Err() error {
	switch o.Kind {
	case Success:
		return nil
	case Unauthorized:
		return &AuthorizationError{Method: o.method, URL: o.url}
	default:
		return &ProtocolError{
			Method:     o.method,
			URL:        o.url,
			StatusCode: o.StatusCode,
			Body:       o.Body,
		}
	}
}

// Decode unmarshals a success body into v. An empty body leaves v untouched.
func (o *Outcome) Decode(v any) error {
	if err := o.Err(); err != nil {
		return err
	}

	if len(bytes.TrimSpace(o.Body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(o.Body, v); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", o.method, o.url, err)
	}

	return nil
}

// Text returns a success body as is.
func (o *Outcome) Text() (string, error) {
	if err := o.Err(); err != nil {
		return "", err
	}

	return string(o.Body), nil
}
