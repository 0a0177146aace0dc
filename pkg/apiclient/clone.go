package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// cloneRequest copies r, including its headers. When r has a body, it is
// buffered so both requests can be read independently.
func cloneRequest(r *http.Request) (*http.Request, error) {
	r2 := r.Clone(r.Context())

	if r.Body == nil || r.Body == http.NoBody {
		return r2, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("buffering body of %s %s: %w", r.Method, r.URL.Redacted(), err)
	}

	_ = r.Body.Close()

	r.Body = io.NopCloser(bytes.NewReader(body))
	r2.Body = io.NopCloser(bytes.NewReader(body))

	return r2, nil
}
