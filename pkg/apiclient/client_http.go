package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
	ContentTypePNG  = "image/png"
)

func (c *ApiClient) prepareRequest(ctx context.Context, method, rawURL string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}

		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", ContentTypeJSON)

	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	return req, nil
}

// Do sends the request and classifies the answer. The error is non-nil only
// when no answer was received.
func (c *ApiClient) Do(ctx context.Context, req *http.Request) (*Outcome, error) {
	if ctx == nil {
		return nil, errors.New("context must be non-nil")
	}

	req = req.WithContext(ctx)

	log.Debugf("[URL] %s %s", req.Method, req.URL.Redacted())

	resp, err := c.client.Do(req)
	if err != nil {
		// If we got an error, and the context has been canceled,
		// the context's error is probably more useful.
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, &TransportError{Err: urlErr}
		}

		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: &url.Error{Op: req.Method, URL: req.URL.Redacted(), Err: err}}
	}

	return Classify(resp, body), nil
}

func (c *ApiClient) send(ctx context.Context, method, rawURL string, query url.Values, body io.Reader, contentType string) (*Outcome, error) {
	req, err := c.prepareRequest(ctx, method, rawURL, query, body, contentType)
	if err != nil {
		return nil, err
	}

	return c.Do(ctx, req)
}

func (c *ApiClient) Get(ctx context.Context, rawURL string, query url.Values) (*Outcome, error) {
	return c.send(ctx, http.MethodGet, rawURL, query, nil, "")
}

func (c *ApiClient) Post(ctx context.Context, rawURL string, query url.Values, body io.Reader, contentType string) (*Outcome, error) {
	return c.send(ctx, http.MethodPost, rawURL, query, body, contentType)
}

// PostJSON encodes v as the request body. A nil v sends an empty body.
func (c *ApiClient) PostJSON(ctx context.Context, rawURL string, query url.Values, v any) (*Outcome, error) {
	if v == nil {
		return c.Post(ctx, rawURL, query, nil, "")
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return c.Post(ctx, rawURL, query, buf, ContentTypeJSON)
}

func (c *ApiClient) Delete(ctx context.Context, rawURL string, query url.Values) (*Outcome, error) {
	return c.send(ctx, http.MethodDelete, rawURL, query, nil, "")
}
