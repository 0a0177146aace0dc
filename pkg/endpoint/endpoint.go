package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrMissingParam = errors.New("missing endpoint parameter")

// Endpoint is a path template with its named parameters. It is built per
// call and never stored.
type Endpoint struct {
	template string
	params   map[string]string
}

func New(template string) Endpoint {
	return Endpoint{template: template}
}

// With returns a copy of the endpoint with one more parameter. The value is
// path-escaped.
func (e Endpoint) With(name string, value string) Endpoint {
	params := make(map[string]string, len(e.params)+1)
	for k, v := range e.params {
		params[k] = v
	}

	params[name] = url.PathEscape(value)

	return Endpoint{template: e.template, params: params}
}

func (e Endpoint) Template() string {
	return e.template
}

// Missing lists the placeholders that have no parameter or an empty one.
func (e Endpoint) Missing() []string {
	var missing []string

	for _, name := range Placeholders(e.template) {
		if e.params[name] == "" {
			missing = append(missing, name)
		}
	}

	return missing
}

// URL resolves the endpoint against baseURL, leaving unknown placeholders
// in place.
func (e Endpoint) URL(baseURL string) string {
	return Resolve(baseURL, e.template, e.params)
}

// Build is the strict form of URL: it fails if any placeholder is left.
func (e Endpoint) Build(baseURL string) (string, error) {
	if missing := e.Missing(); len(missing) > 0 {
		return "", fmt.Errorf("%w for %q: %s", ErrMissingParam, e.template, strings.Join(missing, ", "))
	}

	return e.URL(baseURL), nil
}

func (e Endpoint) String() string {
	return e.template
}
