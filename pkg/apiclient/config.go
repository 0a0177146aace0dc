package apiclient

import (
	"net/http"
)

const AppName = "jellyctl"

type Config struct {
	// URL is the server base URL, including any reverse proxy prefix.
	URL       string
	Token     string
	UserAgent string
	Identity  *Identity
	// HTTPClient is optional, its transport is wrapped to add authorization.
	HTTPClient *http.Client
}
