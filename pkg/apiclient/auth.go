package apiclient

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Identity describes this client to the server. It is sent with the login
// and recorded against the keys and devices it creates.
type Identity struct {
	Client   string
	Device   string
	DeviceID string
	Version  string
}

// AuthorizationHeader builds the value of the Authorization header. The
// identity part is omitted when id is nil, the token part when token is empty.
func AuthorizationHeader(id *Identity, token string) string {
	parts := []string{}

	if id != nil {
		parts = append(parts,
			fmt.Sprintf("Client=%q", id.Client),
			fmt.Sprintf("Device=%q", id.Device),
			fmt.Sprintf("DeviceId=%q", id.DeviceID),
			fmt.Sprintf("Version=%q", id.Version),
		)
	}

	if token != "" {
		parts = append(parts, fmt.Sprintf("Token=%q", token))
	}

	return "MediaBrowser " + strings.Join(parts, ", ")
}

// TokenTransport adds the MediaBrowser authorization header to every request.
type TokenTransport struct {
	Token    string
	Identity *Identity

	// Transport is the underlying HTTP transport to use when making requests.
	// It will default to http.DefaultTransport if nil.
	Transport http.RoundTripper
}

// RoundTrip implements the RoundTripper interface.
func (t *TokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Token == "" && t.Identity == nil {
		return nil, fmt.Errorf("no credential nor identity to authorize %s %s", req.Method, req.URL.Redacted())
	}

	// a RoundTripper must not modify the caller's request
	req, err := cloneRequest(req)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", AuthorizationHeader(t.Identity, t.Token))

	if log.GetLevel() >= log.TraceLevel {
		dumpRequest(req)
	}

	resp, err := t.transport().RoundTrip(req)

	if log.GetLevel() >= log.TraceLevel && resp != nil {
		dumpResponse(req, resp, err)
	}

	return resp, err
}

func (t *TokenTransport) transport() http.RoundTripper {
	if t.Transport != nil {
		return t.Transport
	}

	return http.DefaultTransport
}

var tokenRe = regexp.MustCompile(`Token="[^"]*"`)

// MaskAuthorization hides the secret part of an Authorization header value.
func MaskAuthorization(value string) string {
	return tokenRe.ReplaceAllString(value, `Token="********"`)
}

func dumpRequest(req *http.Request) {
	masked, err := cloneRequest(req)
	if err != nil {
		log.Tracef("request: %s", err)
		return
	}

	masked.Header.Set("Authorization", MaskAuthorization(req.Header.Get("Authorization")))

	// login bodies carry a password
	dump, _ := httputil.DumpRequestOut(masked, !strings.HasSuffix(req.URL.Path, loginPath))
	log.Tracef("request: %s", string(dump))
}

const (
	loginPath   = "/AuthenticateByName"
	apiKeysPath = "/Auth/Keys"
)

// secretResponse tells if the answer to req carries a session token or API keys.
func secretResponse(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, loginPath) || strings.HasSuffix(req.URL.Path, apiKeysPath)
}

func dumpResponse(req *http.Request, resp *http.Response, err error) {
	dump, _ := httputil.DumpResponse(resp, !secretResponse(req))
	log.Tracef("response: %s (err:%v)", string(dump), err)
}
