package cliauth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/credentials"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/models"
)

func TestPrepareServerURL(t *testing.T) {
	tests := []struct {
		input       string
		expected    string
		expectedErr string
	}{
		{input: "localhost:8096", expected: "http://localhost:8096"},
		{input: "http://localhost:8096/", expected: "http://localhost:8096"},
		{input: "https://media.example.com/jellyfin/", expected: "https://media.example.com/jellyfin"},
		{input: " ", expectedErr: "no server URL provided"},
		{input: "http://", expectedErr: "has no host"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := prepareServerURL(tc.input)
			cstest.RequireErrorContains(t, err, tc.expectedErr)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func newJellyfin(t *testing.T) *httptest.Server {
	t.Helper()

	var keys []models.AuthenticationInfo

	mux := http.NewServeMux()
	mux.HandleFunc("/Users/AuthenticateByName", func(w http.ResponseWriter, r *http.Request) {
		var login models.AuthenticateUserByName
		if err := json.NewDecoder(r.Body).Decode(&login); err != nil || login.Pw != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = w.Write([]byte(`{"AccessToken": "T1"}`))
	})
	mux.HandleFunc("/Auth/Keys", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			keys = append(keys, models.AuthenticationInfo{AppName: r.URL.Query().Get("app"), AccessToken: "K1"})
			w.WriteHeader(http.StatusNoContent)

			return
		}

		_ = json.NewEncoder(w).Encode(models.AuthenticationInfoQueryResult{Items: keys})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func newTestCLI(t *testing.T, stdin string) (*cliAuth, *csconfig.Config, func() *csconfig.Config) {
	t.Helper()

	cfg := csconfig.NewDefaultConfig(filepath.Join(t.TempDir(), "jellyctl.yaml"))
	current := cfg

	cli := New(func() *csconfig.Config { return current }, func(c *csconfig.Config) { current = c }, credentials.NewManager(credentials.FileStore{}))
	cli.stdin = strings.NewReader(stdin)
	cli.interactive = func() bool { return false }

	return cli, cfg, func() *csconfig.Config { return current }
}

func TestInitializeFromStdin(t *testing.T) {
	server := newJellyfin(t)
	cli, cfg, current := newTestCLI(t, "secret\n")

	cmd := cli.newInitializeCmd()
	cmd.SetArgs([]string{"--url", server.URL, "--username", "admin", "--stdin"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.Equal(t, "K1", current().APIKey)

	loaded, err := csconfig.LoadConfig(cfg.FilePath)
	require.NoError(t, err)
	assert.Equal(t, csconfig.StatusConfigured, loaded.Status)
	assert.Equal(t, csconfig.TokenKindAPIKey, loaded.TokenKind)
	assert.Equal(t, server.URL, loaded.ServerURL)
}

func TestInitializeBadPasswordLeavesFileAlone(t *testing.T) {
	server := newJellyfin(t)
	cli, cfg, current := newTestCLI(t, "")

	cmd := cli.newInitializeCmd()
	cmd.SetArgs([]string{"--url", server.URL, "--username", "admin", "--password", "wrong"})
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(t.Context())

	var authnErr *apiclient.AuthenticationError
	require.ErrorAs(t, err, &authnErr)

	assert.Same(t, cfg, current())
	assert.NoFileExists(t, cfg.FilePath)
}

func TestInitializeNonInteractiveMissingFlags(t *testing.T) {
	cli, _, _ := newTestCLI(t, "")

	err := cli.initialize(t.Context(), credentials.Login{Username: "admin", Password: "x"}, false)
	cstest.RequireErrorContains(t, err, "please provide the server URL with --url")

	err = cli.initialize(t.Context(), credentials.Login{ServerURL: "jellyfin:8096", Password: "x"}, false)
	cstest.RequireErrorContains(t, err, "please provide an administrator username with --username")

	err = cli.initialize(t.Context(), credentials.Login{ServerURL: "jellyfin:8096", Username: "admin"}, false)
	cstest.RequireErrorContains(t, err, "please provide a password with --password or --stdin")
}

func TestFirstRunNonInteractive(t *testing.T) {
	cli, _, _ := newTestCLI(t, "")

	require.ErrorIs(t, cli.FirstRun(t.Context()), credentials.ErrNotConfigured)
}

func TestReconfigureReusesServerURL(t *testing.T) {
	server := newJellyfin(t)
	cli, cfg, current := newTestCLI(t, "")

	cfg.Status = csconfig.StatusConfigured
	cfg.ServerURL = server.URL
	cfg.APIKey = "old"
	cfg.TokenKind = csconfig.TokenKindAPIKey

	require.NoError(t, cli.reconfigure(t.Context(), credentials.Login{Username: "admin", Password: "secret"}, false))
	assert.Equal(t, "K1", current().APIKey)
	assert.Equal(t, server.URL, current().ServerURL)
}

func TestLogout(t *testing.T) {
	cli, cfg, current := newTestCLI(t, "")
	cfg.Status = csconfig.StatusConfigured
	cfg.APIKey = "K1"

	cmd := cli.newLogoutCmd()
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	assert.False(t, current().IsConfigured())
	assert.FileExists(t, cfg.FilePath)
}

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ServerName": "living-room", "Version": "10.10.7"}`))
	}))
	defer server.Close()

	cli, cfg, _ := newTestCLI(t, "")
	cfg.Status = csconfig.StatusConfigured
	cfg.ServerURL = server.URL
	cfg.APIKey = "K1"
	cfg.TokenKind = csconfig.TokenKindAPIKey
	cfg.Output = "json"

	buf := &bytes.Buffer{}
	require.NoError(t, cli.status(t.Context(), buf, true))

	var got []statusInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "configured", got[0].State)
	assert.Equal(t, "living-room", got[0].ServerName)
	require.NotNil(t, got[0].Reachable)
	assert.True(t, *got[0].Reachable)
}
