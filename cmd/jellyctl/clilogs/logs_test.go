package clilogs

import (
	"bytes"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	corerequire "github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

const serverURL = "http://jellyfin.test"

func newTestCLI(t *testing.T, format string) *cliLogs {
	t.Helper()

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := csconfig.NewDefaultConfig(filepath.Join(t.TempDir(), "jellyctl.yaml"))
	cfg.Status = csconfig.StatusConfigured
	cfg.ServerURL = serverURL
	cfg.APIKey = "K1"
	cfg.TokenKind = csconfig.TokenKindAPIKey
	cfg.Output = format
	cfg.Color = "no"

	cli := New(func() *csconfig.Config { return cfg })

	client, err := corerequire.Client(cfg)
	require.NoError(t, err)

	cli.client = client

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/System/Logs",
		httpmock.NewStringResponder(http.StatusOK, `[
			{"Name": "log_20250101.log", "Size": 1536, "DateCreated": "2025-01-01T00:00:00Z", "DateModified": "2025-01-01T23:59:00Z"},
			{"Name": "log_20250102.log", "Size": 2048, "DateCreated": "2025-01-02T00:00:00Z", "DateModified": "2025-01-02T12:00:00Z"}
		]`))

	return cli
}

func TestAgo(t *testing.T) {
	assert.Equal(t, "garbage", ago("garbage"))
	assert.Contains(t, ago("2001-01-01T00:00:00Z"), "years ago")
}

func TestListCSV(t *testing.T) {
	cli := newTestCLI(t, "csv")

	buf := &bytes.Buffer{}
	require.NoError(t, cli.list(t.Context(), buf))
	assert.Equal(t, "date_created,date_modified,size,name\n"+
		"2025-01-02T00:00:00Z,2025-01-02T12:00:00Z,2048,log_20250102.log\n"+
		"2025-01-01T00:00:00Z,2025-01-01T23:59:00Z,1536,log_20250101.log\n", buf.String())
}

func TestListTable(t *testing.T) {
	cli := newTestCLI(t, "")

	buf := &bytes.Buffer{}
	require.NoError(t, cli.list(t.Context(), buf))
	assert.Contains(t, buf.String(), "1.5 KiB")
	assert.Contains(t, buf.String(), "2.0 KiB")
}

func TestShow(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponderWithQuery(http.MethodGet, serverURL+"/System/Logs/Log", "name=log_20250101.log",
		httpmock.NewStringResponder(http.StatusOK, "[INF] Startup complete"))
	httpmock.RegisterResponderWithQuery(http.MethodGet, serverURL+"/System/Logs/Log", "name=missing.log",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	buf := &bytes.Buffer{}
	require.NoError(t, cli.show(t.Context(), buf, "log_20250101.log"))
	assert.Equal(t, "[INF] Startup complete\n", buf.String())

	cstest.RequireErrorContains(t, cli.show(t.Context(), buf, "missing.log"), "unable to read log file missing.log")
}
