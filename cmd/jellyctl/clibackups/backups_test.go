package clibackups

import (
	"bytes"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	corerequire "github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/models"
)

const serverURL = "http://jellyfin.test"

func newTestCLI(t *testing.T, format string) *cliBackups {
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

	return cli
}

func TestList(t *testing.T) {
	cli := newTestCLI(t, "csv")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Backup",
		httpmock.NewStringResponder(http.StatusOK, `[{
			"ServerVersion": "10.11.0", "BackupEngineVersion": "0.1.0",
			"DateCreated": "2025-01-01T10:00:00Z", "Path": "/backups/b1.zip",
			"Options": {"Metadata": true, "Database": true}
		}]`))

	buf := &bytes.Buffer{}
	require.NoError(t, cli.list(t.Context(), buf))
	assert.Equal(t, "date_created,path,server_version,engine_version,metadata,trickplay,subtitles,database\n"+
		"2025-01-01T10:00:00Z,/backups/b1.zip,10.11.0,0.1.0,true,false,false,true\n", buf.String())
}

func TestCreate(t *testing.T) {
	cli := newTestCLI(t, "")

	var got models.BackupOptions

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Backup/Create",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return nil, err
			}

			return httpmock.NewStringResponse(http.StatusOK, `{"Path": "/backups/b2.zip"}`), nil
		})

	require.NoError(t, cli.create(t.Context(), models.BackupOptions{Subtitles: true}))
	assert.Equal(t, models.BackupOptions{Subtitles: true}, got)
}

func TestRestore(t *testing.T) {
	cli := newTestCLI(t, "")

	var got models.BackupRestoreRequest

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Backup/Restore",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&got); err != nil {
				return nil, err
			}

			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	require.NoError(t, cli.restore(t.Context(), "b1.zip", true))
	assert.Equal(t, "b1.zip", got.ArchiveFileName)
}

func TestVersionGate(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/System/Info",
		httpmock.NewStringResponder(http.StatusOK, `{"Version": "10.10.7"}`))

	cmd := cli.NewCommand()
	cmd.SetArgs([]string{"list"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.ExecuteContext(t.Context())
	cstest.RequireErrorContains(t, err, "backups requires a server version >= 10.11, this one runs 10.10.7")
	assert.Equal(t, 0, httpmock.GetCallCountInfo()["GET "+serverURL+"/Backup"])
}
