package clilibraries

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	corerequire "github.com/jellyctl/jellyctl/cmd/jellyctl/core/require"
	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

const serverURL = "http://jellyfin.test"

func newTestCLI(t *testing.T) *cliLibraries {
	t.Helper()

	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	cfg := csconfig.NewDefaultConfig(filepath.Join(t.TempDir(), "jellyctl.yaml"))
	cfg.Status = csconfig.StatusConfigured
	cfg.ServerURL = serverURL
	cfg.APIKey = "K1"
	cfg.TokenKind = csconfig.TokenKindAPIKey

	cli := New(func() *csconfig.Config { return cfg })

	client, err := corerequire.Client(cfg)
	require.NoError(t, err)

	cli.client = client

	return cli
}

func TestRefreshOpts(t *testing.T) {
	tests := []struct {
		scanType    string
		expected    apiclient.RefreshOpts
		expectedErr string
	}{
		{
			scanType: scanNewUpdated,
			expected: apiclient.RefreshOpts{Recursive: true, MetadataRefreshMode: "Default", ImageRefreshMode: "Default"},
		},
		{
			scanType: scanMissingMetadata,
			expected: apiclient.RefreshOpts{Recursive: true, MetadataRefreshMode: "FullRefresh", ImageRefreshMode: "FullRefresh"},
		},
		{
			scanType: scanReplaceMetadata,
			expected: apiclient.RefreshOpts{Recursive: true, MetadataRefreshMode: "FullRefresh", ImageRefreshMode: "FullRefresh", ReplaceAllMetadata: true},
		},
		{
			scanType:    scanAll,
			expectedErr: `scan type "all" does not apply to a single library`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.scanType, func(t *testing.T) {
			got, err := refreshOpts(tc.scanType)
			cstest.RequireErrorContains(t, err, tc.expectedErr)

			if tc.expectedErr == "" {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestScanAll(t *testing.T) {
	cli := newTestCLI(t)

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Library/Refresh",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	require.NoError(t, cli.scan(t.Context(), "", scanAll))
	require.NoError(t, cli.scan(t.Context(), "all", scanNewUpdated))
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestScanOne(t *testing.T) {
	cli := newTestCLI(t)

	var query map[string][]string

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Items/lib1/Refresh",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	require.NoError(t, cli.scan(t.Context(), "lib1", scanReplaceMetadata))
	assert.Equal(t, []string{"true"}, query["ReplaceAllMetadata"])
	assert.Equal(t, []string{"FullRefresh"}, query["MetadataRefreshMode"])

	err := cli.scan(t.Context(), "lib1", "deep")
	cstest.RequireErrorContains(t, err, `unknown scan type "deep"`)
}

func TestRegister(t *testing.T) {
	cli := newTestCLI(t)

	var (
		query map[string][]string
		body  []byte
	)

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Library/VirtualFolders",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			body, _ = io.ReadAll(req.Body)

			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	file := filepath.Join(t.TempDir(), "movies.json")
	options := `{"LibraryOptions": {"PathInfos": [{"Path": "/media/movies"}]}}`
	require.NoError(t, os.WriteFile(file, []byte(options), 0o600))

	require.NoError(t, cli.register(t.Context(), "Movies", "movies", file))
	assert.Equal(t, []string{"Movies"}, query["name"])
	assert.Equal(t, []string{"movies"}, query["collectionType"])
	assert.Equal(t, []string{"true"}, query["refreshLibrary"])
	assert.JSONEq(t, options, string(body))

	err := cli.register(t.Context(), "Films", "films", file)
	cstest.RequireErrorContains(t, err, `unknown library type "films"`)
}
