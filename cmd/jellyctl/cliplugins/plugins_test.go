package cliplugins

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
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

const packagesJSON = `[
	{"name": "Trakt", "category": "General", "owner": "jellyfin", "guid": "g-trakt",
	 "versions": [
		{"version": "24.0.0.0", "repositoryUrl": "https://repo.test/manifest.json"},
		{"version": "25.0.0.0", "repositoryUrl": "https://repo.test/manifest.json"},
		{"version": "9.0.0.0", "repositoryUrl": "https://repo.test/manifest.json"}
	 ]},
	{"name": "Empty", "guid": "g-empty", "versions": []}
]`

func newTestCLI(t *testing.T, format string) *cliPlugins {
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

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Packages",
		httpmock.NewStringResponder(http.StatusOK, packagesJSON))

	return cli
}

func TestListPlugins(t *testing.T) {
	cli := newTestCLI(t, "csv")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Plugins",
		httpmock.NewStringResponder(http.StatusOK, `[{"Name": "TMDb", "Version": "10.10.0.0", "Id": "p1", "Status": "Active"}]`))

	buf := &bytes.Buffer{}
	require.NoError(t, cli.list(t.Context(), buf))
	assert.Equal(t, "name,version,configuration_file,description,id,can_uninstall,has_image,status\n"+
		"TMDb,10.10.0.0,,,p1,false,false,Active\n", buf.String())
}

func TestListPackages(t *testing.T) {
	cli := newTestCLI(t, "csv")

	buf := &bytes.Buffer{}
	require.NoError(t, cli.listPackages(t.Context(), buf))
	assert.Equal(t, "name,category,owner,latest,versions,guid\n"+
		"Trakt,General,jellyfin,25.0.0.0,3,g-trakt\n"+
		"Empty,,,,0,g-empty\n", buf.String())
}

func TestInstall(t *testing.T) {
	tests := []struct {
		name        string
		pkg         string
		version     string
		repository  string
		expected    url.Values
		expectedErr string
	}{
		{
			name: "latest version",
			pkg:  "trakt",
			expected: url.Values{
				"assemblyGuid":  {"g-trakt"},
				"version":       {"25.0.0.0"},
				"repositoryUrl": {"https://repo.test/manifest.json"},
			},
		},
		{
			name:       "pinned version and repository",
			pkg:        "Trakt",
			version:    "9.0.0.0",
			repository: "https://mirror.test/manifest.json",
			expected: url.Values{
				"assemblyGuid":  {"g-trakt"},
				"version":       {"9.0.0.0"},
				"repositoryUrl": {"https://mirror.test/manifest.json"},
			},
		},
		{
			name:        "unknown version",
			pkg:         "Trakt",
			version:     "1.0",
			expectedErr: "package Trakt has no version 1.0",
		},
		{
			name:        "no versions",
			pkg:         "Empty",
			expectedErr: "package Empty has no installable version",
		},
		{
			name:        "unknown package",
			pkg:         "nope",
			expectedErr: `package "nope" not found in the configured repositories`,
		},
		{
			name:        "typo",
			pkg:         "trakk",
			expectedErr: `package "trakk" not found in the configured repositories, did you mean "Trakt"?`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cli := newTestCLI(t, "")

			var got url.Values

			httpmock.RegisterResponder(http.MethodPost, serverURL+"/Packages/Installed/Trakt",
				func(req *http.Request) (*http.Response, error) {
					got = req.URL.Query()
					return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
				})

			err := cli.install(t.Context(), tc.pkg, tc.version, tc.repository)
			cstest.RequireErrorContains(t, err, tc.expectedErr)

			if tc.expectedErr != "" {
				return
			}

			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestAddRepository(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Repositories",
		httpmock.NewStringResponder(http.StatusOK, `[{"Name": "Jellyfin Stable", "Url": "https://repo.jellyfin.org/manifest.json", "Enabled": true}]`))

	var saved []models.RepositoryInfo

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Repositories",
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&saved); err != nil {
				return nil, err
			}

			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	require.NoError(t, cli.addRepository(t.Context(), "extra", "https://extra.test/manifest.json"))
	require.Len(t, saved, 2)
	assert.Equal(t, models.RepositoryInfo{Name: "extra", URL: "https://extra.test/manifest.json", Enabled: true}, saved[1])

	// already present, nothing is saved
	require.NoError(t, cli.addRepository(t.Context(), "other", "https://repo.jellyfin.org/manifest.json"))
	assert.Equal(t, 1, httpmock.GetCallCountInfo()["POST "+serverURL+"/Repositories"])

	cstest.RequireErrorContains(t, cli.addRepository(t.Context(), "jellyfin stable", "https://new.test/m.json"),
		`a repository named "Jellyfin Stable" already exists`)
	cstest.RequireErrorContains(t, cli.addRepository(t.Context(), "ftp", "ftp://new.test/m.json"),
		"must use http or https")
}
