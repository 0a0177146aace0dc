package climedia

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
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
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

const serverURL = "http://jellyfin.test"

func newTestCLI(t *testing.T, format string) *cliMedia {
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

func writeJPEG(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	path := filepath.Join(t.TempDir(), "poster.jpg")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, nil))
	require.NoError(t, f.Close())

	return path
}

func TestValidateColumns(t *testing.T) {
	require.NoError(t, validateColumns([]string{"name", "ID", "ProductionYear"}))
	cstest.RequireErrorContains(t, validateColumns([]string{"Name", "Rating"}), `unknown column "Rating"`)
}

func TestSearchQuery(t *testing.T) {
	q := searchOpts{term: "matrix", mediaType: allTypes, includePath: true}.query()
	assert.Equal(t, "matrix", q.SearchTerm)
	assert.Empty(t, q.IncludeItemTypes)
	assert.Equal(t, "Path", q.Fields)
	assert.True(t, q.Recursive)

	q = searchOpts{term: "matrix", mediaType: "Movie"}.query()
	assert.Equal(t, "Movie", q.IncludeItemTypes)
	assert.Empty(t, q.Fields)
}

func TestSearchTable(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Items",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "matrix", req.URL.Query().Get("searchTerm"))
			assert.Equal(t, "Path", req.URL.Query().Get("fields"))

			return httpmock.NewStringResponse(http.StatusOK, `{"Items": [
				{"Name": "The Matrix", "Id": "m1", "Type": "Movie", "Path": "/media/matrix.mkv", "ProductionYear": 1999, "CriticRating": 83}
			], "TotalRecordCount": 1}`), nil
		})

	buf := &bytes.Buffer{}
	err := cli.search(t.Context(), buf, searchOpts{
		term:        "matrix",
		mediaType:   allTypes,
		includePath: true,
		columns:     []string{"Name", "ProductionYear", "CriticRating"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "The Matrix")
	assert.Contains(t, out, "1999")
	assert.Contains(t, out, "83")
	assert.Contains(t, out, "/media/matrix.mkv")
	assert.NotContains(t, out, "m1")
}

func TestSearchCSV(t *testing.T) {
	cli := newTestCLI(t, "csv")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Items",
		httpmock.NewStringResponder(http.StatusOK, `{"Items": [{"Name": "Heat", "Id": "h1", "Type": "Movie"}]}`))

	buf := &bytes.Buffer{}
	require.NoError(t, cli.search(t.Context(), buf, searchOpts{term: "heat", columns: []string{"Name"}}))
	assert.Equal(t, "name,id,type,path,critic_rating,production_year\nHeat,h1,Movie,,,0\n", buf.String())
}

func TestUpdateImageByTitle(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Items",
		httpmock.NewStringResponder(http.StatusOK, `{"Items": [{"Name": "Heat", "Id": "h1"}]}`))

	var uploaded []byte

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Items/h1/Images/Backdrop",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "image/png", req.Header.Get("Content-Type"))

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return nil, err
			}

			uploaded, err = base64.StdEncoding.DecodeString(string(body))
			if err != nil {
				return nil, err
			}

			return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
		})

	require.NoError(t, cli.updateImage(t.Context(), "", "Heat", writeJPEG(t), "Backdrop"))

	img, err := png.Decode(bytes.NewReader(uploaded))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestUpdateImageErrors(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodGet, serverURL+"/Items",
		httpmock.NewStringResponder(http.StatusOK, `{"Items": [{"Name": "Heat", "Id": "h1"}, {"Name": "Heat 2", "Id": "h2"}]}`))

	path := writeJPEG(t)

	err := cli.updateImage(t.Context(), "", "Heat", path, "Primary")
	cstest.RequireErrorContains(t, err, `2 items match "Heat"`)

	err = cli.updateImage(t.Context(), "h1", "", path, "Poster")
	cstest.RequireErrorContains(t, err, `unknown image type "Poster"`)

	notAnImage := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notAnImage, []byte("hello"), 0o600))

	err = cli.updateImage(t.Context(), "h1", "", notAnImage, "Primary")
	cstest.RequireErrorContains(t, err, "unable to decode")
}

func TestUpdateMetadata(t *testing.T) {
	cli := newTestCLI(t, "")

	httpmock.RegisterResponder(http.MethodPost, serverURL+"/Items/m1",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	file := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"Name": "The Matrix", "Id": "m1"}`), 0o600))

	require.NoError(t, cli.updateMetadata(t.Context(), "m1", file))

	require.NoError(t, os.WriteFile(file, []byte(`{"Name": `), 0o600))
	cstest.RequireErrorContains(t, cli.updateMetadata(t.Context(), "m1", file), "is not a valid JSON document")
}
