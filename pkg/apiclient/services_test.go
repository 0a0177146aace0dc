package apiclient

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/go-cs-lib/cstest"

	"github.com/jellyctl/jellyctl/pkg/models"
)

func TestAuthenticateByName(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Users/AuthenticateByName", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)
		assert.Equal(t,
			`MediaBrowser Client="jellyctl", Device="host", DeviceId="dev-1", Version="1.2.3"`,
			r.Header.Get("Authorization"))

		var login models.AuthenticateUserByName
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&login))

		if login.Username != "admin" || login.Pw != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		_, _ = w.Write([]byte(`{"AccessToken": "session-token", "ServerId": "srv", "User": {"Name": "admin", "Id": "u1"}}`))
	})

	client, err := NewClient(&Config{
		URL:      urlx,
		Identity: &Identity{Client: AppName, Device: "host", DeviceID: "dev-1", Version: "1.2.3"},
	})
	require.NoError(t, err)

	result, err := client.Auth.AuthenticateByName(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, "session-token", result.AccessToken)
	assert.Equal(t, "u1", result.User.ID)

	_, err = client.Auth.AuthenticateByName(ctx, "admin", "wrong")

	var authnErr *AuthenticationError
	require.ErrorAs(t, err, &authnErr)
	assert.Equal(t, http.StatusUnauthorized, authnErr.StatusCode)
}

func TestAuthKeys(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	created := false

	mux.HandleFunc("/Auth/Keys", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, AppName, r.URL.Query().Get("app"))
			created = true
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			if !created {
				_, _ = w.Write([]byte(`{"Items": [{"AppName": "other", "AccessToken": "x"}], "TotalRecordCount": 1}`))
				return
			}

			_, _ = w.Write([]byte(`{"Items": [{"AppName": "other", "AccessToken": "x"}, {"AppName": "jellyctl", "AccessToken": "k"}], "TotalRecordCount": 2}`))
		}
	})

	client := newTestClient(t, urlx)

	keys, err := client.Auth.ListKeys(ctx)
	require.NoError(t, err)

	_, found := keys.FindByApp(AppName)
	assert.False(t, found)

	require.NoError(t, client.Auth.CreateKey(ctx, AppName))

	keys, err = client.Auth.ListKeys(ctx)
	require.NoError(t, err)

	key, found := keys.FindByApp(AppName)
	require.True(t, found)
	assert.Equal(t, "k", key.AccessToken)
}

func TestUsersFindByName(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Users", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"Name": "Alice", "Id": "a1", "Policy": {"IsAdministrator": true}}]`))
	})

	client := newTestClient(t, urlx)

	user, err := client.Users.FindByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a1", user.ID)
	assert.True(t, user.Policy.IsAdministrator)

	_, err = client.Users.FindByName(ctx, "bob")

	var notFound *ErrUserNotFound
	require.ErrorAs(t, err, &notFound)
	cstest.RequireErrorContains(t, err, `user "bob" not found`)
}

func TestUsersPolicyAndPassword(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Users/a1/Policy", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		var policy models.UserPolicy
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&policy))
		assert.True(t, policy.IsDisabled)
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("/Users/a1/Password", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		var pw models.UpdateUserPassword
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&pw))
		assert.Equal(t, "new", pw.NewPw)
		w.WriteHeader(http.StatusBadRequest)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Users.UpdatePolicy(ctx, "a1", models.UserPolicy{IsDisabled: true}))

	err := client.Users.ResetPassword(ctx, "a1", "new")

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusBadRequest, protoErr.StatusCode)
}

func TestUsersSetPolicyFlagKeepsUnknownFields(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Users/a1", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodGet)
		_, _ = w.Write([]byte(`{"Name": "alice", "Id": "a1", "Policy": {"IsAdministrator": false, "BlockedTags": ["x"]}}`))
	})

	mux.HandleFunc("/Users/a1/Policy", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)

		var policy map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&policy))
		assert.Equal(t, true, policy["IsAdministrator"])
		assert.Equal(t, []any{"x"}, policy["BlockedTags"])
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Users.SetPolicyFlag(ctx, "a1", "IsAdministrator", true))
}

func TestDevicesDelete(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Devices", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodDelete)
		assert.Equal(t, "dev-9", r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Devices.Delete(ctx, "dev-9"))
}

func TestItemsUploadImage(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	png := []byte{0x89, 'P', 'N', 'G'}

	mux.HandleFunc("/Items/i1/Images/Primary", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)
		assert.Equal(t, ContentTypePNG, r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString(png), string(body))
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Items.UploadImage(ctx, "i1", "Primary", png))

	err := client.Items.UploadImage(ctx, "", "Primary", png)
	require.Error(t, err)
}

func TestItemsSearch(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Items", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "matrix", q.Get("searchTerm"))
		assert.Equal(t, "Movie", q.Get("includeItemTypes"))
		assert.Equal(t, "true", q.Get("recursive"))
		assert.Empty(t, q.Get("parentId"))

		_, _ = w.Write([]byte(`{"Items": [{"Name": "The Matrix", "Id": "m1", "Type": "Movie", "ProductionYear": 1999}], "TotalRecordCount": 1}`))
	})

	client := newTestClient(t, urlx)

	items, err := client.Items.Search(ctx, ItemsSearchOpts{SearchTerm: "matrix", IncludeItemTypes: "Movie", Recursive: true})
	require.NoError(t, err)
	require.Len(t, items.Items, 1)
	assert.Equal(t, 1999, items.Items[0].ProductionYear)
}

func TestPackagesInstallEscapesName(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Packages/Installed/", func(w http.ResponseWriter, r *http.Request) {
		testMethod(t, r, http.MethodPost)
		assert.Equal(t, "/Packages/Installed/Open%20Subtitles", r.URL.EscapedPath())
		assert.Equal(t, "10.0.0.0", r.URL.Query().Get("version"))
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Packages.Install(ctx, "Open Subtitles", InstallOpts{Version: "10.0.0.0"}))
}

func TestSystemLog(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/System/Logs/Log", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "log_20250101.log", r.URL.Query().Get("name"))
		_, _ = w.Write([]byte("[INF] started\n"))
	})

	client := newTestClient(t, urlx)

	text, err := client.System.Log(ctx, "log_20250101.log")
	require.NoError(t, err)
	assert.Equal(t, "[INF] started\n", text)
}

func TestBackupsRestore(t *testing.T) {
	ctx := t.Context()

	mux, urlx, teardown := setup()
	defer teardown()

	mux.HandleFunc("/Backup/Restore", func(w http.ResponseWriter, r *http.Request) {
		var req models.BackupRestoreRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "backup.zip", req.ArchiveFileName)
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, urlx)

	require.NoError(t, client.Backups.Restore(ctx, "backup.zip"))
}
