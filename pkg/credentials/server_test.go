package credentials

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/models"
)

// fakeServer keeps just enough state to answer the login and key calls.
type fakeServer struct {
	mu sync.Mutex

	password     string
	sessionToken string
	// keys created by the server, by app name
	keys []models.AuthenticationInfo
	// nextKey is handed out on the next creation
	nextKey string
	// hideCreated makes created keys invisible to listings
	hideCreated bool

	logins   int
	creates  int
	listings int
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()

	fs := &fakeServer{
		password:     "secret",
		sessionToken: "T1",
		nextKey:      "K1",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/Users/AuthenticateByName", fs.handleLogin)
	mux.HandleFunc("/Auth/Keys", fs.handleKeys)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return fs, server
}

func (fs *fakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.logins++

	var login models.AuthenticateUserByName
	if err := json.NewDecoder(r.Body).Decode(&login); err != nil || login.Pw != fs.password {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	_ = json.NewEncoder(w).Encode(models.AuthenticationResult{AccessToken: fs.sessionToken, ServerID: "srv"})
}

func (fs *fakeServer) authorized(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	if strings.Contains(auth, `Token="`+fs.sessionToken+`"`) {
		return true
	}

	for _, k := range fs.keys {
		if strings.Contains(auth, `Token="`+k.AccessToken+`"`) {
			return true
		}
	}

	return false
}

func (fs *fakeServer) handleKeys(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.authorized(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		fs.listings++

		result := models.AuthenticationInfoQueryResult{Items: []models.AuthenticationInfo{}}
		if !fs.hideCreated {
			result.Items = fs.keys
		}

		result.TotalRecordCount = int64(len(result.Items))
		_ = json.NewEncoder(w).Encode(result)
	case http.MethodPost:
		fs.creates++
		fs.keys = append(fs.keys, models.AuthenticationInfo{
			AppName:     r.URL.Query().Get("app"),
			AccessToken: fs.nextKey,
		})
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// memStore records what was saved.
type memStore struct {
	saved []*csconfig.Config
	err   error
}

func (s *memStore) Save(cfg *csconfig.Config) error {
	if s.err != nil {
		return s.err
	}

	s.saved = append(s.saved, cfg)

	return nil
}
