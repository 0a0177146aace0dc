package credentials

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

var ErrNotConfigured = errors.New("jellyctl is not configured, run 'jellyctl initialize'")

// Login holds what the user provides to authenticate.
type Login struct {
	ServerURL string
	Username  string
	Password  string
}

// Manager drives a configuration record from unauthenticated to holding a
// durable API key. Only the final step of each flow writes to the Store.
type Manager struct {
	store      Store
	identity   *apiclient.Identity
	httpClient *http.Client
	userAgent  string
	state      State
}

type Option func(*Manager)

func WithIdentity(id *apiclient.Identity) Option {
	return func(m *Manager) {
		m.identity = id
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) {
		m.httpClient = c
	}
}

func WithUserAgent(ua string) Option {
	return func(m *Manager) {
		m.userAgent = ua
	}
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		state: NotConfigured,
		identity: &apiclient.Identity{
			Client:  apiclient.AppName,
			Device:  apiclient.AppName,
			Version: "0.0.0",
		},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) State() State {
	return m.state
}

func (m *Manager) newClient(serverURL, token string, withIdentity bool) (*apiclient.ApiClient, error) {
	cfg := &apiclient.Config{
		URL:        serverURL,
		Token:      token,
		UserAgent:  m.userAgent,
		HTTPClient: m.httpClient,
	}

	if withIdentity {
		cfg.Identity = m.identity
	}

	return apiclient.NewClient(cfg)
}

// Client returns an API client using the durable key of a configured record.
func (m *Manager) Client(cfg *csconfig.Config) (*apiclient.ApiClient, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}

	return m.newClient(cfg.ServerURL, cfg.APIKey, false)
}

// Initialize logs in with a password, exchanges the session token for a
// durable key and persists the result. On error nothing is written and cfg
// is left as is.
func (m *Manager) Initialize(ctx context.Context, cfg *csconfig.Config, login Login) (*csconfig.Config, error) {
	previous := StateOf(cfg)

	newCfg, err := m.authenticate(ctx, cfg, login)
	if err != nil {
		m.state = previous
		return nil, err
	}

	return newCfg, nil
}

// Reconfigure replaces the credential of a record. The server URL of the
// record is used when login does not name one.
func (m *Manager) Reconfigure(ctx context.Context, cfg *csconfig.Config, login Login) (*csconfig.Config, error) {
	if login.ServerURL == "" {
		login.ServerURL = cfg.ServerURL
	}

	return m.Initialize(ctx, cfg, login)
}

func (m *Manager) authenticate(ctx context.Context, cfg *csconfig.Config, login Login) (*csconfig.Config, error) {
	serverURL := strings.TrimSuffix(strings.TrimSpace(login.ServerURL), "/")

	m.state = Authenticating

	client, err := m.newClient(serverURL, "", true)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", serverURL, err)
	}

	log.Debugf("logging in to %s as %s", serverURL, login.Username)

	result, err := client.Auth.AuthenticateByName(ctx, login.Username, login.Password)
	if err != nil {
		return nil, err
	}

	// the session token only lives in memory
	m.state = TokenObtained

	key, err := m.exchange(ctx, serverURL, result.AccessToken)
	if err != nil {
		return nil, err
	}

	return m.persist(cfg, serverURL, key)
}

// Migrate upgrades a record holding a session token to a durable key,
// without asking for a password.
func (m *Manager) Migrate(ctx context.Context, cfg *csconfig.Config) (*csconfig.Config, error) {
	m.state = TokenObtained

	log.Infof("upgrading the stored credential to an API key")

	key, err := m.exchange(ctx, cfg.ServerURL, cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("upgrading stored credential: %w", err)
	}

	return m.persist(cfg, cfg.ServerURL, key)
}

// exchange returns the durable key of this client, creating it if the
// server has none. The lookup and the creation are not atomic: two clients
// running at once may both create a key.
func (m *Manager) exchange(ctx context.Context, serverURL, token string) (string, error) {
	client, err := m.newClient(serverURL, token, true)
	if err != nil {
		return "", err
	}

	keys, err := client.Auth.ListKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("listing API keys: %w", err)
	}

	if key, ok := keys.FindByApp(apiclient.AppName); ok {
		log.Debugf("reusing API key created on %s", key.DateCreated)
		m.state = KeyExchanged

		return key.AccessToken, nil
	}

	log.Debugf("no API key for %s, creating one", apiclient.AppName)

	if err := client.Auth.CreateKey(ctx, apiclient.AppName); err != nil {
		return "", fmt.Errorf("creating API key: %w", err)
	}

	keys, err = client.Auth.ListKeys(ctx)
	if err != nil {
		return "", fmt.Errorf("listing API keys: %w", err)
	}

	key, ok := keys.FindByApp(apiclient.AppName)
	if !ok {
		return "", &apiclient.ContractViolation{
			What: fmt.Sprintf("API key for %s was created but is not listed", apiclient.AppName),
		}
	}

	m.state = KeyExchanged

	return key.AccessToken, nil
}

func (m *Manager) persist(cfg *csconfig.Config, serverURL, key string) (*csconfig.Config, error) {
	newCfg := &csconfig.Config{
		Status:    csconfig.StatusConfigured,
		Comfy:     cfg.Comfy,
		ServerURL: serverURL,
		OS:        runtime.GOOS,
		APIKey:    key,
		TokenKind: csconfig.TokenKindAPIKey,
		FilePath:  cfg.FilePath,
		Output:    cfg.Output,
		Color:     cfg.Color,
	}

	if err := m.store.Save(newCfg); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}

	m.state = Configured

	return newCfg, nil
}

// Logout forgets the credential. The key is not revoked on the server.
func (m *Manager) Logout(cfg *csconfig.Config) (*csconfig.Config, error) {
	newCfg := csconfig.NewDefaultConfig(cfg.FilePath)
	newCfg.Output = cfg.Output
	newCfg.Color = cfg.Color

	if err := m.store.Save(newCfg); err != nil {
		return nil, fmt.Errorf("saving configuration: %w", err)
	}

	m.state = NotConfigured

	return newCfg, nil
}

// Ensure is run before any resource command. It returns ErrNotConfigured
// for a record that never logged in, upgrades a legacy record and leaves a
// configured one alone.
func (m *Manager) Ensure(ctx context.Context, cfg *csconfig.Config) (*csconfig.Config, error) {
	m.state = StateOf(cfg)

	switch m.state {
	case NotConfigured:
		return cfg, ErrNotConfigured
	case TokenObtained:
		return m.Migrate(ctx, cfg)
	default:
		return cfg, nil
	}
}
