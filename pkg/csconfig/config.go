package csconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	StatusConfigured    = "configured"
	StatusNotConfigured = "not configured"

	TokenKindAPIKey  = "apiKey"
	TokenKindUnknown = "Unknown"

	// PlaceholderKey is stored in place of a credential when there is none.
	PlaceholderKey = "Unknown"

	DefaultConfigFile = "jellyctl.yaml"
)

// Config is the persisted client record. It holds a single credential and
// the server it belongs to.
type Config struct {
	Status    string `yaml:"status"`
	Comfy     bool   `yaml:"comfy"`
	ServerURL string `yaml:"server_url"`
	OS        string `yaml:"os"`
	APIKey    string `yaml:"api_key"`
	TokenKind string `yaml:"token"`

	FilePath string `yaml:"-"`
	// Output and Color come from the command line and are never persisted.
	Output string `yaml:"-"`
	Color  string `yaml:"-"`
}

// NewDefaultConfig returns the record of a client that never logged in.
func NewDefaultConfig(path string) *Config {
	return &Config{
		Status:    StatusNotConfigured,
		APIKey:    PlaceholderKey,
		TokenKind: TokenKindUnknown,
		FilePath:  path,
	}
}

func (c *Config) IsConfigured() bool {
	return c.Status == StatusConfigured
}

// HasLegacyToken tells whether the stored credential predates durable keys.
func (c *Config) HasLegacyToken() bool {
	return c.TokenKind != TokenKindAPIKey
}

// LoadConfig reads the record at path. A missing file yields the default
// record, which is not written until the first Save.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig(path)

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debugf("no configuration at %s, using defaults", path)
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("while reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("while parsing %s: %w", path, err)
	}

	cfg.FilePath = path

	return cfg, nil
}

// Save writes the record to its file. The content is written to a
// temporary file in the same directory and renamed over the previous one.
func (c *Config) Save() error {
	if c.FilePath == "" {
		return errors.New("configuration has no file path")
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("while serializing configuration: %w", err)
	}

	dir := filepath.Dir(c.FilePath)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("while creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".jellyctl-*.yaml")
	if err != nil {
		return fmt.Errorf("while creating temporary file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("while writing %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("while setting permissions on %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("while closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, c.FilePath); err != nil {
		return fmt.Errorf("while replacing %s: %w", c.FilePath, err)
	}

	log.Debugf("configuration written to %s", c.FilePath)

	return nil
}
