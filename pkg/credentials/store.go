package credentials

import (
	"github.com/jellyctl/jellyctl/pkg/csconfig"
)

// Store persists a configuration record.
type Store interface {
	Save(cfg *csconfig.Config) error
}

// FileStore writes the record to the file it was loaded from.
type FileStore struct{}

func (FileStore) Save(cfg *csconfig.Config) error {
	return cfg.Save()
}
