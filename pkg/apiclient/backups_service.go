package apiclient

import (
	"context"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type BackupsService service

func (s *BackupsService) List(ctx context.Context) ([]models.BackupManifest, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Backups, nil), nil)
	if err != nil {
		return nil, err
	}

	backups := []models.BackupManifest{}
	if err := outcome.Decode(&backups); err != nil {
		return nil, err
	}

	return backups, nil
}

func (s *BackupsService) Create(ctx context.Context, opts models.BackupOptions) (*models.BackupManifest, error) {
	outcome, err := s.client.PostJSON(ctx, s.client.URL(endpoint.BackupCreate, nil), nil, opts)
	if err != nil {
		return nil, err
	}

	var manifest models.BackupManifest
	if err := outcome.Decode(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

func (s *BackupsService) Restore(ctx context.Context, archive string) error {
	outcome, err := s.client.PostJSON(ctx, s.client.URL(endpoint.BackupRestore, nil), nil, models.BackupRestoreRequest{ArchiveFileName: archive})
	if err != nil {
		return err
	}

	return outcome.Err()
}
