package apiclient

import (
	"bytes"
	"context"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type LibrariesService service

type AddVirtualFolderOpts struct {
	Name           string `url:"name"`
	CollectionType string `url:"collectionType,omitempty"`
	RefreshLibrary bool   `url:"refreshLibrary"`
}

func (s *LibrariesService) List(ctx context.Context) ([]models.VirtualFolder, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.VirtualFolders, nil), nil)
	if err != nil {
		return nil, err
	}

	folders := []models.VirtualFolder{}
	if err := outcome.Decode(&folders); err != nil {
		return nil, err
	}

	return folders, nil
}

// Register creates a library. options is the raw JSON library options
// document and is passed through untouched.
func (s *LibrariesService) Register(ctx context.Context, opts AddVirtualFolderOpts, options []byte) error {
	params, err := qs.Values(opts)
	if err != nil {
		return err
	}

	outcome, err := s.client.Post(ctx, s.client.URL(endpoint.VirtualFolders, nil), params, bytes.NewReader(options), ContentTypeJSON)
	if err != nil {
		return err
	}

	return outcome.Err()
}

// RefreshAll starts a scan of every library.
func (s *LibrariesService) RefreshAll(ctx context.Context) error {
	outcome, err := s.client.Post(ctx, s.client.URL(endpoint.LibraryRefresh, nil), nil, nil, "")
	if err != nil {
		return err
	}

	return outcome.Err()
}
