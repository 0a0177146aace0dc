package apiclient

import (
	"bytes"
	"context"
	"encoding/base64"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type ItemsService service

type ItemsSearchOpts struct {
	SearchTerm       string `url:"searchTerm,omitempty"`
	IncludeItemTypes string `url:"includeItemTypes,omitempty"`
	ParentID         string `url:"parentId,omitempty"`
	Recursive        bool   `url:"recursive"`
	Fields           string `url:"fields,omitempty"`
	Limit            int    `url:"limit,omitempty"`
	SortBy           string `url:"sortBy,omitempty"`
}

type RefreshOpts struct {
	Recursive           bool   `url:"Recursive"`
	MetadataRefreshMode string `url:"MetadataRefreshMode,omitempty"`
	ImageRefreshMode    string `url:"ImageRefreshMode,omitempty"`
	ReplaceAllMetadata  bool   `url:"ReplaceAllMetadata"`
	ReplaceAllImages    bool   `url:"ReplaceAllImages"`
	RegenerateTrickplay bool   `url:"RegenerateTrickplay"`
}

func (s *ItemsService) Search(ctx context.Context, opts ItemsSearchOpts) (*models.ItemQueryResult, error) {
	params, err := qs.Values(opts)
	if err != nil {
		return nil, err
	}

	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Items, nil), params)
	if err != nil {
		return nil, err
	}

	var items models.ItemQueryResult
	if err := outcome.Decode(&items); err != nil {
		return nil, err
	}

	return &items, nil
}

// UpdateMetadata posts a raw JSON item document.
func (s *ItemsService) UpdateMetadata(ctx context.Context, itemID string, document []byte) error {
	u, err := endpoint.New(endpoint.Item).With("itemId", itemID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.Post(ctx, u, nil, bytes.NewReader(document), ContentTypeJSON)
	if err != nil {
		return err
	}

	return outcome.Err()
}

func (s *ItemsService) Refresh(ctx context.Context, itemID string, opts RefreshOpts) error {
	u, err := endpoint.New(endpoint.ItemRefresh).With("itemId", itemID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	params, err := qs.Values(opts)
	if err != nil {
		return err
	}

	outcome, err := s.client.Post(ctx, u, params, nil, "")
	if err != nil {
		return err
	}

	return outcome.Err()
}

// UploadImage sends a PNG image. The server expects the bytes base64 encoded.
func (s *ItemsService) UploadImage(ctx context.Context, itemID, imageType string, png []byte) error {
	u, err := endpoint.New(endpoint.ItemImage).
		With("itemId", itemID).
		With("imageType", imageType).
		Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	body := base64.StdEncoding.EncodeToString(png)

	outcome, err := s.client.Post(ctx, u, nil, bytes.NewBufferString(body), ContentTypePNG)
	if err != nil {
		return err
	}

	return outcome.Err()
}
