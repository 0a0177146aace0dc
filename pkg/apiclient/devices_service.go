package apiclient

import (
	"context"
	"net/url"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type DevicesService service

type DevicesListOpts struct {
	UserID              string `url:"userId,omitempty"`
	ActiveWithinSeconds int    `url:"activeWithinSeconds,omitempty"`
}

func (s *DevicesService) List(ctx context.Context, opts DevicesListOpts) ([]models.Device, error) {
	params, err := qs.Values(opts)
	if err != nil {
		return nil, err
	}

	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Devices, nil), params)
	if err != nil {
		return nil, err
	}

	var devices models.DeviceQueryResult
	if err := outcome.Decode(&devices); err != nil {
		return nil, err
	}

	return devices.Items, nil
}

func (s *DevicesService) Delete(ctx context.Context, deviceID string) error {
	outcome, err := s.client.Delete(ctx, s.client.URL(endpoint.Devices, nil), url.Values{"id": {deviceID}})
	if err != nil {
		return err
	}

	return outcome.Err()
}
