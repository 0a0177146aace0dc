package apiclient

import (
	"context"
	"net/url"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type SystemService service

type ActivityOpts struct {
	StartIndex int    `url:"startIndex,omitempty"`
	Limit      int    `url:"limit,omitempty"`
	MinDate    string `url:"minDate,omitempty"`
	HasUserID  *bool  `url:"hasUserId,omitempty"`
}

func (s *SystemService) Info(ctx context.Context) (*models.SystemInfo, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.SystemInfo, nil), nil)
	if err != nil {
		return nil, err
	}

	var info models.SystemInfo
	if err := outcome.Decode(&info); err != nil {
		return nil, err
	}

	return &info, nil
}

// RawInfo returns the server information document as received.
func (s *SystemService) RawInfo(ctx context.Context) (string, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.SystemInfo, nil), nil)
	if err != nil {
		return "", err
	}

	return outcome.Text()
}

func (s *SystemService) Restart(ctx context.Context) error {
	return s.postEmpty(ctx, endpoint.SystemRestart)
}

func (s *SystemService) Shutdown(ctx context.Context) error {
	return s.postEmpty(ctx, endpoint.SystemShutdown)
}

func (s *SystemService) postEmpty(ctx context.Context, path string) error {
	outcome, err := s.client.Post(ctx, s.client.URL(path, nil), nil, nil, "")
	if err != nil {
		return err
	}

	return outcome.Err()
}

func (s *SystemService) Logs(ctx context.Context) ([]models.LogFile, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.SystemLogs, nil), nil)
	if err != nil {
		return nil, err
	}

	logs := []models.LogFile{}
	if err := outcome.Decode(&logs); err != nil {
		return nil, err
	}

	return logs, nil
}

func (s *SystemService) Log(ctx context.Context, name string) (string, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.SystemLog, nil), url.Values{"name": {name}})
	if err != nil {
		return "", err
	}

	return outcome.Text()
}

func (s *SystemService) Activity(ctx context.Context, opts ActivityOpts) (*models.ActivityLogQueryResult, error) {
	params, err := qs.Values(opts)
	if err != nil {
		return nil, err
	}

	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.ActivityLog, nil), params)
	if err != nil {
		return nil, err
	}

	var entries models.ActivityLogQueryResult
	if err := outcome.Decode(&entries); err != nil {
		return nil, err
	}

	return &entries, nil
}
