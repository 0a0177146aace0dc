package apiclient

import (
	"context"
	"net/url"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type AuthService service

// AuthenticateByName performs the password login. Any non-2xx answer is an
// *AuthenticationError.
func (s *AuthService) AuthenticateByName(ctx context.Context, username, password string) (*models.AuthenticationResult, error) {
	u := s.client.URL(endpoint.AuthenticateByName, nil)

	outcome, err := s.client.PostJSON(ctx, u, nil, models.AuthenticateUserByName{Username: username, Pw: password})
	if err != nil {
		return nil, err
	}

	if !outcome.IsSuccess() {
		return nil, &AuthenticationError{StatusCode: outcome.StatusCode, Body: outcome.Body}
	}

	var result models.AuthenticationResult
	if err := outcome.Decode(&result); err != nil {
		return nil, err
	}

	if result.AccessToken == "" {
		return nil, &ContractViolation{What: "login succeeded without an access token"}
	}

	return &result, nil
}

func (s *AuthService) ListKeys(ctx context.Context) (*models.AuthenticationInfoQueryResult, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.AuthKeys, nil), nil)
	if err != nil {
		return nil, err
	}

	var keys models.AuthenticationInfoQueryResult
	if err := outcome.Decode(&keys); err != nil {
		return nil, err
	}

	return &keys, nil
}

// CreateKey asks the server to mint a key for app. The server answers with a
// status only, the key has to be looked up afterwards.
func (s *AuthService) CreateKey(ctx context.Context, app string) error {
	outcome, err := s.client.Post(ctx, s.client.URL(endpoint.AuthKeys, nil), url.Values{"app": {app}}, nil, "")
	if err != nil {
		return err
	}

	return outcome.Err()
}
