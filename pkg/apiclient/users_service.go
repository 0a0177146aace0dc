package apiclient

import (
	"context"
	"fmt"
	"strings"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type UsersService service

type UserItemsOpts struct {
	IncludeItemTypes string `url:"IncludeItemTypes,omitempty"`
	Recursive        bool   `url:"Recursive,omitempty"`
	Fields           string `url:"Fields,omitempty"`
	StartIndex       int    `url:"StartIndex,omitempty"`
	Limit            int    `url:"Limit,omitempty"`
}

// ErrUserNotFound is returned by lookups by name.
type ErrUserNotFound struct {
	Name string
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user %q not found", e.Name)
}

func (s *UsersService) List(ctx context.Context) ([]models.User, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Users, nil), nil)
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := outcome.Decode(&users); err != nil {
		return nil, err
	}

	return users, nil
}

// FindByName looks a user up by name, case insensitively like the server does.
func (s *UsersService) FindByName(ctx context.Context, name string) (*models.User, error) {
	users, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if strings.EqualFold(users[i].Name, name) {
			return &users[i], nil
		}
	}

	return nil, &ErrUserNotFound{Name: name}
}

func (s *UsersService) Get(ctx context.Context, userID string) (*models.User, error) {
	u, err := endpoint.New(endpoint.UserByID).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return nil, err
	}

	outcome, err := s.client.Get(ctx, u, nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := outcome.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// Me returns the user owning the current credential.
func (s *UsersService) Me(ctx context.Context) (*models.User, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.UserMe, nil), nil)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := outcome.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UsersService) Create(ctx context.Context, name, password string) (*models.User, error) {
	outcome, err := s.client.PostJSON(ctx, s.client.URL(endpoint.UserNew, nil), nil, models.CreateUserByName{Name: name, Password: password})
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := outcome.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UsersService) Delete(ctx context.Context, userID string) error {
	u, err := endpoint.New(endpoint.UserByID).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.Delete(ctx, u, nil)
	if err != nil {
		return err
	}

	return outcome.Err()
}

// Update replaces the user record. The body is sent as given so fields this
// client does not model are preserved.
func (s *UsersService) Update(ctx context.Context, userID string, user any) error {
	u, err := endpoint.New(endpoint.UserByID).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.PostJSON(ctx, u, nil, user)
	if err != nil {
		return err
	}

	return outcome.Err()
}

// UpdatePolicy replaces the policy of a user. policy is usually a
// models.UserPolicy, or a raw map to keep the fields this client ignores.
func (s *UsersService) UpdatePolicy(ctx context.Context, userID string, policy any) error {
	u, err := endpoint.New(endpoint.UserPolicy).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.PostJSON(ctx, u, nil, policy)
	if err != nil {
		return err
	}

	return outcome.Err()
}

// SetPolicyFlag reads the policy of a user, changes one boolean and writes
// it back. Unknown policy fields are sent back unchanged.
func (s *UsersService) SetPolicyFlag(ctx context.Context, userID, flag string, value bool) error {
	u, err := endpoint.New(endpoint.UserByID).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.Get(ctx, u, nil)
	if err != nil {
		return err
	}

	var user struct {
		Policy map[string]any `json:"Policy"`
	}

	if err := outcome.Decode(&user); err != nil {
		return err
	}

	if user.Policy == nil {
		return &ContractViolation{What: fmt.Sprintf("user %s has no policy", userID)}
	}

	user.Policy[flag] = value

	return s.UpdatePolicy(ctx, userID, user.Policy)
}

func (s *UsersService) ResetPassword(ctx context.Context, userID, password string) error {
	u, err := endpoint.New(endpoint.UserPassword).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return err
	}

	outcome, err := s.client.PostJSON(ctx, u, nil, models.UpdateUserPassword{NewPw: password})
	if err != nil {
		return err
	}

	return outcome.Err()
}

func (s *UsersService) Items(ctx context.Context, userID string, opts UserItemsOpts) (*models.ItemQueryResult, error) {
	u, err := endpoint.New(endpoint.UserItems).With("userId", userID).Build(s.client.BaseURL)
	if err != nil {
		return nil, err
	}

	params, err := qs.Values(opts)
	if err != nil {
		return nil, err
	}

	outcome, err := s.client.Get(ctx, u, params)
	if err != nil {
		return nil, err
	}

	var items models.ItemQueryResult
	if err := outcome.Decode(&items); err != nil {
		return nil, err
	}

	return &items, nil
}
