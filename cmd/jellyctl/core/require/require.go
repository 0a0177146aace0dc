package require

import (
	"context"
	"errors"
	"fmt"

	"github.com/jellyctl/jellyctl/pkg/apiclient"
	"github.com/jellyctl/jellyctl/pkg/apiclient/useragent"
	"github.com/jellyctl/jellyctl/pkg/credentials"
	"github.com/jellyctl/jellyctl/pkg/csconfig"
	"github.com/jellyctl/jellyctl/pkg/cwversion/constraint"
)

// Client returns an API client authorized with the stored key.
func Client(c *csconfig.Config) (*apiclient.ApiClient, error) {
	m := credentials.NewManager(credentials.FileStore{}, credentials.WithUserAgent(useragent.Default()))

	client, err := m.Client(c)
	switch {
	case errors.Is(err, credentials.ErrNotConfigured):
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("invalid server URL in %s: %w", c.FilePath, err)
	}

	return client, nil
}

// ServerVersion fails when the server does not satisfy constraint, which
// describes the feature being used.
func ServerVersion(ctx context.Context, client *apiclient.ApiClient, want string, feature string) error {
	info, err := client.System.Info(ctx)
	if err != nil {
		return err
	}

	ok, err := constraint.Satisfies(info.Version, want)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%s requires a server version %s, this one runs %s", feature, want, info.Version)
	}

	return nil
}
