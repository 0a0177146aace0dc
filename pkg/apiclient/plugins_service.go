package apiclient

import (
	"context"

	qs "github.com/google/go-querystring/query"

	"github.com/jellyctl/jellyctl/pkg/endpoint"
	"github.com/jellyctl/jellyctl/pkg/models"
)

type (
	PluginsService      service
	PackagesService     service
	RepositoriesService service
)

type InstallOpts struct {
	AssemblyGUID  string `url:"assemblyGuid,omitempty"`
	Version       string `url:"version,omitempty"`
	RepositoryURL string `url:"repositoryUrl,omitempty"`
}

func (s *PluginsService) List(ctx context.Context) ([]models.PluginInfo, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Plugins, nil), nil)
	if err != nil {
		return nil, err
	}

	plugins := []models.PluginInfo{}
	if err := outcome.Decode(&plugins); err != nil {
		return nil, err
	}

	return plugins, nil
}

func (s *PackagesService) List(ctx context.Context) ([]models.PackageInfo, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Packages, nil), nil)
	if err != nil {
		return nil, err
	}

	packages := []models.PackageInfo{}
	if err := outcome.Decode(&packages); err != nil {
		return nil, err
	}

	return packages, nil
}

func (s *PackagesService) Install(ctx context.Context, name string, opts InstallOpts) error {
	u, err := endpoint.New(endpoint.InstalledPackage).With("name", name).Build(s.client.BaseURL)
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

func (s *RepositoriesService) List(ctx context.Context) ([]models.RepositoryInfo, error) {
	outcome, err := s.client.Get(ctx, s.client.URL(endpoint.Repositories, nil), nil)
	if err != nil {
		return nil, err
	}

	repos := []models.RepositoryInfo{}
	if err := outcome.Decode(&repos); err != nil {
		return nil, err
	}

	return repos, nil
}

// Set replaces the whole repository list.
func (s *RepositoriesService) Set(ctx context.Context, repos []models.RepositoryInfo) error {
	outcome, err := s.client.PostJSON(ctx, s.client.URL(endpoint.Repositories, nil), nil, repos)
	if err != nil {
		return err
	}

	return outcome.Err()
}
