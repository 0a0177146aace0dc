package apiclient

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/jellyctl/jellyctl/pkg/apiclient/useragent"
	"github.com/jellyctl/jellyctl/pkg/endpoint"
)

type ApiClient struct {
	/*The http client used to make requests*/
	client *http.Client
	/*Reuse a single struct instead of allocating one for each service on the heap.*/
	common service
	/*config stuff*/
	BaseURL   string
	UserAgent string
	/*exposed Services*/
	Auth         *AuthService
	Users        *UsersService
	Devices      *DevicesService
	Libraries    *LibrariesService
	Items        *ItemsService
	Tasks        *TasksService
	System       *SystemService
	Plugins      *PluginsService
	Packages     *PackagesService
	Repositories *RepositoriesService
	Backups      *BackupsService
}

type service struct {
	client *ApiClient
}

func validateURL(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("server URL is empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("server URL must start with http:// or https://")
	}

	if u.Host == "" {
		return "", errors.New("server URL has no host")
	}

	return strings.TrimSuffix(raw, "/"), nil
}

// NewClient returns a client that authorizes every request with
// config.Token and, when set, config.Identity.
func NewClient(config *Config) (*ApiClient, error) {
	baseURL, err := validateURL(config.URL)
	if err != nil {
		return nil, err
	}

	t := &TokenTransport{
		Token:    config.Token,
		Identity: config.Identity,
	}

	httpClient := &http.Client{}
	if config.HTTPClient != nil {
		*httpClient = *config.HTTPClient
		t.Transport = config.HTTPClient.Transport
	}

	httpClient.Transport = t

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = useragent.Default()
	}

	c := &ApiClient{client: httpClient, BaseURL: baseURL, UserAgent: userAgent}
	c.common.client = c
	c.Auth = (*AuthService)(&c.common)
	c.Users = (*UsersService)(&c.common)
	c.Devices = (*DevicesService)(&c.common)
	c.Libraries = (*LibrariesService)(&c.common)
	c.Items = (*ItemsService)(&c.common)
	c.Tasks = (*TasksService)(&c.common)
	c.System = (*SystemService)(&c.common)
	c.Plugins = (*PluginsService)(&c.common)
	c.Packages = (*PackagesService)(&c.common)
	c.Repositories = (*RepositoriesService)(&c.common)
	c.Backups = (*BackupsService)(&c.common)

	return c, nil
}

// URL resolves an endpoint template against the base URL.
func (c *ApiClient) URL(template string, params map[string]string) string {
	return endpoint.Resolve(c.BaseURL, template, params)
}
