package models

type PluginInfo struct {
	Name                  string `json:"Name"                  csv:"name"`
	Version               string `json:"Version"               csv:"version"`
	ConfigurationFileName string `json:"ConfigurationFileName" csv:"configuration_file"`
	Description           string `json:"Description"           csv:"description"`
	ID                    string `json:"Id"                    csv:"id"`
	CanUninstall          bool   `json:"CanUninstall"          csv:"can_uninstall"`
	HasImage              bool   `json:"HasImage"              csv:"has_image"`
	Status                string `json:"Status"                csv:"status"`
}

type PackageInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Overview    string        `json:"overview"`
	Owner       string        `json:"owner"`
	Category    string        `json:"category"`
	GUID        string        `json:"guid"`
	Versions    []VersionInfo `json:"versions"`
	ImageURL    string        `json:"imageUrl,omitempty"`
}

type VersionInfo struct {
	Version        string `json:"version"`
	VersionNumber  string `json:"VersionNumber"`
	Changelog      string `json:"changelog"`
	TargetAbi      string `json:"targetAbi"`
	SourceURL      string `json:"sourceUrl"`
	Checksum       string `json:"checksum"`
	Timestamp      string `json:"timestamp"`
	RepositoryName string `json:"repositoryName"`
	RepositoryURL  string `json:"repositoryUrl"`
}

type RepositoryInfo struct {
	Name    string `json:"Name"    csv:"name"`
	URL     string `json:"Url"     csv:"url"`
	Enabled bool   `json:"Enabled" csv:"enabled"`
}
