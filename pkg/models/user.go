package models

type User struct {
	Name                  string             `json:"Name"`
	ServerID              string             `json:"ServerId"`
	ID                    string             `json:"Id"`
	HasPassword           bool               `json:"HasPassword"`
	HasConfiguredPassword bool               `json:"HasConfiguredPassword"`
	EnableAutoLogin       bool               `json:"EnableAutoLogin"`
	LastLoginDate         string             `json:"LastLoginDate,omitempty"`
	LastActivityDate      string             `json:"LastActivityDate,omitempty"`
	Configuration         *UserConfiguration `json:"Configuration,omitempty"`
	Policy                UserPolicy         `json:"Policy"`
}

type UserConfiguration struct {
	AudioLanguagePreference    string   `json:"AudioLanguagePreference,omitempty"`
	SubtitleLanguagePreference string   `json:"SubtitleLanguagePreference,omitempty"`
	PlayDefaultAudioTrack      bool     `json:"PlayDefaultAudioTrack"`
	DisplayMissingEpisodes     bool     `json:"DisplayMissingEpisodes"`
	GroupedFolders             []string `json:"GroupedFolders,omitempty"`
	SubtitleMode               string   `json:"SubtitleMode,omitempty"`
	OrderedViews               []string `json:"OrderedViews,omitempty"`
	LatestItemsExcludes        []string `json:"LatestItemsExcludes,omitempty"`
	MyMediaExcludes            []string `json:"MyMediaExcludes,omitempty"`
	HidePlayedInLatest         bool     `json:"HidePlayedInLatest"`
	RememberAudioSelections    bool     `json:"RememberAudioSelections"`
	RememberSubtitleSelections bool     `json:"RememberSubtitleSelections"`
}

type UserPolicy struct {
	IsAdministrator            bool     `json:"IsAdministrator"`
	IsHidden                   bool     `json:"IsHidden"`
	IsDisabled                 bool     `json:"IsDisabled"`
	EnableRemoteAccess         bool     `json:"EnableRemoteAccess"`
	EnableMediaPlayback        bool     `json:"EnableMediaPlayback"`
	EnableContentDeletion      bool     `json:"EnableContentDeletion"`
	EnableContentDownloading   bool     `json:"EnableContentDownloading"`
	EnableAllFolders           bool     `json:"EnableAllFolders"`
	EnabledFolders             []string `json:"EnabledFolders,omitempty"`
	EnableAllDevices           bool     `json:"EnableAllDevices"`
	EnablePublicSharing        bool     `json:"EnablePublicSharing"`
	InvalidLoginAttemptCount   int      `json:"InvalidLoginAttemptCount"`
	LoginAttemptsBeforeLockout int      `json:"LoginAttemptsBeforeLockout"`
	MaxActiveSessions          int      `json:"MaxActiveSessions"`
	RemoteClientBitrateLimit   int      `json:"RemoteClientBitrateLimit"`
	AuthenticationProviderID   string   `json:"AuthenticationProviderId"`
	PasswordResetProviderID    string   `json:"PasswordResetProviderId"`
	SyncPlayAccess             string   `json:"SyncPlayAccess,omitempty"`
}

// CreateUserByName is the body of a user creation.
type CreateUserByName struct {
	Name     string `json:"Name"`
	Password string `json:"Password"`
}

// UpdateUserPassword is the body of a password reset. CurrentPw is sent
// empty: an administrator key does not need it.
type UpdateUserPassword struct {
	CurrentPw     string `json:"CurrentPw"`
	NewPw         string `json:"NewPw"`
	ResetPassword bool   `json:"ResetPassword"`
}
