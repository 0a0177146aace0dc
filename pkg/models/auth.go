package models

// AuthenticateUserByName is the body of a password login.
type AuthenticateUserByName struct {
	Username string `json:"Username"`
	Pw       string `json:"Pw"`
}

// AuthenticationResult is what the server returns after a password login.
// AccessToken is a session token, not an API key.
type AuthenticationResult struct {
	User        *User  `json:"User,omitempty"`
	AccessToken string `json:"AccessToken"`
	ServerID    string `json:"ServerId"`
}

// AuthenticationInfo is one entry of the API key list.
type AuthenticationInfo struct {
	ID               int64  `json:"Id"`
	AccessToken      string `json:"AccessToken"`
	DeviceID         string `json:"DeviceId"`
	AppName          string `json:"AppName"`
	AppVersion       string `json:"AppVersion"`
	DeviceName       string `json:"DeviceName"`
	UserID           string `json:"UserId"`
	IsActive         bool   `json:"IsActive"`
	DateCreated      string `json:"DateCreated"`
	DateRevoked      string `json:"DateRevoked,omitempty"`
	DateLastActivity string `json:"DateLastActivity,omitempty"`
	UserName         string `json:"UserName,omitempty"`
}

// AuthenticationInfoQueryResult is the API key list.
type AuthenticationInfoQueryResult QueryResult[AuthenticationInfo]

// FindByApp returns the first key whose client application is appName.
func (r *AuthenticationInfoQueryResult) FindByApp(appName string) (*AuthenticationInfo, bool) {
	for i := range r.Items {
		if r.Items[i].AppName == appName {
			return &r.Items[i], true
		}
	}

	return nil, false
}
