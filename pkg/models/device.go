package models

type Device struct {
	ID               string `json:"Id"                         csv:"id"`
	Name             string `json:"Name"                       csv:"name"`
	LastUserName     string `json:"LastUserName"               csv:"last_user"`
	LastUserID       string `json:"LastUserId"                 csv:"-"`
	AppName          string `json:"AppName"                    csv:"app"`
	AppVersion       string `json:"AppVersion"                 csv:"app_version"`
	DateLastActivity string `json:"DateLastActivity,omitempty" csv:"last_activity"`
}

type DeviceQueryResult = QueryResult[Device]
