package models

type SystemInfo struct {
	LocalAddress               string `json:"LocalAddress"`
	ServerName                 string `json:"ServerName"`
	Version                    string `json:"Version"`
	ProductName                string `json:"ProductName"`
	OperatingSystem            string `json:"OperatingSystem"`
	OperatingSystemDisplayName string `json:"OperatingSystemDisplayName"`
	ID                         string `json:"Id"`
	StartupWizardCompleted     bool   `json:"StartupWizardCompleted"`
	HasPendingRestart          bool   `json:"HasPendingRestart"`
	HasUpdateAvailable         bool   `json:"HasUpdateAvailable"`
	IsShuttingDown             bool   `json:"IsShuttingDown"`
	SystemArchitecture         string `json:"SystemArchitecture"`
}

type LogFile struct {
	DateCreated  string `json:"DateCreated"  csv:"date_created"`
	DateModified string `json:"DateModified" csv:"date_modified"`
	Size         int64  `json:"Size"         csv:"size"`
	Name         string `json:"Name"         csv:"name"`
}

type ActivityLogEntry struct {
	ID            int64  `json:"Id"            csv:"id"`
	Name          string `json:"Name"          csv:"name"`
	Overview      string `json:"Overview"      csv:"overview"`
	ShortOverview string `json:"ShortOverview" csv:"short_overview"`
	Type          string `json:"Type"          csv:"type"`
	ItemID        string `json:"ItemId"        csv:"item_id"`
	Date          string `json:"Date"          csv:"date"`
	UserID        string `json:"UserId"        csv:"user_id"`
	Severity      string `json:"Severity"      csv:"severity"`
}

type ActivityLogQueryResult = QueryResult[ActivityLogEntry]
