package models

type BackupOptions struct {
	Metadata  bool `json:"Metadata"`
	Trickplay bool `json:"Trickplay"`
	Subtitles bool `json:"Subtitles"`
	Database  bool `json:"Database"`
}

type BackupManifest struct {
	ServerVersion       string        `json:"ServerVersion"`
	BackupEngineVersion string        `json:"BackupEngineVersion"`
	DateCreated         string        `json:"DateCreated"`
	Path                string        `json:"Path"`
	Options             BackupOptions `json:"Options"`
}

type BackupRestoreRequest struct {
	ArchiveFileName string `json:"ArchiveFileName"`
}
