package endpoint

// Server paths. Placeholders are filled with Endpoint.With.
const (
	AuthenticateByName = "/Users/AuthenticateByName"
	AuthKeys           = "/Auth/Keys"

	Users        = "/Users"
	UserNew      = "/Users/New"
	UserMe       = "/Users/Me"
	UserByID     = "/Users/{userId}"
	UserPolicy   = "/Users/{userId}/Policy"
	UserPassword = "/Users/{userId}/Password"
	UserItems    = "/Users/{userId}/Items"

	Devices = "/Devices"

	VirtualFolders = "/Library/VirtualFolders"
	LibraryRefresh = "/Library/Refresh"

	Items       = "/Items"
	Item        = "/Items/{itemId}"
	ItemRefresh = "/Items/{itemId}/Refresh"
	ItemImage   = "/Items/{itemId}/Images/{imageType}"

	ScheduledTasks = "/ScheduledTasks"
	RunningTask    = "/ScheduledTasks/Running/{taskId}"

	SystemInfo     = "/System/Info"
	SystemRestart  = "/System/Restart"
	SystemShutdown = "/System/Shutdown"
	SystemLogs     = "/System/Logs"
	SystemLog      = "/System/Logs/Log"
	ActivityLog    = "/System/ActivityLog/Entries"

	Plugins          = "/Plugins"
	Packages         = "/Packages"
	InstalledPackage = "/Packages/Installed/{name}"
	Repositories     = "/Repositories"

	Backups       = "/Backup"
	BackupCreate  = "/Backup/Create"
	BackupRestore = "/Backup/Restore"
)
