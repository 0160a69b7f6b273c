package constants

const (
	AppName            = "focusflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/focusflow/focusflow.db"
	ConnectionEnvVar   = "FOCUSFLOW_DB_CONNECTION"
	Version            = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultBlockStartHour is the hour a derived time block is anchored to
	// when the task has a due date but no time of day (and when it has neither).
	DefaultBlockStartHour = 9

	// DefaultBlockMinutes is the fallback duration for a block whose end time
	// is missing or not after its start.
	DefaultBlockMinutes = 60

	// LastDaySentinel is the day_of_month value meaning "last day of the month".
	LastDaySentinel = "last_day"
)
