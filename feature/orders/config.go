package orders

import "time"

// Config controls scheduled synchronization.
type Config struct {
	// Interval between scheduled runs of the start command. Zero disables the schedule.
	Interval time.Duration `mapstructure:"interval" default:"24h"`
	// OnStart runs one synchronization when the server boots.
	OnStart bool `mapstructure:"on_start" default:"false"`
	// NotifyUpdated also reports overdue orders among updated records.
	NotifyUpdated bool `mapstructure:"notify_updated" default:"false"`
}
