package notify

// Config holds configuration for the Telegram overdue digest.
type Config struct {
	// Token is the bot token. Empty sends the digest to the log instead.
	Token string `mapstructure:"token" default:""`
	// ChatIDs lists the chats receiving the digest (comma separated in env).
	ChatIDs []string `mapstructure:"chat_ids" default:""`
	// APIURL is the Bot API base URL.
	APIURL string `mapstructure:"api_url" default:"https://api.telegram.org"`
	// Currency is the ISO code used to format order prices.
	Currency string `mapstructure:"currency" default:"USD"`
	// TimeoutSeconds bounds one sendMessage call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Enabled reports whether a Telegram bot is configured.
func (c Config) Enabled() bool {
	return c.Token != "" && len(c.ChatIDs) > 0
}
