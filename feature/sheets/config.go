package sheets

// Config identifies the order spreadsheet and how to read it.
type Config struct {
	// SpreadsheetID is the id from the spreadsheet URL.
	SpreadsheetID string `mapstructure:"spreadsheet_id" default:""`
	// Range is the A1 range holding the order columns.
	Range string `mapstructure:"range" default:"A1:D"`
	// CredentialsFile is the service account key in JSON format.
	CredentialsFile string `mapstructure:"credentials_file" default:"creds/creds.json"`
	// HasHeader drops the first row of the range.
	HasHeader bool `mapstructure:"has_header" default:"true"`
	// Endpoint overrides the API endpoint and disables authentication.
	// Used against local emulators.
	Endpoint string `mapstructure:"endpoint" default:""`
	// TimeoutSeconds bounds one fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
