package rates

// Config holds configuration for the Central Bank daily rate feed.
type Config struct {
	// URL is the daily feed endpoint. The date goes into the date_req parameter.
	URL string `mapstructure:"url" default:"https://www.cbr.ru/scripts/XML_daily.asp"`
	// CurrencyID is the feed id of the foreign currency (R01235 is USD).
	CurrencyID string `mapstructure:"currency_id" default:"R01235"`
	// TimeoutSeconds bounds one feed request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
