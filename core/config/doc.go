// Package config provides configuration management for the order ledger.
//
// Values come from environment variables, optionally overlaid from a .env
// file. Every section is a Config struct owned by the package that uses it;
// the `default` tags register defaults and the `mapstructure` tags name the
// keys. Nested keys map to env vars with underscores, so sheets.range is read
// from SHEETS_RANGE.
//
// Sections:
//   - Server: HTTP port, API key, Swagger UI
//   - Database: MySQL (or sqlite) connection
//   - Log: level and format
//   - Storage: S3/MinIO snapshot archive
//   - Sheets: spreadsheet id, range and service account key
//   - Rates: daily rate feed URL and currency
//   - Telegram: bot token and chats for the overdue digest
//   - Sync: schedule of the start command
//
// Usage:
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
