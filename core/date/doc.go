// Package date provides a calendar date type with day granularity.
//
// Orders are delivered on a day, not at an instant, and exchange rates are
// quoted per day. Using time.Time for either invites timezone bugs where two
// values for the same day compare unequal. Date stores year, month and day
// only and can be used directly as a map key.
//
// # Persistence
//
// Date implements sql.Scanner and driver.Valuer so it can be used as a GORM
// column type (MySQL DATE, SQLite date). It marshals to JSON as "2006-01-02".
//
// # Usage
//
//	d, err := date.ParseLayout("31.12.2024", date.SheetLayout)
//	if d.Before(date.Today()) {
//	    // overdue
//	}
package date
