// Package database opens GORM connections and inspects table schemas.
//
// Connect supports the mysql driver used in production and the sqlite driver
// used by tests and local runs. Migrate wraps AutoMigrate, and MissingColumns
// lets the migrate command verify that a deployed table carries every column
// the ledger writes.
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "orders", []string{"order_number"})
package database
