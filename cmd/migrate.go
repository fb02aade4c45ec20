package cmd

import (
	"fmt"
	"strings"

	"order-ledger/core/database"
	"order-ledger/feature/orders/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkMigrate bool

// migrateCmd creates or verifies the schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the orders table",
	Long: `Creates the orders table or adds missing columns and indexes.
With --check the schema is only verified and nothing is changed.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&checkMigrate, "check", false, "Only verify that the table has every column")
	RootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, l, err := loadBase()
	if err != nil {
		return err
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	table := models.Order{}.TableName()
	if !checkMigrate {
		if err := database.Migrate(db, &models.Order{}); err != nil {
			return err
		}
		l.Info("Schema migrated", zap.String("table", table))
	}

	missing, err := database.MissingColumns(db, table, models.Columns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", table, strings.Join(missing, ", "))
	}

	l.Info("Schema verified", zap.String("table", table), zap.Int("columns", len(models.Columns)))
	return nil
}
