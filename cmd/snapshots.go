package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// snapshotsCmd lists archived sheet snapshots.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List archived sheet snapshots",
	Long:  `Lists the sheet snapshots archived in object storage, newest first. Any of them can be replayed with sync --snapshot.`,
	RunE:  runSnapshots,
}

func init() {
	RootCmd.AddCommand(snapshotsCmd)
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadBase()
	if err != nil {
		return err
	}
	defer l.Sync()

	archive, err := newArchive(cfg, l)
	if err != nil {
		return err
	}
	if archive == nil {
		return fmt.Errorf("snapshot archive is disabled (set STORAGE_ARCHIVE=true)")
	}

	list, err := archive.List(ctx)
	if err != nil {
		return err
	}
	for _, s := range list {
		l.Info("Snapshot",
			zap.String("name", s.Name),
			zap.Int64("size", s.Size),
			zap.Time("last_modified", s.LastModified),
		)
	}
	l.Info("Snapshots listed", zap.Int("count", len(list)))
	return nil
}
