package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"order-ledger/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// SnapshotPrefix is the object prefix of archived sheet snapshots.
const SnapshotPrefix = "snapshots/"

// Snapshot is one fetched copy of the order sheet.
type Snapshot struct {
	FetchedAt     time.Time  `json:"fetched_at"`
	SpreadsheetID string     `json:"spreadsheet_id"`
	Range         string     `json:"range"`
	Rows          [][]string `json:"rows"`
}

// SnapshotInfo describes an archived snapshot.
type SnapshotInfo struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archive stores sheet snapshots in object storage so any run can be
// replayed later.
type Archive struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewArchive creates an archive in bucket.
func NewArchive(client storage.Client, bucket, region string, logger *zap.Logger) *Archive {
	return &Archive{client: client, bucket: bucket, region: region, logger: logger}
}

// ObjectName returns the object name of a snapshot fetched at t.
func ObjectName(t time.Time) string {
	return SnapshotPrefix + t.UTC().Format("20060102T150405.000Z") + ".json"
}

// Save uploads the snapshot and returns its object name.
func (a *Archive) Save(ctx context.Context, snap Snapshot) (string, error) {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return "", err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := ObjectName(snap.FetchedAt)
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot %s: %w", name, err)
	}

	a.logger.Debug("Snapshot archived", zap.String("object", name), zap.Int("rows", len(snap.Rows)))
	return name, nil
}

// Load downloads a snapshot. The name may omit the prefix and extension.
func (a *Archive) Load(ctx context.Context, name string) (*Snapshot, error) {
	name = normalizeName(name)

	obj, err := a.client.GetObject(ctx, a.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", name, err)
	}
	defer obj.Close()

	var snap Snapshot
	if err := json.NewDecoder(obj).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return &snap, nil
}

// List returns the archived snapshots, newest first.
func (a *Archive) List(ctx context.Context) ([]SnapshotInfo, error) {
	var out []SnapshotInfo
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: SnapshotPrefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list snapshots: %w", obj.Err)
		}
		out = append(out, SnapshotInfo{Name: obj.Key, Size: obj.Size, LastModified: obj.LastModified})
	}
	// Names embed the fetch time, so they sort chronologically.
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func normalizeName(name string) string {
	if !strings.HasPrefix(name, SnapshotPrefix) {
		name = SnapshotPrefix + name
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}
