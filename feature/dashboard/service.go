package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"github.com/reguiia/turnaround-vision-dashboard/core/reconcile"
	"github.com/reguiia/turnaround-vision-dashboard/core/schema"
	"github.com/reguiia/turnaround-vision-dashboard/core/storage"
	"github.com/reguiia/turnaround-vision-dashboard/core/store"
	"github.com/reguiia/turnaround-vision-dashboard/core/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const archivePrefix = "exports/"

// ErrArchiveDisabled is returned by the archive operations when no object
// storage is configured.
var ErrArchiveDisabled = errors.New("export archiving is not configured")

// Service orchestrates the dashboard data round trip: workbook import,
// workbook export with optional archiving, and the live data snapshot.
type Service struct {
	store         store.Store
	engine        *reconcile.Engine
	snapshot      *Snapshot
	archive       storage.Client
	bucket        string
	logger        *zap.Logger
	importTimeout time.Duration
}

// NewService wires the dashboard service. archive may be nil to disable
// export archiving.
func NewService(st store.Store, archive storage.Client, bucket string, logger *zap.Logger, importCfg reconcile.Config) *Service {
	timeout := time.Duration(importCfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Service{
		store:         st,
		engine:        reconcile.NewEngine(st, logger),
		snapshot:      NewSnapshot(st, logger),
		archive:       archive,
		bucket:        bucket,
		logger:        logger,
		importTimeout: timeout,
	}
}

// Import parses workbook bytes and reconciles them into the store under the
// configured import deadline. A workbook.ErrNotAWorkbook error means nothing
// was written; otherwise the report carries per-row detail and the outcome.
func (s *Service) Import(ctx context.Context, data []byte) (*reconcile.ImportReport, error) {
	wb, err := workbook.Parse(data)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	return s.engine.ImportWorkbook(ctx, wb)
}

// Export builds a workbook from the live store and, when archiving is
// configured, stores a timestamped copy in the bucket. The workbook bytes
// are returned either way; archive failures only log.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	snapshot := make(map[string][]store.Record, len(schema.TableNames()))
	for _, name := range schema.TableNames() {
		rows, err := s.store.SelectAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		snapshot[name] = rows
	}

	data, err := workbook.Export(snapshot)
	if err != nil {
		return nil, err
	}

	s.archiveExport(ctx, data)
	return data, nil
}

func (s *Service) archiveExport(ctx context.Context, data []byte) {
	if s.archive == nil || s.bucket == "" {
		return
	}
	objectName := fmt.Sprintf("%sturnaround_export_%s.xlsx", archivePrefix, time.Now().UTC().Format("20060102T150405Z"))
	_, err := s.archive.PutObject(ctx, s.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xlsxContentType})
	if err != nil {
		s.logger.Warn("export archive failed", zap.String("object", objectName), zap.Error(err))
		return
	}
	s.logger.Info("export archived", zap.String("object", objectName))
}

// ArchiveEntry describes one archived export in object storage.
type ArchiveEntry struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Archives lists the archived exports, newest first.
func (s *Service) Archives(ctx context.Context) ([]ArchiveEntry, error) {
	if s.archive == nil || s.bucket == "" {
		return nil, ErrArchiveDisabled
	}
	exists, err := s.archive.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	entries := []ArchiveEntry{}
	objects := s.archive.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    archivePrefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("list archives: %w", obj.Err)
		}
		entries = append(entries, ArchiveEntry{
			Name:         strings.TrimPrefix(obj.Key, archivePrefix),
			Size:         obj.Size,
			LastModified: obj.LastModified,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastModified.After(entries[j].LastModified)
	})
	return entries, nil
}

// OpenArchive streams one archived export by its listing name. The caller
// must close the returned reader.
func (s *Service) OpenArchive(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.archive == nil || s.bucket == "" {
		return nil, ErrArchiveDisabled
	}
	// Listing names are flat; anything path-like never matches an archive.
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return nil, fmt.Errorf("invalid archive name %q", name)
	}
	obj, err := s.archive.GetObject(ctx, s.bucket, archivePrefix+name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch archive %s: %w", name, err)
	}
	return obj, nil
}

// Data returns the cached snapshot keyed by display sheet name, the shape
// the dashboard views consume.
func (s *Service) Data(ctx context.Context) (map[string][]store.Record, error) {
	tables, err := s.snapshot.Tables(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]store.Record, len(tables))
	for _, tbl := range schema.Tables() {
		out[tbl.SheetName] = tables[tbl.Name]
	}
	return out, nil
}

// Summary returns per-table record counts keyed by display sheet name.
func (s *Service) Summary(ctx context.Context) (map[string]int, error) {
	tables, err := s.snapshot.Tables(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(tables))
	for _, tbl := range schema.Tables() {
		out[tbl.SheetName] = len(tables[tbl.Name])
	}
	return out, nil
}

// Close releases the snapshot's change-feed subscription.
func (s *Service) Close() {
	s.snapshot.Close()
}
