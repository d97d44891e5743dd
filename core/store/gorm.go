package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormStore is the hosted-database implementation of Store.
type gormStore struct {
	db       *gorm.DB
	notifier *notifier
}

// NewGorm wraps a GORM connection as a Store. Table layout comes from the
// schema catalog; records are moved as plain column maps, so the store has no
// per-table model types.
func NewGorm(db *gorm.DB) Store {
	return &gormStore{db: db, notifier: newNotifier()}
}

func (s *gormStore) SelectAll(ctx context.Context, table string) ([]Record, error) {
	var rows []map[string]any
	if err := s.db.WithContext(ctx).Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select all from %s: %w", table, err)
	}
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = normalizeRecord(row)
	}
	return out, nil
}

func (s *gormStore) FindByKey(ctx context.Context, table, field, value string) (Record, error) {
	var row map[string]any
	err := s.db.WithContext(ctx).Table(table).Where(field+" = ?", value).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", table, field, err)
	}
	return normalizeRecord(row), nil
}

func (s *gormStore) Insert(ctx context.Context, table string, rec Record) (string, error) {
	row := make(map[string]any, len(rec)+3)
	for k, v := range rec {
		row[k] = v
	}
	id := uuid.NewString()
	now := time.Now().UTC()
	row["id"] = id
	row["created_at"] = now
	row["updated_at"] = now

	if err := s.db.WithContext(ctx).Table(table).Create(row).Error; err != nil {
		return "", fmt.Errorf("insert into %s: %w", table, err)
	}
	s.notifier.publish(Event{Table: table, Kind: EventInsert})
	return id, nil
}

func (s *gormStore) Update(ctx context.Context, table, id string, fields Record) error {
	row := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["updated_at"] = time.Now().UTC()

	// RowsAffected is deliberately not checked: MySQL reports zero affected
	// rows for an update that changes nothing, which is the normal case when
	// the same workbook is imported twice.
	result := s.db.WithContext(ctx).Table(table).Where("id = ?", id).Updates(row)
	if result.Error != nil {
		return fmt.Errorf("update %s id %s: %w", table, id, result.Error)
	}
	s.notifier.publish(Event{Table: table, Kind: EventUpdate})
	return nil
}

func (s *gormStore) DeleteWhere(ctx context.Context, table, field, value string) (int64, error) {
	result := s.db.WithContext(ctx).Table(table).Where(field+" = ?", value).Delete(nil)
	if result.Error != nil {
		return 0, fmt.Errorf("delete from %s: %w", table, result.Error)
	}
	if result.RowsAffected > 0 {
		s.notifier.publish(Event{Table: table, Kind: EventDelete})
	}
	return result.RowsAffected, nil
}

func (s *gormStore) Subscribe(tables ...string) (<-chan Event, func()) {
	return s.notifier.Subscribe(tables...)
}
