package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"examwatch/pkg/exam"
	"examwatch/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultLimit is the page size of Recent when the caller passes zero.
const DefaultLimit = 20

// MaxLimit caps Recent.
const MaxLimit = 500

// ErrStoreClosed is returned after Close.
var ErrStoreClosed = errors.New("history store closed")

// Store persists cycle reports in SQLite.
type Store struct {
	db   *gorm.DB
	keep int
}

// Open opens (creating if needed) the database at path and migrates the
// schema. keep > 0 retains only the newest keep records.
func Open(path string, keep int) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// SQLite allows a single writer.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&CycleRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	logger.Info("History store opened", zap.String("path", path), zap.Int("keep", keep))
	return &Store{db: db, keep: keep}, nil
}

// Record stores one cycle report and prunes old records.
func (s *Store) Record(ctx context.Context, report exam.CycleReport) error {
	if s.db == nil {
		return ErrStoreClosed
	}

	rec := fromReport(report)
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to insert cycle record: %w", err)
	}

	if s.keep > 0 {
		err := s.db.WithContext(ctx).Exec(
			"DELETE FROM cycle_records WHERE id NOT IN (SELECT id FROM cycle_records ORDER BY started_at DESC LIMIT ?)",
			s.keep,
		).Error
		if err != nil {
			logger.FromContext(ctx).Warn("Failed to prune history", zap.Error(err))
		}
	}
	return nil
}

// Recent returns the newest records first.
func (s *Store) Recent(ctx context.Context, limit int) ([]CycleRecord, error) {
	if s.db == nil {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	var records []CycleRecord
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query cycle records: %w", err)
	}
	return records, nil
}

// Summarize aggregates every stored record.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	if s.db == nil {
		return Summary{}, ErrStoreClosed
	}

	var sum Summary
	db := s.db.WithContext(ctx).Model(&CycleRecord{})

	if err := db.Count(&sum.Total).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to count records: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&CycleRecord{}).Where("succeeded = ?", false).Count(&sum.Failures).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to count failures: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&CycleRecord{}).Where("notified = ?", true).Count(&sum.Notified).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to count notifications: %w", err)
	}

	var last CycleRecord
	if err := s.db.WithContext(ctx).Order("started_at DESC").Limit(1).Find(&last).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to query last record: %w", err)
	}
	if last.ID != "" {
		sum.LastStarted = &last.StartedAt
	}

	var lastAvail CycleRecord
	if err := s.db.WithContext(ctx).Where("slot_count > 0").Order("started_at DESC").Limit(1).Find(&lastAvail).Error; err != nil {
		return Summary{}, fmt.Errorf("failed to query last availability: %w", err)
	}
	if lastAvail.ID != "" {
		sum.LastAvailable = &lastAvail.StartedAt
	}

	return sum, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

func fromReport(r exam.CycleReport) CycleRecord {
	rec := CycleRecord{
		ID:         r.ID,
		StartedAt:  r.StartedAt.UTC(),
		DurationMs: r.Duration.Milliseconds(),
		Succeeded:  r.Succeeded(),
		SlotCount:  len(r.Slots),
		Slots:      datatypes.NewJSONSlice(nonNil(r.Slots)),
		NewSlots:   datatypes.NewJSONSlice(nonNil(r.NewSlots)),
		Notified:   r.Notified,
	}
	if r.Err != nil {
		rec.Error = r.Err.Error()
	} else {
		rec.Decision = r.Decision.String()
	}
	return rec
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
