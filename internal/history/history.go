// Package history persists a log of completed compression runs in a local
// sqlite database so the CLI can report past savings.
package history

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Record is one completed compression run.
type Record struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Kind         string  `json:"kind"`
	Tool         string  `json:"tool"`
	InputPath    string  `json:"input_path"`
	OutputPath   string  `json:"output_path"`
	OriginalKB   float64 `json:"original_kb"`
	CompressedKB float64 `json:"compressed_kb"`
	SavedPct     float64 `json:"saved_pct"`
	CreatedAt    time.Time
}

// Store handles history database operations.
type Store struct {
	db *gorm.DB
}

// Open opens the history database at path, creating and migrating it as
// needed.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Add saves a record, computing SavedPct from the recorded sizes.
func (s *Store) Add(r *Record) error {
	if r.OriginalKB > 0 {
		r.SavedPct = (1 - r.CompressedKB/r.OriginalKB) * 100
	}
	return s.db.Create(r).Error
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	var records []Record
	err := s.db.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
