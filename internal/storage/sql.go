package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one stored key.
type Entry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "brisa_kv" }

// SQLStore keeps values in a single gorm-managed table.
type SQLStore struct {
	DB *gorm.DB

	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (creating if needed) a sqlite database. A path ending
// in .json is swapped for .db so the file default can be reused.
func NewSQLiteStore(path string) (*SQLStore, error) {
	if path == "" {
		return nil, errors.New("storage: sqlite path is empty")
	}
	if strings.HasSuffix(path, ".json") {
		path = strings.TrimSuffix(path, ".json") + ".db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("storage: creating %s: %w", filepath.Dir(path), err)
	}
	return NewSQLStore(sqlite.Open(path))
}

func NewPostgresStore(dsn string) (*SQLStore, error) {
	return NewSQLStore(postgres.Open(dsn))
}

// NewSQLStore opens dialector and migrates the key-value table.
func NewSQLStore(dialector gorm.Dialector) (*SQLStore, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("storage: opening database: %w", err)
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("storage: migrating: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(4)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return &SQLStore{DB: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	var e Entry
	err := s.DB.WithContext(ctx).Where(keyIs(key)).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	e := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return s.DB.WithContext(ctx).Where(keyIs(key)).Delete(&Entry{}).Error
}

func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func keyIs(key string) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}
