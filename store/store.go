package store

import (
	"errors"
	"log"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Local storage keys. These names are part of the platform contract and are
// shared with the web client.
const (
	KeyAuthToken   = "abhyaasi_authToken"
	KeyUser        = "abhyaasi_user"
	KeyChatHistory = "abhyaasi_chat_history"
	KeyEditorTheme = "editorTheme"
)

// Entry is one persisted key/value pair.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}

// Store is the client's persistent local state: auth token, cached user
// blob, chat history and preferences. Changes are pushed to subscribers so
// nobody has to poll for them.
type Store struct {
	db *gorm.DB

	mu   sync.Mutex
	subs []func(key string)
}

// Open opens (or creates) the store database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the value for key and whether it was present. A failing
// database is not the same as an absent key, so anything other than
// ErrRecordNotFound is logged before the key is reported missing.
func (s *Store) Get(key string) (string, bool) {
	var entry Entry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("store: reading %s: %v", key, err)
		}
		return "", false
	}
	return entry.Value, true
}

// Set upserts key to value and notifies subscribers.
func (s *Store) Set(key, value string) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Delete removes key and notifies subscribers. Deleting an absent key is
// not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Where("key = ?", key).Delete(&Entry{}).Error; err != nil {
		return err
	}
	s.notify(key)
	return nil
}

// Subscribe registers fn to be called with the key of every change.
func (s *Store) Subscribe(fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify(key string) {
	s.mu.Lock()
	subs := make([]func(string), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(key)
	}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
