package session

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/okravets/storefront/internal/models"
)

// Store is the string-keyed value store backing one user's browsing
// session. The cart and the active promo code live here.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, bool, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
}

type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var entry models.SessionEntry
	err := s.DB.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, sessionID, key, value string) error {
	entry := models.SessionEntry{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, sessionID, key string) error {
	return s.DB.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Delete(&models.SessionEntry{}).Error
}

// MemoryStore keeps session values in a map. Used in tests.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[sessionID][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[sessionID] == nil {
		s.values[sessionID] = make(map[string]string)
	}
	s.values[sessionID][key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values[sessionID], key)
	return nil
}
