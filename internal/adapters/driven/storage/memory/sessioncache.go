package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/devkavach22/kavach-edit/internal/core/domain"
	"github.com/devkavach22/kavach-edit/internal/core/ports/driven"
)

// Ensure SessionCache implements the interface.
var _ driven.SessionResultCache = (*SessionCache)(nil)

// SessionCache is an in-memory implementation of driven.SessionResultCache
// for testing. Records are held as encoded JSON, like the durable store.
type SessionCache struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewSessionCache creates a new in-memory session cache.
func NewSessionCache() *SessionCache {
	return &SessionCache{
		records: make(map[string][]byte),
	}
}

// Save stores the record.
func (c *SessionCache) Save(_ context.Context, file domain.ProcessedFile) error {
	data, err := json.Marshal(file)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[domain.SessionRecordKey] = data
	return nil
}

// Load returns the stored record, discarding it if malformed.
func (c *SessionCache) Load(_ context.Context) (*domain.ProcessedFile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.records[domain.SessionRecordKey]
	if !ok {
		return nil, domain.ErrNotFound
	}

	var file domain.ProcessedFile
	if err := json.Unmarshal(data, &file); err != nil || !file.IsValid() {
		delete(c.records, domain.SessionRecordKey)
		return nil, domain.ErrNotFound
	}
	return &file, nil
}

// Clear removes the record.
func (c *SessionCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.records, domain.SessionRecordKey)
	return nil
}

// SetRaw stores raw bytes under the record key, bypassing encoding.
func (c *SessionCache) SetRaw(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[domain.SessionRecordKey] = data
}
