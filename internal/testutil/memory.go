package testutil

import (
	"strings"
	"sync"
)

// MemoryPreferenceRepository is an in-memory PreferenceRepository
type MemoryPreferenceRepository struct {
	mu     sync.Mutex
	values map[int64]map[string]string
}

// NewMemoryPreferenceRepository creates an empty store
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{values: make(map[int64]map[string]string)}
}

func (r *MemoryPreferenceRepository) Get(userID int64, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[userID][key]
	return value, ok, nil
}

func (r *MemoryPreferenceRepository) Set(userID int64, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[userID] == nil {
		r.values[userID] = make(map[string]string)
	}
	r.values[userID][key] = value
	return nil
}

func (r *MemoryPreferenceRepository) Delete(userID int64, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values[userID], key)
	return nil
}

func (r *MemoryPreferenceRepository) ListByPrefix(userID int64, prefix string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string)
	for k, v := range r.values[userID] {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

func (r *MemoryPreferenceRepository) DeleteByPrefix(userID int64, prefix string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.values[userID] {
		if strings.HasPrefix(k, prefix) {
			delete(r.values[userID], k)
		}
	}
	return nil
}
