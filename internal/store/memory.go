package store

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore implements Store in process memory. Values do not survive a
// restart.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string][]byte
	snapshots map[string]*SnapshotRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:    make(map[string][]byte),
		snapshots: make(map[string]*SnapshotRecord),
	}
}

func (s *MemoryStore) GetAttribute(k Key) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[string(k.bytes())]
	if !ok {
		return nil, fmt.Errorf("attribute %s: %w", k, ErrNotFound)
	}
	return bytes.Clone(v), nil
}

func (s *MemoryStore) PutAttribute(k Key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[string(k.bytes())] = bytes.Clone(nonNil(value))
	return nil
}

func (s *MemoryStore) UpdateAttribute(k Key, fn func(old []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(k.bytes())
	next, err := fn(bytes.Clone(s.values[key]))
	if err != nil {
		return err
	}
	if next != nil {
		s.values[key] = bytes.Clone(next)
	}
	return nil
}

func (s *MemoryStore) DeleteDevice(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := string(devicePrefix(name))
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			delete(s.values, k)
		}
	}
	delete(s.snapshots, name)
	return nil
}

func (s *MemoryStore) SaveSnapshot(rec *SnapshotRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	cp.Data = bytes.Clone(rec.Data)
	s.snapshots[rec.Name] = &cp
	return nil
}

func (s *MemoryStore) GetSnapshot(name string) (*SnapshotRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.snapshots[name]
	if !ok {
		return nil, fmt.Errorf("snapshot %s: %w", name, ErrNotFound)
	}
	cp := *rec
	cp.Data = bytes.Clone(rec.Data)
	return &cp, nil
}

// ListSnapshots returns the snapshots ordered by device name, as BoltStore does.
func (s *MemoryStore) ListSnapshots() ([]*SnapshotRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]*SnapshotRecord, 0, len(s.snapshots))
	for _, rec := range s.snapshots {
		cp := *rec
		cp.Data = bytes.Clone(rec.Data)
		recs = append(recs, &cp)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs, nil
}

func (s *MemoryStore) Close() error { return nil }
