package store

import (
	"bytes"
	"sort"
	"sync"
)

// memoryBackend is a mutex-guarded in-memory backend, the default Store
// implementation for tests and single-process deployments.
type memoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{data: make(map[string][]byte)}
}

func (b *memoryBackend) get(key []byte) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.data[string(key)]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (b *memoryBackend) has(key []byte) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.data[string(key)]
	return ok, nil
}

func (b *memoryBackend) set(key, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	b.data[string(key)] = cp
	return nil
}

func (b *memoryBackend) delete(key []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.data, string(key))
	return nil
}

// sortedKeys returns b.data's keys in ascending byte order. Caller must
// hold b.mu.
func (b *memoryBackend) sortedKeys() []string {
	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func inRange(key string, from, to []byte) bool {
	if from != nil && bytes.Compare([]byte(key), from) < 0 {
		return false
	}
	if to != nil && bytes.Compare([]byte(key), to) >= 0 {
		return false
	}
	return true
}

func (b *memoryBackend) count(from, to []byte) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var n uint64
	for k := range b.data {
		if inRange(k, from, to) {
			n++
		}
	}
	return n, nil
}

func (b *memoryBackend) list(from, to []byte, limit *uint64) ([][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out [][]byte
	for _, k := range b.sortedKeys() {
		if !inRange(k, from, to) {
			continue
		}
		if limit != nil && uint64(len(out)) >= *limit {
			break
		}
		v := b.data[k]
		cp := make([]byte, len(v))
		copy(cp, v)
		out = append(out, cp)
	}
	return out, nil
}

func (b *memoryBackend) dump(prefix []byte) (map[string][]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]byte)
	for _, k := range b.sortedKeys() {
		if prefix != nil && !bytes.HasPrefix([]byte(k), prefix) {
			continue
		}
		v := b.data[k]
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}
