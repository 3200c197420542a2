package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory is a Collection held in process memory.
type Memory[T any, PT Record[T]] struct {
	mu     sync.RWMutex
	items  []T
	nextID int64
	now    func() time.Time
}

// NewMemory returns an empty in-memory collection.
func NewMemory[T any, PT Record[T]]() *Memory[T, PT] {
	return &Memory[T, PT]{now: func() time.Time { return time.Now().UTC() }}
}

func (m *Memory[T, PT]) Create(_ context.Context, rec *T) (*T, error) {
	if rec == nil {
		return nil, fmt.Errorf("store: create nil record")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	item := clone[T, PT](rec)
	m.nextID++
	PT(&item).SetEntityID(m.nextID)
	PT(&item).Touch(m.now(), true)
	m.items = append(m.items, item)

	out := clone[T, PT](&item)
	return &out, nil
}

func (m *Memory[T, PT]) FindByID(_ context.Context, id int64) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	out := clone[T, PT](&m.items[i])
	return &out, nil
}

func (m *Memory[T, PT]) FindOne(_ context.Context, f Filter) (*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.items {
		if f.Matches(PT(&m.items[i])) {
			out := clone[T, PT](&m.items[i])
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory[T, PT]) FindAll(_ context.Context, f Filter) ([]*T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*T, 0)
	for i := range m.items {
		if f.Matches(PT(&m.items[i])) {
			item := clone[T, PT](&m.items[i])
			out = append(out, &item)
		}
	}
	return out, nil
}

func (m *Memory[T, PT]) Update(_ context.Context, id int64, mutate func(*T) error) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	item := clone[T, PT](&m.items[i])
	if err := mutate(&item); err != nil {
		return nil, err
	}
	// The id is not part of the patch.
	PT(&item).SetEntityID(id)
	PT(&item).Touch(m.now(), false)
	m.items[i] = clone[T, PT](&item)

	out := item
	return &out, nil
}

func (m *Memory[T, PT]) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false, nil
	}
	m.items = append(m.items[:i], m.items[i+1:]...)
	return true, nil
}

// Len reports the number of stored records.
func (m *Memory[T, PT]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory[T, PT]) indexOf(id int64) int {
	for i := range m.items {
		if PT(&m.items[i]).EntityID() == id {
			return i
		}
	}
	return -1
}

// clone copies v, deeply when the record type implements Cloner.
func clone[T any, PT Record[T]](v *T) T {
	if c, ok := any(PT(v)).(Cloner[T]); ok {
		return c.Clone()
	}
	return *v
}
