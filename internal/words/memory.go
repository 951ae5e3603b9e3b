package words

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Memory is an in-memory Catalog. Topic order is insertion order.
// Concurrency-safe via RWMutex.
type Memory struct {
	mu     sync.RWMutex
	order  []string
	topics map[string][]string
}

// NewMemory returns an empty catalog.
func NewMemory() *Memory {
	return &Memory{topics: make(map[string][]string)}
}

// Topics implements Catalog.
func (m *Memory) Topics(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order), nil
}

// Words implements Catalog.
func (m *Memory) Words(ctx context.Context, topic string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list, ok := m.topics[topic]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTopicNotFound, topic)
	}
	return slices.Clone(list), nil
}

// AddWord implements Catalog. Duplicate words are ignored.
func (m *Memory) AddWord(ctx context.Context, topic, word string) error {
	topic, word = strings.TrimSpace(topic), strings.TrimSpace(word)
	if topic == "" || word == "" {
		return ErrInvalidEntry
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.topics[topic]
	if !ok {
		m.order = append(m.order, topic)
	}
	if !slices.Contains(list, word) {
		list = append(list, word)
	}
	m.topics[topic] = list
	return nil
}
