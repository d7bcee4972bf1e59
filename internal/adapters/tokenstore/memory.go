package tokenstore

import (
	"errors"
	"sync"

	"github.com/findly/findly-go/internal/core/domain"
)

var ErrNoStoredPair = errors.New("no token pair stored")

// Memory keeps the token pair in process memory only. Used by tests and by
// callers that do not want credentials on disk.
type Memory struct {
	mu   sync.Mutex
	pair domain.TokenPair
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Pair() (domain.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair, nil
}

func (m *Memory) SetPair(pair domain.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	return nil
}

func (m *Memory) SetAccessToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair.Empty() {
		return ErrNoStoredPair
	}
	m.pair.AccessToken = token
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = domain.TokenPair{}
	return nil
}
