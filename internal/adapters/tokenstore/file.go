package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/findly/findly-go/internal/core/domain"
)

// File persists the token pair as a JSON file, the client-side counterpart
// of browser local storage. The file is written with 0600 permissions.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Pair() (domain.TokenPair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) SetPair(pair domain.TokenPair) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(pair)
}

func (f *File) SetAccessToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	pair, err := f.read()
	if err != nil {
		return err
	}
	if pair.Empty() {
		return ErrNoStoredPair
	}
	pair.AccessToken = token
	return f.write(pair)
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear token file: %w", err)
	}
	return nil
}

func (f *File) read() (domain.TokenPair, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return domain.TokenPair{}, nil
	}
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to read token file: %w", err)
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		// A corrupt file is treated as logged out rather than a hard error.
		return domain.TokenPair{}, nil
	}
	return pair, nil
}

func (f *File) write(pair domain.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
