package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Keys of the persisted session fields.
const (
	KeyUsername = "user_username"
	KeyName     = "user_name"
	KeyType     = "user_type"
	KeyToken    = "token"
)

// ErrNoSession means nothing usable is stored; the caller should log in.
var ErrNoSession = errors.New("not logged in")

// FileStore is a small key/value file used by the CLI to remember the login.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is ~/.ledgerctl/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ledgerctl", "session.json"), nil
}

func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.read()
	if err != nil {
		return err
	}
	delete(values, key)
	if len(values) == 0 {
		err := os.Remove(f.path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return f.write(values)
}

// Save persists the session fields and the API token.
func (f *FileStore) Save(s Session, token string) error {
	for _, kv := range [][2]string{
		{KeyUsername, s.Username},
		{KeyName, s.Name},
		{KeyType, s.Role.String()},
		{KeyToken, token},
	} {
		if err := f.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Load returns ErrNoSession unless both username and name are stored.
func (f *FileStore) Load() (Session, string, error) {
	f.mu.Lock()
	values, err := f.read()
	f.mu.Unlock()
	if err != nil {
		return Session{}, "", err
	}
	s := Session{
		Username: values[KeyUsername],
		Name:     values[KeyName],
		Role:     ParseRole(values[KeyType]),
	}
	if !s.Authenticated() {
		return Session{}, "", ErrNoSession
	}
	return s, values[KeyToken], nil
}

// Clear is logout.
func (f *FileStore) Clear() error {
	for _, k := range []string{KeyUsername, KeyName, KeyType, KeyToken} {
		if err := f.Remove(k); err != nil {
			return err
		}
	}
	return nil
}
