// Package session хранит токен и профиль администратора между запусками консоли.
//
// FileStore пишет сессию в JSON-файл с правами 0600 в каталоге конфигурации
// пользователя, MemoryStore держит её в памяти процесса.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/magazine-admin/internal/models"
)

// ErrNoSession возвращается, когда сохранённой сессии нет.
var ErrNoSession = errors.New("no session")

// Store хранилище учётных данных.
type Store interface {
	Get() (*models.Session, error)
	Set(s models.Session) error
	Clear() error
	IsAuthenticated() bool
}

// DefaultPath возвращает путь к файлу сессии по умолчанию.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session.DefaultPath: %w", err)
	}
	return filepath.Join(dir, "magazine-admin", "session.json"), nil
}

// FileStore хранит сессию в файле.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore создаёт FileStore. Пустой path означает путь по умолчанию.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// Path путь к файлу сессии.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get() (*models.Session, error) {
	const op = "session.FileStore.Get"
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (f *FileStore) Set(s models.Session) error {
	const op = "session.FileStore.Set"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.FileStore.Clear: %w", err)
	}
	return nil
}

func (f *FileStore) IsAuthenticated() bool {
	s, err := f.Get()
	if err != nil {
		return false
	}
	return tokenUsable(s.Token, f.now())
}

// MemoryStore хранит сессию в памяти.
type MemoryStore struct {
	mu  sync.RWMutex
	s   *models.Session
	now func() time.Time
}

// NewMemoryStore создаёт пустое хранилище.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) Get() (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.s == nil {
		return nil, ErrNoSession
	}
	s := *m.s
	return &s, nil
}

func (m *MemoryStore) Set(s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = &s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = nil
	return nil
}

func (m *MemoryStore) IsAuthenticated() bool {
	s, err := m.Get()
	if err != nil {
		return false
	}
	return tokenUsable(s.Token, m.now())
}

// tokenUsable проверяет, что токен не пуст и, если это JWT с exp, не истёк.
// Подпись не проверяется: ключа у консоли нет, токен проверит удалённый API.
func tokenUsable(token string, now time.Time) bool {
	if token == "" {
		return false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return now.Before(claims.ExpiresAt.Time)
}

// Token возвращает токен из хранилища или пустую строку.
func Token(s Store) string {
	sess, err := s.Get()
	if err != nil {
		return ""
	}
	return sess.Token
}
