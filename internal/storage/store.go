// Package storage - долговременное key/value хранилище состояния клиента
// (флаг завершения урока, токен сессии, свёрнутое меню).
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Store - долговременное key/value хранилище.
type Store interface {
	// Get возвращает значение и признак наличия ключа.
	Get(key string) (string, bool, error)

	Set(key, value string) error

	Delete(key string) error

	Close() error
}

// Backend тип хранилища.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Open открывает хранилище выбранного типа в директории dir.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(dir, "state.db"))
	case BackendFile, "":
		return NewFileStore(filepath.Join(dir, "state.json"))
	default:
		return nil, fmt.Errorf("неизвестный тип хранилища: %s", backend)
	}
}

// MemoryStore держит значения только в памяти. Используется, когда
// хранилище на диске открыть не удалось.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// DefaultDir возвращает директорию рядом с бинарником.
func DefaultDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("не удалось определить путь к бинарнику: %w", err)
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return "", fmt.Errorf("не удалось разрешить симлинки: %w", err)
	}
	return filepath.Dir(execPath), nil
}

// Flags адаптирует Store к булевым флагам.
// Значения хранятся строками "true"/"false", как в localStorage.
type Flags struct {
	Store Store
}

// Bool возвращает флаг. Отсутствующий или нечитаемый ключ - false.
func (f Flags) Bool(key string) (bool, error) {
	v, ok, err := f.Store.Get(key)
	if err != nil || !ok {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return b, nil
}

// SetBool сохраняет флаг.
func (f Flags) SetBool(key string, value bool) error {
	return f.Store.Set(key, strconv.FormatBool(value))
}
