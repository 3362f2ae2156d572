package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

// FileStore хранит значения в JSON файле. Файл перезаписывается при каждом
// изменении.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string

	quarantined string
}

// NewFileStore открывает (или создаёт при первой записи) файл хранилища.
// Повреждённый файл переносится в <path>.corrupt, хранилище начинается
// с пустого состояния.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", path, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			s.values = make(map[string]string)
			bad := path + ".corrupt"
			if err := os.Rename(path, bad); err != nil {
				return nil, fmt.Errorf("перенос повреждённого %s: %w", path, err)
			}
			s.quarantined = bad
		}
	}

	return s, nil
}

// Quarantined возвращает путь, куда при открытии был перенесён
// повреждённый файл, или пустую строку.
func (s *FileStore) Quarantined() string {
	return s.quarantined
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.save()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.save()
}

func (s *FileStore) Close() error {
	return nil
}

// save вызывается под s.mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}
	// Пишем во временный файл и переименовываем, чтобы не оставить обрезанный JSON
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
