// Package snippets хранит переиспользуемые фрагменты текста.
package snippets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrNotFound возвращается для неизвестного имени фрагмента.
var ErrNotFound = errors.New("фрагмент не найден")

// Store хранилище фрагментов: плоская карта имя-текст в JSON-файле
// рядом с бинарником. Отсутствующий файл означает пустое хранилище.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// New открывает хранилище snippets.json рядом с бинарником.
func New() *Store {
	return newStore(defaultPath())
}

func newStore(path string) *Store {
	s := &Store{
		path: path,
		data: map[string]string{},
	}
	s.load()
	return s
}

// defaultPath возвращает путь к snippets.json рядом с бинарником.
func defaultPath() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(execPath), "snippets.json")
}

// load загружает фрагменты из файла. Любая ошибка оставляет хранилище
// пустым.
func (s *Store) load() {
	if s.path == "" {
		return
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}

	var parsed map[string]string
	if err := json.Unmarshal(data, &parsed); err != nil {
		return
	}
	if parsed != nil {
		s.data = parsed
	}
}

// persist сохраняет фрагменты через временный файл и переименование.
// Вызывается под mu.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.path)
}

// List возвращает имена фрагментов в алфавитном порядке.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get возвращает текст фрагмента по имени.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.data[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return text, nil
}

// Save сохраняет фрагмент, перезаписывая существующий с тем же именем.
func (s *Store) Save(name, text string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("имя фрагмента пустое")
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("текст фрагмента пуст")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = text
	return s.persist()
}

// Delete удаляет фрагмент по имени.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(s.data, name)
	return s.persist()
}

// Len возвращает число фрагментов.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
