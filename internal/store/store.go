package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"voicebook/internal/domain/book"
	"voicebook/internal/domain/chat"
)

const (
	booksFileName         = "books.json"
	conversationsFileName = "conversations.json"
)

// Repository is the persistence contract for the library and chat history.
// Core logic depends only on this interface, never on the storage mechanism.
type Repository interface {
	LoadBooks() ([]book.Book, error)
	SaveBooks(books []book.Book) error
	LoadConversations() ([]chat.Conversation, error)
	SaveConversations(conversations []chat.Conversation) error
}

// FileStore keeps collections as pretty-printed JSON files in a directory.
// A missing file reads back as an empty collection.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns the store location, preferring the user config
// directory and falling back to the working directory.
func DefaultDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "voicebook")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".voicebook")
	}
	return "voicebook-data"
}

func (s *FileStore) LoadBooks() ([]book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	books := []book.Book{}
	if err := s.load(booksFileName, &books); err != nil {
		return nil, err
	}
	return books, nil
}

func (s *FileStore) SaveBooks(books []book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(booksFileName, books)
}

func (s *FileStore) LoadConversations() ([]chat.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conversations := []chat.Conversation{}
	if err := s.load(conversationsFileName, &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

func (s *FileStore) SaveConversations(conversations []chat.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(conversationsFileName, conversations)
}

func (s *FileStore) load(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return os.WriteFile(filepath.Join(s.dir, name), data, 0644)
}
