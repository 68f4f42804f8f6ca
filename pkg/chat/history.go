package chat

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// History manages chat message history persisted as a JSON file
type History struct {
	Messages []Message `json:"messages"`
	mu       sync.RWMutex
	filePath string
}

// NewHistory creates a history manager backed by the given file, loading
// any messages already stored there.
func NewHistory(filePath string) (*History, error) {
	h := &History{
		Messages: make([]Message, 0),
		filePath: filePath,
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := h.Load(); err != nil {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}

	return h, nil
}

// Add appends a message and saves the history
func (h *History) Add(msg Message) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = append(h.Messages, msg)
	return h.save()
}

// GetMessages returns a copy of all messages in the history
func (h *History) GetMessages() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msgs := make([]Message, len(h.Messages))
	copy(msgs, h.Messages)
	return msgs
}

// Len returns the number of stored messages
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Messages)
}

// Clear removes all messages and saves the empty history
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.Messages = h.Messages[:0]
	return h.save()
}

// Load reads the history file into memory
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.filePath)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	return json.Unmarshal(data, h)
}

// save writes the history to disk. Callers must hold the lock.
func (h *History) save() error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	return os.WriteFile(h.filePath, data, 0644)
}
