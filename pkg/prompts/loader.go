package prompts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Message is one templated chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Template is a prompt template. Model/MaxTokens/Temperature override the
// caller's quality-tier defaults when set in the template file.
type Template struct {
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

// Loader loads prompt templates from JSON files with an in-memory cache.
// When a template file is absent the compiled-in default is used, so the
// pipeline keeps working without a prompts directory.
type Loader struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Template
}

// NewLoader creates a loader reading templates from dir
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: make(map[string]*Template),
	}
}

// Load returns the template with the given name
func (l *Loader) Load(name string) (*Template, error) {
	l.mu.RLock()
	if t, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return t, nil
	}
	l.mu.RUnlock()

	t, err := l.read(name)
	if err != nil {
		if def, ok := defaultTemplates[name]; ok {
			t = def
		} else {
			return nil, fmt.Errorf("failed to load prompt template %s: %w", name, err)
		}
	}

	l.mu.Lock()
	l.cache[name] = t
	l.mu.Unlock()
	return t, nil
}

func (l *Loader) read(name string) (*Template, error) {
	path := filepath.Join(l.dir, name+".json")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var t Template
	if err := json.Unmarshal(content, &t); err != nil {
		return nil, fmt.Errorf("invalid template file %s: %w", path, err)
	}
	if len(t.Messages) == 0 {
		return nil, fmt.Errorf("template %s has no messages", name)
	}
	return &t, nil
}
