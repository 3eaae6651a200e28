// Package theme keeps the light/dark preference and tells every open screen
// when it changes.
package theme

import (
	"sync"

	"tickit/pkg/utils"
)

// Keys the preference is stored under. Both are written; either may be read.
const (
	DarkModeKey = "darkMode"
	ThemeKey    = "theme"
)

// KV is the persisted state the preference lives in
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store is the single shared theme preference
type Store struct {
	kv KV

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(dark bool)
}

// NewStore wraps persisted state. Create one per process and share it.
func NewStore(kv KV) *Store {
	return &Store{kv: kv, listeners: make(map[int]func(bool))}
}

// Get reports whether dark mode is on. Read failures count as light.
func (s *Store) Get() bool {
	return s.read(DarkModeKey) == "true" || s.read(ThemeKey) == "dark"
}

func (s *Store) read(key string) string {
	v, err := s.kv.Get(key)
	if err != nil {
		utils.Log("theme: reading %s: %v", key, err)
		return ""
	}
	return v
}

// Set stores the preference under both keys, then notifies every listener
func (s *Store) Set(dark bool) error {
	mode, name := "false", "light"
	if dark {
		mode, name = "true", "dark"
	}
	if err := s.kv.Set(DarkModeKey, mode); err != nil {
		return err
	}
	if err := s.kv.Set(ThemeKey, name); err != nil {
		return err
	}

	s.mu.Lock()
	fns := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
	return nil
}

// Toggle flips the preference and returns the new value
func (s *Store) Toggle() (bool, error) {
	dark := !s.Get()
	return dark, s.Set(dark)
}

// Subscribe registers fn for future changes only. Listeners are called in no
// particular order. The returned func removes fn and is safe to call twice.
func (s *Store) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}
