// Package theme tracks the light/dark preference and the lipgloss styles
// derived from it.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

// Mode is a theme mode.
type Mode string

// Supported modes.
const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode converts a persisted value into a Mode. Anything other than
// "dark" is treated as light.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Store persists the theme preference.
type Store interface {
	LoadTheme() (string, error)
	SaveTheme(mode string) error
}

// Service holds the current mode and persists changes through a Store.
type Service struct {
	mu    sync.RWMutex
	mode  Mode
	store Store
}

// NewService creates a Service seeded from store. A nil store keeps the
// preference in memory only. A store read error falls back to light mode.
func NewService(store Store) (*Service, error) {
	s := &Service{mode: Light, store: store}
	if store == nil {
		return s, nil
	}

	saved, err := store.LoadTheme()
	if err != nil {
		return s, fmt.Errorf("loading theme preference: %w", err)
	}
	s.mode = ParseMode(saved)
	return s, nil
}

// Mode returns the current mode.
func (s *Service) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Dark reports whether dark mode is active.
func (s *Service) Dark() bool {
	return s.Mode() == Dark
}

// Toggle flips between light and dark and persists the new mode. If saving
// fails the mode is left unchanged.
func (s *Service) Toggle() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Dark
	if s.mode == Dark {
		next = Light
	}
	if err := s.setLocked(next); err != nil {
		return s.mode, err
	}
	return next, nil
}

// Set switches to mode and persists it. If saving fails the mode is left
// unchanged.
func (s *Service) Set(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(mode)
}

func (s *Service) setLocked(mode Mode) error {
	if s.store != nil {
		if err := s.store.SaveTheme(string(mode)); err != nil {
			return fmt.Errorf("saving theme preference: %w", err)
		}
	}
	s.mode = mode
	return nil
}

// Styles returns the style set for the current mode.
func (s *Service) Styles() Styles {
	return StylesFor(s.Mode())
}
