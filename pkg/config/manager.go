// Package config provides persistent application configuration split
// into registered sections backed by a JSON file store.
package config

import (
	"fmt"
	"sync"
)

// Section is one named group of configuration settings.
type Section interface {
	// ID returns the unique section identifier used as the storage key.
	ID() string

	// Title returns a human-readable section title.
	Title() string

	// Description returns a human-readable section description.
	Description() string

	// Data returns the current configuration data.
	Data() map[string]interface{}

	// SetData updates the configuration from the provided data.
	SetData(data map[string]interface{}) error

	// Validate validates the current configuration.
	Validate() error

	// Reset resets the section to default configuration.
	Reset()
}

// Manager coordinates sections and their persistence.
type Manager struct {
	store    Store
	sections map[string]Section
	mu       sync.RWMutex
}

// NewManager creates a manager backed by the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// RegisterSection adds a section to the manager. Section IDs must be
// unique.
func (m *Manager) RegisterSection(section Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := section.ID()
	if id == "" {
		return fmt.Errorf("section ID cannot be empty")
	}
	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}

	m.sections[id] = section
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all registered sections.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.sections))
	for _, section := range m.sections {
		sections = append(sections, section)
	}
	return sections
}

// LoadAll loads every registered section from the store.
func (m *Manager) LoadAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load config store: %w", err)
	}

	for id, section := range m.sections {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to read section %q: %w", id, err)
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}

	return nil
}

// SaveAll writes every registered section to the store and persists it.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("section %q failed validation: %w", id, err)
		}
		if err := m.store.SetSection(id, section.Data()); err != nil {
			return fmt.Errorf("failed to stage section %q: %w", id, err)
		}
	}

	if err := m.store.Save(); err != nil {
		return fmt.Errorf("failed to save config store: %w", err)
	}

	return nil
}
