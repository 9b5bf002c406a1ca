package config

import (
	"fmt"
	"testing"
)

// mockSection is a test implementation of the Section interface
type mockSection struct {
	id          string
	title       string
	description string
	data        map[string]interface{}
	validateErr error
}

func (m *mockSection) ID() string                                { return m.id }
func (m *mockSection) Title() string                             { return m.title }
func (m *mockSection) Description() string                       { return m.description }
func (m *mockSection) Data() map[string]interface{}              { return m.data }
func (m *mockSection) SetData(data map[string]interface{}) error { m.data = data; return nil }
func (m *mockSection) Validate() error                           { return m.validateErr }
func (m *mockSection) Reset()                                    { m.data = make(map[string]interface{}) }

// mockStore is a test implementation of the Store interface
type mockStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saved    bool
}

func newMockStore() *mockStore {
	return &mockStore{
		sections: make(map[string]map[string]interface{}),
	}
}

func (m *mockStore) Load() error {
	return m.loadErr
}

func (m *mockStore) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = true
	return nil
}

func (m *mockStore) GetSection(sectionID string) (map[string]interface{}, error) {
	if data, exists := m.sections[sectionID]; exists {
		return data, nil
	}
	return make(map[string]interface{}), nil
}

func (m *mockStore) SetSection(sectionID string, data map[string]interface{}) error {
	m.sections[sectionID] = data
	return nil
}

func TestManager_RegisterSection(t *testing.T) {
	t.Run("registers section", func(t *testing.T) {
		manager := NewManager(newMockStore())
		section := &mockSection{id: "test"}

		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		got, ok := manager.GetSection("test")
		if !ok {
			t.Fatal("Expected section to be registered")
		}
		if got != section {
			t.Error("Expected the registered section instance")
		}
	})

	t.Run("rejects empty ID", func(t *testing.T) {
		manager := NewManager(newMockStore())

		if err := manager.RegisterSection(&mockSection{id: ""}); err == nil {
			t.Error("Expected error for empty section ID")
		}
	})

	t.Run("rejects duplicate ID", func(t *testing.T) {
		manager := NewManager(newMockStore())

		if err := manager.RegisterSection(&mockSection{id: "dup"}); err != nil {
			t.Fatalf("First registration failed: %v", err)
		}
		if err := manager.RegisterSection(&mockSection{id: "dup"}); err == nil {
			t.Error("Expected error for duplicate section ID")
		}
	})
}

func TestManager_GetSections(t *testing.T) {
	manager := NewManager(newMockStore())
	ids := []string{"a", "b", "c"}
	for _, id := range ids {
		if err := manager.RegisterSection(&mockSection{id: id}); err != nil {
			t.Fatalf("RegisterSection(%s) failed: %v", id, err)
		}
	}

	sections := manager.GetSections()
	if len(sections) != len(ids) {
		t.Errorf("Expected %d sections, got %d", len(ids), len(sections))
	}
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data to sections", func(t *testing.T) {
		store := newMockStore()
		store.sections["test"] = map[string]interface{}{"key": "value"}

		manager := NewManager(store)
		section := &mockSection{id: "test"}
		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		if err := manager.LoadAll(); err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}

		if section.data["key"] != "value" {
			t.Errorf("Expected key=value in section data, got %v", section.data)
		}
	})

	t.Run("propagates store load error", func(t *testing.T) {
		store := newMockStore()
		store.loadErr = fmt.Errorf("disk on fire")

		manager := NewManager(store)
		if err := manager.LoadAll(); err == nil {
			t.Error("Expected load error to propagate")
		}
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("stages and persists sections", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		section := &mockSection{id: "test", data: map[string]interface{}{"key": "value"}}
		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		if err := manager.SaveAll(); err != nil {
			t.Fatalf("SaveAll failed: %v", err)
		}

		if !store.saved {
			t.Error("Expected store.Save to be called")
		}
		if store.sections["test"]["key"] != "value" {
			t.Errorf("Expected staged section data, got %v", store.sections["test"])
		}
	})

	t.Run("fails when a section fails validation", func(t *testing.T) {
		store := newMockStore()
		manager := NewManager(store)
		section := &mockSection{id: "bad", validateErr: fmt.Errorf("invalid")}
		if err := manager.RegisterSection(section); err != nil {
			t.Fatalf("RegisterSection failed: %v", err)
		}

		if err := manager.SaveAll(); err == nil {
			t.Error("Expected validation error to propagate")
		}
		if store.saved {
			t.Error("Expected store.Save not to be called after validation failure")
		}
	})

	t.Run("propagates store save error", func(t *testing.T) {
		store := newMockStore()
		store.saveErr = fmt.Errorf("disk full")

		manager := NewManager(store)
		if err := manager.SaveAll(); err == nil {
			t.Error("Expected save error to propagate")
		}
	})
}
