package notes

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gobwas/glob"
)

// UntitledNotebook is the notebook assigned to notes without tags.
const UntitledNotebook = "Untitled"

// Collection holds the ordered set of notes, newest first. All operations
// are safe for concurrent use; UI commands run on background goroutines.
type Collection struct {
	notes []*Note
	mu    sync.RWMutex
}

// NewCollection creates a collection seeded with the given notes.
func NewCollection(notes ...*Note) *Collection {
	c := &Collection{notes: make([]*Note, 0, len(notes))}
	c.notes = append(c.notes, notes...)
	return c
}

// Add inserts a note at the front of the collection.
func (c *Collection) Add(note *Note) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = append([]*Note{note}, c.notes...)
}

// Get retrieves a note by ID.
func (c *Collection) Get(id string) (*Note, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, fmt.Errorf("note not found: %s", id)
}

// Apply replaces the stored fields of the note with the given ID.
func (c *Collection) Apply(updated *Note) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notes {
		if n.ID == updated.ID {
			c.notes[i] = updated
			return nil
		}
	}
	return fmt.Errorf("note not found: %s", updated.ID)
}

// Delete removes a note by ID.
func (c *Collection) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notes {
		if n.ID == id {
			c.notes = append(c.notes[:i], c.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("note not found: %s", id)
}

// All returns the notes in collection order.
func (c *Collection) All() []*Note {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Snapshot returns a deep copy of the collection. Note values and tag
// slices are copied under the lock, so the result can be marshaled on a
// background goroutine while the originals keep being edited.
func (c *Collection) Snapshot() *Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	copies := make([]*Note, 0, len(c.notes))
	for _, n := range c.notes {
		dup := *n
		dup.Tags = append([]string(nil), n.Tags...)
		copies = append(copies, &dup)
	}
	return &Collection{notes: copies}
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.notes)
}

// Notebook returns the notebook a note belongs to: its first tag, or
// UntitledNotebook when it has none.
func Notebook(n *Note) string {
	if len(n.Tags) > 0 {
		return n.Tags[0]
	}
	return UntitledNotebook
}

// Notebooks derives the unique notebook names across the collection, in
// encounter order.
func (c *Collection) Notebooks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	seen := make(map[string]struct{})
	for _, n := range c.notes {
		nb := Notebook(n)
		if _, ok := seen[nb]; ok {
			continue
		}
		seen[nb] = struct{}{}
		out = append(out, nb)
	}
	return out
}

// Tags derives the unique tags across the collection, in encounter order.
func (c *Collection) Tags() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	seen := make(map[string]struct{})
	for _, n := range c.notes {
		for _, tag := range n.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// FilterByNotebook returns the notes whose notebook matches.
func (c *Collection) FilterByNotebook(notebook string) []*Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Note
	for _, n := range c.notes {
		if Notebook(n) == notebook {
			out = append(out, n)
		}
	}
	return out
}

// FilterByTag returns the notes carrying the tag.
func (c *Collection) FilterByTag(tag string) []*Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Note
	for _, n := range c.notes {
		if n.HasTag(tag) {
			out = append(out, n)
		}
	}
	return out
}

// Search returns notes whose title or content matches the glob pattern,
// case-insensitively. A pattern without glob metacharacters matches as a
// substring. An invalid pattern returns an error rather than matching
// nothing silently.
func (c *Collection) Search(pattern string) ([]*Note, error) {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if pattern == "" {
		return c.All(), nil
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		pattern = "*" + pattern + "*"
	}

	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*Note
	for _, n := range c.notes {
		if matcher.Match(strings.ToLower(n.Title)) || matcher.Match(strings.ToLower(n.Content)) {
			out = append(out, n)
		}
	}
	return out, nil
}
