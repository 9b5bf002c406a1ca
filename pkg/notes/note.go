// Package notes holds the note domain model: notes with ordered tag sets,
// collection-level derivations (notebooks, tags, filters), persistence,
// and Markdown export.
package notes

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTitle is given to newly created notes before the user names them.
const DefaultTitle = "新笔记"

// Note is a single user note. Tags behave as an ordered set: no
// duplicates, insertion order preserved.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote creates an empty note with a fresh ID and the default title.
func NewNote() *Note {
	now := time.Now()
	return &Note{
		ID:        uuid.New().String(),
		Title:     DefaultTitle,
		Tags:      []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasTag reports whether the note carries the exact tag. Matching is
// case-sensitive.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends the tag if it is non-empty after trimming and not
// already present. Returns true if the note changed.
func (n *Note) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || n.HasTag(tag) {
		return false
	}
	n.Tags = append(n.Tags, tag)
	return true
}

// RemoveTag deletes the tag, keeping the order of the rest.
func (n *Note) RemoveTag(tag string) {
	filtered := n.Tags[:0]
	for _, t := range n.Tags {
		if t != tag {
			filtered = append(filtered, t)
		}
	}
	n.Tags = filtered
}

// Touch updates the modification timestamp.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// MergeTags unions existing and incoming tag lists. Existing tags keep
// their original order; tags seen for the first time are appended in the
// order they arrive. Duplicates are removed by exact, case-sensitive
// match. Merging is idempotent: merging the same inputs twice yields the
// same result.
func MergeTags(existing, incoming []string) []string {
	merged := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))

	for _, lists := range [][]string{existing, incoming} {
		for _, tag := range lists {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}

	return merged
}
