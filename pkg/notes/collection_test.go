package notes

import (
	"reflect"
	"testing"
)

func testNote(title, content string, tags ...string) *Note {
	n := NewNote()
	n.Title = title
	n.Content = content
	n.Tags = tags
	return n
}

func TestCollectionAddOrder(t *testing.T) {
	c := NewCollection()
	first := testNote("first", "")
	second := testNote("second", "")

	c.Add(first)
	c.Add(second)

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(all))
	}
	if all[0].ID != second.ID {
		t.Error("newest note should be first")
	}
}

func TestCollectionApply(t *testing.T) {
	n := testNote("title", "old")
	c := NewCollection(n)

	updated := *n
	updated.Content = "new"
	if err := c.Apply(&updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(n.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != "new" {
		t.Errorf("content mismatch: got %q", got.Content)
	}

	missing := *n
	missing.ID = "nope"
	if err := c.Apply(&missing); err == nil {
		t.Error("applying an unknown note should fail")
	}
}

func TestCollectionDelete(t *testing.T) {
	n := testNote("title", "")
	c := NewCollection(n)

	if err := c.Delete(n.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 0 {
		t.Error("collection should be empty after delete")
	}
	if err := c.Delete(n.ID); err == nil {
		t.Error("deleting a missing note should fail")
	}
}

func TestNotebooks(t *testing.T) {
	c := NewCollection(
		testNote("a", "", "work", "urgent"),
		testNote("b", "", "work"),
		testNote("c", "", "home"),
		testNote("d", ""),
	)

	want := []string{"work", "home", UntitledNotebook}
	if got := c.Notebooks(); !reflect.DeepEqual(got, want) {
		t.Errorf("notebooks mismatch: got %v, want %v", got, want)
	}
}

func TestTags(t *testing.T) {
	c := NewCollection(
		testNote("a", "", "work", "urgent"),
		testNote("b", "", "urgent", "home"),
	)

	want := []string{"work", "urgent", "home"}
	if got := c.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("tags mismatch: got %v, want %v", got, want)
	}
}

func TestFilters(t *testing.T) {
	work := testNote("a", "", "work", "urgent")
	home := testNote("b", "", "home", "urgent")
	c := NewCollection(work, home)

	byNotebook := c.FilterByNotebook("work")
	if len(byNotebook) != 1 || byNotebook[0].ID != work.ID {
		t.Errorf("FilterByNotebook mismatch: %v", byNotebook)
	}

	byTag := c.FilterByTag("urgent")
	if len(byTag) != 2 {
		t.Errorf("FilterByTag should match both notes, got %d", len(byTag))
	}
}

func TestSearch(t *testing.T) {
	meeting := testNote("Meeting notes", "discuss roadmap")
	grocery := testNote("Groceries", "milk, eggs")
	c := NewCollection(meeting, grocery)

	tests := []struct {
		name    string
		pattern string
		wantIDs []string
	}{
		{name: "substring match on title", pattern: "meeting", wantIDs: []string{meeting.ID}},
		{name: "substring match on content", pattern: "eggs", wantIDs: []string{grocery.ID}},
		{name: "glob pattern", pattern: "*rocer*", wantIDs: []string{grocery.ID}},
		{name: "case insensitive", pattern: "MILK", wantIDs: []string{grocery.ID}},
		{name: "no match", pattern: "zzz", wantIDs: nil},
		{name: "empty pattern returns all", pattern: "  ", wantIDs: []string{meeting.ID, grocery.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Search(tt.pattern)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var ids []string
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			if !reflect.DeepEqual(ids, tt.wantIDs) {
				t.Errorf("search mismatch: got %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestSearchInvalidPattern(t *testing.T) {
	c := NewCollection()
	if _, err := c.Search("[unclosed"); err == nil {
		t.Error("invalid glob should return an error")
	}
}

func TestSnapshotIsolatedFromEdits(t *testing.T) {
	n := testNote("title", "original", "工作")
	c := NewCollection(n)

	snap := c.Snapshot()

	n.Content = "edited"
	n.Tags = append(n.Tags, "生活")
	n.Touch()

	got := snap.All()[0]
	if got.Content != "original" {
		t.Errorf("snapshot content changed to %q", got.Content)
	}
	if !reflect.DeepEqual(got.Tags, []string{"工作"}) {
		t.Errorf("snapshot tags changed to %v", got.Tags)
	}
	if got.ID != n.ID {
		t.Error("snapshot should keep note identity")
	}
}
