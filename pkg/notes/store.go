package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists the whole note collection as a single JSON document,
// load-all/save-all. The file is written atomically via a temp file so a
// crash mid-save never leaves a truncated collection behind.
type Store struct {
	path string
}

// NewStore creates a store at the given path. If path is empty, defaults
// to ~/.notegarden/notes.json
func NewStore(path string) (*Store, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".notegarden", "notes.json")
	}
	return &Store{path: path}, nil
}

// Path returns the file path of the store.
func (s *Store) Path() string {
	return s.path
}

// Load reads the collection from disk. A missing file yields the seeded
// welcome collection rather than an error; any other read or decode
// failure is propagated.
func (s *Store) Load() (*Collection, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCollection(SeedNotes()...), nil
		}
		return nil, fmt.Errorf("failed to read notes file: %w", err)
	}

	var stored []*Note
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode notes file %s: %w", s.path, err)
	}

	// Older files may predate the tags field.
	for _, n := range stored {
		if n.Tags == nil {
			n.Tags = []string{}
		}
	}

	return NewCollection(stored...), nil
}

// Save writes the collection to disk atomically.
func (s *Store) Save(c *Collection) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}

	data, err := json.MarshalIndent(c.All(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notes: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temp notes file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp notes file: %w", err)
	}

	return nil
}

// SeedNotes returns the welcome notes shown on first launch.
func SeedNotes() []*Note {
	mk := func(title, content string, tags []string, created string) *Note {
		ts, _ := time.Parse(time.RFC3339, created)
		n := NewNote()
		n.Title = title
		n.Content = content
		n.Tags = tags
		n.CreatedAt = ts
		n.UpdatedAt = ts
		return n
	}

	return []*Note{
		mk("欢迎使用笔记本",
			"这是您的第一个笔记。您可以在这里记录您的想法、创意和任务。",
			[]string{"欢迎", "入门"}, "2025-04-10T12:00:00Z"),
		mk("如何使用标签",
			"标签是一种强大的组织工具，可以帮助您快速找到相关笔记。点击添加标签按钮来创建新标签。",
			[]string{"提示", "标签", "组织"}, "2025-04-11T08:30:00Z"),
		mk("每日任务",
			"1. 完成项目报告\n2. 回复邮件\n3. 准备明天的会议",
			[]string{"任务", "工作"}, "2025-04-12T09:15:00Z"),
	}
}
