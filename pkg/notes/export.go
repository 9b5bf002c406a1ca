package notes

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// exportMeta holds the YAML front-matter fields of an exported note.
type exportMeta struct {
	ID        string    `yaml:"id"`
	Title     string    `yaml:"title"`
	Tags      []string  `yaml:"tags"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Export renders a note as a Markdown document with YAML front-matter.
func Export(n *Note) ([]byte, error) {
	meta := exportMeta{
		ID:        n.ID,
		Title:     n.Title,
		Tags:      n.Tags,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}

	yamlBytes, err := yaml.Marshal(&meta)
	if err != nil {
		return nil, fmt.Errorf("notes: export error: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(frontMatterDelimiter + "\n")
	sb.Write(yamlBytes)
	sb.WriteString(frontMatterDelimiter + "\n\n")
	sb.WriteString(n.Content)
	return []byte(sb.String()), nil
}

// Import parses an exported note back into a Note.
func Import(raw []byte) (*Note, error) {
	s := string(raw)
	if !strings.HasPrefix(s, frontMatterDelimiter) {
		return nil, fmt.Errorf("notes: missing front-matter delimiter")
	}
	rest := s[len(frontMatterDelimiter):]
	idx := strings.Index(rest, "\n"+frontMatterDelimiter)
	if idx == -1 {
		return nil, fmt.Errorf("notes: unclosed front-matter block")
	}
	yamlBlock := rest[:idx]

	bodyRaw := rest[idx+len("\n"+frontMatterDelimiter):]
	body := bodyRaw
	if strings.HasPrefix(bodyRaw, "\n\n") {
		body = bodyRaw[2:]
	} else if strings.HasPrefix(bodyRaw, "\n") {
		body = bodyRaw[1:]
	}

	var meta exportMeta
	if err := yaml.Unmarshal([]byte(yamlBlock), &meta); err != nil {
		return nil, fmt.Errorf("notes: front-matter parse error: %w", err)
	}

	note := &Note{
		ID:        meta.ID,
		Title:     meta.Title,
		Content:   body,
		Tags:      meta.Tags,
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return note, nil
}
