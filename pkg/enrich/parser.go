// Package enrich derives tags and a summary for a note by calling a
// chat-completion provider, and merges the results into the note's
// fields. It owns the per-session generation state machine that keeps at
// most one enrichment in flight per note.
package enrich

import "strings"

// Line prefixes the model is instructed to use. The half-width colon
// variants are accepted too; models drift between the two.
var (
	tagPrefixes     = []string{"标签：", "标签:"}
	summaryPrefixes = []string{"摘要：", "摘要:"}
)

// Result is the structured form of a free-text enrichment completion.
// Produced by ParseCompletion, consumed once by the coordinator.
type Result struct {
	Tags       []string
	Summary    string
	HasSummary bool
}

// ParseCompletion turns a model completion into a Result. The expected
// format is a 标签： line with comma-separated tags and a 摘要： line with
// the summary text. The parser is tolerant: lines may appear in any
// order, a missing summary line yields HasSummary false rather than an
// error, lines with neither prefix are ignored, and empty tag segments
// are dropped. Pure function; identical input yields identical output.
func ParseCompletion(raw string) Result {
	var result Result

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		if rest, ok := stripPrefix(line, tagPrefixes); ok && result.Tags == nil {
			result.Tags = splitTags(rest)
			continue
		}
		if rest, ok := stripPrefix(line, summaryPrefixes); ok && !result.HasSummary {
			result.Summary = strings.TrimSpace(rest)
			result.HasSummary = true
		}
	}

	if result.Tags == nil {
		result.Tags = []string{}
	}
	return result
}

func stripPrefix(line string, prefixes []string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return line[len(p):], true
		}
	}
	return "", false
}

// splitTags splits on half-width commas, full-width commas, and the
// enumeration comma, and drops segments that are empty after trimming.
func splitTags(raw string) []string {
	raw = strings.ReplaceAll(raw, "，", ",")
	raw = strings.ReplaceAll(raw, "、", ",")

	tags := []string{}
	for _, segment := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(segment)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
