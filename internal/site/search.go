package site

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"strings"
)

// maxSearchContent caps the body text stored per search entry.
const maxSearchContent = 2000

// SearchEntry represents one section in the catalog's search index.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// parseSectionForSearch extracts title, summary and content from the
// markdown source of a section file.
func parseSectionForSearch(name string, src []byte) (SearchEntry, error) {
	entry := SearchEntry{Path: "#" + name}

	scanner := bufio.NewScanner(bytes.NewReader(src))
	var lines []string
	foundTitle := false
	foundSummary := false

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if !foundTitle && strings.HasPrefix(trimmed, "# ") {
			entry.Title = strings.TrimPrefix(trimmed, "# ")
			foundTitle = true
			continue
		}

		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)

		if !foundSummary && !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "```") {
			entry.Summary = trimmed
			foundSummary = true
		}
	}

	if err := scanner.Err(); err != nil {
		return SearchEntry{}, err
	}

	content := strings.Join(lines, " ")
	if len(content) > maxSearchContent {
		content = content[:maxSearchContent]
	}
	entry.Content = content

	if entry.Title == "" {
		entry.Title = name
	}

	return entry, nil
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	if entries == nil {
		entries = []SearchEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
