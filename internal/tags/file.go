package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// FileName is the per-problem tag file, one long tag name per line
const FileName = "TAGS"

var (
	ErrTagExists  = errors.New("tag already exists for this problem")
	ErrTagMissing = errors.New("tag doesn't exist for this problem")
)

// Read returns the non-empty lines of the TAGS file in problemDir. A missing
// file has no tags.
func Read(problemDir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(problemDir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Write replaces the TAGS file with the given tags
func Write(problemDir string, tags []Tag) error {
	lines := make([]string, len(tags))
	for i, t := range tags {
		lines[i] = t.String()
	}
	return writeLines(problemDir, lines)
}

// Add appends tag to the problem's TAGS file
func Add(problemDir string, tag Tag) error {
	lines, err := Read(problemDir)
	if err != nil {
		return err
	}
	if contains(lines, tag.String()) {
		return fmt.Errorf("%s: %w", tag, ErrTagExists)
	}
	return writeLines(problemDir, append(lines, tag.String()))
}

// Remove deletes tag from the problem's TAGS file
func Remove(problemDir string, tag Tag) error {
	lines, err := Read(problemDir)
	if err != nil {
		return err
	}
	if !contains(lines, tag.String()) {
		return fmt.Errorf("%s: %w", tag, ErrTagMissing)
	}

	kept := lines[:0]
	for _, line := range lines {
		if line != tag.String() {
			kept = append(kept, line)
		}
	}
	return writeLines(problemDir, kept)
}

// Search returns the numbers of all problems under <root>/src whose TAGS file
// lists tag, in ascending order
func Search(root string, tag Tag) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(root, "src"))
	if err != nil {
		return nil, fmt.Errorf("failed to read problems: %w", err)
	}

	var out []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		num, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		lines, err := Read(filepath.Join(root, "src", e.Name()))
		if err != nil {
			return nil, err
		}
		if contains(lines, tag.String()) {
			out = append(out, num)
		}
	}

	sort.Ints(out)
	return out, nil
}

func contains(lines []string, s string) bool {
	for _, l := range lines {
		if l == s {
			return true
		}
	}
	return false
}

func writeLines(problemDir string, lines []string) error {
	if _, err := os.Stat(problemDir); err != nil {
		return fmt.Errorf("problem directory %s: %w", problemDir, err)
	}

	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(filepath.Join(problemDir, FileName), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write tags: %w", err)
	}
	return nil
}
