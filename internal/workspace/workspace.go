package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lc-tui/lc/internal/markup"
	"github.com/lc-tui/lc/internal/models"
	"github.com/lc-tui/lc/internal/tags"
)

var (
	ErrNoWorkspace    = errors.New("LEETCODE_DIR is not set or does not exist")
	ErrProblemExists  = errors.New("problem already exists")
	ErrProblemMissing = errors.New("problem does not exist")
)

// writeFile is swapped in tests to fail part way through scaffolding
var writeFile = os.WriteFile

const (
	readmeFile   = "README.md"
	metadataFile = "problem.json"
	hiddenFile   = "HIDDEN"
	solutionBase = "solution"
)

// Workspace is a directory holding one sub-directory per problem under src/
type Workspace struct {
	Root string

	// Policy is used to render descriptions into README files
	Policy markup.Policy
}

// Open checks that root is an existing directory
func Open(root string) (*Workspace, error) {
	if root == "" {
		return nil, ErrNoWorkspace
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, ErrNoWorkspace)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory: %w", root, ErrNoWorkspace)
	}
	return &Workspace{Root: root, Policy: markup.DefaultPolicy}, nil
}

// ProblemDir returns <root>/src/<num>
func (w *Workspace) ProblemDir(num int) string {
	return filepath.Join(w.Root, "src", strconv.Itoa(num))
}

// Exists reports whether a problem has been scaffolded
func (w *Workspace) Exists(num int) bool {
	info, err := os.Stat(w.ProblemDir(num))
	return err == nil && info.IsDir()
}

func (w *Workspace) requireProblem(num int) (string, error) {
	if !w.Exists(num) {
		return "", fmt.Errorf("problem %d: %w", num, ErrProblemMissing)
	}
	return w.ProblemDir(num), nil
}

// Create scaffolds the directory for p: README.md, the solution stub for lang,
// TAGS seeded from the problem's topics, and problem.json. It returns the
// problem directory.
func (w *Workspace) Create(p *models.Problem, lang string) (string, error) {
	num := p.Number()
	if num <= 0 {
		return "", fmt.Errorf("problem %q has no numeric id", p.ID)
	}

	dir := w.ProblemDir(num)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("problem %d: %w", num, ErrProblemExists)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create problem directory: %w", err)
	}
	if err := w.scaffold(dir, p, lang); err != nil {
		// a partial directory would block the next attempt with ErrProblemExists
		os.RemoveAll(dir)
		return "", err
	}
	return dir, nil
}

func (w *Workspace) scaffold(dir string, p *models.Problem, lang string) error {
	if err := writeFile(filepath.Join(dir, readmeFile), []byte(w.readme(p)), 0644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}

	solution := filepath.Join(dir, solutionBase+Extension(lang))
	if err := writeFile(solution, []byte(p.Snippet), 0644); err != nil {
		return fmt.Errorf("failed to write solution stub: %w", err)
	}

	if err := tags.Write(dir, tags.FromTopicSlugs(p.Tags)); err != nil {
		return err
	}
	return writeMetadata(dir, p)
}

func (w *Workspace) readme(p *models.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s. %s\n\n", p.ID, p.Title)
	fmt.Fprintf(&b, "**Difficulty:** %s\n\n", p.Difficulty)
	fmt.Fprintf(&b, "%s\n", p.URL())

	if p.Description != "" {
		b.WriteString("\n")
		b.WriteString(markup.Markdown(markup.NewRenderer(w.Policy).Render(p.Description)))
		b.WriteString("\n")
	}
	return b.String()
}

// Load reads problem.json for num
func (w *Workspace) Load(num int) (*models.Problem, error) {
	dir, err := w.requireProblem(num)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read problem metadata: %w", err)
	}

	var p models.Problem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse problem metadata: %w", err)
	}
	return &p, nil
}

func writeMetadata(dir string, p *models.Problem) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal problem metadata: %w", err)
	}
	if err := writeFile(filepath.Join(dir, metadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write problem metadata: %w", err)
	}
	return nil
}

// List returns the numbers of every scaffolded problem in ascending order
func (w *Workspace) List() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(w.Root, "src"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	var out []int
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, err := strconv.Atoi(e.Name()); err == nil {
			out = append(out, n)
		}
	}
	sort.Ints(out)
	return out, nil
}

// Hide marks a problem to come back to later
func (w *Workspace) Hide(num int) error {
	dir, err := w.requireProblem(num)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, hiddenFile), nil, 0644); err != nil {
		return fmt.Errorf("failed to hide problem: %w", err)
	}
	return nil
}

// IsHidden reports whether Hide was called for num
func (w *Workspace) IsHidden(num int) bool {
	_, err := os.Stat(filepath.Join(w.ProblemDir(num), hiddenFile))
	return err == nil
}

// Finish marks a problem as accepted and unhides it
func (w *Workspace) Finish(num int) error {
	p, err := w.Load(num)
	if err != nil {
		return err
	}
	p.Status = models.Accepted

	dir := w.ProblemDir(num)
	if err := writeMetadata(dir, p); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(dir, hiddenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to unhide problem: %w", err)
	}
	return nil
}

// SolutionPath returns the solution file of num, whatever its language
func (w *Workspace) SolutionPath(num int) (string, error) {
	dir, err := w.requireProblem(num)
	if err != nil {
		return "", err
	}
	matches, err := filepath.Glob(filepath.Join(dir, solutionBase+".*"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no solution file in %s: %w", dir, ErrProblemMissing)
	}
	sort.Strings(matches)
	return matches[0], nil
}

var extensions = map[string]string{
	"bash":       ".sh",
	"c":          ".c",
	"cpp":        ".cpp",
	"csharp":     ".cs",
	"dart":       ".dart",
	"elixir":     ".ex",
	"erlang":     ".erl",
	"golang":     ".go",
	"java":       ".java",
	"javascript": ".js",
	"kotlin":     ".kt",
	"mysql":      ".sql",
	"php":        ".php",
	"python":     ".py",
	"python3":    ".py",
	"racket":     ".rkt",
	"ruby":       ".rb",
	"rust":       ".rs",
	"scala":      ".scala",
	"swift":      ".swift",
	"typescript": ".ts",
}

// Extension maps a GraphQL langSlug to a file extension
func Extension(lang string) string {
	if ext, ok := extensions[strings.ToLower(lang)]; ok {
		return ext
	}
	return ".txt"
}
