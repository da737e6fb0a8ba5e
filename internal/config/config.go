package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lc-tui/lc/internal/markup"
)

const (
	DefaultEndpoint     = "https://leetcode.com/graphql/"
	DefaultLanguage     = "rust"
	DefaultProblemLimit = 50
	fileName            = "config.yaml"
	filePlaceholder     = "{file}"
)

// Config holds the user's settings
type Config struct {
	// LeetcodeDir is the workspace holding one directory per problem under src/
	LeetcodeDir string `yaml:"leetcodeDir"`

	// Language is the GraphQL langSlug used to pick starter code
	Language     string `yaml:"language"`
	ProblemLimit int    `yaml:"problemLimit"`
	Endpoint     string `yaml:"endpoint"`

	Session   string `yaml:"session,omitempty"`
	CSRFToken string `yaml:"csrfToken,omitempty"`

	// Editor opens solution files. Use {file} in EditorArgs as a placeholder
	// for the file path; without one the path is appended.
	Editor     string   `yaml:"editor"`
	EditorArgs []string `yaml:"editorArgs,omitempty"`

	Emphasis       string `yaml:"emphasis"`
	FontPolicy     string `yaml:"fontPolicy"`
	LinkReferences bool   `yaml:"linkReferences"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Language:       DefaultLanguage,
		ProblemLimit:   DefaultProblemLimit,
		Endpoint:       DefaultEndpoint,
		Editor:         "nvim",
		Emphasis:       "underline",
		FontPolicy:     "passthrough",
		LinkReferences: true,
	}
}

// Manager handles loading and saving the configuration
type Manager struct {
	configPath string
	config     *Config
}

// NewManager creates a manager for the config file inside configDir
func NewManager(configDir string) *Manager {
	return NewManagerForFile(filepath.Join(configDir, fileName))
}

// NewManagerForFile creates a manager for an explicit config file path
func NewManagerForFile(path string) *Manager {
	return &Manager{
		configPath: path,
		config:     DefaultConfig(),
	}
}

// DefaultDir returns ~/.config/lc or its platform equivalent
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, "lc"), nil
}

// CacheDir returns the directory holding the problem cache and the log file
func CacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(dir, "lc"), nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.configPath
}

// Load loads the configuration from disk, writing the defaults if no file exists yet
func (m *Manager) Load() error {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return m.Save()
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, m.config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	m.fillDefaults()
	return nil
}

// Save saves the configuration to disk
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Config returns the current configuration
func (m *Manager) Config() *Config {
	return m.config
}

// SetConfig replaces the current configuration
func (m *Manager) SetConfig(c *Config) {
	m.config = c
}

// ApplyEnv overrides settings from LEETCODE_DIR, LEETCODE_SESSION,
// LEETCODE_CSRF and EDITOR. getenv is usually os.Getenv.
func (m *Manager) ApplyEnv(getenv func(string) string) {
	if v := getenv("LEETCODE_DIR"); v != "" {
		m.config.LeetcodeDir = v
	}
	if v := getenv("LEETCODE_SESSION"); v != "" {
		m.config.Session = v
	}
	if v := getenv("LEETCODE_CSRF"); v != "" {
		m.config.CSRFToken = v
	}
	if v := getenv("EDITOR"); v != "" {
		m.config.Editor = v
		m.config.EditorArgs = nil
	}
}

func (m *Manager) fillDefaults() {
	d := DefaultConfig()
	if m.config.Language == "" {
		m.config.Language = d.Language
	}
	if m.config.ProblemLimit <= 0 {
		m.config.ProblemLimit = d.ProblemLimit
	}
	if m.config.Endpoint == "" {
		m.config.Endpoint = d.Endpoint
	}
	if m.config.Editor == "" {
		m.config.Editor = d.Editor
	}
}

// Policy translates the rendering settings into a markup policy
func (c *Config) Policy() markup.Policy {
	p := markup.DefaultPolicy
	if strings.EqualFold(c.Emphasis, "italic") {
		p.Emphasis = markup.EmphasisItalic
	}
	if strings.EqualFold(c.FontPolicy, "drop") {
		p.Font = markup.FontDrop
	}
	p.LinkReferences = c.LinkReferences
	return p
}

// EditorCommand returns the program and arguments that open file
func (c *Config) EditorCommand(file string) (string, []string) {
	// $EDITOR may carry its own flags, e.g. "code --wait"
	fields := strings.Fields(c.Editor)
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	name, args := fields[0], fields[1:]

	if len(c.EditorArgs) == 0 {
		return name, append(args, file)
	}

	replaced := false
	for _, arg := range c.EditorArgs {
		if strings.Contains(arg, filePlaceholder) {
			replaced = true
		}
		args = append(args, strings.ReplaceAll(arg, filePlaceholder, file))
	}
	if !replaced {
		args = append(args, file)
	}
	return name, args
}
