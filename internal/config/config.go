package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/andreadev-it/norgcap/internal/capture"
)

// Config holds application configuration.
type Config struct {
	// AutoSwitch allows a capture bound to another workspace to switch
	// to it instead of aborting. Defaults to false; nil means unset, so
	// a repo overlay can turn it off again.
	AutoSwitch *bool `json:"auto_switch,omitempty"`

	// PreferSnippetEngine controls whether captures delegate content
	// insertion to a snippet engine when one is available. Defaults to
	// true; nil means unset.
	PreferSnippetEngine *bool `json:"prefer_snippet_engine,omitempty"`

	// DefaultWorkspace is the workspace active when no switch has been
	// recorded yet.
	DefaultWorkspace string `json:"default_workspace,omitempty"`

	// Workspaces maps workspace names to their root directories.
	Workspaces map[string]string `json:"workspaces,omitempty"`

	// Captures maps capture names to their definitions.
	Captures map[string]capture.Definition `json:"captures,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// AutoSwitchEnabled resolves the AutoSwitch default.
func (c *Config) AutoSwitchEnabled() bool {
	if c.AutoSwitch == nil {
		return false
	}
	return *c.AutoSwitch
}

// SnippetEngineEnabled resolves the PreferSnippetEngine default.
func (c *Config) SnippetEngineEnabled() bool {
	if c.PreferSnippetEngine == nil {
		return true
	}
	return *c.PreferSnippetEngine
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.norgcap.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// LoadWithRepo loads configuration from both global (~/.norgcap) and repo
// (.norgcap) directories. Repo config is found by walking upward from
// startDir to the nearest .norgcap/config.json and takes precedence;
// captures and workspaces are merged key-wise.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest
// .norgcap/config.json. Returns the path if found, or empty string.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".norgcap", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; maps are merged key-wise
// with overlay entries winning.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.AutoSwitch = base.AutoSwitch
	if overlay.AutoSwitch != nil {
		result.AutoSwitch = overlay.AutoSwitch
	}

	result.PreferSnippetEngine = base.PreferSnippetEngine
	if overlay.PreferSnippetEngine != nil {
		result.PreferSnippetEngine = overlay.PreferSnippetEngine
	}

	result.DefaultWorkspace = overlay.DefaultWorkspace
	if result.DefaultWorkspace == "" {
		result.DefaultWorkspace = base.DefaultWorkspace
	}

	result.Workspaces = mergeStringMap(base.Workspaces, overlay.Workspaces)
	result.Captures = mergeCaptureMap(base.Captures, overlay.Captures)

	return result
}

func mergeStringMap(a, b map[string]string) map[string]string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	result := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		result[k] = v
	}
	for k, v := range b {
		result[k] = v
	}
	return result
}

func mergeCaptureMap(a, b map[string]capture.Definition) map[string]capture.Definition {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	result := make(map[string]capture.Definition, len(a)+len(b))
	for k, v := range a {
		result[k] = v
	}
	for k, v := range b {
		result[k] = v
	}
	return result
}
