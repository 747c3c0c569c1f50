package manifestfile

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/proc-tools/appman/pkg/errors"
	"github.com/proc-tools/appman/pkg/logging"
)

// Default application name used for config subdirectories
const DefaultAppName = "appman"

// Base names probed when no manifest path is given, in priority order
var defaultBaseNames = []string{
	"ecosystem.yaml",
	"ecosystem.yml",
	"ecosystem.json",
	"ecosystem.toml",
}

// ServiceContext defines the context in which the supervisor consuming the
// manifest runs; it affects which directories are searched.
type ServiceContext string

const (
	// SystemService searches system-wide configuration directories
	SystemService ServiceContext = "system"

	// UserService searches per-user configuration directories
	UserService ServiceContext = "user"
)

// Config holds configuration for manifest file discovery
type Config struct {
	// Explicit base directory. If empty, uses OS-appropriate defaults
	BaseDirectory string

	// Service context - affects directory selection
	ServiceContext ServiceContext

	// Application name for subdirectory lookup
	AppName string
}

// Manager resolves manifest file locations
type Manager struct {
	config Config
	logger logging.Logger
}

// NewManager creates a manifest file manager with the given configuration
func NewManager(config Config, logger logging.Logger) *Manager {
	if config.AppName == "" {
		config.AppName = DefaultAppName
	}

	if config.ServiceContext == "" {
		config.ServiceContext = UserService
	}

	return &Manager{
		config: config,
		logger: logger,
	}
}

// CandidatePaths returns the ordered list of paths probed by Discover: the
// working directory first, then the context-appropriate config directory.
func (m *Manager) CandidatePaths() []string {
	dirs := []string{"."}
	if base := m.getBaseDirectory(); base != "" {
		dirs = append(dirs, filepath.Join(base, m.config.AppName))
	}

	var paths []string
	for _, dir := range dirs {
		for _, name := range defaultBaseNames {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths
}

// Discover returns the first existing manifest file among the candidates
func (m *Manager) Discover() (string, error) {
	for _, path := range m.CandidatePaths() {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		m.logger.Debugf("Discovered manifest file, path: %s", path)
		return path, nil
	}

	return "", errors.NewNotFoundError(
		"no manifest file found", nil,
	).WithContext("candidates", m.CandidatePaths())
}

// getBaseDirectory returns the appropriate config base directory
func (m *Manager) getBaseDirectory() string {
	// Use explicit configuration if provided
	if m.config.BaseDirectory != "" {
		return m.config.BaseDirectory
	}

	switch runtime.GOOS {
	case "windows":
		if m.config.ServiceContext == SystemService {
			if programData := os.Getenv("ProgramData"); programData != "" {
				return programData
			}
			return `C:\ProgramData`
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return localAppData
		}
		return ""

	case "darwin":
		if m.config.ServiceContext == SystemService {
			return "/Library/Application Support"
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
		return ""

	default:
		if m.config.ServiceContext == SystemService {
			return "/etc"
		}
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
		return ""
	}
}
