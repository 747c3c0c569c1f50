package manifestfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proc-tools/appman/pkg/errors"
)

// ManifestFileMockLogger is a simple mock implementation of Logger for testing
type ManifestFileMockLogger struct{}

func (m *ManifestFileMockLogger) Debugf(format string, args ...interface{}) {}
func (m *ManifestFileMockLogger) Infof(format string, args ...interface{})  {}
func (m *ManifestFileMockLogger) Warnf(format string, args ...interface{})  {}
func (m *ManifestFileMockLogger) Errorf(format string, args ...interface{}) {}

func TestNewManager_WithDefaults(t *testing.T) {
	manager := NewManager(Config{}, &ManifestFileMockLogger{})

	assert.NotNil(t, manager)
	assert.Equal(t, DefaultAppName, manager.config.AppName)
	assert.Equal(t, UserService, manager.config.ServiceContext)
}

func TestCandidatePaths(t *testing.T) {
	config := Config{
		BaseDirectory: "/tmp/config",
		AppName:       "test-app",
	}

	manager := NewManager(config, &ManifestFileMockLogger{})
	paths := manager.CandidatePaths()

	require.NotEmpty(t, paths)
	assert.Equal(t, "ecosystem.yaml", paths[0])
	assert.Contains(t, paths, filepath.Join("/tmp/config", "test-app", "ecosystem.yaml"))
	assert.Contains(t, paths, filepath.Join("/tmp/config", "test-app", "ecosystem.toml"))
}

func TestDiscover(t *testing.T) {
	baseDir := t.TempDir()
	appDir := filepath.Join(baseDir, "test-app")
	require.NoError(t, os.MkdirAll(appDir, 0755))

	manifestPath := filepath.Join(appDir, "ecosystem.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("apps: []\n"), 0644))

	manager := NewManager(Config{
		BaseDirectory: baseDir,
		AppName:       "test-app",
	}, &ManifestFileMockLogger{})

	found, err := manager.Discover()
	require.NoError(t, err)
	assert.Equal(t, manifestPath, found)
}

func TestDiscover_PrefersYAMLOverJSON(t *testing.T) {
	baseDir := t.TempDir()
	appDir := filepath.Join(baseDir, "test-app")
	require.NoError(t, os.MkdirAll(appDir, 0755))

	require.NoError(t, os.WriteFile(filepath.Join(appDir, "ecosystem.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "ecosystem.yaml"), []byte("apps: []\n"), 0644))

	manager := NewManager(Config{
		BaseDirectory: baseDir,
		AppName:       "test-app",
	}, &ManifestFileMockLogger{})

	found, err := manager.Discover()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(appDir, "ecosystem.yaml"), found)
}

func TestDiscover_NotFound(t *testing.T) {
	manager := NewManager(Config{
		BaseDirectory: t.TempDir(),
		AppName:       "test-app",
	}, &ManifestFileMockLogger{})

	_, err := manager.Discover()
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
