package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proc-tools/appman/pkg/errors"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := loadSettings()
	require.NoError(t, err)

	assert.Equal(t, LogLevelInfo, s.LogLevel)
	assert.Empty(t, s.Profile)
	assert.Empty(t, s.Manifest)
}

func TestLoadSettings_EnvironmentOverride(t *testing.T) {
	t.Setenv("APPMAN_LOG_LEVEL", "debug")
	t.Setenv("APPMAN_PROFILE", "production")

	s, err := loadSettings()
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, s.LogLevel)
	assert.Equal(t, "production", s.Profile)
}

func TestLoadSettings_InvalidLogLevel(t *testing.T) {
	t.Setenv("APPMAN_LOG_LEVEL", "loud")

	_, err := loadSettings()
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
