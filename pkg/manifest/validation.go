package manifest

import (
	"fmt"
	"strconv"

	"github.com/proc-tools/appman/pkg/errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the whole manifest: schema rules for every app descriptor
// and uniqueness of app names.
func Validate(m *Manifest) error {
	if m == nil {
		return errors.NewValidationError("manifest cannot be nil", nil)
	}

	if len(m.Apps) == 0 {
		return errors.NewValidationError("manifest must declare at least one app", nil)
	}

	seenNames := make(map[string]int)
	for i, app := range m.Apps {
		if err := validateApp(app); err != nil {
			return errors.NewValidationError(
				fmt.Sprintf("invalid app descriptor at index %d", i),
				err,
			).WithContext("app_name", app.Name)
		}

		if prevIndex, exists := seenNames[app.Name]; exists {
			return errors.NewConflictError(
				fmt.Sprintf("duplicate app name '%s' found at indices %d and %d", app.Name, prevIndex, i),
				nil,
			)
		}
		seenNames[app.Name] = i
	}

	return nil
}

// validateApp validates a single app descriptor
func validateApp(app App) error {
	err := validation.ValidateStruct(&app,
		validation.Field(&app.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&app.Script, validation.Required),
		validation.Field(&app.ExecMode, validation.In(ExecModeFork, ExecModeCluster)),
		validation.Field(&app.Instances, validation.Min(1)),
	)
	if err != nil {
		return errors.NewValidationError("app descriptor failed schema validation", err)
	}

	if err := ValidateAppName(app.Name); err != nil {
		return err
	}

	// Multiple instances only make sense under cluster mode
	if app.Instances > 1 && app.ExecMode != ExecModeCluster {
		return errors.NewValidationError(
			fmt.Sprintf("instances is %d but exec_mode is '%s'", app.Instances, app.ExecMode),
			nil,
		).WithContext("required_exec_mode", string(ExecModeCluster))
	}

	if app.MaxMemoryRestart != "" {
		if _, err := ParseMemoryLimit(app.MaxMemoryRestart); err != nil {
			return errors.NewValidationError("invalid max_memory_restart", err)
		}
	}

	if err := validateEnvironment(app.Env); err != nil {
		return errors.NewValidationError("invalid environment", err)
	}

	for profile, env := range app.EnvProfiles {
		if profile == "" {
			return errors.NewValidationError("environment profile name cannot be empty", nil)
		}
		if err := validateEnvironment(env); err != nil {
			return errors.NewValidationError("invalid environment", err).WithContext("profile", profile)
		}
	}

	return nil
}

// ValidateAppName validates app name format and constraints
func ValidateAppName(name string) error {
	if name == "" {
		return errors.NewValidationError("app name cannot be empty", nil)
	}

	if len(name) > 64 {
		return errors.NewValidationError("app name cannot exceed 64 characters", nil)
	}

	for _, char := range name {
		if !isValidNameChar(char) {
			return errors.NewValidationError("app name contains invalid characters: only letters, numbers, hyphens, and underscores are allowed", nil)
		}
	}

	return nil
}

// ValidatePort validates port number range
func ValidatePort(port int) error {
	if port <= 0 || port > 65535 {
		return errors.NewValidationError("port must be between 1 and 65535", nil)
	}
	return nil
}

func validateEnvironment(env Environment) error {
	for key, value := range env {
		if err := validateEnvKey(key); err != nil {
			return err
		}

		if key == EnvKeyPort {
			port, err := strconv.Atoi(value)
			if err != nil {
				return errors.NewValidationError("PORT must be numeric: "+value, err)
			}
			if err := ValidatePort(port); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEnvKey(key string) error {
	if key == "" {
		return errors.NewValidationError("environment variable name cannot be empty", nil)
	}

	for i, char := range key {
		if char == '_' || isLetter(char) {
			continue
		}
		if i > 0 && char >= '0' && char <= '9' {
			continue
		}
		return errors.NewValidationError("invalid environment variable name: "+key, nil)
	}

	return nil
}

func isValidNameChar(char rune) bool {
	return isLetter(char) ||
		(char >= '0' && char <= '9') ||
		char == '-' ||
		char == '_'
}

func isLetter(char rune) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
