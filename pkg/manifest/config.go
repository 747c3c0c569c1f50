package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/proc-tools/appman/pkg/errors"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a manifest file
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath derives the manifest format from a file extension
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.NewValidationError(
			"unsupported manifest file extension", nil,
		).WithContext("path", path).WithContext("supported_extensions", ".yaml, .yml, .json, .toml")
	}
}

// LoadFromFile loads a manifest from a YAML, JSON or TOML file and applies
// defaults. Loading the same file repeatedly yields equal structures.
func LoadFromFile(filename string) (*Manifest, error) {
	format, err := FormatForPath(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read manifest file", err).WithContext("filename", filename)
	}

	m, err := Decode(data, format)
	if err != nil {
		return nil, errors.NewValidationError("failed to parse manifest", err).WithContext("filename", filename)
	}

	return m, nil
}

// Decode parses manifest bytes in the given format and applies defaults
func Decode(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.NewValidationError("invalid YAML", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, errors.NewValidationError("invalid JSON", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.NewValidationError("invalid TOML", err)
		}
	default:
		return nil, errors.NewValidationError("unsupported manifest format: "+string(format), nil)
	}

	setManifestDefaults(&m)

	return &m, nil
}

// SaveToFile encodes the manifest in the format implied by the file extension.
// Encoding sorts map keys, so output for a given manifest is deterministic.
func SaveToFile(m *Manifest, filename string) error {
	format, err := FormatForPath(filename)
	if err != nil {
		return err
	}

	data, err := Encode(m, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.NewIOError("failed to write manifest file", err).WithContext("filename", filename)
	}

	return nil
}

// Encode serializes the manifest in the given format
func Encode(m *Manifest, format Format) ([]byte, error) {
	if m == nil {
		return nil, errors.NewValidationError("manifest cannot be nil", nil)
	}

	switch format {
	case FormatYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, errors.NewInternalError("failed to encode YAML", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, errors.NewInternalError("failed to encode JSON", err)
		}
		return append(data, '\n'), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return nil, errors.NewInternalError("failed to encode TOML", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewValidationError("unsupported manifest format: "+string(format), nil)
	}
}

// setManifestDefaults applies default values to all app descriptors
func setManifestDefaults(m *Manifest) {
	for i := range m.Apps {
		app := &m.Apps[i]

		if app.ExecMode == "" {
			app.ExecMode = ExecModeFork
		}
		if app.Instances == 0 {
			app.Instances = 1
		}

		// Default autorestart to true if not specified
		if app.Autorestart == nil {
			autorestart := true
			app.Autorestart = &autorestart
		}
	}
}
