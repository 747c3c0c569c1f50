package main

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/proc-tools/appman/pkg/errors"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// settings are the tool's own knobs, distinct from the manifest being
// inspected. They come from an optional appman.yaml and APPMAN_* environment
// variables.
type settings struct {
	LogLevel string `mapstructure:"log_level"`
	Profile  string `mapstructure:"profile"`
	Manifest string `mapstructure:"manifest"`
}

func loadSettings() (*settings, error) {
	v := viper.New()

	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("profile", "")
	v.SetDefault("manifest", "")

	v.SetConfigName("appman")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/appman")

	v.SetEnvPrefix("APPMAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.NewIOError("failed to read settings file", err).WithContext("file", v.ConfigFileUsed())
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.NewValidationError("failed to unmarshal settings", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *settings) validate() error {
	err := validation.ValidateStruct(s,
		validation.Field(&s.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
	)
	if err != nil {
		return errors.NewValidationError("invalid settings", err)
	}
	return nil
}
