package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gittrack/gt/internal/constants"
	"github.com/gittrack/gt/internal/errors"
)

// File permissions for the auto-created config file and its directory.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// ProjectConfigPath returns the path of the project config file under root.
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, constants.StateDir, constants.ConfigFileName)
}

// newViperInstance creates a Viper instance with standard gt configuration:
// defaults, GT_ environment prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("GT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// These defaults match the values from Default().
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("default_branch", d.DefaultBranch)
	v.SetDefault("remote", d.Remote)
	v.SetDefault("auto_push", d.AutoPush)
	templates := make(map[string]any, len(d.CommitTemplates))
	for k, tpl := range d.CommitTemplates {
		templates[k] = tpl
	}
	v.SetDefault("commit_templates", templates)
}

// Load reads the project configuration or synthesizes and persists the
// defaults when no config file exists yet. A missing file is never an error;
// an unreadable or unparsable file returns ErrConfigCorrupt.
//
// If projectRoot is empty, the current working directory is used.
func Load(ctx context.Context, projectRoot string) (*Config, error) {
	if projectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get current directory")
		}
		projectRoot = cwd
	}

	v := newViperInstance()
	path := ProjectConfigPath(projectRoot)

	logger := zerolog.Ctx(ctx).With().Str("component", "config").Logger()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// First run: persist defaults so the user has a file to edit.
		if err := writeDefaults(path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("config file created with defaults")
		return Default(), nil
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigCorrupt,
			"failed to read %s (fix or delete it): %v", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigCorrupt,
			"failed to unmarshal %s (fix or delete it): %v", path, err)
	}

	logger.Debug().
		Str("default_branch", cfg.DefaultBranch).
		Str("remote", cfg.Remote).
		Bool("auto_push", cfg.AutoPush).
		Msg("configuration loaded")

	return &cfg, nil
}

// writeDefaults persists the default configuration as pretty-printed JSON.
func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := json.MarshalIndent(Default(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return errors.Wrap(err, "failed to write default config")
	}
	return nil
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}
