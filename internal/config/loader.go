package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// ConfigPaths defines the search locations for config files.
const (
	// GlobalConfigDir is the XDG config directory name
	GlobalConfigDir = "clawdash"
	// GlobalConfigFile is the global config file name
	GlobalConfigFile = "config.yaml"
	// ProjectConfigDir is the project-local config directory
	ProjectConfigDir = ".clawdash"
	// ProjectConfigFile is the project-local config file name
	ProjectConfigFile = "config.yaml"
)

// EnvPrefix prefixes every environment variable clawdash reads.
// source.url is read from CLAWDASH_SOURCE_URL, log-file from CLAWDASH_LOG_FILE.
const EnvPrefix = "CLAWDASH"

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

// LoadConfig layers configuration onto v and decodes it.
// Precedence (later overrides earlier):
//  1. Default() values
//  2. ~/.config/clawdash/config.yaml (global)
//  3. .clawdash/config.yaml (project)
//  4. --config / CLAWDASH_CONFIG (must exist)
//  5. CLAWDASH_* environment variables
//  6. Values set directly on v, including changed flags bound to it
//
// Missing global and project files are skipped.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := Default()

	defaults, err := structToMap(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	if err := v.MergeConfigMap(defaults); err != nil {
		return nil, fmt.Errorf("merge defaults: %w", err)
	}

	paths, err := configFiles(v)
	if err != nil {
		return nil, err
	}
	for _, path := range paths {
		if err := mergeConfigFile(v, path); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := bindEnvKeys(v, defaults); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(cfg, viperDecodeHook()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetupEnv makes v resolve keys from CLAWDASH_* variables. Dots and
// dashes in a key become underscores.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
}

// bindEnvKeys binds every config key explicitly so that nested keys are
// found by Unmarshal even when no file mentions them.
func bindEnvKeys(v *viper.Viper, defaults map[string]interface{}) error {
	SetupEnv(v)
	for _, key := range flattenKeys("", defaults) {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func flattenKeys(prefix string, m map[string]interface{}) []string {
	var keys []string
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]interface{}); ok {
			keys = append(keys, flattenKeys(key, nested)...)
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// configFiles lists the config files to merge, lowest precedence first.
func configFiles(v *viper.Viper) ([]string, error) {
	var paths []string
	if p := globalConfigPath(); p != "" {
		paths = append(paths, p)
	}
	if p := projectConfigPath(); p != "" {
		paths = append(paths, p)
	}
	if explicit := v.GetString("config"); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		paths = append(paths, explicit)
	}
	return paths, nil
}

// globalConfigPath returns the global config file path if it exists.
func globalConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return existing(filepath.Join(configDir, GlobalConfigDir, GlobalConfigFile))
}

// projectConfigPath returns the project config file path if it exists.
func projectConfigPath() string {
	return existing(filepath.Join(ProjectConfigDir, ProjectConfigFile))
}

func existing(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// mergeConfigFile reads a YAML file through a scratch viper and merges
// its settings into v.
func mergeConfigFile(v *viper.Viper, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	fileViper := viper.New()
	fileViper.SetConfigType("yaml")
	if err := fileViper.ReadConfig(file); err != nil {
		return err
	}
	return v.MergeConfigMap(fileViper.AllSettings())
}

// viperDecodeHook decodes durations and comma-separated lists, the two
// forms env values and flags arrive in.
func viperDecodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// structToMap encodes cfg as the nested map viper merges as defaults.
func structToMap(cfg *Config) (map[string]interface{}, error) {
	result := make(map[string]interface{})

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "mapstructure",
		Result:     &result,
		DecodeHook: durationToStringHook(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(cfg); err != nil {
		return nil, err
	}
	return result, nil
}

// durationToStringHook keeps durations readable ("1m0s") in the defaults map.
func durationToStringHook() mapstructure.DecodeHookFunc {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		if from != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		return data.(time.Duration).String(), nil
	}
}
