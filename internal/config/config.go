package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Trigger modes
const (
	TriggerInput  = "input"
	TriggerSubmit = "submit"
)

// DefaultEndpoint is the public answer lookup service
const DefaultEndpoint = "https://api.answer.uu988.xyz/answer/search"

// EnvPrefix prefixes every environment override, e.g. QALOOKUP_ENDPOINT
const EnvPrefix = "QALOOKUP"

// Config represents the application configuration
type Config struct {
	Endpoint    string        `mapstructure:"endpoint" validate:"required,url"`
	Trigger     string        `mapstructure:"trigger" validate:"oneof=input submit"`
	Debounce    time.Duration `mapstructure:"debounce" validate:"gte=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Retries     uint          `mapstructure:"retries" validate:"lte=5"`
	StrictErrno bool          `mapstructure:"strict_errno"`
	LogFile     string        `mapstructure:"log_file"`
	LogLevel    string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error disabled"`
	UI          UISettings    `mapstructure:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Placeholder string `mapstructure:"placeholder"`
	ShowNotice  bool   `mapstructure:"show_notice"`
}

// Debounced reports whether searches run while typing
func (c *Config) Debounced() bool {
	return c.Trigger == TriggerInput
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Trigger:  TriggerInput,
		Debounce: 500 * time.Millisecond,
		Timeout:  10 * time.Second,
		Retries:  0,
		LogFile:  "qalookup.log",
		LogLevel: "info",
		UI: UISettings{
			Placeholder: "搜索题目",
			ShowNotice:  true,
		},
	}
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "qalookup", "config.toml")
}

// Load resolves the configuration from defaults, the TOML file at path
// (DefaultPath when empty), QALOOKUP_* environment variables and flags.
// A missing file is not an error; an unreadable or invalid one is.
func Load(path string, flags *pflag.FlagSet) (*Config, string, error) {
	v := viper.New()
	v.SetConfigType("toml")

	def := DefaultConfig()
	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("trigger", def.Trigger)
	v.SetDefault("debounce", def.Debounce)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("retries", def.Retries)
	v.SetDefault("strict_errno", def.StrictErrno)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("ui.placeholder", def.UI.Placeholder)
	v.SetDefault("ui.show_notice", def.UI.ShowNotice)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, "", err
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	used := path
	if err := v.ReadInConfig(); err != nil {
		var searchErr viper.ConfigFileNotFoundError
		notFound := errors.As(err, &searchErr) || errors.Is(err, os.ErrNotExist)
		switch {
		case notFound && explicit:
			return nil, "", fmt.Errorf("config file not found: %s", path)
		case notFound:
			used = ""
		default:
			return nil, "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("invalid configuration format: %w", err)
	}
	cfg.Trigger = strings.ToLower(strings.TrimSpace(cfg.Trigger))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"endpoint":     "endpoint",
	"trigger":      "trigger",
	"debounce":     "debounce",
	"timeout":      "timeout",
	"retries":      "retries",
	"strict-errno": "strict_errno",
	"log-file":     "log_file",
	"log-level":    "log_level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for flagName, key := range flagKeys {
		f := flags.Lookup(flagName)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag --%s: %w", flagName, err)
		}
	}
	return nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fieldName(fe), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "StrictErrno":
		return "strict_errno"
	case "LogFile":
		return "log_file"
	case "LogLevel":
		return "log_level"
	default:
		return strings.ToLower(fe.Field())
	}
}

// fileConfig is the on-disk shape; durations are written as strings
type fileConfig struct {
	Endpoint    string     `toml:"endpoint"`
	Trigger     string     `toml:"trigger"`
	Debounce    string     `toml:"debounce"`
	Timeout     string     `toml:"timeout"`
	Retries     uint       `toml:"retries"`
	StrictErrno bool       `toml:"strict_errno"`
	LogFile     string     `toml:"log_file"`
	LogLevel    string     `toml:"log_level"`
	UI          fileUIConf `toml:"ui"`
}

type fileUIConf struct {
	Placeholder string `toml:"placeholder"`
	ShowNotice  bool   `toml:"show_notice"`
}

// Marshal renders the configuration as TOML
func Marshal(c *Config) ([]byte, error) {
	data, err := toml.Marshal(fileConfig{
		Endpoint:    c.Endpoint,
		Trigger:     c.Trigger,
		Debounce:    c.Debounce.String(),
		Timeout:     c.Timeout.String(),
		Retries:     c.Retries,
		StrictErrno: c.StrictErrno,
		LogFile:     c.LogFile,
		LogLevel:    c.LogLevel,
		UI: fileUIConf{
			Placeholder: c.UI.Placeholder,
			ShowNotice:  c.UI.ShowNotice,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SaveToPath saves configuration to a specific path
func SaveToPath(c *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(c)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
