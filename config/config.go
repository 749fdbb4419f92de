package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/roosterteeth/roosterteeth"
)

// EnvPrefix prefixes environment overrides, e.g. RT_AUTH_PASSWORD.
const EnvPrefix = "RT"

// Load loads the configuration from file. Without an explicit path a
// missing config file is not an error; the defaults allow anonymous use.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".roosterteeth"))
		}
		v.AddConfigPath("/etc/roosterteeth/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key that may be
// overridden from the environment needs a default so viper knows about it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", roosterteeth.DefaultBaseURL)
	v.SetDefault("api.auth_url", roosterteeth.DefaultAuthURL)
	v.SetDefault("api.client_id", roosterteeth.DefaultClientID)
	v.SetDefault("api.timeout", roosterteeth.DefaultTimeout)
	v.SetDefault("api.user_agent", roosterteeth.UserAgent)

	v.SetDefault("auth.username", "")
	v.SetDefault("auth.password", "")
	v.SetDefault("auth.use_keyring", true)

	v.SetDefault("output.format", "table")
	v.SetDefault("output.show_details", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}

	if cfg.Auth.Password != "" && cfg.Auth.Username == "" {
		return fmt.Errorf("auth.password is set but auth.username is empty")
	}

	validOutputFormats := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output.format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' is empty", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
