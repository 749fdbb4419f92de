package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Output  OutputConfig  `mapstructure:"output"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds the Rooster Teeth endpoints and transport settings
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthURL   string        `mapstructure:"auth_url"`
	ClientID  string        `mapstructure:"client_id"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// AuthConfig holds login credentials. With UseKeyring set, a missing
// password is looked up in the system keyring.
type AuthConfig struct {
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	UseKeyring bool   `mapstructure:"use_keyring"`
}

// HasLogin reports whether a username is configured.
func (a AuthConfig) HasLogin() bool {
	return a.Username != ""
}

// OutputConfig controls how commands print results
type OutputConfig struct {
	Format      string `mapstructure:"format"`
	ShowDetails bool   `mapstructure:"show_details"`
}

// FilterConfig contains named filter presets
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
