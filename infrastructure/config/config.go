package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries the explicit settings for one plan execution. It
// replaces the process-global profile and output directories the old
// flow relied on; construct it once and pass it down.
type Config struct {
	// Headless runs the browser without a window
	Headless bool `mapstructure:"headless"`

	// SlowMoMs delays every driver operation, useful when watching runs
	SlowMoMs float64 `mapstructure:"slow_mo_ms"`

	// ProfileDir is the persistent user-data directory; empty means a
	// fresh throwaway profile per run
	ProfileDir string `mapstructure:"profile_dir"`

	// ProfilesRoot is where throwaway profiles are created
	ProfilesRoot string `mapstructure:"profiles_root"`

	// ScreenshotDir is where screenshot actions write their files
	ScreenshotDir string `mapstructure:"screenshot_dir"`

	// ActionTimeoutMs bounds element visibility waits for simple actions
	ActionTimeoutMs float64 `mapstructure:"action_timeout_ms"`

	// KeepOpen blocks for confirmation after the last action before
	// the session is released
	KeepOpen bool `mapstructure:"keep_open"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// Load reads configuration from .env (optional), environment variables
// prefixed with AGENT_ and an optional config file
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("headless", false)
	v.SetDefault("slow_mo_ms", 0)
	v.SetDefault("profile_dir", "")
	v.SetDefault("profiles_root", "browser_profiles")
	v.SetDefault("screenshot_dir", "screenshots")
	v.SetDefault("action_timeout_ms", 10000)
	v.SetDefault("keep_open", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("AGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
