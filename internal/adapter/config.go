package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/anispin/internal/domain"
	"github.com/spf13/viper"
)

// DefaultAniListEndpoint is the public AniList GraphQL endpoint
const DefaultAniListEndpoint = "https://graphql.anilist.co"

// Config holds all application configuration
type Config struct {
	AniList  AniListConfig  `mapstructure:"anilist"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Browser  BrowserConfig  `mapstructure:"browser"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AniListConfig holds catalog API configuration
type AniListConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"` // Per-request timeout
	Retries  int           `mapstructure:"retries"` // Transport retries on 429/5xx
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir        string        `mapstructure:"dir"`         // Empty keeps the cache in memory
	QuotaBytes int64         `mapstructure:"quota_bytes"` // 0 disables the quota
	ListTTL    time.Duration `mapstructure:"list_ttl"`
	ResultTTL  time.Duration `mapstructure:"result_ttl"`
}

// DefaultsConfig holds the filters used when no flag overrides them
type DefaultsConfig struct {
	Genre     string `mapstructure:"genre"`
	MinScore  int    `mapstructure:"min_score"`
	MaxScore  int    `mapstructure:"max_score"`
	HideAdult bool   `mapstructure:"hide_adult"`
	Country   string `mapstructure:"country"`
	Users     string `mapstructure:"users"`  // Comma-separated AniList usernames
	Origin    string `mapstructure:"origin"` // "all" or "planning"
}

// BrowserConfig holds the command used to open AniList pages
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AniList: AniListConfig{
			Endpoint: DefaultAniListEndpoint,
			Timeout:  15 * time.Second,
			Retries:  3,
		},
		Cache: CacheConfig{
			Dir:        defaultCachePath(),
			QuotaBytes: 5 << 20,
			ListTTL:    10 * time.Minute,
			ResultTTL:  5 * time.Minute,
		},
		Defaults: DefaultsConfig{
			MinScore:  0,
			MaxScore:  10,
			HideAdult: true,
			Origin:    string(domain.OriginAll),
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "anispin", "anispin.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "anispin", "anispin.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "anispin")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "anispin")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "anispin", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "anispin", "cache")
	}
}

// LoadConfig loads configuration from file and environment.
// v may be nil to use the global viper instance.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.GetViper()
	}
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix("ANISPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("anilist.endpoint", cfg.AniList.Endpoint)
	v.SetDefault("anilist.timeout", cfg.AniList.Timeout)
	v.SetDefault("anilist.retries", cfg.AniList.Retries)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("cache.quota_bytes", cfg.Cache.QuotaBytes)
	v.SetDefault("cache.list_ttl", cfg.Cache.ListTTL)
	v.SetDefault("cache.result_ttl", cfg.Cache.ResultTTL)

	v.SetDefault("defaults.genre", cfg.Defaults.Genre)
	v.SetDefault("defaults.min_score", cfg.Defaults.MinScore)
	v.SetDefault("defaults.max_score", cfg.Defaults.MaxScore)
	v.SetDefault("defaults.hide_adult", cfg.Defaults.HideAdult)
	v.SetDefault("defaults.country", cfg.Defaults.Country)
	v.SetDefault("defaults.users", cfg.Defaults.Users)
	v.SetDefault("defaults.origin", cfg.Defaults.Origin)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

// SaveDefaults persists the default filters to the config file in use,
// or to config.yaml in the default config directory when none was loaded
func SaveDefaults(v *viper.Viper, d DefaultsConfig) error {
	if v == nil {
		v = viper.GetViper()
	}
	configFile := v.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v.Set("defaults.genre", d.Genre)
	v.Set("defaults.min_score", d.MinScore)
	v.Set("defaults.max_score", d.MaxScore)
	v.Set("defaults.hide_adult", d.HideAdult)
	v.Set("defaults.country", d.Country)
	v.Set("defaults.users", d.Users)
	v.Set("defaults.origin", d.Origin)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
