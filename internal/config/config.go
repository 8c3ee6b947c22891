package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GAMEHORIZON_STORE_PORT
const EnvPrefix = "GAMEHORIZON"

type (
	Config struct {
		Store   StoreConfig   `mapstructure:"store"`
		Storage StorageConfig `mapstructure:"storage"`
		Redis   RedisConfig   `mapstructure:"redis"`
		UI      UIConfig      `mapstructure:"ui"`
		Log     LogConfig     `mapstructure:"log"`
	}

	StoreConfig struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}

	StorageConfig struct {
		Type string `mapstructure:"type"`
		Path string `mapstructure:"path"`
		Seed bool   `mapstructure:"seed"`
	}

	RedisConfig struct {
		URL       string `mapstructure:"url"`
		KeyPrefix string `mapstructure:"key_prefix"`
	}

	UIConfig struct {
		Host      string `mapstructure:"host"`
		Port      int    `mapstructure:"port"`
		StoreURL  string `mapstructure:"store_url"`
		StaticDir string `mapstructure:"static_dir"`
	}

	LogConfig struct {
		Level string `mapstructure:"level"`
	}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.host", "")
	v.SetDefault("store.port", 3001)
	v.SetDefault("storage.type", "jsonfile")
	v.SetDefault("storage.path", "db.json")
	v.SetDefault("storage.seed", false)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.key_prefix", "gamehorizon")
	v.SetDefault("ui.host", "")
	v.SetDefault("ui.port", 3000)
	v.SetDefault("ui.store_url", "http://localhost:3001")
	v.SetDefault("ui.static_dir", "static")
	v.SetDefault("log.level", "info")
}

// Load reads gamehorizon.yaml from the given directories (default "." and
// "./config") if present, then applies GAMEHORIZON_* environment overrides
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("gamehorizon")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Type {
	case "memory", "jsonfile", "redis":
	default:
		return fmt.Errorf("invalid storage.type %q: must be memory, jsonfile or redis", c.Storage.Type)
	}
	if c.Storage.Type == "jsonfile" && c.Storage.Path == "" {
		return errors.New("storage.path is required for jsonfile storage")
	}
	if c.Store.Port <= 0 || c.UI.Port <= 0 {
		return errors.New("ports must be positive")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("invalid log.level %q: %w", l.Level, err)
	}
	return level, nil
}
