package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "AEROSTOCK"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Inventory InventoryConfig `mapstructure:"inventory"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// SourceConfig points at the REST API that owns the airplane and component collections.
type SourceConfig struct {
	Scheme  string        `mapstructure:"scheme"`
	Host    string        `mapstructure:"host"`
	Port    string        `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
	// BasePath prefixes every collection path, e.g. /api/v1.
	BasePath string `mapstructure:"base_path"`
}

func (c SourceConfig) BaseURL() string {
	scheme := c.Scheme
	if scheme == "" {
		scheme = "http"
	}
	host := c.Host
	if c.Port != "" {
		host = net.JoinHostPort(c.Host, c.Port)
	}
	if path := strings.Trim(c.BasePath, "/"); path != "" {
		return fmt.Sprintf("%s://%s/%s", scheme, host, path)
	}
	return fmt.Sprintf("%s://%s", scheme, host)
}

type InventoryConfig struct {
	PageSize int `mapstructure:"page_size"`
	// RefreshInterval is how old a snapshot may get before a query triggers a refetch.
	// Zero keeps a snapshot until an explicit refresh.
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	// FetchTimeout bounds one shared refresh, independent of the request that started it.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type LogConfig struct {
	Level     string `mapstructure:"level"`  // DEBUG, INFO, WARN, ERROR
	Format    string `mapstructure:"format"` // json, text
	AddSource bool   `mapstructure:"add_source"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("source.scheme", "http")
	v.SetDefault("source.host", "localhost")
	v.SetDefault("source.port", "5000")
	v.SetDefault("source.timeout", 10*time.Second)

	v.SetDefault("inventory.page_size", 12)
	v.SetDefault("inventory.refresh_interval", time.Minute)
	v.SetDefault("inventory.fetch_timeout", 15*time.Second)

	v.SetDefault("log.level", "INFO")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.add_source", false)
}

// Load reads defaults, then an optional aerostock.yaml in the working directory,
// then AEROSTOCK_* environment variables (AEROSTOCK_SOURCE_HOST -> source.host).
func Load() (*Config, error) {
	return load(viper.New(), ".")
}

func load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("aerostock")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The dashboard frontend locates the API through these.
	_ = v.BindEnv("source.host", envPrefix+"_SOURCE_HOST", "WEBSERVER_HOST")
	_ = v.BindEnv("source.port", envPrefix+"_SOURCE_PORT", "WEBSERVER_PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Inventory.PageSize <= 0 {
		return nil, fmt.Errorf("inventory.page_size must be positive, got %d", cfg.Inventory.PageSize)
	}

	return &cfg, nil
}
