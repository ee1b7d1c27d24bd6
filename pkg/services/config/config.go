package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/novamkr/web-vitals/pkg/cache"
	"github.com/novamkr/web-vitals/pkg/export/s3"
	"github.com/novamkr/web-vitals/pkg/fetch"
	"github.com/novamkr/web-vitals/pkg/models/domain"
	"github.com/novamkr/web-vitals/pkg/services/checks"
	"github.com/novamkr/web-vitals/pkg/store/duckdb"
)

const EnvPrefix = "WEBVITALS"

type FetchConfig struct {
	Timeout            time.Duration `mapstructure:"timeout"`
	UserAgent          string        `mapstructure:"user_agent"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
	Concurrency        int           `mapstructure:"concurrency"`
	MaxBodyBytes       int64         `mapstructure:"max_body_bytes"`
	LinkTimeout        time.Duration `mapstructure:"link_timeout"`
	ImageTimeout       time.Duration `mapstructure:"image_timeout"`
	StylesheetTimeout  time.Duration `mapstructure:"stylesheet_timeout"`
	Offline            bool          `mapstructure:"offline"`
}

type CacheConfig struct {
	Backend  string        `mapstructure:"backend"`
	RedisURL string        `mapstructure:"redis_url"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type ReportConfig struct {
	Author string `mapstructure:"author"`
	Format string `mapstructure:"format"`
	OutDir string `mapstructure:"out_dir"`
}

type ExportConfig struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

type Config struct {
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Report ReportConfig `mapstructure:"report"`
	Export ExportConfig `mapstructure:"export"`
}

func setDefaults(v *viper.Viper) {
	fc := fetch.DefaultConfig()
	cs := checks.DefaultSettings()
	v.SetDefault("fetch.timeout", fc.Timeout)
	v.SetDefault("fetch.user_agent", fc.UserAgent)
	v.SetDefault("fetch.insecure_skip_verify", fc.InsecureSkipVerify)
	v.SetDefault("fetch.concurrency", cs.Concurrency)
	v.SetDefault("fetch.max_body_bytes", fc.MaxBodyBytes)
	v.SetDefault("fetch.link_timeout", cs.LinkTimeout)
	v.SetDefault("fetch.image_timeout", cs.ImageTimeout)
	v.SetDefault("fetch.stylesheet_timeout", cs.StylesheetTimeout)
	v.SetDefault("fetch.offline", false)

	cc := cache.DefaultSettings()
	v.SetDefault("cache.backend", cc.Backend)
	v.SetDefault("cache.redis_url", cc.RedisURL)
	v.SetDefault("cache.prefix", cc.Prefix)
	v.SetDefault("cache.ttl", cc.TTL)

	v.SetDefault("store.path", duckdb.DefaultSettings().DbPath)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("report.author", domain.DefaultAuthor)
	v.SetDefault("report.format", "html")
	v.SetDefault("report.out_dir", ".")

	es := s3.DefaultSettings()
	v.SetDefault("export.bucket", es.Bucket)
	v.SetDefault("export.prefix", es.Prefix)
	v.SetDefault("export.profile", es.Profile)
	v.SetDefault("export.region", es.Region)
}

// Load reads the optional config file at path and overlays WEBVITALS_*
// environment variables (fetch.timeout -> WEBVITALS_FETCH_TIMEOUT).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse webvitals config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) FetchConfig() fetch.Config {
	return fetch.Config{
		Timeout:            c.Fetch.Timeout,
		UserAgent:          c.Fetch.UserAgent,
		InsecureSkipVerify: c.Fetch.InsecureSkipVerify,
		Concurrency:        c.Fetch.Concurrency,
		MaxBodyBytes:       c.Fetch.MaxBodyBytes,
	}
}

func (c *Config) CheckSettings() checks.Settings {
	s := checks.DefaultSettings()
	s.LinkTimeout = c.Fetch.LinkTimeout
	s.ImageTimeout = c.Fetch.ImageTimeout
	s.StylesheetTimeout = c.Fetch.StylesheetTimeout
	s.Concurrency = c.Fetch.Concurrency
	return s
}

func (c *Config) CacheSettings() cache.Settings {
	return cache.Settings{
		Backend:  c.Cache.Backend,
		RedisURL: c.Cache.RedisURL,
		Prefix:   c.Cache.Prefix,
		TTL:      c.Cache.TTL,
	}
}

func (c *Config) StoreSettings() duckdb.Settings {
	return duckdb.Settings{DbPath: c.Store.Path}
}

func (c *Config) ExportSettings() s3.Settings {
	return s3.Settings{
		Bucket:  c.Export.Bucket,
		Prefix:  c.Export.Prefix,
		Profile: c.Export.Profile,
		Region:  c.Export.Region,
	}
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
