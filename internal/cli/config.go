package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pagemarks/pkg/cache"
	perrors "github.com/matzehuels/pagemarks/pkg/errors"
	"github.com/matzehuels/pagemarks/pkg/measure"
	"github.com/matzehuels/pagemarks/pkg/pipeline"
	"github.com/matzehuels/pagemarks/pkg/server"
)

// Cache backends accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the on-disk CLI configuration.
//
//	relaxation_passes = 3
//	fetch_timeout = "5s"
//
//	[measure]
//	kind = "text"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
type Config struct {
	RelaxationPasses int            `toml:"relaxation_passes"`
	FetchTimeout     duration       `toml:"fetch_timeout"`
	Measure          measure.Config `toml:"measure"`
	Cache            CacheConfig    `toml:"cache"`
	Server           ServerConfig   `toml:"server"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	RedisURL string   `toml:"redis_url"`
	TTL      duration `toml:"ttl"`
}

// ServerConfig configures `pagemarks serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// duration decodes TOML strings such as "5s".
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// defaultConfig returns the configuration used when no file exists.
func defaultConfig() Config {
	return Config{
		RelaxationPasses: pipeline.DefaultRelaxationPasses,
		FetchTimeout:     duration{pipeline.DefaultFetchTimeout},
		Cache:            CacheConfig{Backend: backendFile, TTL: duration{cache.TTLLayout}},
		Server:           ServerConfig{Addr: server.DefaultAddr},
	}
}

// configPath returns the config file location using XDG
// (~/.config/pagemarks/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path on top of the defaults. A missing file is not an
// error unless the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return defaultConfig(), nil
	}
	if os.IsNotExist(err) {
		return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, perrors.New(perrors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return perrors.New(perrors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if _, err := measure.New(c.Measure); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "measure")
	}
	opts := c.pipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "config")
	}
	return nil
}

// pipelineOptions converts the config into run options.
func (c Config) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		RelaxationPasses: c.RelaxationPasses,
		FetchTimeout:     c.FetchTimeout.Duration,
		TTL:              c.Cache.TTL.Duration,
	}
}
