package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/server"
)

// Cache backends selectable in [cache].
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config.toml. Zero values mean "not set"; flags
// override the file and the file overrides built-in defaults.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Watch  WatchConfig  `toml:"watch"`
}

// GridConfig holds [grid].
type GridConfig struct {
	CellWidth   float64 `toml:"cell_width"`
	CellHeight  float64 `toml:"cell_height"`
	Gap         float64 `toml:"gap"`
	ScreenWidth float64 `toml:"screen_width"`
}

// CacheConfig holds [cache].
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           duration `toml:"ttl"`
}

// ServerConfig holds [server].
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	RateLimit      float64  `toml:"rate_limit"`
	Burst          int      `toml:"burst"`
	RequestTimeout duration `toml:"request_timeout"`
}

// WatchConfig holds [watch].
type WatchConfig struct {
	Throttle duration `toml:"throttle"`
}

// duration decodes TOML strings such as "250ms".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// configPath returns $XDG_CONFIG_HOME/tilegrid/config.toml, falling back to
// ~/.config.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path, or the default location when path is empty. A
// missing default file yields an empty Config; a missing explicit file is an
// error.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return nil, tgerrors.New(tgerrors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return &Config{}, nil
		}
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, tgerrors.New(tgerrors.ErrCodeInvalidInput, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case "", backendFile, backendRedis, backendNone:
	default:
		return tgerrors.New(tgerrors.ErrCodeInvalidInput,
			"cache backend must be %q, %q or %q (got %q)", backendFile, backendRedis, backendNone, c.Cache.Backend)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return tgerrors.New(tgerrors.ErrCodeInvalidInput, "cache backend redis requires redis_addr")
	}
	return nil
}

// applyGrid fills unset grid options from [grid] and [cache].
func (c *Config) applyGrid(opts *pipeline.Options) {
	if opts.CellWidth == 0 {
		opts.CellWidth = c.Grid.CellWidth
	}
	if opts.CellHeight == 0 {
		opts.CellHeight = c.Grid.CellHeight
	}
	if opts.Gap == 0 {
		opts.Gap = c.Grid.Gap
	}
	if opts.Columns == 0 && opts.ScreenWidth == 0 {
		opts.ScreenWidth = c.Grid.ScreenWidth
	}
	if opts.TTL == 0 {
		opts.TTL = c.Cache.TTL.Duration
	}
}

// applyServer fills unset server settings from [server].
func (c *Config) applyServer(cfg *server.Config) {
	if cfg.Addr == "" {
		cfg.Addr = c.Server.Addr
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = c.Server.RateLimit
	}
	if cfg.Burst == 0 {
		cfg.Burst = c.Server.Burst
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = c.Server.RequestTimeout.Duration
	}
}
