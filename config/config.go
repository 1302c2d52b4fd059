// Package config loads roadnet settings from a YAML file, ROADNET_*
// environment variables and built-in defaults, in that order of precedence
// (environment wins).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/roadnet/autoconnect"
	"github.com/katalvlaran/roadnet/history"
	"github.com/katalvlaran/roadnet/prim_kruskal"
)

// ErrInvalidConfig is returned by Validate and Load.
var ErrInvalidConfig = errors.New("config: invalid")

// EnvPrefix prefixes every environment override, e.g. ROADNET_HISTORY_MAX_SIZE.
const EnvPrefix = "ROADNET"

// Store drivers.
const (
	DriverJSON   = "json"
	DriverYAML   = "yaml"
	DriverSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	History     History     `mapstructure:"history"`
	Autoconnect Autoconnect `mapstructure:"autoconnect"`
	Draw        Draw        `mapstructure:"draw"`
	Route       Route       `mapstructure:"route"`
	Store       Store       `mapstructure:"store"`
	Log         Log         `mapstructure:"log"`
	HTTP        HTTP        `mapstructure:"http"`
}

type History struct {
	MaxSize int `mapstructure:"max_size"`
}

// Autoconnect holds the thresholds of the smart generator.
type Autoconnect struct {
	NearestWaypoint float64 `mapstructure:"nearest_waypoint"`
	K               int     `mapstructure:"k"`
	KNNRadius       float64 `mapstructure:"knn_radius"`
	TreeCutoff      float64 `mapstructure:"tree_cutoff"`
	CityLink        float64 `mapstructure:"city_link"`
	Method          string  `mapstructure:"method"`
	// ProtectDrawn keeps generated roads off waypoints of drawn roads.
	ProtectDrawn bool `mapstructure:"protect_drawn"`
}

// Draw controls freehand road drawing.
type Draw struct {
	// Spacing is the distance between generated waypoints.
	Spacing float64 `mapstructure:"spacing"`
}

type Route struct {
	// Scale converts map units to kilometres.
	Scale float64 `mapstructure:"scale"`
}

type Store struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	p := autoconnect.DefaultParams()
	v.SetDefault("history.max_size", history.DefaultMaxSize)
	v.SetDefault("autoconnect.nearest_waypoint", p.NearestWaypoint)
	v.SetDefault("autoconnect.k", p.K)
	v.SetDefault("autoconnect.knn_radius", p.KNNRadius)
	v.SetDefault("autoconnect.tree_cutoff", p.TreeCutoff)
	v.SetDefault("autoconnect.city_link", p.CityLink)
	v.SetDefault("autoconnect.method", p.Method)
	v.SetDefault("autoconnect.protect_drawn", p.ProtectDrawn)
	v.SetDefault("draw.spacing", 15.0)
	v.SetDefault("route.scale", 7.0)
	v.SetDefault("store.driver", DriverJSON)
	v.SetDefault("store.path", "data")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8080")
}

// Default returns the configuration with nothing but defaults applied.
func Default() Config {
	v := viper.New()
	SetDefaults(v)
	var c Config
	// defaults always decode
	_ = v.Unmarshal(&c)
	return c
}

// Load reads path (optional; "" skips the file) and environment overrides
// into a validated Config.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.History.MaxSize >= 1, "history.max_size must be >= 1, got %d", c.History.MaxSize)
	check(c.Autoconnect.NearestWaypoint > 0, "autoconnect.nearest_waypoint must be > 0")
	check(c.Autoconnect.K >= 1, "autoconnect.k must be >= 1, got %d", c.Autoconnect.K)
	check(c.Autoconnect.KNNRadius > 0, "autoconnect.knn_radius must be > 0")
	check(c.Autoconnect.TreeCutoff > 0, "autoconnect.tree_cutoff must be > 0")
	check(c.Autoconnect.CityLink >= 0, "autoconnect.city_link must be >= 0")
	m := c.Autoconnect.Method
	check(m == prim_kruskal.MethodKruskal || m == prim_kruskal.MethodPrim, "autoconnect.method %q (want kruskal or prim)", m)
	check(c.Draw.Spacing > 0, "draw.spacing must be > 0")
	check(c.Route.Scale > 0, "route.scale must be > 0")
	switch c.Store.Driver {
	case DriverJSON, DriverYAML, DriverSQLite:
	default:
		check(false, "store.driver %q (want json, yaml or sqlite)", c.Store.Driver)
	}
	check(c.Store.Path != "", "store.path is empty")
	_, err := c.Log.SlogLevel()
	check(err == nil, "log.level %q", c.Log.Level)

	return errors.Join(errs...)
}

// Params converts the autoconnect section into generator parameters.
func (a Autoconnect) Params() autoconnect.Params {
	return autoconnect.Params{
		NearestWaypoint: a.NearestWaypoint,
		K:               a.K,
		KNNRadius:       a.KNNRadius,
		TreeCutoff:      a.TreeCutoff,
		CityLink:        a.CityLink,
		Method:          a.Method,
		ProtectDrawn:    a.ProtectDrawn,
	}
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l Log) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(l.Level))
	return lvl, err
}
