// Package config loads service configuration from a YAML file overlaid with environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultFileName        = "config.yaml"
	defaultHTTPPort        = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultDBDriver        = DriverSQLite
	defaultSQLitePath      = "./task.db"
	defaultConnectTimeout  = 60 * time.Second
	defaultTokenTTL        = time.Hour
	defaultRedisTTL        = 5 * time.Minute
	defaultLogLevel        = "info"
)

// Supported values for DB.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// envPrefixes lists the environment variable prefixes that are mapped onto config keys.
// JWT_SECRET becomes jwt.secret, DB_HOST becomes db.host, and so on.
var envPrefixes = []string{"APP_", "HTTP_", "DB_", "JWT_", "AUTH_", "REDIS_", "LOG_"}

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("jwt.secret (JWT_SECRET) must be set")

type Config struct {
	App   App   `koanf:"app"`
	HTTP  HTTP  `koanf:"http"`
	DB    DB    `koanf:"db"`
	JWT   JWT   `koanf:"jwt"`
	Auth  Auth  `koanf:"auth"`
	Redis Redis `koanf:"redis"`
	Log   Log   `koanf:"log"`
}

type App struct {
	Name string `koanf:"name"`
	Env  string `koanf:"env"`
}

type HTTP struct {
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"readtimeout"`
	WriteTimeout    time.Duration `koanf:"writetimeout"`
	ShutdownTimeout time.Duration `koanf:"shutdowntimeout"`
}

// DB describes the relational store. Path is used by the sqlite driver;
// the host/port/user fields are used by the postgres driver.
type DB struct {
	Driver         string        `koanf:"driver"`
	Path           string        `koanf:"path"`
	Host           string        `koanf:"host"`
	Port           string        `koanf:"port"`
	User           string        `koanf:"user"`
	Password       string        `koanf:"password"`
	Name           string        `koanf:"name"`
	SSLMode        string        `koanf:"sslmode"`
	Replicas       []string      `koanf:"replicas"`
	Migrate        bool          `koanf:"migrate"`
	ConnectTimeout time.Duration `koanf:"connecttimeout"`
	Debug          bool          `koanf:"debug"`
}

// JWT holds the process-wide token signing settings.
// Rotating Secret invalidates every token issued under the previous value.
type JWT struct {
	Secret string        `koanf:"secret"`
	TTL    time.Duration `koanf:"ttl"`
}

type Auth struct {
	BcryptCost int `koanf:"bcryptcost"`
}

// Redis is optional; an empty Host disables the task read cache.
type Redis struct {
	Host     string        `koanf:"host"`
	Port     string        `koanf:"port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

type Log struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// Addr returns the host:port pair used to dial Redis.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Enabled reports whether a Redis host has been configured.
func (r Redis) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

// New loads the configuration from config.yaml (searched in ".", "config" and "../config")
// and the process environment, then validates it.
func New() (*Config, error) {
	cfg, err := Load(".", "config", "../config")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads config.yaml from the first search path that contains it (a missing file is not an error),
// overlays environment variables and fills defaults.
func Load(searchPaths ...string) (*Config, error) {
	k := koanf.New(".")

	if path, ok := findConfigFile(searchPaths); ok {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read config %s failed", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := new(Config)
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Validate checks settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return ErrMissingJWTSecret
	}
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "task_backend"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultHTTPPort
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = defaultReadTimeout
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = defaultWriteTimeout
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.DB.Driver == "" {
		c.DB.Driver = defaultDBDriver
	}
	if c.DB.Driver == DriverSQLite && c.DB.Path == "" {
		c.DB.Path = defaultSQLitePath
	}
	if c.DB.ConnectTimeout <= 0 {
		c.DB.ConnectTimeout = defaultConnectTimeout
	}
	if c.JWT.TTL <= 0 {
		c.JWT.TTL = defaultTokenTTL
	}
	if c.Redis.Port == "" {
		c.Redis.Port = "6379"
	}
	if c.Redis.TTL <= 0 {
		c.Redis.TTL = defaultRedisTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

// transformEnvKey maps DB_HOST to db.host. Variables outside envPrefixes are dropped.
func transformEnvKey(k, v string) (string, any) {
	for _, p := range envPrefixes {
		if strings.HasPrefix(k, p) {
			return strings.ToLower(strings.Replace(k, "_", ".", 1)), v
		}
	}
	return "", nil
}

func findConfigFile(searchPaths []string) (string, bool) {
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, defaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
