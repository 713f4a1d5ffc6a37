package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stopover/pkg/errors"
)

// Environment variables that override file settings.
const (
	EnvData          = "STOPOVER_DATA"
	EnvHome          = "STOPOVER_HOME"
	EnvWorkers       = "STOPOVER_WORKERS"
	EnvCacheBackend  = "STOPOVER_CACHE"
	EnvRedisAddr     = "STOPOVER_REDIS_ADDR"
	EnvRedisPassword = "STOPOVER_REDIS_PASSWORD"
	EnvStoreBackend  = "STOPOVER_STORE"
	EnvMongoURI      = "STOPOVER_MONGO_URI"
	EnvMongoDB       = "STOPOVER_MONGO_DB"
)

// Load builds the effective configuration. An empty path skips the file and
// keeps the defaults. The environment (after loading .env if present) is
// applied last, and the result is validated.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return c.DecodeTOML(data)
	case ".yaml", ".yml":
		return c.DecodeYAML(data)
	default:
		return errors.New(errors.ErrCodeUnsupported, "config format %q (want .toml, .yaml or .yml)", ext)
	}
}

// DecodeTOML overlays TOML data onto c. Unknown keys are an error.
func (c *Config) DecodeTOML(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return nil
}

// DecodeYAML overlays YAML data onto c. Unknown keys are an error.
func (c *Config) DecodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse YAML")
	}
	return nil
}

// ApplyEnv overrides settings from getenv. Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	set := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}

	set(EnvData, &c.Data.Path)
	set(EnvHome, &c.Search.Home)
	set(EnvCacheBackend, &c.Cache.Backend)
	set(EnvRedisAddr, &c.Cache.RedisAddr)
	set(EnvRedisPassword, &c.Cache.RedisPassword)
	set(EnvStoreBackend, &c.Store.Backend)
	set(EnvMongoURI, &c.Store.MongoURI)
	set(EnvMongoDB, &c.Store.MongoDB)

	if v := strings.TrimSpace(getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", EnvWorkers)
		}
		c.Search.Workers = n
	}
	return nil
}

// EncodeTOML writes c as TOML, for `stopover config`.
func (c *Config) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode TOML")
	}
	return buf.Bytes(), nil
}
