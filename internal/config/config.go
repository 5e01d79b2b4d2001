// Package config loads simulator settings from an optional .env file, an
// optional YAML file and COUPSIM_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/BStarcheus/open-spiel-coup/internal/policy"
)

// EnvPrefix prefixes every environment override, e.g. COUPSIM_GAMES.
const EnvPrefix = "coupsim"

// FileEnv names the variable holding the YAML config path.
const FileEnv = "COUPSIM_CONFIG_FILE"

// DefaultFile is read when FileEnv is unset. It may be absent.
const DefaultFile = "coupsim.yaml"

// Config holds simulator settings.
type Config struct {
	Games    int      `yaml:"games" envconfig:"games"`
	Workers  int      `yaml:"workers" envconfig:"workers"`
	Seed     uint64   `yaml:"seed" envconfig:"seed"`
	Policies []string `yaml:"policies" envconfig:"policies"`
	LogLevel string   `yaml:"logLevel" envconfig:"log_level"`
	MaxMoves int      `yaml:"maxMoves" envconfig:"max_moves"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Games:    1000,
		Workers:  4,
		Policies: []string{"random", "random"},
		LogLevel: "info",
		MaxMoves: 2000,
	}
}

// Load builds a Config from defaults, .env, the YAML file and environment.
// An explicit path overrides FileEnv; a missing default file is not an error.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(FileEnv)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
		logrus.WithField("file", path).Debug("no config file, using defaults")
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxMoves < 0 {
		return fmt.Errorf("maxMoves must not be negative, got %d", c.MaxMoves)
	}
	if len(c.Policies) != 2 {
		return fmt.Errorf("need exactly 2 policies, got %d", len(c.Policies))
	}
	for _, name := range c.Policies {
		if _, err := policy.ByName(name, 0); err != nil {
			return err
		}
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
