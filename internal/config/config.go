// Package config loads fuelrank settings from defaults, a .env file, an
// optional YAML file and the environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataPath        = "ressources/oil_data/PrixCarburants_annuel_2022.xml"
	DefaultOutputPath      = "outputs/results.json"
	DefaultFormat          = "json"
	DefaultLogLevel        = "info"
	DefaultNominatimServer = "https://nominatim.openstreetmap.org/"
)

// Environment variables overriding the configuration file.
const (
	EnvDataPath  = "FUELRANK_DATA"
	EnvOutput    = "FUELRANK_OUTPUT"
	EnvFormat    = "FUELRANK_FORMAT"
	EnvLogLevel  = "FUELRANK_LOG_LEVEL"
	EnvNominatim = "FUELRANK_NOMINATIM"
)

type Config struct {
	DataPath        string `yaml:"data"`
	OutputPath      string `yaml:"output"`
	Format          string `yaml:"format"`
	LogLevel        string `yaml:"log_level"`
	NominatimServer string `yaml:"nominatim_server"`
}

func Default() *Config {
	return &Config{
		DataPath:        DefaultDataPath,
		OutputPath:      DefaultOutputPath,
		Format:          DefaultFormat,
		LogLevel:        DefaultLogLevel,
		NominatimServer: DefaultNominatimServer,
	}
}

// Load builds the configuration. path is an optional YAML file; an empty
// path skips it. A missing .env file in the working directory is ignored.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config %s: %w", path, err)
		}
	}

	overrideFromEnv(&cfg.DataPath, EnvDataPath)
	overrideFromEnv(&cfg.OutputPath, EnvOutput)
	overrideFromEnv(&cfg.Format, EnvFormat)
	overrideFromEnv(&cfg.LogLevel, EnvLogLevel)
	overrideFromEnv(&cfg.NominatimServer, EnvNominatim)

	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func overrideFromEnv(field *string, key string) {
	if v := os.Getenv(key); v != "" {
		*field = v
	}
}
