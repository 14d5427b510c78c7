package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName    = "bikeshare.yaml"
	DefaultEnvFile     = ".env"
	DefaultSQLiteTable = "trips"
	DefaultRawPageSize = 5
	envPrefix          = "BIKESHARE_"
)

// DefaultSources maps each city to the file shipped with the public datasets.
var DefaultSources = map[string]string{
	"chicago":       "chicago.csv",
	"new york city": "new_york_city.csv",
	"washington":    "washington.csv",
}

type Config struct {
	DataDir     string
	ConfigPath  string
	Sources     map[string]string
	SQLiteTable string
	RawPageSize int
	Log         LogConfig
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Options carries command-line overrides. Empty fields are ignored.
type Options struct {
	DataDir    string
	ConfigPath string
	EnvFile    string
	LogLevel   string
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

type fileConfig struct {
	Cities      map[string]string `yaml:"cities"`
	SQLiteTable string            `yaml:"sqlite_table"`
	RawPageSize int               `yaml:"raw_page_size"`
	Log         LogConfig         `yaml:"log"`
}

// New returns the default configuration rooted at dataDir.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	sources := make(map[string]string, len(DefaultSources))
	for city, file := range DefaultSources {
		sources[city] = filepath.Join(dataDir, file)
	}
	return Config{
		DataDir:     dataDir,
		ConfigPath:  filepath.Join(dataDir, DefaultFileName),
		Sources:     sources,
		SQLiteTable: DefaultSQLiteTable,
		RawPageSize: DefaultRawPageSize,
		Log:         LogConfig{Level: "warn", Format: "text"},
	}, nil
}

// Load layers defaults, the optional YAML file, the .env file, the process
// environment and finally opts.
func Load(opts Options) (Config, error) {
	env, err := readEnv(opts)
	if err != nil {
		return Config{}, err
	}

	dataDir := firstNonEmpty(opts.DataDir, env("DATA_DIR"), ".")
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}

	explicit := strings.TrimSpace(opts.ConfigPath) != ""
	if explicit {
		cfg.ConfigPath = opts.ConfigPath
	} else if p := env("CONFIG"); p != "" {
		cfg.ConfigPath = p
		explicit = true
	}
	if err := cfg.applyFile(explicit); err != nil {
		return Config{}, err
	}

	if v := env("SQLITE_TABLE"); v != "" {
		cfg.SQLiteTable = v
	}
	if v := env("RAW_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %sRAW_PAGE_SIZE: %w", envPrefix, err)
		}
		cfg.RawPageSize = n
	}
	cfg.Log.Level = firstNonEmpty(opts.LogLevel, env("LOG_LEVEL"), cfg.Log.Level)
	cfg.Log.Format = firstNonEmpty(env("LOG_FORMAT"), cfg.Log.Format)
	cfg.Log.File = firstNonEmpty(env("LOG_FILE"), cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RawPageSize < 1 {
		return fmt.Errorf("raw page size must be positive, got %d", c.RawPageSize)
	}
	if strings.TrimSpace(c.SQLiteTable) == "" {
		return fmt.Errorf("sqlite table is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func (c *Config) applyFile(required bool) error {
	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("decode config %s: %w", c.ConfigPath, err)
	}
	for city, path := range file.Cities {
		key := strings.ToLower(strings.TrimSpace(city))
		if _, ok := DefaultSources[key]; !ok {
			return fmt.Errorf("config %s: unknown city %q", c.ConfigPath, city)
		}
		c.Sources[key] = c.resolve(path)
	}
	if file.SQLiteTable != "" {
		c.SQLiteTable = file.SQLiteTable
	}
	if file.RawPageSize != 0 {
		c.RawPageSize = file.RawPageSize
	}
	c.Log.Level = firstNonEmpty(file.Log.Level, c.Log.Level)
	c.Log.Format = firstNonEmpty(file.Log.Format, c.Log.Format)
	c.Log.File = firstNonEmpty(file.Log.File, c.Log.File)
	return nil
}

func (c Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func readEnv(opts Options) (func(string) string, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envFile := firstNonEmpty(opts.EnvFile, DefaultEnvFile)
	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		dotenv = map[string]string{}
	}
	return func(key string) string {
		key = envPrefix + key
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
