package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bikeshare/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Datasets  DatasetsConfig  `yaml:"datasets" envconfig:"DATASETS"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// DatasetsConfig maps region names to the trip files that back them
type DatasetsConfig struct {
	DataDir string            `yaml:"data_dir" envconfig:"DATA_DIR"`
	Files   map[string]string `yaml:"files" envconfig:"FILES"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST"`
}

// TelemetryConfig controls OpenTelemetry tracing and metrics
type TelemetryConfig struct {
	EnableTracing bool    `yaml:"enable_tracing" envconfig:"ENABLE_TRACING"`
	EnableMetrics bool    `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	TraceExporter string  `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	SampleRatio   float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO"`
}

// Path resolves the dataset file for a region. Region names are matched
// case-insensitively after trimming.
func (d DatasetsConfig) Path(region string) (string, bool) {
	file, ok := d.Files[NormalizeRegion(region)]
	if !ok {
		return "", false
	}
	if filepath.IsAbs(file) || d.DataDir == "" {
		return file, true
	}
	return filepath.Join(d.DataDir, file), true
}

// Regions returns the configured region names in sorted order
func (d DatasetsConfig) Regions() []string {
	regions := make([]string, 0, len(d.Files))
	for region := range d.Files {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// NormalizeRegion canonicalizes a region name for lookup
func NormalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

// Load builds the configuration from defaults, an optional YAML file and
// BIKESHARE_* environment variables, in increasing order of precedence.
// An empty path falls back to the well-known config file locations.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", path)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Keys absent from the file
// keep their current values.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// normalize lower-cases region keys so lookups are case-insensitive
func (c *Config) normalize() {
	files := make(map[string]string, len(c.Datasets.Files))
	for region, file := range c.Datasets.Files {
		files[NormalizeRegion(region)] = strings.TrimSpace(file)
	}
	c.Datasets.Files = files
	c.Datasets.DataDir = ResolveDataDir(c.Datasets.DataDir)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// validate validates the configuration
func (c *Config) validate() error {
	if len(c.Datasets.Files) == 0 {
		return fmt.Errorf("at least one dataset must be configured")
	}
	for region, file := range c.Datasets.Files {
		if region == "" {
			return fmt.Errorf("dataset region name must not be empty")
		}
		if file == "" {
			return fmt.Errorf("dataset file for region %q must not be empty", region)
		}
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.RateLimitRPS < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must not be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %q", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("log file path is required for output %q", c.Logging.Output)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be within [0, 1]")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Datasets: DatasetsConfig{
			DataDir: DefaultDataDir,
			Files: map[string]string{
				"chicago":       "chicago.csv",
				"new york city": "new_york_city.csv",
				"washington":    "washington.csv",
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: "logs/bikeshare.log",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
			RateLimitRPS:    DefaultRateLimit,
			RateLimitBurst:  DefaultBurstSize,
		},
		Telemetry: TelemetryConfig{
			EnableTracing: false,
			EnableMetrics: true,
			TraceExporter: "stdout",
			SampleRatio:   1.0,
		},
	}
}
