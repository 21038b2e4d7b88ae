package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"btviz/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Logging  logging.Config `mapstructure:"logging"`
	Inputs   InputsConfig   `mapstructure:"inputs"`
	Render   RenderConfig   `mapstructure:"render"`
	Database DatabaseConfig `mapstructure:"database"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// InputsConfig locates the three report artifacts the commands consume.
type InputsConfig struct {
	Log     string `mapstructure:"log"`
	Trades  string `mapstructure:"trades"`
	Summary string `mapstructure:"summary"`
}

// RenderConfig governs chart output and the replay cadence.
type RenderConfig struct {
	FPS       float64 `mapstructure:"fps"`
	Batch     int     `mapstructure:"batch"`
	Scale     string  `mapstructure:"scale"`
	Width     int     `mapstructure:"width"`
	Height    int     `mapstructure:"height"`
	OutDir    string  `mapstructure:"out_dir"`
	FramesDir string  `mapstructure:"frames_dir"`
}

// DatabaseConfig encapsulates PostgreSQL connectivity.
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BTVIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "btviz")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("inputs.log", "log.txt")
	v.SetDefault("inputs.trades", "report/top/top-strategy-trades.csv")
	v.SetDefault("inputs.summary", "report/optimization_summary.csv")

	v.SetDefault("render.fps", 65.0)
	v.SetDefault("render.batch", 10)
	v.SetDefault("render.scale", "log")
	v.SetDefault("render.width", 1280)
	v.SetDefault("render.height", 720)
	v.SetDefault("render.out_dir", "report/charts")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrations_path", "migrations")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be greater than zero")
	}
	if c.Render.Batch < 1 {
		return fmt.Errorf("render.batch must be at least one")
	}
	if c.Render.Scale != "log" && c.Render.Scale != "linear" {
		return fmt.Errorf("render.scale must be either log or linear, got %q", c.Render.Scale)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be greater than zero")
	}
	return nil
}

// ResolveBatch returns either the CLI override or config default.
func (c *Config) ResolveBatch(override int) int {
	if override > 0 {
		return override
	}
	return c.Render.Batch
}

// ResolveFPS returns either the CLI override or config default.
func (c *Config) ResolveFPS(override float64) float64 {
	if override > 0 {
		return override
	}
	return c.Render.FPS
}
