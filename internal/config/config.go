package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr    string       `yaml:"addr"`
	WebDir  string       `yaml:"web_dir"`
	DataDir string       `yaml:"data_dir"` // 空串表示偏好只存内存
	Search  SearchConfig `yaml:"search"`
	Log     LogConfig    `yaml:"log"`
}

type SearchConfig struct {
	Depth     int           `yaml:"depth"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Workers   int           `yaml:"workers"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console 或 json
}

func Default() Config {
	return Config{
		Addr:    ":2888",
		WebDir:  "./web",
		DataDir: "./data",
		Search: SearchConfig{
			Depth:   3,
			Workers: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load 读取 YAML；文件里没写的字段保持默认值。path 为空直接返回默认配置。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty addr", ErrInvalidConfig)
	}
	if c.Search.Depth <= 0 {
		return fmt.Errorf("%w: search depth must be positive, got %d", ErrInvalidConfig, c.Search.Depth)
	}
	if c.Search.TimeLimit < 0 {
		return fmt.Errorf("%w: negative search time limit", ErrInvalidConfig)
	}
	if c.Search.Workers <= 0 {
		return fmt.Errorf("%w: search workers must be positive, got %d", ErrInvalidConfig, c.Search.Workers)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (l LogConfig) ParseLevel() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return lvl, nil
}

// NewLogger 按配置生成 logger：console 格式给人看，json 格式给机器收集
func (l LogConfig) NewLogger(w io.Writer) (zerolog.Logger, error) {
	lvl, err := l.ParseLevel()
	if err != nil {
		return zerolog.Nop(), err
	}
	if l.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
