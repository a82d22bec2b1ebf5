package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Attendance AttendanceConfig `mapstructure:"attendance"`
	Scoring    ScoringConfig    `mapstructure:"scoring"`

	// 配置文件所在目录（运行时字段，用于热更新）
	Path string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	ServiceName       string `mapstructure:"service_name"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type AttendanceConfig struct {
	// IANA 时区名，用于判断"今天结束"的时间点
	Timezone string `mapstructure:"timezone"`
}

type ScoringConfig struct {
	DebateMaxScore int `mapstructure:"debate_max_score"`
}

// Location 返回考勤使用的时区，配置为空或无效时退回本地时区
func (c AttendanceConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("tracing.service_name", "lms-authoring")
	v.SetDefault("scoring.debate_max_score", 100)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LMS")
	v.AutomaticEnv()
	setDefaults(v)

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.file", "LOG_FILE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Attendance
	v.BindEnv("attendance.timezone", "ATTENDANCE_TIMEZONE")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Path = path

	if cfg.RateLimit.MaxRequests <= 0 || cfg.RateLimit.WindowMinutes <= 0 {
		return nil, fmt.Errorf("rate_limit must be positive, got %d requests per %d minutes",
			cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowMinutes)
	}
	if cfg.Scoring.DebateMaxScore <= 0 {
		return nil, fmt.Errorf("scoring.debate_max_score must be positive, got %d", cfg.Scoring.DebateMaxScore)
	}
	if cfg.Attendance.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Attendance.Timezone); err != nil {
			return nil, fmt.Errorf("invalid attendance.timezone %q: %w", cfg.Attendance.Timezone, err)
		}
	}

	return &cfg, nil
}
