package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Log       LogConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Scheduler SchedulerConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	Salt   string
	Window time.Duration
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

type SchedulerConfig struct {
	TimeBudget       time.Duration
	SolverBudget     time.Duration
	DayOffWeight     int
	OnlineOnlyWeight int
}

// Load reads configuration from the environment with sane defaults for local
// development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("port", 8502)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.path", "scheduler.db")
	v.SetDefault("auth.salt", "portfolio-2025-scheduler-salt")
	v.SetDefault("auth.window", 5*time.Minute)
	v.SetDefault("ratelimit.maxrequests", 20)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("scheduler.timebudget", 30*time.Second)
	v.SetDefault("scheduler.solverbudget", 60*time.Second)
	v.SetDefault("scheduler.dayoffweight", 1)
	v.SetDefault("scheduler.onlineonlyweight", 1)

	cfg := &Config{
		Env:  v.GetString("env"),
		Port: v.GetInt("port"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Auth: AuthConfig{
			Salt:   v.GetString("auth.salt"),
			Window: v.GetDuration("auth.window"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: v.GetInt("ratelimit.maxrequests"),
			Window:      v.GetDuration("ratelimit.window"),
		},
		Scheduler: SchedulerConfig{
			TimeBudget:       v.GetDuration("scheduler.timebudget"),
			SolverBudget:     v.GetDuration("scheduler.solverbudget"),
			DayOffWeight:     v.GetInt("scheduler.dayoffweight"),
			OnlineOnlyWeight: v.GetInt("scheduler.onlineonlyweight"),
		},
	}
	return cfg, nil
}
