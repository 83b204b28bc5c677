package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Policy selector values for settlement triggering.
const (
	PolicyAmount = "amount"
	PolicyRatio  = "ratio"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Exchange   ExchangeConfig   `mapstructure:"exchange"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type ExchangeConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SettlementConfig controls when a computed imbalance is worth acting on.
// Policy selects the suppression filter: "amount" compares the settlement
// amount against MinAmount, "ratio" compares the platform/exchange ratio
// deviation against MaxRatioDeviation. The two filters are independent.
type SettlementConfig struct {
	Policy            string        `mapstructure:"policy"`
	MinAmount         string        `mapstructure:"min_amount"` // base-10 integer, smallest unit
	MaxRatioDeviation float64       `mapstructure:"max_ratio_deviation"`
	LockTTL           time.Duration `mapstructure:"lock_ttl"`
	PreviewTTL        time.Duration `mapstructure:"preview_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: STL_.
// Nested keys use underscore: STL_DATABASE_HOST, STL_SETTLEMENT_POLICY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "settlement_engine")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("exchange.base_url", "http://localhost:9090")
	v.SetDefault("exchange.api_key", "")
	v.SetDefault("exchange.timeout", "10s")
	v.SetDefault("settlement.policy", PolicyAmount)
	v.SetDefault("settlement.min_amount", "0")
	v.SetDefault("settlement.max_ratio_deviation", 0.1)
	v.SetDefault("settlement.lock_ttl", "2m")
	v.SetDefault("settlement.preview_ttl", "15s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: STL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("STL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.Settlement.Policy != PolicyAmount && cfg.Settlement.Policy != PolicyRatio {
		return nil, fmt.Errorf("invalid settlement policy %q: must be %q or %q",
			cfg.Settlement.Policy, PolicyAmount, PolicyRatio)
	}

	return &cfg, nil
}
