package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
	NATS     NATSConfig     `mapstructure:"nats"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	LogLevel string `mapstructure:"log_level"`
	NodeID   int64  `mapstructure:"node_id"`
}

// AnalysisConfig 牌效分析配置
type AnalysisConfig struct {
	Workers    int `mapstructure:"workers"`
	CacheLimit int `mapstructure:"cache_limit"`
}

// CacheConfig 分析结果缓存配置
type CacheConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TTL          time.Duration `mapstructure:"ttl"`
	Prefix       string        `mapstructure:"prefix"`
	FlushOnStart bool          `mapstructure:"flush_on_start"` // 启动时清空已缓存的结果
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// Addr Redis 地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN PostgreSQL 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	QueueGroup    string        `mapstructure:"queue_group"`
	WorkerCount   int           `mapstructure:"worker_count"`
	BufferSize    int           `mapstructure:"buffer_size"`
}

// ScoringConfig 外部点数计算器配置
type ScoringConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Command string        `mapstructure:"command"`
	Script  string        `mapstructure:"script"`
	Dir     string        `mapstructure:"dir"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type JWTConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	SecretKey    string        `mapstructure:"secret_key"`
	Issuer       string        `mapstructure:"issuer"`
	AccessExpire time.Duration `mapstructure:"access_expire"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 从环境变量覆盖配置
	cfg.applyEnv()

	return &cfg, nil
}

// setDefaults 配置文件缺省项
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mj-advisor")
	v.SetDefault("app.port", 8000)
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.node_id", 1)

	v.SetDefault("analysis.workers", 1)
	v.SetDefault("analysis.cache_limit", 65536)

	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.prefix", "mj:advisor:")

	v.SetDefault("nats.queue_group", "advisor")
	v.SetDefault("nats.worker_count", 16)
	v.SetDefault("nats.buffer_size", 1024)

	v.SetDefault("scoring.enabled", false)
	v.SetDefault("scoring.command", "node")
	v.SetDefault("scoring.script", "riichi_calculator.js")
	v.SetDefault("scoring.timeout", 10*time.Second)

	v.SetDefault("jwt.issuer", "mj-advisor")
	v.SetDefault("jwt.access_expire", 24*time.Hour)
}

// applyEnv 从环境变量覆盖配置
func (c *Config) applyEnv() {
	// App
	c.App.Port = GetEnvInt("ADVISOR_PORT", c.App.Port)
	c.App.Mode = GetEnv("GIN_MODE", c.App.Mode)
	c.App.LogLevel = GetEnv("LOG_LEVEL", c.App.LogLevel)

	// Analysis
	c.Analysis.Workers = GetEnvInt("ANALYSIS_WORKERS", c.Analysis.Workers)

	// Cache / Redis
	c.Cache.Enabled = GetEnvBool("CACHE_ENABLED", c.Cache.Enabled)
	c.Cache.TTL = GetEnvDuration("CACHE_TTL", c.Cache.TTL)
	c.Cache.FlushOnStart = GetEnvBool("CACHE_FLUSH_ON_START", c.Cache.FlushOnStart)
	c.Redis.Host = GetEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = GetEnvInt("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = GetEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = GetEnvInt("REDIS_DB", c.Redis.DB)

	// Database
	c.Database.Enabled = GetEnvBool("POSTGRES_ENABLED", c.Database.Enabled)
	c.Database.Host = GetEnv("POSTGRES_HOST", c.Database.Host)
	c.Database.Port = GetEnvInt("POSTGRES_PORT", c.Database.Port)
	c.Database.User = GetEnv("POSTGRES_USER", c.Database.User)
	c.Database.Password = GetEnv("POSTGRES_PASSWORD", c.Database.Password)
	c.Database.Name = GetEnv("POSTGRES_DB", c.Database.Name)

	// NATS
	c.NATS.Enabled = GetEnvBool("NATS_ENABLED", c.NATS.Enabled)
	c.NATS.URL = GetEnv("NATS_URL", c.NATS.URL)

	// Scoring
	c.Scoring.Enabled = GetEnvBool("SCORING_ENABLED", c.Scoring.Enabled)
	c.Scoring.Command = GetEnv("SCORING_COMMAND", c.Scoring.Command)
	c.Scoring.Script = GetEnv("SCORING_SCRIPT", c.Scoring.Script)
	c.Scoring.Dir = GetEnv("SCORING_DIR", c.Scoring.Dir)
	c.Scoring.Timeout = GetEnvDuration("SCORING_TIMEOUT", c.Scoring.Timeout)

	// JWT
	c.JWT.Enabled = GetEnvBool("JWT_ENABLED", c.JWT.Enabled)
	c.JWT.SecretKey = GetEnv("JWT_SECRET", c.JWT.SecretKey)
	c.JWT.AccessExpire = GetEnvDuration("JWT_ACCESS_EXPIRE", c.JWT.AccessExpire)
}
