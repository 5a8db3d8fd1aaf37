package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Admin    AdminConfig    `yaml:"admin"`
	Upload   UploadConfig   `yaml:"upload"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // sqlite, mysql, postgres
	DSN    string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

// AdminConfig holds the seeded admin account credentials.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// UploadConfig controls the bulk-upload pipeline.
type UploadConfig struct {
	MaxSizeMB     int           `yaml:"max_size_mb"`
	IngestTimeout time.Duration `yaml:"ingest_timeout"` // 0 disables the deadline
	StaleJobAge   time.Duration `yaml:"stale_job_age"`  // jobs stuck in a non-terminal state longer than this are failed
	SweepSchedule string        `yaml:"sweep_schedule"` // cron spec for the stale-job sweep
}

// RedisConfig enables the asynq-backed ingestion queue.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	var cfg *Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, err
		}
		cfg = &fileCfg
	}

	cfg.applyDefaults()
	cfg.overrideFromEnv()
	GlobalConfig = cfg
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: "5000",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "ngo_portal.db",
		},
		JWT: JWTConfig{
			Secret:     "ngo-portal-secret-change-in-production",
			ExpireHour: 24,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Upload: UploadConfig{
			MaxSizeMB:     10,
			IngestTimeout: 0,
			StaleJobAge:   time.Hour,
			SweepSchedule: "*/10 * * * *",
		},
		Redis: RedisConfig{
			Enabled: false,
			Addr:    "localhost:6379",
			DB:      0,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// applyDefaults fills zero-valued fields so a partial YAML file still works.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Mode == "" {
		c.Server.Mode = def.Server.Mode
	}
	if c.Database.Driver == "" {
		c.Database.Driver = def.Database.Driver
	}
	if c.Database.DSN == "" {
		c.Database.DSN = def.Database.DSN
	}
	if c.JWT.Secret == "" {
		c.JWT.Secret = def.JWT.Secret
	}
	if c.JWT.ExpireHour == 0 {
		c.JWT.ExpireHour = def.JWT.ExpireHour
	}
	if c.Admin.Username == "" {
		c.Admin.Username = def.Admin.Username
	}
	if c.Admin.Password == "" {
		c.Admin.Password = def.Admin.Password
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = def.Upload.MaxSizeMB
	}
	if c.Upload.StaleJobAge == 0 {
		c.Upload.StaleJobAge = def.Upload.StaleJobAge
	}
	if c.Upload.SweepSchedule == "" {
		c.Upload.SweepSchedule = def.Upload.SweepSchedule
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = def.Redis.Addr
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

func (c *Config) overrideFromEnv() {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	if mode := os.Getenv("SERVER_MODE"); mode != "" {
		c.Server.Mode = mode
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		c.Database.DSN = dsn
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.JWT.Secret = secret
	}
	if hours := os.Getenv("JWT_EXPIRE_HOUR"); hours != "" {
		if h, err := strconv.Atoi(hours); err == nil {
			c.JWT.ExpireHour = h
		}
	}
	if user := os.Getenv("ADMIN_USERNAME"); user != "" {
		c.Admin.Username = user
	}
	if pass := os.Getenv("ADMIN_PASSWORD"); pass != "" {
		c.Admin.Password = pass
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.Enabled = true
		c.parseRedisURL(redisURL)
	}
}

// parseRedisURL parses redis://:password@host:port/db into the Redis config.
func (c *Config) parseRedisURL(redisURL string) {
	url := strings.TrimPrefix(redisURL, "redis://")

	if atIdx := strings.Index(url, "@"); atIdx != -1 {
		authPart := url[:atIdx]
		url = url[atIdx+1:]
		if colonIdx := strings.Index(authPart, ":"); colonIdx != -1 {
			c.Redis.Password = authPart[colonIdx+1:]
		}
	}

	if slashIdx := strings.LastIndex(url, "/"); slashIdx != -1 {
		dbStr := url[slashIdx+1:]
		url = url[:slashIdx]
		if db, err := strconv.Atoi(dbStr); err == nil {
			c.Redis.DB = db
		}
	}

	c.Redis.Addr = url
}

// MaxUploadBytes returns the multipart size cap in bytes.
func (c *UploadConfig) MaxUploadBytes() int64 {
	return int64(c.MaxSizeMB) << 20
}
