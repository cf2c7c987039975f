package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

const EnvProduction = "production"

type Config struct {
	Env           string       `yaml:"env"`
	TelegramToken string       `yaml:"telegram_token"`
	Server        ServerConfig `yaml:"server"`
	DB            DBConfig     `yaml:"db"`
	Redis         RedisConfig  `yaml:"redis"`
	Client        ClientConfig `yaml:"client"`
	Logger        LoggerConfig `yaml:"logger"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DBConfig struct {
	Driver   string `yaml:"driver"` // "postgres" or "sqlite"
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	Path     string `yaml:"path"` // sqlite file
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// ClientConfig configures the offline-first sync client.
type ClientConfig struct {
	APIURL       string        `yaml:"api_url"`
	Timeout      time.Duration `yaml:"timeout"`
	Probe        bool          `yaml:"probe"`
	CacheBackend string        `yaml:"cache_backend"` // "file" or "redis"
	CachePath    string        `yaml:"cache_path"`
	CacheKey     string        `yaml:"cache_key"`
}

type LoggerConfig struct {
	LevelName  string          `yaml:"level"`
	Level      logger.LogLevel `yaml:"-"`
	OutputPath string          `yaml:"output"`
	Format     string          `yaml:"format"`
}

// Options converts the section to logger settings.
func (l LoggerConfig) Options() logger.Config {
	return logger.Config{Level: l.Level, OutputPath: l.OutputPath, Format: l.Format}
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getBoolOrDefault(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Addr:         ":5000",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		DB: DBConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "pet_diabetes",
			Path:     "data/eventos.db",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Client: ClientConfig{
			APIURL:       "http://localhost:5000",
			Timeout:      10 * time.Second,
			Probe:        true,
			CacheBackend: "file",
			CachePath:    "data/petDiabetesEvents.json",
			CacheKey:     "petDiabetesEvents",
		},
		Logger: LoggerConfig{
			LevelName:  "info",
			OutputPath: "logs/app.log",
			Format:     "json",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.Logger.Level = parseLogLevel(cfg.Logger.LevelName)

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var err error

	c.Env = getEnvOrDefault("APP_ENV", c.Env)
	c.TelegramToken = getEnvOrDefault("TELEGRAM_BOT_TOKEN", c.TelegramToken)

	c.Server.Addr = getEnvOrDefault("SERVER_ADDR", c.Server.Addr)
	if c.Server.ReadTimeout, err = getDurationOrDefault("SERVER_READ_TIMEOUT", c.Server.ReadTimeout); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getDurationOrDefault("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout); err != nil {
		return err
	}

	c.DB.Driver = getEnvOrDefault("DB_DRIVER", c.DB.Driver)
	c.DB.Host = getEnvOrDefault("DB_HOST", c.DB.Host)
	c.DB.Port = getEnvOrDefault("DB_PORT", c.DB.Port)
	c.DB.User = getEnvOrDefault("DB_USER", c.DB.User)
	c.DB.Password = getEnvOrDefault("DB_PASSWORD", c.DB.Password)
	c.DB.DBName = getEnvOrDefault("DB_NAME", c.DB.DBName)
	c.DB.Path = getEnvOrDefault("DB_PATH", c.DB.Path)

	c.Redis.Host = getEnvOrDefault("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnvOrDefault("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", c.Redis.Password)
	if c.Redis.DB, err = getIntOrDefault("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}

	c.Client.APIURL = getEnvOrDefault("API_URL", c.Client.APIURL)
	if c.Client.Timeout, err = getDurationOrDefault("API_TIMEOUT", c.Client.Timeout); err != nil {
		return err
	}
	if c.Client.Probe, err = getBoolOrDefault("API_PROBE", c.Client.Probe); err != nil {
		return err
	}
	c.Client.CacheBackend = getEnvOrDefault("CACHE_BACKEND", c.Client.CacheBackend)
	c.Client.CachePath = getEnvOrDefault("CACHE_PATH", c.Client.CachePath)
	c.Client.CacheKey = getEnvOrDefault("CACHE_KEY", c.Client.CacheKey)

	c.Logger.LevelName = getEnvOrDefault("LOG_LEVEL", c.Logger.LevelName)
	c.Logger.OutputPath = getEnvOrDefault("LOG_OUTPUT", c.Logger.OutputPath)
	c.Logger.Format = getEnvOrDefault("LOG_FORMAT", c.Logger.Format)

	return nil
}

// Validate checks values that would otherwise fail late at connection time.
func (c *Config) Validate() error {
	var problems []string

	switch c.DB.Driver {
	case "postgres":
		if c.DB.Host == "" || c.DB.DBName == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required for postgres")
		}
		if _, err := strconv.Atoi(c.DB.Port); err != nil {
			problems = append(problems, fmt.Sprintf("DB_PORT %q is not a number", c.DB.Port))
		}
	case "sqlite":
		if c.DB.Path == "" {
			problems = append(problems, "DB_PATH is required for sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER %q must be postgres or sqlite", c.DB.Driver))
	}

	switch c.Client.CacheBackend {
	case "file":
		if c.Client.CachePath == "" {
			problems = append(problems, "CACHE_PATH is required for the file cache")
		}
	case "redis":
		if c.Client.CacheKey == "" {
			problems = append(problems, "CACHE_KEY is required for the redis cache")
		}
	default:
		problems = append(problems, fmt.Sprintf("CACHE_BACKEND %q must be file or redis", c.Client.CacheBackend))
	}

	if u, err := url.Parse(c.Client.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("API_URL %q is not an absolute URL", c.Client.APIURL))
	}

	switch c.Logger.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("LOG_FORMAT %q must be json or text", c.Logger.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
