package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		AccessSecret  string `yaml:"access_secret"`
		RefreshSecret string `yaml:"refresh_secret"`
		AccessTTLMin  int    `yaml:"access_ttl_minutes"`
		RefreshTTLHrs int    `yaml:"refresh_ttl_hours"`
	} `yaml:"jwt"`

	Cookie struct {
		Domain string `yaml:"domain"`
		Secure bool   `yaml:"secure"`
	} `yaml:"cookie"`

	CORS struct {
		Origin string `yaml:"origin"`
	} `yaml:"cors"`
}

// AccessTTL возвращает время жизни access-токена
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.AccessTTLMin) * time.Minute
}

// RefreshTTL возвращает время жизни refresh-токена
func (c *Config) RefreshTTL() time.Duration {
	return time.Duration(c.JWT.RefreshTTLHrs) * time.Hour
}

// Load собирает конфигурацию: config.yaml (если есть) + переопределение
// из переменных окружения. Возвращает готовую структуру - она явно
// передается в token manager, middleware и сборку приложения,
// глобального состояния пакет не держит.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env не обязателен - полагаемся на окружение
	}

	cfg := &Config{}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	if f, err := os.Open(configPath); err == nil {
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
		}
		f.Close()
	}

	// Переменные окружения имеют приоритет над файлом
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvAsInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.Env = getEnv("SERVER_ENV", cfg.Server.Env)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)
	cfg.JWT.AccessSecret = getEnv("JWT_ACCESS_SECRET", cfg.JWT.AccessSecret)
	cfg.JWT.RefreshSecret = getEnv("JWT_REFRESH_SECRET", cfg.JWT.RefreshSecret)
	cfg.JWT.AccessTTLMin = getEnvAsInt("JWT_ACCESS_TTL_MINUTES", cfg.JWT.AccessTTLMin)
	cfg.JWT.RefreshTTLHrs = getEnvAsInt("JWT_REFRESH_TTL_HOURS", cfg.JWT.RefreshTTLHrs)
	cfg.Cookie.Domain = getEnv("COOKIE_DOMAIN", cfg.Cookie.Domain)
	cfg.CORS.Origin = getEnv("CORS_ORIGIN", cfg.CORS.Origin)
	if v, ok := os.LookupEnv("COOKIE_SECURE"); ok {
		cfg.Cookie.Secure = v == "true" || v == "1"
	}

	applyDefaults(cfg)

	if cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.JWT.AccessTTLMin == 0 {
		cfg.JWT.AccessTTLMin = 15
	}
	if cfg.JWT.RefreshTTLHrs == 0 {
		cfg.JWT.RefreshTTLHrs = 10 * 24
	}
	if cfg.CORS.Origin == "" {
		cfg.CORS.Origin = "*"
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
