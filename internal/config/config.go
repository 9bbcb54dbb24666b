package config

import (
	"fmt"
	"log"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string     `mapstructure:"port"`
	CORSOrigins []string   `mapstructure:"cors_origins"`
	JWTSecret   string     `mapstructure:"jwt_secret"`
	Database    Database   `mapstructure:"database"`
	Redis       Redis      `mapstructure:"redis"`
	Kafka       Kafka      `mapstructure:"kafka"`
	Logger      Logger     `mapstructure:"logger"`
	Moderation  Moderation `mapstructure:"moderation"`
}

type Database struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	MaxConns int    `mapstructure:"max_conns"`
}

// DSN builds the postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

type Redis struct {
	URL      string `mapstructure:"url"`
	CacheTTL int    `mapstructure:"cache_ttl_seconds"`
}

type Kafka struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Logger struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

type Moderation struct {
	DefaultSpamThreshold int `mapstructure:"default_spam_threshold"`
}

// envBindings keeps the env names the deployment already uses.
var envBindings = map[string]string{
	"port":                              "PORT",
	"cors_origins":                      "CORS_ORIGINS",
	"jwt_secret":                        "JWT_SECRET",
	"database.driver":                   "DB_DRIVER",
	"database.host":                     "DB_HOST",
	"database.port":                     "DB_PORT",
	"database.user":                     "DB_USER",
	"database.password":                 "DB_PASSWORD",
	"database.name":                     "DB_NAME",
	"database.sslmode":                  "DB_SSLMODE",
	"database.path":                     "DB_PATH",
	"database.max_conns":                "DB_MAX_CONNS",
	"redis.url":                         "REDIS_URL",
	"redis.cache_ttl_seconds":           "REDIS_CACHE_TTL",
	"kafka.brokers":                     "KAFKA_BROKERS",
	"kafka.topic":                       "KAFKA_TOPIC",
	"logger.level":                      "LOG_LEVEL",
	"logger.file":                       "LOG_FILE",
	"moderation.default_spam_threshold": "DEFAULT_SPAM_THRESHOLD",
}

// Load reads defaults, then the optional config file, then the environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		log.Printf("Using config file: %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("cors_origins", []string{"*"})
	v.SetDefault("jwt_secret", "")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "readit")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "readit.db")
	v.SetDefault("database.max_conns", 100)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cache_ttl_seconds", 300)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "moderation-events")

	v.SetDefault("logger.level", "INFO")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 30)
	v.SetDefault("logger.max_age", 90)
	v.SetDefault("logger.compress", true)

	v.SetDefault("moderation.default_spam_threshold", 21)
}
