package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

const envFile = ".env"

type Config struct {
	ServerPort      string        `mapstructure:"server_port"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	StoreDriver string `mapstructure:"store_driver"`

	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`

	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTMaxAge      int    `mapstructure:"jwt_max_age"`
	AuthCookieName string `mapstructure:"auth_cookie_name"`

	AMQPURL string `mapstructure:"amqp_url"`
}

// LoadConfig читает .env (если есть), затем переменные окружения.
// Уже заданные переменные окружения имеют приоритет над .env.
func LoadConfig() (Config, error) {
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет обязательные параметры.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTMaxAge <= 0 {
		return errors.New("JWT_MAX_AGE must be positive")
	}
	switch c.StoreDriver {
	case StorePostgres:
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// PostgresDSN собирает строку подключения для pgx.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// JWTTTL возвращает время жизни токена доступа.
func (c Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTMaxAge) * time.Second
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetDefault("store_driver", StorePostgres)

	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "password")
	v.SetDefault("db_name", "team_roster")

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "team_roster")

	v.SetDefault("jwt_max_age", 3600)
	v.SetDefault("auth_cookie_name", "sfm-backend-cookie")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"server_port",
		"log_level",
		"shutdown_timeout",
		"store_driver",
		"db_host",
		"db_port",
		"db_user",
		"db_password",
		"db_name",
		"mongo_uri",
		"mongo_database",
		"jwt_secret",
		"jwt_max_age",
		"auth_cookie_name",
		"amqp_url",
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}
}
