package config

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Feed     FeedConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME" validate:"required"`
	Environment string `env:"APP_ENV" validate:"required"`
	HTTPPort    string `env:"PORT" validate:"required,numeric"`
	PublicDir   string `env:"PUBLIC_DIR"`
	ViewsDir    string `env:"VIEWS_DIR"`
}

type DatabaseConfig struct {
	URL           string `env:"DATABASE_URL" validate:"required"`
	MaxConns      int32  `env:"DB_MAX_CONNS" validate:"gte=0"`
	MinConns      int32  `env:"DB_MIN_CONNS" validate:"gte=0"`
	MigrationsDir string `env:"MIGRATIONS_DIR"`
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type FeedConfig struct {
	Port string `env:"FEED_PORT" validate:"omitempty,numeric"`
}

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverMongo    Driver = "mongo"
	DriverMemory   Driver = "memory"
)

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
	ErrUnsupportedDriver  = errors.New("unsupported database url scheme")
)

// Driver resolves the persistence backend from the URL scheme.
func (c DatabaseConfig) Driver() (Driver, error) {
	u, err := url.Parse(strings.TrimSpace(c.URL))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedDriver, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "memory":
		return DriverMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, u.Scheme)
	}
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

func (f FeedConfig) Enabled() bool {
	return strings.TrimSpace(f.Port) != ""
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "exercise-tracker")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("VIEWS_DIR", "views")
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("REDIS_TTL", 600)
	_ = v.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGO_URI")

	str := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{
		App: AppConfig{
			AppName:     str("APP_NAME"),
			Environment: str("APP_ENV"),
			HTTPPort:    strings.TrimPrefix(str("PORT"), ":"),
			PublicDir:   str("PUBLIC_DIR"),
			ViewsDir:    str("VIEWS_DIR"),
		},
		Database: DatabaseConfig{
			URL:           str("DATABASE_URL"),
			MaxConns:      v.GetInt32("DB_MAX_CONNS"),
			MinConns:      v.GetInt32("DB_MIN_CONNS"),
			MigrationsDir: str("MIGRATIONS_DIR"),
		},
		Redis: RedisConfig{
			Addr:     str("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			TTL:      time.Duration(v.GetInt("REDIS_TTL")) * time.Second,
		},
		Feed: FeedConfig{
			Port: strings.TrimPrefix(str("FEED_PORT"), ":"),
		},
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 600 * time.Second
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	if _, err := cfg.Database.Driver(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	vd := validator.New()
	vd.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})

	err := vd.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fe.Field())
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
}
