package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SourceMemory   = "memory"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

const envPrefix = "BULLETIN"

type Config struct {
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Remote    RemoteConfig    `mapstructure:"remote"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Listing   ListingConfig   `mapstructure:"listing"`
	Log       LogConfig       `mapstructure:"log"`
}

type PostgresConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"gt=0"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

// RemoteConfig addresses the board REST service.
type RemoteConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int           `mapstructure:"burst" validate:"gte=0"`
	RetryCount        int           `mapstructure:"retry_count" validate:"gte=0"`
}

type DirectoryConfig struct {
	Source string `mapstructure:"source" validate:"oneof=memory http postgres"`
	// Administrator seeded into the memory source.
	AdminName     string `mapstructure:"admin_name"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
}

type ListingConfig struct {
	PageSize int           `mapstructure:"page_size" validate:"gte=1,lte=100"`
	Debounce time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "board")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("remote.base_url", "http://localhost:8080/api")
	v.SetDefault("remote.timeout", 10*time.Second)
	v.SetDefault("remote.requests_per_second", 20.0)
	v.SetDefault("remote.burst", 5)
	v.SetDefault("remote.retry_count", 2)

	v.SetDefault("directory.source", SourceMemory)
	v.SetDefault("directory.admin_name", "admin")
	v.SetDefault("directory.admin_email", "admin@bulletin.local")
	v.SetDefault("directory.admin_password", "admin1234")

	v.SetDefault("listing.page_size", 10)
	v.SetDefault("listing.debounce", 500*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)
	v.SetDefault("log.compress", false)
}

// RegisterFlags adds the command line overrides LoadConfig understands.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a bulletin.yaml config file")
	fs.String("source", "", "directory source: memory, http or postgres")
	fs.String("base-url", "", "board REST API base url")
	fs.Int("page-size", 0, "rows per listing page")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.String("log-path", "", "rolling log file path")
}

var flagKeys = map[string]string{
	"source":    "directory.source",
	"base-url":  "remote.base_url",
	"page-size": "listing.page_size",
	"log-level": "log.level",
	"log-path":  "log.path",
}

// LoadConfig resolves the configuration from, in increasing priority,
// defaults, an optional bulletin.yaml, BULLETIN_* environment variables and
// flags that were set explicitly. fs may be nil.
func LoadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	path := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			path = f.Value.String()
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bulletin")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Directory.Source == SourceHTTP && c.Remote.BaseURL == "" {
		return errors.New("invalid config: remote.base_url is required for the http source")
	}
	if c.Directory.Source == SourcePostgres && c.Postgres.Host == "" {
		return errors.New("invalid config: postgres.host is required for the postgres source")
	}
	return nil
}
