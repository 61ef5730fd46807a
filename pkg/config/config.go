package config

import (
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	StorageDriverLocal = "local"
	StorageDriverMinio = "minio"
)

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "/config/config.yaml"
)

type Config struct {
	BodyLimit                 string        `koanf:"body_limit"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path" required:"true"`
	DefaultLocale             string        `koanf:"default_locale"`
	IncrementRepeatViews      bool          `koanf:"increment_repeat_views"`
	MinioAccessKey            string        `koanf:"minio_access_key"`
	MinioBucket               string        `koanf:"minio_bucket"`
	MinioEndpoint             string        `koanf:"minio_endpoint"`
	MinioSecretKey            string        `koanf:"minio_secret_key"`
	MinioUseSSL               bool          `koanf:"minio_use_ssl"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	StorageDriver             string        `koanf:"storage_driver"`
	StorageRootPath           string        `koanf:"storage_root_path"`
	StoriesPageSize           int           `koanf:"stories_page_size"`
}

func defaultConfig() *Config {
	return &Config{
		BodyLimit:                 "32M",
		DatabaseBusyTimeout:       5 * time.Second,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DefaultLocale:             "en",
		ServerHost:                "0.0.0.0",
		ServerPort:                3689,
		StorageDriver:             StorageDriverLocal,
		StorageRootPath:           "./tmp/storage/public",
		StoriesPageSize:           5,
	}
}

// New loads the config file (if present) and then lets environment variables
// override it. Environment variables are the upper snake case version of the
// file keys, e.g. DATABASE_FILE_PATH for database_file_path.
func New() (*Config, error) {
	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := defaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config backed by an in-memory database.
func NewForTest() *Config {
	cfg := defaultConfig()
	cfg.DatabaseFilePath = ":memory:"
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	cfg.ServerHost = "127.0.0.1"
	return cfg
}

func (cfg *Config) validate() error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("required") != "true" {
			continue
		}
		if v.Field(i).IsZero() {
			return errors.Errorf("missing required config: set %s or %s in the config file", toEnvName(field.Name), toSnakeCase(field.Name))
		}
	}

	switch cfg.StorageDriver {
	case StorageDriverLocal:
		if cfg.StorageRootPath == "" {
			return errors.New("missing required config: STORAGE_ROOT_PATH is required for the local storage driver")
		}
	case StorageDriverMinio:
		if cfg.MinioEndpoint == "" || cfg.MinioBucket == "" {
			return errors.New("missing required config: MINIO_ENDPOINT and MINIO_BUCKET are required for the minio storage driver")
		}
	default:
		return errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.StoriesPageSize < 1 {
		return errors.New("stories_page_size must be at least 1")
	}

	return nil
}

func toSnakeCase(name string) string {
	return strcase.ToSnake(name)
}

func toEnvName(name string) string {
	return strcase.ToScreamingSnake(name)
}
