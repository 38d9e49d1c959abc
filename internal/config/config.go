// Package config loads shoplist settings from defaults, an optional config
// file and SHOPLIST_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SHOPLIST_STORAGE_DRIVER.
const EnvPrefix = "SHOPLIST"

// Config is the full application configuration.
type Config struct {
	Storage Storage `mapstructure:"storage"`
	HTTP    HTTP    `mapstructure:"http"`
	Log     Log     `mapstructure:"log"`
	Recipes Recipes `mapstructure:"recipes"`
}

// Storage selects and configures the document backend.
type Storage struct {
	Driver      string `mapstructure:"driver"`
	Key         string `mapstructure:"key"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
	FSRoot      string `mapstructure:"fs_root"`
	Redis       Redis  `mapstructure:"redis"`
	S3          S3     `mapstructure:"s3"`

	// SaveTimeout bounds each background write of the list, e.g. "5s".
	SaveTimeout time.Duration `mapstructure:"save_timeout"`
}

// Redis configures the redis driver.
type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// KeyPrefix namespaces document keys, default "shoplist:".
	KeyPrefix string `mapstructure:"key_prefix"`
}

// S3 configures the s3 driver. Credentials come from the AWS default chain.
type S3 struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// HTTP configures the API server.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Log configures logging.
type Log struct {
	Level string `mapstructure:"level"`
}

// Recipes points at an optional recipe book replacing the built-in one.
type Recipes struct {
	File string `mapstructure:"file"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Storage: Storage{
			Driver:      "sqlite",
			Key:         "shopping-list",
			SQLitePath:  "shoplist.db",
			PostgresDSN: "postgres://localhost/shoplist?sslmode=disable",
			FSRoot:      "./shoplistdata",
			Redis:       Redis{Addr: "localhost:6379", KeyPrefix: "shoplist:"},
			S3:          S3{Region: "us-east-1"},
			SaveTimeout: 10 * time.Second,
		},
		HTTP: HTTP{Addr: ":8080"},
		Log:  Log{Level: "info"},
	}
}

// Load reads configuration. When path is empty no file is read; when it is
// set the file must exist and its format is inferred from the extension.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Every key needs a default so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("storage.driver", d.Storage.Driver)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.postgres_dsn", d.Storage.PostgresDSN)
	v.SetDefault("storage.fs_root", d.Storage.FSRoot)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.key_prefix", d.Storage.Redis.KeyPrefix)
	v.SetDefault("storage.s3.bucket", d.Storage.S3.Bucket)
	v.SetDefault("storage.s3.region", d.Storage.S3.Region)
	v.SetDefault("storage.s3.endpoint", d.Storage.S3.Endpoint)
	v.SetDefault("storage.s3.path_style", d.Storage.S3.PathStyle)
	v.SetDefault("storage.save_timeout", d.Storage.SaveTimeout)
	v.SetDefault("http.addr", d.HTTP.Addr)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("recipes.file", d.Recipes.File)
}
