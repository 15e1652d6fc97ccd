package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int

	RateLimitRPS      float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst    int     `mapstructure:"rate_limit_burst"`
	MaxConcurrency    int64   `mapstructure:"max_concurrency"`
	RequestTimeoutSec int     `mapstructure:"request_timeout_sec"`
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttl_sec"`
}

// Database selects the document store. URL and Name come from DATABASE_URL
// and DATABASE_NAME.
type Database struct {
	Driver             string
	URL                string
	Name               string
	MaxPoolSize        uint64 `mapstructure:"max_pool_size"`
	MinPoolSize        uint64 `mapstructure:"min_pool_size"`
	MaxConnIdleMin     int    `mapstructure:"max_conn_idle_min"`
	ConnectTimeoutSec  int    `mapstructure:"connect_timeout_sec"`
	SelectionTimeoutMs int    `mapstructure:"selection_timeout_ms"`
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Config struct {
	App      App
	Log      Log
	Database Database
	Redis    Redis `mapstructure:"redis"`
	CORS     CORS  `mapstructure:"cors"`
}

// Load reads the config and exits the process on failure.
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}
	return c
}

// Read loads defaults, then the YAML file (optional when path is empty and the
// default file is absent), then the environment.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := path != ""
	if !explicit {
		path = os.Getenv("CONFIG_PATH")
		explicit = path != ""
	}
	if !explicit {
		path = defaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed deployment variables
	_ = v.BindEnv("database.url", "DATABASE_URL")
	_ = v.BindEnv("database.name", "DATABASE_NAME")
	_ = v.BindEnv("app.http.port", "PORT")

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "cutConnect")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8000)
	v.SetDefault("app.http.readtimeoutsec", 15)
	v.SetDefault("app.http.writetimeoutsec", 15)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.http.rate_limit_rps", 200)
	v.SetDefault("app.http.rate_limit_burst", 400)
	v.SetDefault("app.http.max_concurrency", 300)
	v.SetDefault("app.http.request_timeout_sec", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.enable", false)
	v.SetDefault("log.file.compress", false)
	v.SetDefault("log.file.filename", "logs/cutconnect.log")
	v.SetDefault("log.file.max_size_mb", 100)
	v.SetDefault("log.file.max_backups", 7)
	v.SetDefault("log.file.max_age_days", 30)

	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.url", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.max_pool_size", 10)
	v.SetDefault("database.min_pool_size", 1)
	v.SetDefault("database.max_conn_idle_min", 30)
	v.SetDefault("database.connect_timeout_sec", 10)
	v.SetDefault("database.selection_timeout_ms", 5000)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_sec", 30)

	v.SetDefault("cors.allow_origins", []string{})
}
