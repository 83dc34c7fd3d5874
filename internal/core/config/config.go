package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"

	"ad-board/internal/core/database"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type LogFile struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level string
	JSON  bool
	File  LogFile
}

type Redis struct {
	Enable   bool   `mapstructure:"enable"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSec   int    `mapstructure:"ttlSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Host               string
	Port               int
	Username           string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
	PrepareStmt        bool
}

type Limits struct {
	MaxBodyBytes      int64
	MaxInFlight       int64
	RequestTimeoutSec int
}

type Config struct {
	App    App
	Log    Log
	DB     DB
	Redis  Redis `mapstructure:"redis"`
	Limits Limits
}

// Load 读取失败直接退出进程
func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}
	return c
}

// Read path 为空时取 CONFIG_PATH，再退回默认文件；默认文件不存在时只用默认值和环境变量
func Read(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultPath
		explicit = false
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 原部署使用的无前缀变量
	_ = v.BindEnv("db.username", "APP_DB_USERNAME", "USER_DB")
	_ = v.BindEnv("db.password", "APP_DB_PASSWORD", "PASSWORD_DB")
	_ = v.BindEnv("db.name", "APP_DB_NAME", "NAME_DB")
	// HOST/PORT 太通用（常被平台用作 HTTP 端口），只在原部署的变量存在时才认
	if legacyDBEnv() {
		_ = v.BindEnv("db.host", "APP_DB_HOST", "HOST")
		_ = v.BindEnv("db.port", "APP_DB_PORT", "PORT")
	}

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DB.DSN == "" && c.DB.Driver == "postgres" {
		c.DB.DSN = database.PostgresDSN(c.DB.Host, c.DB.Port, c.DB.Username, c.DB.Password, c.DB.Name, c.DB.SSLMode)
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ad-board")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.compress", false)
	v.SetDefault("log.file.maxSizeMB", 100)
	v.SetDefault("log.file.maxBackups", 7)
	v.SetDefault("log.file.maxAgeDays", 30)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslMode", "disable")
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.autoMigrate", true)
	v.SetDefault("db.logLevel", "warn")
	v.SetDefault("db.prepareStmt", false)

	v.SetDefault("redis.enable", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttlSec", 60)

	v.SetDefault("limits.maxBodyBytes", 1<<20)
	v.SetDefault("limits.maxInFlight", 256)
	v.SetDefault("limits.requestTimeoutSec", 0)
}

func legacyDBEnv() bool {
	for _, k := range []string{"USER_DB", "PASSWORD_DB", "NAME_DB"} {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, os.ErrNotExist)
}
