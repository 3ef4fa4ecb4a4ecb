package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Log          Log
	Database     Database
	LocalStore   LocalStore
	Redis        Redis
	Connectivity Connectivity
}

type Server struct {
	Port string
}

type Log struct {
	Level  string
	Pretty bool
}

// Database describes the remote table backend. An empty Driver disables
// remote mirroring entirely.
type Database struct {
	Driver   string // "postgres", "sqlite" or ""
	Host     string
	Port     string
	User     string
	Password string `json:"-"`
	Name     string
	SSLMode  string
	Path     string // sqlite only
}

type LocalStore struct {
	Driver string // "memory", "sqlite" or "redis"
	Path   string
}

type Redis struct {
	Addr     string
	Password string `json:"-"`
	DB       int
	Prefix   string
}

type Connectivity struct {
	ProbeAddr string
	Interval  time.Duration
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("LOCAL_STORE_DRIVER", "sqlite")
	viper.SetDefault("LOCAL_STORE_PATH", "intuity-local.db")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PREFIX", "intuity:")
	viper.SetDefault("CONNECTIVITY_INTERVAL", "15s")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Pretty = viper.GetBool("LOG_PRETTY")

	config.Database.Driver = viper.GetString("DATABASE_DRIVER")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.LocalStore.Driver = viper.GetString("LOCAL_STORE_DRIVER")
	config.LocalStore.Path = viper.GetString("LOCAL_STORE_PATH")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.Prefix = viper.GetString("REDIS_PREFIX")

	config.Connectivity.ProbeAddr = viper.GetString("CONNECTIVITY_PROBE_ADDR")
	config.Connectivity.Interval = viper.GetDuration("CONNECTIVITY_INTERVAL")

	log.Info().
		Str("port", config.Server.Port).
		Str("databaseDriver", config.Database.Driver).
		Str("localStoreDriver", config.LocalStore.Driver).
		Msg("Config loaded")
	return &config, nil
}

// RemoteEnabled reports whether a remote table backend is configured.
func (c *Config) RemoteEnabled() bool {
	return c.Database.Driver != ""
}
