// Package config resolves environment-provided settings with documented
// defaults. Values come from the process environment (optionally seeded by a
// .env file loaded in main).
package config

import "github.com/spf13/viper"

const (
	keyDBHost     = "DB_HOST"
	keyDBUser     = "DB_USER"
	keyDBPassword = "DB_PASSWORD"
	keyDBName     = "DB_NAME"

	keyHost = "HOST"
	keyPort = "PORT"

	keySessionBackend = "SESSION_BACKEND"
	keyRedisURL       = "REDIS_URL"
)

// Session backends selectable via SESSION_BACKEND.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	Host string
	Port string

	SessionBackend string
	RedisURL       string
}

func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(keyDBHost, "localhost")
	v.SetDefault(keyDBUser, "root")
	v.SetDefault(keyDBPassword, "")
	v.SetDefault(keyDBName, "a4p")
	v.SetDefault(keyHost, "0.0.0.0")
	v.SetDefault(keyPort, "8000")
	v.SetDefault(keySessionBackend, SessionBackendMemory)
	v.SetDefault(keyRedisURL, "redis://localhost:6379")

	return Config{
		DBHost:         v.GetString(keyDBHost),
		DBUser:         v.GetString(keyDBUser),
		DBPassword:     v.GetString(keyDBPassword),
		DBName:         v.GetString(keyDBName),
		Host:           v.GetString(keyHost),
		Port:           v.GetString(keyPort),
		SessionBackend: v.GetString(keySessionBackend),
		RedisURL:       v.GetString(keyRedisURL),
	}
}
