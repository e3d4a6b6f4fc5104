package util

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type environment struct {
	LogLevel      string
	PersistMethod string
	RedisHost     string
	RedisPort     string
	RedisPW       string
	RedisDB       string
	PostgresHost  string
	PostgresPort  string
	PostgresDB    string
	PostgresUser  string
	PostgresPW    string
	RelayAddr     string
	RelayRestAddr string
}

// Env is a helper object for accessing environment variables.
var Env = &environment{
	LogLevel:      "LOG_LEVEL",
	PersistMethod: "PERSIST_METHOD",
	RedisHost:     "REDIS_HOST",
	RedisPort:     "REDIS_PORT",
	RedisPW:       "REDIS_PW",
	RedisDB:       "REDIS_DB",
	PostgresHost:  "POSTGRES_HOST",
	PostgresPort:  "POSTGRES_PORT",
	PostgresDB:    "POSTGRES_DB",
	PostgresUser:  "POSTGRES_USER",
	PostgresPW:    "POSTGRES_PASSWORD",
	RelayAddr:     "RELAY_ADDR",
	RelayRestAddr: "RELAY_REST_ADDR",
}

func (e *environment) GetZeroLogLogLevel() zerolog.Level {
	s := os.Getenv(e.LogLevel)
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		msg := fmt.Sprintf("Invalid log level [%s]", s)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return level
}

func (e *environment) GetPersistMethod() string {
	method := os.Getenv(e.PersistMethod)
	if method == "" {
		// Keep the game playable with no environment at all.
		return "memory"
	}
	return method
}

func (e *environment) GetRedisHost() string {
	host := os.Getenv(e.RedisHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (e *environment) GetRedisPort() int {
	portStr := os.Getenv(e.RedisPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", e.RedisPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (e *environment) GetRedisPW() string {
	return os.Getenv(e.RedisPW)
}

func (e *environment) GetRedisDB() int {
	dbStr := os.Getenv(e.RedisDB)
	if dbStr == "" {
		return 0
	}
	dbNum, err := strconv.Atoi(dbStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis db %s", dbStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return dbNum
}

func (e *environment) GetPostgresHost() string {
	host := os.Getenv(e.PostgresHost)
	if host == "" {
		msg := fmt.Sprintf("%s is not defined", e.PostgresHost)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return host
}

func (e *environment) GetPostgresPort() int {
	portStr := os.Getenv(e.PostgresPort)
	if portStr == "" {
		msg := fmt.Sprintf("%s is not defined", e.PostgresPort)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Postgres port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (e *environment) GetPostgresDB() string {
	v := os.Getenv(e.PostgresDB)
	if v == "" {
		msg := fmt.Sprintf("%s is not defined", e.PostgresDB)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return v
}

func (e *environment) GetPostgresUser() string {
	v := os.Getenv(e.PostgresUser)
	if v == "" {
		msg := fmt.Sprintf("%s is not defined", e.PostgresUser)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return v
}

func (e *environment) GetPostgresPW() string {
	v := os.Getenv(e.PostgresPW)
	if v == "" {
		msg := fmt.Sprintf("%s is not defined", e.PostgresPW)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return v
}

func (e *environment) GetRelayAddr() string {
	v := os.Getenv(e.RelayAddr)
	if v == "" {
		return ":9000"
	}
	return v
}

func (e *environment) GetRelayRestAddr() string {
	v := os.Getenv(e.RelayRestAddr)
	if v == "" {
		return ":8080"
	}
	return v
}
