package util

import (
	"fmt"
	"os"
	"strconv"
)

var environmentLogger = GetZeroLogger("util::environment", nil)

type gameServerEnvironment struct {
	ListenAddr  string
	NatsURL     string
	RedisHost   string
	RedisPort   string
	RedisPW     string
	RedisDB     string
	TokenSecret string
}

// GameServerEnvironment is a helper object for accessing environment variables.
var GameServerEnvironment = &gameServerEnvironment{
	ListenAddr:  "LISTEN_ADDR",
	NatsURL:     "NATS_URL",
	RedisHost:   "REDIS_HOST",
	RedisPort:   "REDIS_PORT",
	RedisPW:     "REDIS_PW",
	RedisDB:     "REDIS_DB",
	TokenSecret: "TOKEN_SECRET",
}

func (g *gameServerEnvironment) GetListenAddr() string {
	addr := os.Getenv(g.ListenAddr)
	if addr == "" {
		return ":8080"
	}
	return addr
}

func (g *gameServerEnvironment) GetNatsURL() string {
	return os.Getenv(g.NatsURL)
}

func (g *gameServerEnvironment) GetRedisHost() string {
	return os.Getenv(g.RedisHost)
}

func (g *gameServerEnvironment) GetRedisPort() int {
	portStr := os.Getenv(g.RedisPort)
	if portStr == "" {
		return 6379
	}
	portNum, err := strconv.Atoi(portStr)
	if err != nil {
		msg := fmt.Sprintf("Invalid Redis port %s", portStr)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return portNum
}

func (g *gameServerEnvironment) GetRedisPW() string {
	return os.Getenv(g.RedisPW)
}

func (g *gameServerEnvironment) GetRedisDB() int {
	dbStr := os.Getenv(g.RedisDB)
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

func (g *gameServerEnvironment) GetTokenSecret() string {
	secret := os.Getenv(g.TokenSecret)
	if secret == "" {
		msg := fmt.Sprintf("%s is not defined", g.TokenSecret)
		environmentLogger.Error().Msg(msg)
		panic(msg)
	}
	return secret
}
