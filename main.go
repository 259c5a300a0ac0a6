package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"pokerhive.com/server/game"
	"pokerhive.com/server/nats"
	"pokerhive.com/server/rest"
	"pokerhive.com/server/room"
	"pokerhive.com/server/server"
	"pokerhive.com/server/util"
)

const (
	roomExpiryCheck = time.Minute
	roomExpiry      = 30 * time.Minute
)

var mainLogger = util.GetZeroLogger("main::main", nil)

func main() {
	var configFile = flag.String("config", "", "game config YAML file")
	var delaysFile = flag.String("delays", "", "delay config YAML file")
	var debug = flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	config := game.DefaultConfig()
	if *configFile != "" {
		var err error
		config, err = game.ParseGameConfig(*configFile)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Could not load game config")
		}
	}
	delays := game.DefaultDelays()
	if *delaysFile != "" {
		var err error
		delays, err = game.ParseDelayConfig(*delaysFile)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Could not load delay config")
		}
	}

	env := util.GameServerEnvironment
	secret := []byte(env.GetTokenSecret())

	var persist game.PersistHandState
	if env.GetRedisHost() != "" {
		persist = game.NewRedisHandStateTracker(
			fmt.Sprintf("%s:%d", env.GetRedisHost(), env.GetRedisPort()),
			env.GetRedisPW(),
			env.GetRedisDB(),
		)
	} else {
		persist = game.NewMemoryHandStateTracker()
	}

	hub := server.NewHub(secret)
	var receiver game.MessageReceiver = hub
	if natsURL := env.GetNatsURL(); natsURL != "" {
		b, err := nats.NewBroadcaster(natsURL)
		if err != nil {
			mainLogger.Fatal().Err(err).Msg("Could not connect to NATS")
		}
		defer b.Close()
		receiver = fanout{hub, b}
	}

	manager := game.NewManager(room.NewRegistry(), receiver, persist, config, delays)
	hub.SetManager(manager)

	stop := make(chan bool)
	go manager.RunExpiryWatcher(roomExpiryCheck, roomExpiry, stop)
	defer close(stop)

	rest.RunRestServer(manager, hub, secret, env.GetListenAddr())
}

// fanout delivers each engine message to every configured receiver.
type fanout []game.MessageReceiver

func (f fanout) BroadcastToRoom(roomID string, msg *game.Message) {
	for _, r := range f {
		r.BroadcastToRoom(roomID, msg)
	}
}

func (f fanout) SendToPlayer(roomID string, playerID string, msg *game.Message) {
	for _, r := range f {
		r.SendToPlayer(roomID, playerID, msg)
	}
}
