package nats

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"

	"pokerhive.com/server/game"
	"pokerhive.com/server/util"
)

var natsLogger = util.GetZeroLogger("nats::broadcaster", nil)

const DefaultURL = "nats://localhost:4222"

/**
For each room, engine notifications go out on two kinds of subjects.
room.<id>.game            : messages for everyone at the table
room.<id>.player.<pid>    : private messages (hole cards) for one player

Players do not talk back over NATS; actions arrive over the websocket and
get a synchronous result there.
*/

// Broadcaster publishes engine messages to NATS. It satisfies
// game.MessageReceiver.
type Broadcaster struct {
	nc *natsgo.Conn
}

func NewBroadcaster(url string) (*Broadcaster, error) {
	nc, err := natsgo.Connect(url)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("Failed to connect to nats server [%s]", url))
	}
	return &Broadcaster{nc: nc}, nil
}

func (b *Broadcaster) Close() {
	b.nc.Close()
}

func roomSubject(roomID string) string {
	return fmt.Sprintf("room.%s.game", roomID)
}

func playerSubject(roomID string, playerID string) string {
	return fmt.Sprintf("room.%s.player.%s", roomID, playerID)
}

func (b *Broadcaster) BroadcastToRoom(roomID string, msg *game.Message) {
	b.publish(roomSubject(roomID), msg)
}

func (b *Broadcaster) SendToPlayer(roomID string, playerID string, msg *game.Message) {
	b.publish(playerSubject(roomID, playerID), msg)
}

func (b *Broadcaster) publish(subject string, msg *game.Message) {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		natsLogger.Error().Err(err).Str("subject", subject).Msg("Failed to marshal game message")
		return
	}
	if err := b.nc.Publish(subject, data); err != nil {
		natsLogger.Error().Err(err).Str("subject", subject).Msg("Failed to publish game message")
	}
}
