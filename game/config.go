package game

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the table stakes and pacing for a room.
type Config struct {
	SmallBlind    int64 `yaml:"smallBlind"`
	BigBlind      int64 `yaml:"bigBlind"`
	StartingChips int64 `yaml:"startingChips"`
	MaxSeats      int   `yaml:"maxSeats"`

	// TurnTimeoutSec is how long a player gets to act before the turn clock
	// folds them.
	TurnTimeoutSec uint32 `yaml:"turnTimeoutSec"`

	// AutoDeal schedules the next hand automatically after the previous one
	// settles. Disabled in tests that drive hands explicitly.
	AutoDeal bool `yaml:"autoDeal"`
}

func DefaultConfig() Config {
	return Config{
		SmallBlind:     1,
		BigBlind:       2,
		StartingChips:  1000,
		MaxSeats:       5,
		TurnTimeoutSec: 20,
		AutoDeal:       true,
	}
}

func (c Config) TurnTimeout() time.Duration {
	return time.Duration(c.TurnTimeoutSec) * time.Second
}

// Delays separate the pacing clients need to render from the engine logic.
type Delays struct {
	// NextHandMillis is the pause between a settled hand and the next deal.
	NextHandMillis uint32 `yaml:"nextHandMillis"`
	// GameRestartMillis follows a full-game bankroll reset; longer than the
	// normal inter-hand pause so the game-over screen can be shown.
	GameRestartMillis uint32 `yaml:"gameRestartMillis"`
}

func DefaultDelays() Delays {
	return Delays{
		NextHandMillis:    7000,
		GameRestartMillis: 12000,
	}
}

func (d Delays) NextHand() time.Duration {
	return time.Duration(d.NextHandMillis) * time.Millisecond
}

func (d Delays) GameRestart() time.Duration {
	return time.Duration(d.GameRestartMillis) * time.Millisecond
}

// ParseDelayConfig overrides the default delays from a YAML file.
func ParseDelayConfig(delaysFile string) (Delays, error) {
	bytes, err := os.ReadFile(delaysFile)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error reading delay config file [%s]", delaysFile))
	}

	data := DefaultDelays()
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return Delays{}, errors.Wrap(err, fmt.Sprintf("Error parsing delays YAML file [%s]", delaysFile))
	}

	return data, nil
}

// ParseGameConfig overrides the default table config from a YAML file.
func ParseGameConfig(configFile string) (Config, error) {
	bytes, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, errors.Wrap(err, fmt.Sprintf("Error reading game config file [%s]", configFile))
	}

	data := DefaultConfig()
	err = yaml.Unmarshal(bytes, &data)
	if err != nil {
		return Config{}, errors.Wrap(err, fmt.Sprintf("Error parsing game config YAML file [%s]", configFile))
	}

	return data, nil
}
