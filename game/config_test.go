package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGameConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	yaml := "smallBlind: 5\nbigBlind: 10\nturnTimeoutSec: 30\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := ParseGameConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), cfg.SmallBlind)
	assert.Equal(t, int64(10), cfg.BigBlind)
	assert.Equal(t, 30*time.Second, cfg.TurnTimeout())
	// Untouched fields keep their defaults.
	assert.Equal(t, int64(1000), cfg.StartingChips)
	assert.Equal(t, 5, cfg.MaxSeats)
}

func TestParseGameConfigMissingFile(t *testing.T) {
	_, err := ParseGameConfig("no-such-file.yaml")
	assert.Error(t, err)
}

func TestParseDelayConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "delays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nextHandMillis: 100\n"), 0644))

	d, err := ParseDelayConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, d.NextHand())
	assert.Equal(t, 12*time.Second, d.GameRestart())
}
