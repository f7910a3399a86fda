package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
log:
  level: debug
gameplay:
  roster_size: 8
  pose_history: 10
  tick_rate: 10ms
`
	cfg, err := Load(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Gameplay.RosterSize)
	assert.Equal(t, 10, cfg.Gameplay.PoseHistory)
	assert.Equal(t, 10*time.Millisecond, cfg.Gameplay.TickRate)
	assert.Equal(t, 0.09, cfg.Gameplay.RobotRadius)
	assert.Equal(t, "goalie", cfg.Gameplay.GoalieRole)
}

func TestLoadEmptyDocument(t *testing.T) {
	cfg, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"roster":   "gameplay:\n  roster_size: 0\n",
		"history":  "gameplay:\n  pose_history: -1\n",
		"approach": "gameplay:\n  approach_radius: 0.5\n",
		"negative": "gameplay:\n  avoid_ball_radius: -0.1\n",
		"field":    "gameplay:\n  field_length: 0\n",
		"defense":  "gameplay:\n  defense_depth: 5\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("gameplay: [1, 2"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gameplay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gameplay:\n  roster_size: 11\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Gameplay.RosterSize)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
