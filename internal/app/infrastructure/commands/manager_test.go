package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-gdovin/keysight-local-bot/pkg/logger"
)

func writeCommands(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newManager(t *testing.T, content string) (*Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "commands.json")
	if content != "" {
		writeCommands(t, path, content)
	}

	m, err := New(logger.NewNop(), path)
	require.NoError(t, err)
	return m, path
}

func TestManager_LoadNormalizesTriggers(t *testing.T) {
	t.Parallel()

	m, _ := newManager(t, `{
		"go": {
			"permissions": {"everyone": true},
			"triggers": ["!Go", "MOVE"],
			"message": "$usr requests $msg"
		}
	}`)

	for _, trigger := range []string{"go", "move"} {
		cmd, ok := m.Resolve(trigger)
		require.True(t, ok, "trigger %q not resolved", trigger)
		assert.Equal(t, "go", cmd.Name)
	}

	_, ok := m.Resolve("Go")
	assert.False(t, ok, "lookup is exact against the normalized index")
}

func TestManager_MissingFileCreatesEmptySet(t *testing.T) {
	t.Parallel()

	m, path := newManager(t, "")

	assert.Empty(t, m.All())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(raw))
}

func TestManager_CollisionRejectsWholeLoad(t *testing.T) {
	t.Parallel()

	m, path := newManager(t, `{
		"go": {"permissions": {"everyone": true}, "triggers": ["go"], "message": "go $msg"}
	}`)

	colliding := `{
		"walk": {"permissions": {"everyone": true}, "triggers": ["go"], "message": "walk"},
		"run":  {"permissions": {"everyone": true}, "triggers": ["!GO"], "message": "run"}
	}`
	writeCommands(t, path, colliding)

	firstErr := m.Reload()
	require.Error(t, firstErr)

	// The previously active index stays authoritative as a whole.
	cmd, ok := m.Resolve("go")
	require.True(t, ok)
	assert.Equal(t, "go", cmd.Name)
	assert.Len(t, m.All(), 1)

	// Reloading the same content fails the same way.
	secondErr := m.Reload()
	require.Error(t, secondErr)
	assert.Equal(t, firstErr.Error(), secondErr.Error())
}

func TestManager_MalformedFileKeepsPreviousSet(t *testing.T) {
	t.Parallel()

	m, path := newManager(t, `{
		"go": {"permissions": {"everyone": true}, "triggers": ["go"], "message": "go"}
	}`)

	writeCommands(t, path, `{not json`)
	require.Error(t, m.Reload())

	_, ok := m.Resolve("go")
	assert.True(t, ok)
}

func TestManager_MalformedInitialFileStartsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "commands.json")
	writeCommands(t, path, `{not json`)

	m, err := New(logger.NewNop(), path)
	require.NoError(t, err)
	assert.Empty(t, m.All())
}

func TestManager_ReloadSwapsAtomically(t *testing.T) {
	t.Parallel()

	m, path := newManager(t, `{
		"go": {"permissions": {"everyone": true}, "triggers": ["go"], "message": "go"}
	}`)

	writeCommands(t, path, `{
		"lights": {"permissions": {"mod": true}, "triggers": ["lights", "l"], "message": "lights $msg"}
	}`)
	require.NoError(t, m.Reload())

	_, ok := m.Resolve("go")
	assert.False(t, ok, "old trigger survived the swap")

	cmd, ok := m.Resolve("l")
	require.True(t, ok)
	assert.Equal(t, "lights", cmd.Name)
}
