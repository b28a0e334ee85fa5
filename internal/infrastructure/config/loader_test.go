package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadPhysics(t *testing.T) {
	cfg, err := Default().LoadPhysics()
	require.NoError(t, err)

	assert.Equal(t, 960, cfg.Display.ScreenWidth)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 0.8, cfg.Physics.Gravity)
	assert.Equal(t, 15.0, cfg.Physics.MaxFallSpeed)
	assert.Equal(t, -16.0, cfg.Jump.Impulse)
	assert.Equal(t, 0.2, cfg.Dash.Duration)
	assert.Equal(t, 100.0, cfg.Stamina.Max)
	assert.True(t, cfg.Feedback.ScreenShake.Enabled)
}

func TestLoader_LoadEntities(t *testing.T) {
	cfg, err := Default().LoadEntities()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Player.MaxHealth)
	assert.Equal(t, 48.0, cfg.Player.Size.Width)
	assert.Equal(t, 32.0, cfg.Player.Box.Width)

	grunt, ok := cfg.Enemies["grunt"]
	require.True(t, ok)
	assert.Equal(t, 30, grunt.MaxHealth)
	assert.Equal(t, 10, grunt.Damage)

	stalker, ok := cfg.Enemies["stalker"]
	require.True(t, ok)
	assert.Greater(t, stalker.ChaseSpeed, grunt.ChaseSpeed)
}

func TestLoader_LoadLevel(t *testing.T) {
	cfg, err := Default().LoadLevel("training")
	require.NoError(t, err)

	assert.Equal(t, "training", cfg.Name)
	assert.Equal(t, 32, cfg.TileSize)
	assert.Equal(t, "rampart", cfg.Next)
	assert.Len(t, cfg.Tiles, 15)
	assert.Len(t, cfg.Enemies, 2)

	wall, ok := cfg.Legend["#"]
	require.True(t, ok)
	assert.True(t, wall.Solid)
}

func TestLoader_LoadLevel_Chain(t *testing.T) {
	loader := Default()

	training, err := loader.LoadLevel("training")
	require.NoError(t, err)

	next, err := loader.LoadLevel(training.Next)
	require.NoError(t, err)
	assert.Equal(t, "rampart", next.Name)
	assert.Empty(t, next.Next, "rampart ends the chain")

	spike, ok := next.Legend["^"]
	require.True(t, ok)
	assert.True(t, spike.Hazard)
	assert.Equal(t, 10, spike.Damage)
}

func TestLoader_MissingFiles(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{})

	_, err := loader.LoadPhysics()
	assert.Error(t, err)

	_, err = loader.LoadEntities()
	assert.Error(t, err)

	_, err = loader.LoadLevel("nope")
	assert.Error(t, err)
}

func TestLoader_MalformedDocuments(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"physics.json":      {Data: []byte("{not json")},
		"levels/bad.yaml":   {Data: []byte("\ttabs are not yaml indentation")},
		"entities.json":     {Data: []byte(`{"player": []}`)},
		"levels/empty.yaml": {Data: []byte("")},
	})

	_, err := loader.LoadPhysics()
	assert.ErrorContains(t, err, "failed to parse physics.json")

	_, err = loader.LoadLevel("bad")
	assert.ErrorContains(t, err, "failed to parse level bad")

	_, err = loader.LoadEntities()
	assert.Error(t, err)

	cfg, err := loader.LoadLevel("empty")
	require.NoError(t, err, "empty document decodes to the zero value")
	assert.Empty(t, cfg.Tiles)
}

func TestLoader_LoadAll(t *testing.T) {
	cfg, err := Default().LoadAll()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Physics)
	assert.NotNil(t, cfg.Entities)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "physics.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for config write")
	}

	// Non-config files are filtered out.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	select {
	case got := <-w.Events:
		t.Fatalf("unexpected event: %s", got)
	case <-time.After(200 * time.Millisecond):
	}

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "double close is safe")
}
