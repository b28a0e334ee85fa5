package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults
var defaultsFS embed.FS

// GameConfig holds the tuning documents the simulation needs at start.
type GameConfig struct {
	Physics  *PhysicsConfig
	Entities *EntitiesConfig
}

// Loader reads configuration documents through an fs.FS, so the embedded
// defaults and an on-disk override directory share one code path.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader over an on-disk directory.
func NewLoader(dir string) *Loader {
	return &Loader{fsys: os.DirFS(dir)}
}

// NewFSLoader creates a loader over an arbitrary filesystem.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Default returns a loader over the embedded default documents.
func Default() *Loader {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// The embed layout is fixed at build time.
		panic(err)
	}
	return NewFSLoader(sub)
}

// LoadPhysics loads physics.json.
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	data, err := fs.ReadFile(l.fsys, "physics.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read physics.json: %w", err)
	}

	var cfg PhysicsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse physics.json: %w", err)
	}

	return &cfg, nil
}

// LoadEntities loads entities.json.
func (l *Loader) LoadEntities() (*EntitiesConfig, error) {
	data, err := fs.ReadFile(l.fsys, "entities.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read entities.json: %w", err)
	}

	var cfg EntitiesConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse entities.json: %w", err)
	}

	return &cfg, nil
}

// LoadLevel loads levels/<name>.yaml.
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	path := "levels/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadAll loads the base configurations (physics, entities).
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	entities, err := l.LoadEntities()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Physics:  physics,
		Entities: entities,
	}, nil
}
