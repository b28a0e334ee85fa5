package config

// LevelConfig is a YAML level document: tile rows drawn as text, a legend
// mapping runes to tile kinds, spawn points, and the link to the next level
// in the chain.
type LevelConfig struct {
	Name     string                `yaml:"name"`
	TileSize int                   `yaml:"tileSize"`
	Legend   map[string]LegendTile `yaml:"legend"`
	Tiles    []string              `yaml:"tiles"`
	Spawn    SpawnConfig           `yaml:"spawn"`
	Enemies  []EnemyPlacement      `yaml:"enemies"`
	Next     string                `yaml:"next"`
}

// LegendTile describes what a tile rune stands for. A rune can be solid or
// a hazard, not both; the space rune is always empty and needs no entry.
type LegendTile struct {
	Solid  bool `yaml:"solid"`
	Hazard bool `yaml:"hazard"`
	Damage int  `yaml:"damage"`
}

type SpawnConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type EnemyPlacement struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}
