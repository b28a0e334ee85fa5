package system

import (
	"fmt"

	"github.com/seojinpark/blade/internal/domain/entity"
	"github.com/seojinpark/blade/internal/infrastructure/config"
)

// BuildStage converts a level document into a stage grid. The space rune
// is always empty; every other rune must appear in the legend. An
// unknown rune means a broken level file and fails the load rather than
// silently producing a hole in the map.
func BuildStage(lv *config.LevelConfig) (*entity.Stage, error) {
	if lv.TileSize <= 0 {
		return nil, fmt.Errorf("level %q: tile size must be positive, got %d", lv.Name, lv.TileSize)
	}

	for r, lt := range lv.Legend {
		if lt.Solid && lt.Hazard {
			return nil, fmt.Errorf("level %q: legend rune %q is both solid and hazard", lv.Name, r)
		}
	}

	height := len(lv.Tiles)
	width := 0
	for _, row := range lv.Tiles {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("level %q: empty tile grid", lv.Name)
	}

	tiles := make([][]entity.Tile, height)
	for y, row := range lv.Tiles {
		tiles[y] = make([]entity.Tile, width)
		for x, r := range []rune(row) {
			if r == ' ' {
				continue
			}
			lt, ok := lv.Legend[string(r)]
			if !ok {
				return nil, fmt.Errorf("level %q: unknown tile rune %q at row %d col %d", lv.Name, r, y, x)
			}
			switch {
			case lt.Solid:
				tiles[y][x] = entity.Tile{Kind: entity.TileSolid}
			case lt.Hazard:
				tiles[y][x] = entity.Tile{Kind: entity.TileHazard, Damage: lt.Damage}
			}
		}
	}

	spawns := make([]entity.EnemySpawn, 0, len(lv.Enemies))
	for _, e := range lv.Enemies {
		spawns = append(spawns, entity.EnemySpawn{Kind: e.Kind, X: e.X, Y: e.Y})
	}

	return &entity.Stage{
		Name:     lv.Name,
		Width:    width,
		Height:   height,
		TileSize: lv.TileSize,
		Tiles:    tiles,
		SpawnX:   lv.Spawn.X,
		SpawnY:   lv.Spawn.Y,
		Enemies:  spawns,
		Next:     lv.Next,
	}, nil
}
