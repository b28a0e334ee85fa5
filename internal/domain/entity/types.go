package entity

import (
	"math"

	"github.com/seojinpark/blade/internal/domain/geom"
)

// TileKind identifies what occupies a stage cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSolid
	TileHazard
)

// Tile is a single cell of the stage grid.
type Tile struct {
	Kind   TileKind
	Damage int // contact damage for hazard tiles
}

// IsSolid reports whether the tile blocks movement.
func (t Tile) IsSolid() bool {
	return t.Kind == TileSolid
}

// EnemySpawn places an enemy kind in a stage.
type EnemySpawn struct {
	Kind string
	X, Y float64
}

// Stage is a loaded level: the tile grid plus spawn data. The grid is
// read-only during a simulation step; level transitions swap the whole
// stage between steps.
type Stage struct {
	Name     string
	Width    int // in tiles
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   float64
	SpawnY   float64
	Enemies  []EnemySpawn
	Next     string // next level in the chain, empty for the last
}

// TileAt returns the tile at grid coordinates. Out-of-bounds queries
// return a solid tile so the world border behaves as a wall.
func (s *Stage) TileAt(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Kind: TileSolid}
	}
	return s.Tiles[ty][tx]
}

// TileAtPixel returns the tile containing the pixel position.
func (s *Stage) TileAtPixel(x, y float64) Tile {
	ts := float64(s.TileSize)
	return s.TileAt(int(math.Floor(x/ts)), int(math.Floor(y/ts)))
}

// IsSolidAt reports whether the pixel position lies inside a solid tile.
func (s *Stage) IsSolidAt(x, y float64) bool {
	return s.TileAtPixel(x, y).IsSolid()
}

// Colliders returns the solid-tile rectangles in row-major order: the
// collider set handed to the resolver on level load.
func (s *Stage) Colliders() []geom.Rect {
	ts := float64(s.TileSize)
	var rects []geom.Rect
	for ty := 0; ty < s.Height; ty++ {
		for tx := 0; tx < s.Width; tx++ {
			if s.Tiles[ty][tx].IsSolid() {
				rects = append(rects, geom.NewRect(float64(tx)*ts, float64(ty)*ts, ts, ts))
			}
		}
	}
	return rects
}

// HazardAt scans the tiles covered by box and returns the first hazard
// tile found.
func (s *Stage) HazardAt(box geom.Rect) (Tile, bool) {
	ts := float64(s.TileSize)
	x0 := int(math.Floor(box.Left() / ts))
	x1 := int(math.Floor((box.Right() - 1) / ts))
	y0 := int(math.Floor(box.Top() / ts))
	y1 := int(math.Floor((box.Bottom() - 1) / ts))

	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			if t := s.TileAt(tx, ty); t.Kind == TileHazard {
				return t, true
			}
		}
	}
	return Tile{}, false
}

// PixelWidth returns the stage width in pixels.
func (s *Stage) PixelWidth() int {
	return s.Width * s.TileSize
}

// PixelHeight returns the stage height in pixels.
func (s *Stage) PixelHeight() int {
	return s.Height * s.TileSize
}
