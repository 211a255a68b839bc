package task

import (
	"fmt"
	"image"
	"strings"
)

const (
	Row Generation = iota
	Column
	Grid
)

// Generation decides how an image is cut into tiles
type Generation int

func (g Generation) String() string {
	return []string{
		"Row", "Column", "Grid",
	}[g]
}

func ParseGeneration(name string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "row", "":
		return Row, nil
	case "column":
		return Column, nil
	case "grid":
		return Grid, nil
	}
	return Row, fmt.Errorf("unknown tile generation %q", name)
}

// Tile is a rectangle of pixels rendered by a single worker
type Tile struct {
	Bounds image.Rectangle
	ID     uint
}

func (t *Tile) String() string {
	output := "{Tile "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Bounds: %s}", t.Bounds)
	return output
}

// Pixels is the number of pixels covered by the tile
func (t *Tile) Pixels() int {
	return t.Bounds.Dx() * t.Bounds.Dy()
}

// Split cuts bounds into disjoint tiles that cover it exactly, in row-major order.
// Row generation makes full-width bands that are size rows tall, Column generation makes full-height bands and
// Grid generation makes size x size squares. Tiles on the right and bottom edges are smaller when bounds is not divisible.
func Split(bounds image.Rectangle, generation Generation, size int) []Tile {
	if size < 1 {
		size = 1
	}
	tileWidth, tileHeight := size, size
	switch generation {
	case Row:
		tileWidth = bounds.Dx()
	case Column:
		tileHeight = bounds.Dy()
	}

	var tiles []Tile
	if bounds.Empty() {
		return tiles
	}

	var id uint
	for y := bounds.Min.Y; y < bounds.Max.Y; y += tileHeight {
		for x := bounds.Min.X; x < bounds.Max.X; x += tileWidth {
			tile := Tile{
				Bounds: image.Rect(x, y, x+tileWidth, y+tileHeight).Intersect(bounds),
				ID:     id,
			}
			tiles = append(tiles, tile)
			id++
		}
	}
	return tiles
}
