package renderer

import "image"

// Tile is a rectangular region of the image rendered as one unit of work.
// Each tile carries its own RNG seed so the rendered image is the same
// regardless of how many workers claim tiles or in what order.
type Tile struct {
	Bounds image.Rectangle
	Seed   int64
}

// NewTileGrid splits a width x height image into tiles of at most
// tileSize x tileSize pixels, in row-major order. Edge tiles are clipped
// to the image bounds. Seeds are derived from the base seed and the tile
// index so every tile draws an independent sample stream.
func NewTileGrid(width, height, tileSize int, baseSeed int64) []Tile {
	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0 := tx * tileSize
			y0 := ty * tileSize
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)

			idx := int64(ty*tilesX + tx)
			tiles = append(tiles, Tile{
				Bounds: image.Rect(x0, y0, x1, y1),
				Seed:   baseSeed + idx*7919,
			})
		}
	}
	return tiles
}
