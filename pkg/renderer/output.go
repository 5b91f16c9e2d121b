package renderer

import (
	"fmt"
	"image/png"
	"os"
)

// SavePNG writes the film's tonemapped image to path as a PNG
func SavePNG(film *Film, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("renderer: creating output file: %w", err)
	}
	if err := png.Encode(f, film.Image()); err != nil {
		f.Close()
		return fmt.Errorf("renderer: encoding png: %w", err)
	}
	return f.Close()
}
