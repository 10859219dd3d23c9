package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
)

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	return encoder.Encode(w, img)
}

// WritePNG saves img to path
func WritePNG(path string, img image.Image) error {
	if path == "" {
		return ErrEmptyPath
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := EncodePNG(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
