package scene

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
)

// Decode reads a JSON scene description. A missing aspect ratio is taken from
// resolution and a missing focus distance defaults to 1.
func Decode(r io.Reader, resolution image.Point) (*Description, error) {
	var d Description
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}

	if d.Camera != nil {
		if d.Camera.AspectRatio <= 0 && resolution.Y > 0 {
			d.Camera.AspectRatio = float64(resolution.X) / float64(resolution.Y)
		}
		if d.Camera.FocusDistance <= 0 {
			d.Camera.FocusDistance = 1
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads a JSON scene description from path
func LoadFile(path string, resolution image.Point) (*Description, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene %s: %w", path, err)
	}
	defer file.Close()

	d, err := Decode(file, resolution)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Save writes d as indented JSON
func Save(w io.Writer, d *Description) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(d)
}
