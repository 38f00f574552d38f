// Package imaging normalizes grievance photos before classification and
// upload: downscale to a bounded width, re-encode as JPEG at a fixed quality.
package imaging

import (
	"bytes"
	"fmt"

	disintegration "github.com/disintegration/imaging"
)

const (
	// MaxWidth is the largest width an uploaded image keeps; wider images are
	// downscaled preserving aspect ratio. Images are never upscaled.
	MaxWidth = 1280
	// Quality is the JPEG re-encode quality factor.
	Quality = 80
)

// Normalize decodes data, downscales it to MaxWidth when wider, and
// re-encodes it as JPEG. The output is what gets classified and uploaded.
func Normalize(data []byte) ([]byte, error) {
	img, err := disintegration.Decode(bytes.NewReader(data), disintegration.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if img.Bounds().Dx() > MaxWidth {
		// Height 0 preserves the aspect ratio.
		img = disintegration.Resize(img, MaxWidth, 0, disintegration.Lanczos)
	}

	var buf bytes.Buffer
	if err := disintegration.Encode(&buf, img, disintegration.JPEG, disintegration.JPEGQuality(Quality)); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
