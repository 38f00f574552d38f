package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 150, A: 255})
		}
	}
	return img
}

func TestNormalize_DownscalesWideImages(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(2560, 1440), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if w := decoded.Bounds().Dx(); w != MaxWidth {
		t.Errorf("width = %d, want %d", w, MaxWidth)
	}
	// Aspect ratio preserved: 2560x1440 → 1280x720.
	if h := decoded.Bounds().Dy(); h != 720 {
		t.Errorf("height = %d, want 720", h)
	}
}

func TestNormalize_NeverUpscales(t *testing.T) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, solidImage(640, 480), nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	decoded, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if w := decoded.Bounds().Dx(); w != 640 {
		t.Errorf("width = %d, want 640 (unchanged)", w)
	}
}

func TestNormalize_ReencodesPNGAsJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solidImage(100, 100)); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("output is not a JPEG: %v", err)
	}
}

func TestNormalize_RejectsGarbage(t *testing.T) {
	if _, err := Normalize([]byte("definitely not an image")); err == nil {
		t.Fatalf("expected decode error")
	}
}
