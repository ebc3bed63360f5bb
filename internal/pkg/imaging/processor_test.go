package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestProcessResizesOversizedImage(t *testing.T) {
	p := NewProcessor(Config{
		MaxWidth:    100,
		MaxHeight:   100,
		ThumbWidth:  40,
		ThumbHeight: 30,
		Quality:     85,
	})

	result, err := p.Process(bytes.NewReader(encodePNG(t, 300, 200)))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if result.Width > 100 || result.Height > 100 {
		t.Errorf("original resized to %dx%d, want within 100x100", result.Width, result.Height)
	}
	if len(result.Thumbnail) == 0 {
		t.Error("no thumbnail rendered")
	}

	// The stored original must itself decode.
	img, _, err := image.Decode(bytes.NewReader(result.Original))
	if err != nil {
		t.Fatalf("stored original does not decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 100 || b.Dy() > 100 {
		t.Errorf("stored original is %dx%d, want within 100x100", b.Dx(), b.Dy())
	}
}

func TestProcessRejectsNonImage(t *testing.T) {
	p := NewProcessor(DefaultConfig())
	if _, err := p.Process(bytes.NewReader([]byte("not an image at all"))); err == nil {
		t.Error("Process() accepted garbage input")
	}
}

// The accepted-extension list includes webp, so a webp decoder must be
// registered: image.Decode must recognize the container instead of
// reporting an unknown format.
func TestWebpDecoderRegistered(t *testing.T) {
	header := append([]byte("RIFF\x1a\x00\x00\x00WEBP"), []byte("VP8 ")...)
	_, format, err := image.Decode(bytes.NewReader(header))
	if err == image.ErrFormat {
		t.Fatal("webp is not a registered image format")
	}
	if err == nil && format != "webp" {
		t.Errorf("decoded as %q, want webp", format)
	}
}

func TestValidateType(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png", "d.webp"} {
		if !ValidateType(name) {
			t.Errorf("ValidateType(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"e.gif", "f.svg", "g.pdf", "noext"} {
		if ValidateType(name) {
			t.Errorf("ValidateType(%q) = true, want false", name)
		}
	}
}
