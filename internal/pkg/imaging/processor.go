package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	// Registers the webp decoder; uploads are re-encoded as JPEG on output.
	_ "golang.org/x/image/webp"
)

// ProcessedImage contains the stored variants of an uploaded image
type ProcessedImage struct {
	Original    []byte
	Thumbnail   []byte
	ContentType string
	Width       int
	Height      int
}

// Config for image processing
type Config struct {
	MaxWidth    int // max width for original
	MaxHeight   int // max height for original
	ThumbWidth  int
	ThumbHeight int
	Quality     int // JPEG quality 1-100
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		MaxWidth:    2000,
		MaxHeight:   2000,
		ThumbWidth:  600,
		ThumbHeight: 400,
		Quality:     85,
	}
}

// MaxFileSize in bytes (5MB)
const MaxFileSize int64 = 5 * 1024 * 1024

// Processor handles image processing
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Process decodes an image, bounds the original and renders a thumbnail.
func (p *Processor) Process(reader io.Reader) (*ProcessedImage, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	result := &ProcessedImage{
		ContentType: mimeFromFormat(format),
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
	}

	resized := img
	if result.Width > p.config.MaxWidth || result.Height > p.config.MaxHeight {
		resized = imaging.Fit(img, p.config.MaxWidth, p.config.MaxHeight, imaging.Lanczos)
		result.Width = resized.Bounds().Dx()
		result.Height = resized.Bounds().Dy()
	}

	original, err := p.encode(resized, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode original: %w", err)
	}
	result.Original = original

	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)
	thumbnail, err := p.encode(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	result.Thumbnail = thumbnail

	return result, nil
}

// ValidateType checks if file is a valid image type
func ValidateType(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func (p *Processor) encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		// webp and anything else re-encode as jpeg
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.config.Quality}); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

func mimeFromFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}
