package processing

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/websafespec/pkg/types"
)

// DefaultQuality is the JPEG/WebP quality used when none is configured
const DefaultQuality = 90

// DefaultFormats lists the source formats accepted by default
var DefaultFormats = []string{"jpeg", "png", "gif", "webp", "bmp", "tiff"}

// Source is a measured source image. It is passed explicitly to every fit
// and export call.
type Source struct {
	Path       string
	Format     string
	Dimensions types.ImageDimensions
	Image      image.Image
}

// Processor handles loading and encoding of images
type Processor struct {
	formats []string
}

// NewProcessor creates a new image processor accepting DefaultFormats
func NewProcessor() *Processor {
	return NewProcessorWithFormats(DefaultFormats)
}

// NewProcessorWithFormats creates a processor that accepts only the given source formats
func NewProcessorWithFormats(formats []string) *Processor {
	f := make([]string, 0, len(formats))
	for _, s := range formats {
		f = append(f, normalizeFormat(s))
	}
	return &Processor{formats: f}
}

// LoadSource reads and measures an image file
func (p *Processor) LoadSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read image file: %w", err)
	}
	src, err := p.decodeSource(data)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	src.Path = path
	return src, nil
}

// DecodeSource reads and measures an image from r. name is used only for
// error messages and as the source path.
func (p *Processor) DecodeSource(r io.Reader, name string) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read image data: %w", err)
	}
	src, err := p.decodeSource(data)
	if err != nil {
		return Source{}, fmt.Errorf("%s: %w", name, err)
	}
	src.Path = name
	return src, nil
}

func (p *Processor) decodeSource(data []byte) (Source, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", types.ErrInvalidSourceFile, err)
	}
	if !p.isFormatSupported(format) {
		return Source{}, fmt.Errorf("%w: unsupported format %s", types.ErrInvalidSourceFile, format)
	}

	img, err := p.decodeImageFromBytes(data, format)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %v", types.ErrInvalidSourceFile, err)
	}
	// dimensions are taken after EXIF orientation has been applied
	b := img.Bounds()
	dims := types.ImageDimensions{Width: b.Dx(), Height: b.Dy()}
	if !dims.Valid() {
		return Source{}, fmt.Errorf("%w: empty image", types.ErrInvalidSourceFile)
	}
	return Source{Format: format, Dimensions: dims, Image: img}, nil
}

// decodeImageFromBytes decodes an image honouring EXIF orientation, with an
// explicit WebP fallback
func (p *Processor) decodeImageFromBytes(data []byte, format string) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	if format == "webp" {
		if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
			return img, nil
		}
	}
	return nil, err
}

func (p *Processor) isFormatSupported(format string) bool {
	format = normalizeFormat(format)
	for _, supported := range p.formats {
		if format == supported {
			return true
		}
	}
	return false
}

// Encode writes img to w in the given format (jpg|png|webp)
func (p *Processor) Encode(w io.Writer, img image.Image, format string, quality int, lossless bool) error {
	if quality <= 0 {
		quality = DefaultQuality
	}
	switch normalizeFormat(format) {
	case "webp":
		return webp.Encode(w, img, &webp.Options{Lossless: lossless, Quality: float32(quality)})
	case "png":
		return imaging.Encode(w, img, imaging.PNG)
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

// SaveImage encodes an image and writes it to path, returning the number of
// bytes written. Nothing is written when encoding fails.
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) (int64, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf, img, format, quality, lossless); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write output file: %w", err)
	}
	return int64(buf.Len()), nil
}

// Extension returns the file extension (without dot) used for an output format
func Extension(format string) string {
	switch f := normalizeFormat(format); f {
	case "jpeg":
		return "jpg"
	default:
		return f
	}
}

// IsOutputFormat reports whether format can be used for exports
func IsOutputFormat(format string) bool {
	switch normalizeFormat(format) {
	case "jpeg", "png", "webp":
		return true
	}
	return false
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return f
}
