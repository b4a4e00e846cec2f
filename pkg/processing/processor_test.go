package processing

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/websafespec/pkg/types"
)

// createTestImage creates a simple gradient test image
func createTestImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{uint8((x * 255) / width), uint8((y * 255) / height), 128, 255})
		}
	}
	return img
}

func writeTestImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

func TestLoadSource(t *testing.T) {
	tmpDir := t.TempDir()
	p := NewProcessor()

	tests := []struct {
		name   string
		file   string
		format string
	}{
		{"png", "photo.png", "png"},
		{"jpeg", "photo.jpg", "jpeg"},
		{"gif", "photo.gif", "gif"},
		{"bmp", "photo.bmp", "bmp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestImage(t, tmpDir, tt.file, createTestImage(64, 32))

			src, err := p.LoadSource(path)
			require.NoError(t, err)
			assert.Equal(t, path, src.Path)
			assert.Equal(t, tt.format, src.Format)
			assert.Equal(t, types.ImageDimensions{Width: 64, Height: 32}, src.Dimensions)
			require.NotNil(t, src.Image)
		})
	}
}

func TestLoadSourceInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	p := NewProcessor()

	notImage := filepath.Join(tmpDir, "notes.jpg")
	require.NoError(t, os.WriteFile(notImage, []byte("definitely not a jpeg"), 0644))

	_, err := p.LoadSource(notImage)
	assert.ErrorIs(t, err, types.ErrInvalidSourceFile)

	_, err = p.LoadSource(filepath.Join(tmpDir, "missing.png"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrInvalidSourceFile)
}

func TestUnsupportedFormat(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeTestImage(t, tmpDir, "photo.gif", createTestImage(10, 10))

	p := NewProcessorWithFormats([]string{"jpg", "png"})
	_, err := p.LoadSource(path)
	assert.ErrorIs(t, err, types.ErrInvalidSourceFile)

	path = writeTestImage(t, tmpDir, "photo.jpeg", createTestImage(10, 10))
	_, err = p.LoadSource(path)
	assert.NoError(t, err)
}

func TestDecodeSource(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, createTestImage(30, 40), imaging.PNG))

	src, err := NewProcessor().DecodeSource(&buf, "upload.png")
	require.NoError(t, err)
	assert.Equal(t, "upload.png", src.Path)
	assert.Equal(t, types.ImageDimensions{Width: 30, Height: 40}, src.Dimensions)

	_, err = NewProcessor().DecodeSource(bytes.NewReader(nil), "empty")
	assert.ErrorIs(t, err, types.ErrInvalidSourceFile)
}

func TestEncode(t *testing.T) {
	p := NewProcessor()
	img := createTestImage(20, 10)

	for _, format := range []string{"jpg", "jpeg", "png", "webp"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, p.Encode(&buf, img, format, 90, false))

			cfg, decoded, err := image.DecodeConfig(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, normalizeFormat(format), decoded)
			assert.Equal(t, 20, cfg.Width)
			assert.Equal(t, 10, cfg.Height)
		})
	}

	var buf bytes.Buffer
	assert.Error(t, p.Encode(&buf, img, "gif", 90, false))
}

func TestSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	p := NewProcessor()

	path := filepath.Join(tmpDir, "out.jpg")
	n, err := p.SaveImage(createTestImage(16, 16), path, "jpg", 90, false)
	require.NoError(t, err)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), n)

	src, err := p.LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", src.Format)

	bad := filepath.Join(tmpDir, "out.xyz")
	_, err = p.SaveImage(createTestImage(16, 16), bad, "xyz", 90, false)
	assert.Error(t, err)
	_, err = os.Stat(bad)
	assert.True(t, os.IsNotExist(err), "no partial file expected")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension("jpeg"))
	assert.Equal(t, "jpg", Extension("JPG"))
	assert.Equal(t, "png", Extension(".png"))
	assert.Equal(t, "webp", Extension("webp"))
	assert.True(t, IsOutputFormat("jpg"))
	assert.True(t, IsOutputFormat("WEBP"))
	assert.False(t, IsOutputFormat("gif"))
}
