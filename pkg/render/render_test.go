package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/websafespec/pkg/fit"
	"github.com/menta2k/websafespec/pkg/types"
)

var red = color.NRGBA{255, 0, 0, 255}

func isWhite(c color.NRGBA) bool {
	return c.R == 255 && c.G == 255 && c.B == 255 && c.A == 255
}

func isRed(c color.NRGBA) bool {
	return c.R > 250 && c.G < 5 && c.B < 5 && c.A == 255
}

func TestRenderContain(t *testing.T) {
	src := imaging.New(200, 100, red)
	target := types.ImageDimensions{Width: 100, Height: 100}

	plan, err := fit.Contain(types.ImageDimensions{Width: 200, Height: 100}, target)
	require.NoError(t, err)

	out, err := New().Render(src, plan, target)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 100), out.Bounds())

	// padding above and below, image in the middle band
	assert.True(t, isWhite(out.NRGBAAt(50, 5)), "top padding: %v", out.NRGBAAt(50, 5))
	assert.True(t, isWhite(out.NRGBAAt(50, 95)), "bottom padding: %v", out.NRGBAAt(50, 95))
	assert.True(t, isRed(out.NRGBAAt(50, 50)), "centre: %v", out.NRGBAAt(50, 50))
	assert.True(t, isRed(out.NRGBAAt(0, 30)), "left edge of band: %v", out.NRGBAAt(0, 30))
	assert.True(t, isRed(out.NRGBAAt(99, 70)), "right edge of band: %v", out.NRGBAAt(99, 70))
}

func TestRenderStretch(t *testing.T) {
	src := imaging.New(200, 100, red)
	target := types.ImageDimensions{Width: 60, Height: 90}

	plan, err := fit.Stretch(types.ImageDimensions{Width: 200, Height: 100}, target)
	require.NoError(t, err)

	out, err := New().Render(src, plan, target)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 60, 90), out.Bounds())
	for _, pt := range []image.Point{{0, 0}, {59, 0}, {0, 89}, {59, 89}, {30, 45}} {
		assert.True(t, isRed(out.NRGBAAt(pt.X, pt.Y)), "pixel %v: %v", pt, out.NRGBAAt(pt.X, pt.Y))
	}
}

func TestRenderCanvasAlwaysTargetSize(t *testing.T) {
	sources := []types.ImageDimensions{{Width: 3, Height: 1000}, {Width: 1000, Height: 3}, {Width: 7, Height: 7}}
	target := types.ImageDimensions{Width: 40, Height: 30}
	for _, sd := range sources {
		for _, p := range types.Policies() {
			plan, err := fit.Compute(p, sd, target)
			require.NoError(t, err)
			out, err := New().Render(imaging.New(sd.Width, sd.Height, red), plan, target)
			require.NoError(t, err)
			assert.Equal(t, 40, out.Bounds().Dx(), "%s %s", p, sd)
			assert.Equal(t, 30, out.Bounds().Dy(), "%s %s", p, sd)
		}
	}
}

func TestRenderErrors(t *testing.T) {
	plan := types.FitPlan{DestWidth: 10, DestHeight: 10}

	_, err := New().Render(nil, plan, types.ImageDimensions{Width: 10, Height: 10})
	assert.ErrorIs(t, err, types.ErrMissingSource)

	_, err = New().Render(imaging.New(1, 1, red), plan, types.ImageDimensions{})
	assert.ErrorIs(t, err, types.ErrInvalidTarget)
}

func TestFilename(t *testing.T) {
	spec := types.TargetSpec{ID: "naver_smartstore_main", Width: 1000, Height: 1000}

	assert.Equal(t, "contain-naver-smartstore-main-1000x1000.jpg", Filename("", types.PolicyContain, spec, "jpg"))
	assert.Equal(t, "stretch-naver-smartstore-main-1000x1000.jpg", Filename("", types.PolicyStretch, spec, ""))
	assert.Equal(t, "websafespec-contain-naver-smartstore-main-1000x1000.webp", Filename("websafespec-", types.PolicyContain, spec, ".webp"))
}

func TestFilterByName(t *testing.T) {
	for _, name := range FilterNames() {
		_, err := FilterByName(name)
		assert.NoError(t, err, name)
	}
	_, err := FilterByName("Lanczos")
	assert.NoError(t, err)
	_, err = FilterByName("bicubic-ish")
	assert.Error(t, err)
}
