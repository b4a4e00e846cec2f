// Package render executes a fit plan: it draws a source image onto a canvas of
// exactly the target size.
package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/menta2k/websafespec/pkg/types"
)

// Executor draws source images according to a FitPlan
type Executor struct {
	Filter     imaging.ResampleFilter
	Background color.Color
}

// New creates an executor with Lanczos resampling and an opaque white background
func New() *Executor {
	return &Executor{
		Filter:     imaging.Lanczos,
		Background: color.White,
	}
}

// Render allocates a target-sized canvas, fills it with the background when
// the plan asks for it, and draws img scaled into the plan's rectangle.
func (e *Executor) Render(img image.Image, plan types.FitPlan, target types.ImageDimensions) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: no image data", types.ErrMissingSource)
	}
	if !target.Valid() {
		return nil, fmt.Errorf("%w: target is %s", types.ErrInvalidTarget, target)
	}

	var bg color.Color = color.Transparent
	if plan.FillBackground {
		bg = e.Background
	}
	canvas := imaging.New(target.Width, target.Height, bg)

	r := plan.Rect()
	if r.Dx() <= 0 || r.Dy() <= 0 {
		// source collapsed below one pixel; only the background remains
		return canvas, nil
	}
	scaled := imaging.Resize(img, r.Dx(), r.Dy(), e.Filter)
	return imaging.Overlay(canvas, scaled, r.Min, 1.0), nil
}

// Filename builds the export name <prefix><policy>-<spec-id>-<W>x<H>.<ext>.
// Underscores in the spec ID are replaced by hyphens.
func Filename(prefix string, policy types.Policy, spec types.TargetSpec, ext string) string {
	if ext == "" {
		ext = "jpg"
	}
	id := strings.ReplaceAll(spec.ID, "_", "-")
	return fmt.Sprintf("%s%s-%s-%dx%d.%s", prefix, policy, id, spec.Width, spec.Height, strings.TrimPrefix(ext, "."))
}

var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// FilterNames returns the names accepted by FilterByName
func FilterNames() []string {
	return []string{"lanczos", "catmullrom", "linear", "box", "nearest"}
}

// FilterByName returns the resampling filter with the given name
func FilterByName(name string) (imaging.ResampleFilter, error) {
	f, ok := filters[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample filter %q, use one of %v", name, FilterNames())
	}
	return f, nil
}
