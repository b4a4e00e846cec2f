package types

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// ImageDimensions is the pixel size of a source image or a target specification
type ImageDimensions struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are positive
func (d ImageDimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Ratio returns width/height. Callers must check Valid first.
func (d ImageDimensions) Ratio() float64 {
	return float64(d.Width) / float64(d.Height)
}

func (d ImageDimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// TargetSpec is a named platform image-size requirement from the catalog
type TargetSpec struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Platform    string `json:"platform" yaml:"platform"`
	Width       int    `json:"target_width" yaml:"target_width"`
	Height      int    `json:"target_height" yaml:"target_height"`
	Description string `json:"description" yaml:"description"`
}

// Dimensions returns the target size of the spec
func (s TargetSpec) Dimensions() ImageDimensions {
	return ImageDimensions{Width: s.Width, Height: s.Height}
}

// Label returns the display text used when listing specs
func (s TargetSpec) Label() string {
	return fmt.Sprintf("[%s] %s", s.Platform, s.Name)
}

// Validate checks that the spec can be used as a fit target
func (s TargetSpec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidSpec)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s has non-positive size %dx%d", ErrInvalidSpec, s.ID, s.Width, s.Height)
	}
	return nil
}

// FitPlan describes where the source image is drawn on the target canvas.
// Coordinates are in target pixels and may be fractional.
type FitPlan struct {
	DestX          float64 `json:"dest_x" yaml:"dest_x"`
	DestY          float64 `json:"dest_y" yaml:"dest_y"`
	DestWidth      float64 `json:"dest_width" yaml:"dest_width"`
	DestHeight     float64 `json:"dest_height" yaml:"dest_height"`
	FillBackground bool    `json:"fill_background" yaml:"fill_background"`
}

// Rect returns the destination rectangle snapped to whole pixels
func (p FitPlan) Rect() image.Rectangle {
	x0 := int(math.Round(p.DestX))
	y0 := int(math.Round(p.DestY))
	x1 := int(math.Round(p.DestX + p.DestWidth))
	y1 := int(math.Round(p.DestY + p.DestHeight))
	return image.Rect(x0, y0, x1, y1)
}

// Policy selects how the source is fitted into the target rectangle
type Policy string

const (
	// PolicyContain keeps the whole source, centred, padding the rest.
	PolicyContain Policy = "contain"
	// PolicyStretch fills the target exactly, ignoring the source aspect ratio.
	PolicyStretch Policy = "stretch"
)

// Policies returns all known policies
func Policies() []Policy {
	return []Policy{PolicyContain, PolicyStretch}
}

func (p Policy) String() string {
	return string(p)
}

// ParsePolicy converts a user supplied name to a Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyContain:
		return PolicyContain, nil
	case PolicyStretch:
		return PolicyStretch, nil
	}
	return "", fmt.Errorf("%w: %q (use %q or %q)", ErrUnknownPolicy, s, PolicyContain, PolicyStretch)
}

// RatioStatus is the advisory result of comparing source and target aspect ratios
type RatioStatus int

const (
	RatioMismatch RatioStatus = iota
	RatioMatch
)

func (r RatioStatus) String() string {
	if r == RatioMatch {
		return "match"
	}
	return "mismatch"
}
