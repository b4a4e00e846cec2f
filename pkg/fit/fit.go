// Package fit computes where a source image is placed on a fixed-size target
// canvas. All functions are pure: the same inputs always give the same plan.
package fit

import (
	"fmt"
	"math"

	"github.com/menta2k/websafespec/pkg/types"
)

// RatioTolerance is the largest aspect ratio difference still reported as a match
const RatioTolerance = 0.001

// Compute returns the plan for the given policy
func Compute(policy types.Policy, src, dst types.ImageDimensions) (types.FitPlan, error) {
	switch policy {
	case types.PolicyContain:
		return Contain(src, dst)
	case types.PolicyStretch:
		return Stretch(src, dst)
	}
	return types.FitPlan{}, fmt.Errorf("%w: %q", types.ErrUnknownPolicy, policy)
}

// Contain scales the source uniformly so that it fits entirely inside the
// target, centred on both axes, over a filled background.
func Contain(src, dst types.ImageDimensions) (types.FitPlan, error) {
	if err := check(src, dst); err != nil {
		return types.FitPlan{}, err
	}
	sw, sh := float64(src.Width), float64(src.Height)
	tw, th := float64(dst.Width), float64(dst.Height)

	// The limiting axis is pinned to the target size; compare tw/sw <= th/sh
	// in integers so the choice does not depend on rounding.
	var w, h float64
	if int64(dst.Width)*int64(src.Height) <= int64(dst.Height)*int64(src.Width) {
		w = tw
		h = sh * tw / sw
	} else {
		w = sw * th / sh
		h = th
	}
	return types.FitPlan{
		DestX:          (tw - w) / 2,
		DestY:          (th - h) / 2,
		DestWidth:      w,
		DestHeight:     h,
		FillBackground: true,
	}, nil
}

// Stretch fills the whole target rectangle regardless of the source aspect ratio
func Stretch(src, dst types.ImageDimensions) (types.FitPlan, error) {
	if err := check(src, dst); err != nil {
		return types.FitPlan{}, err
	}
	return types.FitPlan{
		DestWidth:  float64(dst.Width),
		DestHeight: float64(dst.Height),
	}, nil
}

// CompareRatios reports whether source and target aspect ratios agree within
// RatioTolerance. The result is advisory and does not influence any plan.
func CompareRatios(src, dst types.ImageDimensions) (types.RatioStatus, error) {
	if err := check(src, dst); err != nil {
		return types.RatioMismatch, err
	}
	if math.Abs(src.Ratio()-dst.Ratio()) < RatioTolerance {
		return types.RatioMatch, nil
	}
	return types.RatioMismatch, nil
}

func check(src, dst types.ImageDimensions) error {
	if !src.Valid() {
		return fmt.Errorf("%w: source is %s", types.ErrMissingSource, src)
	}
	if !dst.Valid() {
		return fmt.Errorf("%w: target is %s", types.ErrInvalidTarget, dst)
	}
	return nil
}
