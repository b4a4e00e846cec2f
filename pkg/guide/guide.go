// Package guide builds the user-facing resize guidance shown before an export.
// The guidance never changes what an export produces; both policies are always
// available.
package guide

import (
	"errors"
	"fmt"

	"github.com/menta2k/websafespec/pkg/fit"
	"github.com/menta2k/websafespec/pkg/types"
)

// Report summarises how a source relates to the selected spec
type Report struct {
	Spec        types.TargetSpec
	Source      types.ImageDimensions
	Target      types.ImageDimensions
	SourceRatio float64
	TargetRatio float64
	Status      types.RatioStatus
}

// Build checks both inputs and compares their aspect ratios. A nil spec means
// no spec has been selected. When both inputs are missing the two errors are
// joined.
func Build(src types.ImageDimensions, spec *types.TargetSpec) (Report, error) {
	var errs []error
	if spec == nil {
		errs = append(errs, types.ErrMissingSpec)
	}
	if !src.Valid() {
		errs = append(errs, types.ErrMissingSource)
	}
	if len(errs) > 0 {
		return Report{}, errors.Join(errs...)
	}

	target := spec.Dimensions()
	status, err := fit.CompareRatios(src, target)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Spec:        *spec,
		Source:      src,
		Target:      target,
		SourceRatio: src.Ratio(),
		TargetRatio: target.Ratio(),
		Status:      status,
	}, nil
}

// Matches reports whether the ratios agree
func (r Report) Matches() bool {
	return r.Status == types.RatioMatch
}

// Summary is a one-line description of the ratio status
func (r Report) Summary() string {
	if r.Matches() {
		return "Ratio match: both exports resize without distortion or padding."
	}
	return fmt.Sprintf("Ratio mismatch: source %d:%d, target %d:%d.",
		r.Source.Width, r.Source.Height, r.Target.Width, r.Target.Height)
}

// SpecLines describe the selected spec
func (r Report) SpecLines() []string {
	return []string{
		fmt.Sprintf("Selected spec: %s", r.Spec.Name),
		fmt.Sprintf("Required size: %dpx (width) x %dpx (height)", r.Target.Width, r.Target.Height),
		fmt.Sprintf("(%s)", r.Spec.Description),
	}
}

// OptionLines explain the two export policies. Empty when the ratios match.
func (r Report) OptionLines() []string {
	if r.Matches() {
		return nil
	}
	return []string{
		fmt.Sprintf("%s: resizes so nothing is cut off and fills the remaining space with white padding.", types.PolicyContain),
		fmt.Sprintf("%s: fills the target with no padding, but the image may be squashed or stretched.", types.PolicyStretch),
	}
}

// OutputLine describes the canvas size of every export
func (r Report) OutputLine() string {
	return fmt.Sprintf("Output canvas: %dpx (width) x %dpx (height)", r.Target.Width, r.Target.Height)
}

// Lines returns the full guidance text
func (r Report) Lines() []string {
	lines := r.SpecLines()
	lines = append(lines, r.Summary())
	lines = append(lines, r.OptionLines()...)
	return append(lines, r.OutputLine())
}

// MissingInputMessage returns the prompt for an error returned by Build or by
// an export. It returns an empty string for other errors.
func MissingInputMessage(err error) string {
	noSpec := errors.Is(err, types.ErrMissingSpec)
	noSource := errors.Is(err, types.ErrMissingSource)
	switch {
	case noSpec && noSource:
		return "Select a platform spec and upload an image first."
	case noSpec:
		return "Select a platform spec first."
	case noSource:
		return "Upload an image first."
	case errors.Is(err, types.ErrInvalidSourceFile):
		return "The file could not be read as an image. Choose another file."
	}
	return ""
}
