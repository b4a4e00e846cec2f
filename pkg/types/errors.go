package types

import "errors"

var (
	// ErrMissingSource is returned when no image has been measured.
	ErrMissingSource = errors.New("missing source image")
	// ErrMissingSpec is returned when no target spec is selected or found.
	ErrMissingSpec = errors.New("missing target spec")
	// ErrInvalidSourceFile is returned when the supplied file is not a decodable image.
	ErrInvalidSourceFile = errors.New("invalid source image file")
	// ErrInvalidTarget is returned when a fit target has a non-positive side.
	ErrInvalidTarget = errors.New("invalid target dimensions")
	// ErrInvalidSpec is returned for malformed catalog entries.
	ErrInvalidSpec = errors.New("invalid target spec")
	// ErrUnknownPolicy is returned for a policy name other than contain or stretch.
	ErrUnknownPolicy = errors.New("unknown fit policy")
)
