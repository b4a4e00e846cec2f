// Package websafespec resizes photos to platform image specifications.
//
// A target spec (for example a 1080x1080 Instagram post) is picked from a
// catalog, a source photo is measured, and one of two policies produces an
// image of exactly the target size:
//
//   - contain: the whole photo is scaled to fit, centred, and the remaining
//     space is filled with white.
//   - stretch: the photo is scaled to fill the target, ignoring its aspect
//     ratio.
//
// Basic usage:
//
//	f := websafespec.New()
//
//	src, err := f.LoadSource("photo.jpg")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	report, err := f.Check(src, "insta_square")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(report.Summary())
//
//	res, err := f.Export(ctx, src, "insta_square", types.PolicyContain, "out")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("wrote", res.Path)
//
// The package consists of these components:
//
// 1. Fit (pkg/fit): the pure placement computation for both policies
// 2. Render (pkg/render): draws a plan onto a target-sized canvas
// 3. Processing (pkg/processing): source decoding and output encoding
// 4. Catalog (pkg/catalog): the read-only list of target specs
// 5. Guide (pkg/guide): advisory aspect ratio guidance
package websafespec

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/menta2k/websafespec/internal/utils"
	"github.com/menta2k/websafespec/pkg/catalog"
	"github.com/menta2k/websafespec/pkg/fit"
	"github.com/menta2k/websafespec/pkg/guide"
	"github.com/menta2k/websafespec/pkg/processing"
	"github.com/menta2k/websafespec/pkg/render"
	"github.com/menta2k/websafespec/pkg/types"
)

// Version of the websafespec library
const Version = "1.0.0"

// Options configures a Fitter
type Options struct {
	Catalog          *catalog.Catalog
	SupportedFormats []string
	Filter           string // resample filter name, see render.FilterNames
	Background       color.Color

	// output encoding
	Format   string
	Quality  int
	Lossless bool
	Prefix   string
}

// DefaultOptions returns the options used by New
func DefaultOptions() Options {
	return Options{
		Catalog:          catalog.Default(),
		SupportedFormats: processing.DefaultFormats,
		Filter:           "lanczos",
		Background:       color.White,
		Format:           "jpg",
		Quality:          processing.DefaultQuality,
	}
}

// Fitter provides a high-level interface for measuring, planning and exporting
type Fitter struct {
	catalog   *catalog.Catalog
	processor *processing.Processor
	executor  *render.Executor
	opts      Options
}

// New creates a new Fitter with default configuration
func New() *Fitter {
	f, err := NewWithOptions(DefaultOptions())
	if err != nil {
		panic(err) // defaults are always valid
	}
	return f
}

// NewWithOptions creates a new Fitter with custom configuration. Zero values
// fall back to the defaults.
func NewWithOptions(opts Options) (*Fitter, error) {
	def := DefaultOptions()
	if opts.Catalog == nil {
		opts.Catalog = def.Catalog
	}
	if len(opts.SupportedFormats) == 0 {
		opts.SupportedFormats = def.SupportedFormats
	}
	if opts.Filter == "" {
		opts.Filter = def.Filter
	}
	if opts.Background == nil {
		opts.Background = def.Background
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.Quality == 0 {
		opts.Quality = def.Quality
	}
	if strings.ContainsAny(opts.Prefix, `/\`) {
		return nil, fmt.Errorf("file name prefix must not contain path separators: %q", opts.Prefix)
	}
	if !processing.IsOutputFormat(opts.Format) {
		return nil, fmt.Errorf("unsupported output format: %s", opts.Format)
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return nil, fmt.Errorf("quality must be between 1 and 100, got %d", opts.Quality)
	}
	filter, err := render.FilterByName(opts.Filter)
	if err != nil {
		return nil, err
	}

	return &Fitter{
		catalog:   opts.Catalog,
		processor: processing.NewProcessorWithFormats(opts.SupportedFormats),
		executor:  &render.Executor{Filter: filter, Background: opts.Background},
		opts:      opts,
	}, nil
}

// ExportResult describes a written export
type ExportResult struct {
	Path   string
	Spec   types.TargetSpec
	Policy types.Policy
	Plan   types.FitPlan
	Bytes  int64
}

// LoadSource loads and measures an image file
func (f *Fitter) LoadSource(path string) (processing.Source, error) {
	return f.processor.LoadSource(path)
}

// Specs returns the catalog entries in order
func (f *Fitter) Specs() []types.TargetSpec {
	return f.catalog.All()
}

// Lookup returns the spec with the given ID
func (f *Fitter) Lookup(specID string) (types.TargetSpec, error) {
	return f.catalog.Lookup(specID)
}

// Plan computes the fit plan of src for the given spec and policy
func (f *Fitter) Plan(src processing.Source, specID string, policy types.Policy) (types.FitPlan, types.TargetSpec, error) {
	if !src.Dimensions.Valid() {
		return types.FitPlan{}, types.TargetSpec{}, fmt.Errorf("%w: no image measured", types.ErrMissingSource)
	}
	spec, err := f.catalog.Lookup(specID)
	if err != nil {
		return types.FitPlan{}, types.TargetSpec{}, err
	}
	plan, err := fit.Compute(policy, src.Dimensions, spec.Dimensions())
	if err != nil {
		return types.FitPlan{}, spec, err
	}
	return plan, spec, nil
}

// Check builds the ratio guidance for src and the given spec. An empty specID
// means no spec has been selected.
func (f *Fitter) Check(src processing.Source, specID string) (guide.Report, error) {
	var spec *types.TargetSpec
	if specID != "" {
		s, err := f.catalog.Lookup(specID)
		if err != nil {
			return guide.Report{}, err
		}
		spec = &s
	}
	return guide.Build(src.Dimensions, spec)
}

// Filename returns the export file name for a spec and policy
func (f *Fitter) Filename(spec types.TargetSpec, policy types.Policy) string {
	return render.Filename(f.opts.Prefix, policy, spec, processing.Extension(f.opts.Format))
}

// Export renders src for the spec under the given policy and writes the result
// into outDir. Nothing is written when an input is missing or invalid.
func (f *Fitter) Export(ctx context.Context, src processing.Source, specID string, policy types.Policy, outDir string) (ExportResult, error) {
	plan, spec, err := f.Plan(src, specID, policy)
	if err != nil {
		return ExportResult{}, err
	}
	if src.Image == nil {
		return ExportResult{}, fmt.Errorf("%w: image data not loaded", types.ErrMissingSource)
	}
	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}

	canvas, err := f.executor.Render(src.Image, plan, spec.Dimensions())
	if err != nil {
		return ExportResult{}, fmt.Errorf("render failed: %w", err)
	}
	slog.DebugContext(ctx, "rendered", "spec", spec.ID, "policy", policy, "rect", plan.Rect().String(), "fill", plan.FillBackground)

	if err := ctx.Err(); err != nil {
		return ExportResult{}, err
	}

	if err := utils.EnsureDir(outDir); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	path, err := exportPath(outDir, f.Filename(spec, policy))
	if err != nil {
		return ExportResult{}, err
	}
	n, err := f.processor.SaveImage(canvas, path, f.opts.Format, f.opts.Quality, f.opts.Lossless)
	if err != nil {
		return ExportResult{}, fmt.Errorf("export failed: %w", err)
	}
	slog.DebugContext(ctx, "export written", "path", path, "bytes", n)

	return ExportResult{
		Path:   path,
		Spec:   spec,
		Policy: policy,
		Plan:   plan,
		Bytes:  n,
	}, nil
}

// exportPath joins outDir and name, rejecting names that leave outDir
func exportPath(outDir, name string) (string, error) {
	if name == "" || filepath.Base(name) != name || name == ".." {
		return "", fmt.Errorf("invalid export file name %q", name)
	}
	return filepath.Join(outDir, name), nil
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
