// Package pipeline provides the core visualization pipeline.
//
// This package implements the complete layout → render pipeline that can be
// used by CLI and API components. By centralizing this logic, we ensure
// consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Compute a squarified treemap over the wallet's UTXOs
//  2. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each is a pure function of its inputs, so results are cached under
// content hashes: layouts by the wallet snapshot hash, artifacts by the
// layout hash.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    GroupBy: pipeline.GroupByTag,
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, w, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Layout only
//	view, err := runner.GenerateLayout(ctx, w, opts)
//
//	// Render with existing view
//	artifacts, err := runner.Render(ctx, view, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600.0
)

// DefaultGroupBy is the default tile grouping.
const DefaultGroupBy = GroupByNone

// DefaultColorBy is the default tile coloring.
const DefaultColorBy = ColorByRisk

// Grouping constants controlling what each tile represents.
const (
	GroupByNone = "none" // one tile per UTXO
	GroupByTag  = "tag"  // one tile per tag group
	GroupByRisk = "risk" // one tile per risk tier
)

// Coloring constants for tile fills.
const (
	ColorByRisk  = "risk"
	ColorByGroup = "group"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidGroupings is the set of supported tile groupings.
var ValidGroupings = map[string]bool{
	GroupByNone: true,
	GroupByTag:  true,
	GroupByRisk: true,
}

// ValidColorings is the set of supported tile colorings.
var ValidColorings = map[string]bool{
	ColorByRisk:  true,
	ColorByGroup: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	GroupBy string  `json:"group_by,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	ColorBy    string   `json:"color_by,omitempty"`
	ShowLabels bool     `json:"show_labels,omitempty"`

	// Refresh bypasses the layout cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// View is the computed treemap view.
	View View

	// SnapshotHash is the content hash of the wallet snapshot.
	SnapshotHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TileCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the view came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGroupBy checks that a grouping is valid.
func ValidateGroupBy(groupBy string) error {
	if !ValidGroupings[groupBy] {
		return fmt.Errorf("invalid group_by: %q (must be one of: none, tag, risk)", groupBy)
	}
	return nil
}

// ValidateColorBy checks that a coloring is valid.
func ValidateColorBy(colorBy string) error {
	if !ValidColorings[colorBy] {
		return fmt.Errorf("invalid color_by: %q (must be one of: risk, group)", colorBy)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.GroupBy == "" {
		o.GroupBy = DefaultGroupBy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateGroupBy(o.GroupBy)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.ColorBy == "" {
		o.ColorBy = DefaultColorBy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateGroupBy(o.GroupBy); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateColorBy(o.ColorBy)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:   o.Width,
		Height:  o.Height,
		GroupBy: o.GroupBy,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:    format,
		ColorBy:   o.ColorBy,
		ShowLabel: o.ShowLabels,
	}
}
