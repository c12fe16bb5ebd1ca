// Package export turns a document into a paginated artifact. It owns the
// layout-option contract and the asynchronous job pipeline; the actual
// rasterization is delegated to an Engine.
package export

import (
	"context"
	"fmt"

	"github.com/dgallion1/docdraft/internal/document"
	"github.com/dgallion1/docdraft/internal/markup"
)

// Options is the layout configuration handed to the rendering engine,
// mirroring the host application's export dialog.
type Options struct {
	// Margins are [top, left, bottom, right] in inches.
	Margins     [4]float64 `json:"margins"`
	PageSize    string     `json:"pageSize"`
	Orientation string     `json:"orientation"`
	FontFamily  string     `json:"baseFontFamily"`
	FontSizePt  float64    `json:"baseFontSizePt"`
	// RasterScale is accepted for contract compatibility with raster
	// backends; vector engines may ignore it.
	RasterScale float64 `json:"rasterScale"`
	Filename    string  `json:"filename"`
}

// DefaultOptions returns the layout used when the caller specifies nothing.
func DefaultOptions() Options {
	return Options{
		Margins:     [4]float64{0.5, 0.5, 0.5, 0.5},
		PageSize:    "letter",
		Orientation: "portrait",
		FontFamily:  "Helvetica",
		FontSizePt:  12,
		RasterScale: 2,
		Filename:    "document.pdf",
	}
}

// ApplyDefaults fills unset fields from DefaultOptions. Margins are taken
// as given: an all-zero margin set is a valid request.
func (o *Options) ApplyDefaults() {
	def := DefaultOptions()
	if o.PageSize == "" {
		o.PageSize = def.PageSize
	}
	if o.Orientation == "" {
		o.Orientation = def.Orientation
	}
	if o.FontFamily == "" {
		o.FontFamily = def.FontFamily
	}
	if o.FontSizePt <= 0 {
		o.FontSizePt = def.FontSizePt
	}
	if o.RasterScale <= 0 {
		o.RasterScale = def.RasterScale
	}
	if o.Filename == "" {
		o.Filename = def.Filename
	}
}

// PageSizes lists the named page formats the engine contract recognizes.
var PageSizes = map[string]bool{
	"letter":  true,
	"legal":   true,
	"tabloid": true,
	"a3":      true,
	"a4":      true,
	"a5":      true,
}

// Validate rejects option values outside the engine contract.
func (o Options) Validate() error {
	if !PageSizes[o.PageSize] {
		return fmt.Errorf("unknown page size %q", o.PageSize)
	}
	if o.Orientation != "portrait" && o.Orientation != "landscape" {
		return fmt.Errorf("unknown orientation %q", o.Orientation)
	}
	for _, m := range o.Margins {
		if m < 0 {
			return fmt.Errorf("negative margin %v", m)
		}
	}
	return nil
}

// Engine renders serialized markup into a binary document artifact. The
// contract is deliberately thin: valid HTML-like markup in, a file out.
type Engine interface {
	Render(ctx context.Context, markup string, opts Options) ([]byte, error)
}

// Exporter serializes documents and drives the engine. It performs a
// single render per export; failures are reported once and never retried.
type Exporter struct {
	engine Engine
}

func NewExporter(engine Engine) *Exporter {
	return &Exporter{engine: engine}
}

// Export produces the artifact bytes for a document. No partial artifact
// is ever returned: any engine error yields nil bytes.
func (e *Exporter) Export(ctx context.Context, doc document.Document, opts Options) ([]byte, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("export options: %w", err)
	}
	out, err := e.engine.Render(ctx, markup.Render(doc), opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return out, nil
}
