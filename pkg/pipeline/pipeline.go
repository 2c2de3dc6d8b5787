// Package pipeline turns records or grids into encoded table images.
//
// This package wires the stages used by the CLI and by library callers:
//
//  1. Adapt: reshape records or a grid into a [table.Table]
//  2. Render: rasterize the table with [render.Render]
//  3. Encode: serialize the image as a CQ tag, PNG bytes or a data URI
//
// # Usage
//
// The one-call entry points return a ready-to-send CQ image tag:
//
//	msg, err := pipeline.FromRecords(records, nil,
//	    pipeline.WithAlign("lrr"),
//	    pipeline.WithStockMode(true))
//
// Callers that want caching, several formats or logs use a [Runner]:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, t, opts)
//	png := result.Artifacts[encode.FormatPNG]
package pipeline

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tablecast/pkg/cache"
	"github.com/matzehuels/tablecast/pkg/colors"
	"github.com/matzehuels/tablecast/pkg/encode"
	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/fonts"
	"github.com/matzehuels/tablecast/pkg/render"
	"github.com/matzehuels/tablecast/pkg/table"
)

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one render.
// The zero value renders with the defaults of [Options.SetRenderDefaults].
type Options struct {
	// Font draws cell text. Nil selects the bundled Go Regular face.
	Font render.Font

	// FontID names Font in cache keys (for example "path@size"). Artifacts
	// rendered with a Font but without a FontID are never cached.
	FontID string

	// Padding is the space around text inside each cell. Nil means
	// [table.DefaultPadding].
	Padding *table.Padding

	// Margin is the space around the table. Nil means [table.DefaultMargin].
	Margin *table.Margin

	// Align holds one code per column, "l", "c" or "r". Columns beyond
	// the string are left aligned.
	Align string

	// Palette overrides colors; unset roles fall back to [colors.Default].
	Palette colors.Palette

	// StockMode colors cells starting with '+' or '-'.
	StockMode bool

	// Formats lists the encodings to produce. Empty means CQ only.
	Formats []encode.Format

	// Logger receives progress logs. Nil means the runner's logger.
	Logger *log.Logger

	aligns []table.Align
}

// Option configures [Options] for [FromRecords] and [FromGrid].
type Option func(*Options)

// WithFont draws text with f. Renders using it are not cached.
func WithFont(f render.Font) Option {
	return func(o *Options) {
		o.Font = f
		o.FontID = ""
	}
}

// WithNamedFont draws text with f and identifies it as id in cache keys.
func WithNamedFont(f render.Font, id string) Option {
	return func(o *Options) {
		o.Font = f
		o.FontID = id
	}
}

// WithCellPadding sets the horizontal and vertical cell padding.
func WithCellPadding(horizontal, vertical int) Option {
	return func(o *Options) {
		o.Padding = &table.Padding{Horizontal: horizontal, Vertical: vertical}
	}
}

// WithMargin sets the table margin using CSS shorthand (see [table.NewMargin]).
func WithMargin(v ...int) Option {
	return func(o *Options) {
		m := table.NewMargin(v...)
		o.Margin = &m
	}
}

// WithAlign sets per-column alignment codes such as "lcr".
func WithAlign(codes string) Option {
	return func(o *Options) {
		o.Align = codes
	}
}

// WithColors overrides palette roles. Nil fields keep their defaults.
func WithColors(p colors.Palette) Option {
	return func(o *Options) {
		o.Palette = o.Palette.Merge(p)
	}
}

// WithStockMode enables gain/loss coloring of '+' and '-' cells.
func WithStockMode(on bool) Option {
	return func(o *Options) {
		o.StockMode = on
	}
}

// WithFormats selects output encodings.
func WithFormats(formats ...encode.Format) Option {
	return func(o *Options) {
		o.Formats = formats
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// NewOptions applies opts to zero Options.
func NewOptions(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SetRenderDefaults fills unset fields with their defaults.
func (o *Options) SetRenderDefaults() error {
	if o.Font == nil {
		face, err := fonts.Default()
		if err != nil {
			return err
		}
		o.Font = face
		o.FontID = fmt.Sprintf("%s@%g", fonts.DefaultName, fonts.DefaultSize)
	}
	if o.Padding == nil {
		p := table.DefaultPadding
		o.Padding = &p
	}
	if o.Margin == nil {
		m := table.DefaultMargin
		o.Margin = &m
	}
	if len(o.Formats) == 0 {
		o.Formats = []encode.Format{encode.FormatCQ}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// Validate checks option values. Call after SetRenderDefaults.
func (o *Options) Validate() error {
	aligns, err := table.ParseAlign(o.Align)
	if err != nil {
		return err
	}
	o.aligns = aligns

	if o.Padding != nil && (o.Padding.Horizontal < 0 || o.Padding.Vertical < 0) {
		return errors.New(errors.ErrCodeInvalidInput, "cell padding must not be negative, got %d,%d",
			o.Padding.Horizontal, o.Padding.Vertical)
	}
	if m := o.Margin; m != nil && (m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0) {
		return errors.New(errors.ErrCodeInvalidInput, "margin must not be negative, got %s", m)
	}
	for _, f := range o.Formats {
		if !encode.ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
		}
	}
	return nil
}

// RenderOptions returns the options for [render.Render].
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Font:      o.Font,
		Padding:   *o.Padding,
		Margin:    *o.Margin,
		Align:     o.aligns,
		Palette:   o.Palette,
		StockMode: o.StockMode,
	}
}

// Cacheable reports whether artifacts for these options may be cached.
func (o *Options) Cacheable() bool {
	return o.FontID != ""
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format encode.Format) cache.ArtifactKeyOpts {
	pal := o.Palette.Resolve()
	roles := []color.Color{
		pal.Background, pal.CellBackground, pal.HeaderBackground, pal.Font,
		pal.RowLine, pal.ColumnLine, pal.Positive, pal.Negative,
	}
	var palette [8]string
	for i, c := range roles {
		palette[i] = colorKey(c)
	}

	aligns := make([]byte, len(o.aligns))
	for i, a := range o.aligns {
		aligns[i] = byte(a)
	}

	return cache.ArtifactKeyOpts{
		Format:    string(format),
		Font:      o.FontID,
		Padding:   [2]int{o.Padding.Horizontal, o.Padding.Vertical},
		Margin:    [4]int{o.Margin.Top, o.Margin.Right, o.Margin.Bottom, o.Margin.Left},
		Align:     string(aligns),
		Palette:   palette,
		StockMode: o.StockMode,
	}
}

func colorKey(c color.Color) string {
	if c == nil {
		return ""
	}
	r, g, b, a := c.RGBA()
	return fmt.Sprintf("%04x%04x%04x%04x", r, g, b, a)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one render.
type Result struct {
	// ID identifies this render in logs.
	ID string

	// TableHash is the content hash of the rendered table.
	TableHash string

	// Artifacts contains encoded outputs keyed by format.
	Artifacts map[encode.Format][]byte

	// Width and Height are the canvas size. Zero when every artifact
	// came from the cache.
	Width, Height int

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains render statistics.
type Stats struct {
	Rows       int
	Columns    int
	RenderTime time.Duration
	EncodeTime time.Duration
}
