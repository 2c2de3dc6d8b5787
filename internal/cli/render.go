package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tablecast/pkg/config"
	"github.com/matzehuels/tablecast/pkg/encode"
	"github.com/matzehuels/tablecast/pkg/errors"
	tcio "github.com/matzehuels/tablecast/pkg/io"
	"github.com/matzehuels/tablecast/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Flags override the theme file; unset flags keep its values.
type renderOpts struct {
	output     string   // output file path; stdout when empty
	configPath string   // theme file; the XDG default when empty
	titles     []string // column titles, overriding the document's
	headerRow  bool     // take titles from the first grid row
	align      string   // per-column alignment codes, e.g. "lcr"
	stock      bool     // color '+' and '-' cells
	format     string   // cq, png or datauri
	font       string   // TTF/OTF file
	fontSize   float64  // font size in pixels
	margin     []int    // CSS shorthand margin
	padding    []int    // horizontal, vertical cell padding
	noCache    bool     // bypass the artifact cache
	redis      string   // redis URL for a shared cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON or YAML table to an image",
		Long: `Render a JSON or YAML table to an image.

The input is a list of records, a list of rows, or an object with
"titles" and either "records" or "rows":

  [{"ticker": "AAPL", "change": "+1.2%"}, {"ticker": "MSFT", "change": "-0.4%"}]

  titles: [ticker, change]
  rows:
    - [AAPL, "+1.2%"]
    - [MSFT, "-0.4%"]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "theme file (default: ~/.config/tablecast/config.toml)")
	cmd.Flags().StringSliceVarP(&opts.titles, "titles", "t", nil, "column titles (comma-separated)")
	cmd.Flags().BoolVar(&opts.headerRow, "header-row", false, "use the first grid row as titles")
	cmd.Flags().StringVarP(&opts.align, "align", "a", "", "column alignment codes: l, c, r (e.g. lrr)")
	cmd.Flags().BoolVar(&opts.stock, "stock", false, "color cells starting with + or -")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: cq (default), png, datauri")
	cmd.Flags().StringVar(&opts.font, "font", "", "TTF or OTF font file (default: Go Regular)")
	cmd.Flags().Float64Var(&opts.fontSize, "font-size", 0, "font size in pixels (default: 16)")
	cmd.Flags().IntSliceVar(&opts.margin, "margin", nil, "margin, 1 to 4 values like CSS (default: 10,10)")
	cmd.Flags().IntSliceVar(&opts.padding, "padding", nil, "cell padding as horizontal,vertical (default: 20,10)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis URL for a shared artifact cache")

	return cmd
}

// runRender loads the theme and the input document, renders it and writes
// the artifact.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(&cfg, cmd.Flags().Changed, opts)

	pipelineOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	o := pipeline.NewOptions(pipelineOpts...)
	format := encode.FormatCQ
	if len(o.Formats) > 0 {
		format = o.Formats[0]
	}

	doc, err := tcio.ImportFile(input)
	if err != nil {
		return err
	}
	if err := applyTitles(&doc, cmd.Flags().Changed("titles"), opts); err != nil {
		return err
	}
	logger.Debug("loaded document", "path", input, "kind", doc.Kind, "titles", doc.Titles)

	runner, err := c.newRunner(cfg.Cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var result *pipeline.Result
	switch doc.Kind {
	case tcio.KindRecords:
		result, err = runner.Records(ctx, doc.Records, doc.Titles, o)
	case tcio.KindGrid:
		result, err = runner.Grid(ctx, doc.Rows, doc.Titles, o)
	default:
		err = errors.New(errors.ErrCodeEmptyInput, "%s has no records or rows", input)
	}
	if err != nil {
		return err
	}
	data := result.Artifacts[format]

	if opts.output == "" {
		return tcio.WriteArtifact(cmd.OutOrStdout(), data, format != encode.FormatPNG)
	}
	if err := tcio.ExportFile(opts.output, data); err != nil {
		return err
	}
	prog.done("Rendered", "file", filepath.Base(input), "rows", result.Stats.Rows)

	out := cmd.OutOrStdout()
	printSuccess(out, "Rendered %s", filepath.Base(input))
	printFile(out, opts.output)
	printStats(out, renderStats{
		Rows:    result.Stats.Rows,
		Columns: result.Stats.Columns,
		Width:   result.Width,
		Height:  result.Height,
		Bytes:   len(data),
		Cached:  result.CacheHit,
	})
	return nil
}

// loadConfig reads the theme at path, or the default theme when path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

// applyFlags copies the flags the user set over cfg. The output format is
// inferred from a .png output name when neither flag nor theme sets it.
func applyFlags(cfg *config.Config, changed func(string) bool, opts *renderOpts) {
	if changed("align") {
		cfg.Align = opts.align
	}
	if changed("stock") {
		cfg.Stock = opts.stock
	}
	if changed("format") {
		cfg.Format = opts.format
	} else if cfg.Format == "" && strings.EqualFold(filepath.Ext(opts.output), ".png") {
		cfg.Format = string(encode.FormatPNG)
	}
	if changed("padding") {
		cfg.Padding = opts.padding
	}
	if changed("margin") {
		cfg.Margin = opts.margin
	}
	if changed("font") {
		cfg.Font.Path = opts.font
	}
	if changed("font-size") {
		cfg.Font.Size = opts.fontSize
	}
	if changed("no-cache") {
		cfg.Cache.Disabled = opts.noCache
	}
	if changed("redis") {
		cfg.Cache.Redis = opts.redis
	}
}

// applyTitles applies --titles and --header-row to doc.
func applyTitles(doc *tcio.Document, titlesSet bool, opts *renderOpts) error {
	if opts.headerRow {
		if doc.Kind != tcio.KindGrid {
			return errors.New(errors.ErrCodeInvalidInput, "--header-row needs a grid document")
		}
		if len(doc.Rows) == 0 {
			return errors.New(errors.ErrCodeEmptyInput, "grid has no header row")
		}
		doc.Titles, doc.Rows = doc.Rows[0], doc.Rows[1:]
	}
	if titlesSet {
		doc.Titles = opts.titles
	}
	return nil
}
