package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
	"github.com/matzehuels/evotree/pkg/observability"
	"github.com/matzehuels/evotree/pkg/render"
	"github.com/matzehuels/evotree/pkg/render/cards"
	"github.com/matzehuels/evotree/pkg/render/nodelink"
)

const defaultOutputBase = "evotree"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // svg, png, pdf, dot
	nodelink    bool     // Graphviz diagram instead of cards
	detailed    bool     // full card contents / detailed nodelink labels
	connectors  bool     // draw parent-child curves (cards)
	interactive bool     // embed hover script (cards, svg only)
	scale       float64  // png scale factor
}

// validFormats is the set of supported output formats.
var validFormats = []string{render.FormatSVG, render.FormatPNG, render.FormatPDF, render.FormatDOT}

// renderCommand creates the render command for generating images.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      treeFlags
		formatsStr string
	)
	opts := renderOpts{detailed: true, connectors: true, scale: 2}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the visible genealogy to SVG, PNG, PDF or DOT",
		Long: `Render the visible genealogy to SVG, PNG, PDF or DOT.

The default card view draws one card per visible agent at its layout
position, joined by curved connectors. With --nodelink, Graphviz draws a
plain node-link diagram instead. PNG and PDF output require rsvg-convert.`,
		Example: `  evotree render --all -o tree.svg
  evotree render --expand 1,2 -f svg,png -o out/tree
  evotree render --nodelink -f dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), &flags, &opts)
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.nodelink, "nodelink", false, "draw a Graphviz node-link diagram instead of cards")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", opts.detailed, "show traits, health and financials")
	cmd.Flags().BoolVar(&opts.connectors, "connectors", opts.connectors, "draw parent-child connectors (cards)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "embed hover highlighting (cards, svg)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{render.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(validFormats, f) {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(validFormats, ", "))
		}
	}
	return nil
}

// outputPath returns the file for format. A single format writes to output
// as given; several formats share output as base path with the format's
// extension appended.
func outputPath(output, format string, multiple bool) string {
	if output == "" {
		return defaultOutputBase + "." + format
	}
	if !multiple {
		return output
	}
	ext := filepath.Ext(output)
	if slices.Contains(validFormats, strings.TrimPrefix(ext, ".")) {
		output = strings.TrimSuffix(output, ext)
	}
	return output + "." + format
}

func (c *CLI) runRender(ctx context.Context, flags *treeFlags, opts *renderOpts) error {
	tree, l, err := c.computeLayout(flags)
	if err != nil {
		return err
	}
	c.Logger.Infof("Rendering %d agents", l.Len())

	outputs, err := c.renderFormats(ctx, tree, l, opts)
	if err != nil {
		return err
	}

	multiple := len(opts.formats) > 1
	for i, format := range opts.formats {
		path := outputPath(opts.output, format, multiple)
		if err := writeOutput(path, outputs[i]); err != nil {
			return err
		}
		printSuccess("Rendered %s", strings.ToUpper(format))
		printFile(path)
	}

	printNewline()
	printStats(l.Len(), len(layout.Connectors(l)), l.Width)
	return nil
}

// renderFormats renders every requested format concurrently. Results are
// returned in the order of opts.formats; the first failure cancels the rest.
func (c *CLI) renderFormats(ctx context.Context, tree *genealogy.Node, l layout.Layout, opts *renderOpts) ([][]byte, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.formats, ", ")))
	spinner.Start()
	defer spinner.Stop()

	out := make([][]byte, len(opts.formats))
	g, gctx := errgroup.WithContext(ctx)
	for i, format := range opts.formats {
		g.Go(func() error {
			data, err := c.renderOne(gctx, tree, l, format, opts)
			out[i] = data
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, ctx.Err()
}

func (c *CLI) renderOne(ctx context.Context, tree *genealogy.Node, l layout.Layout, format string, opts *renderOpts) ([]byte, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format)
	prog := newProgress(c.Logger)

	data, err := c.renderLayout(ctx, tree, l, format, opts)
	hooks.OnRenderComplete(ctx, format, len(data), prog.elapsed(), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	c.Logger.Debug("rendered", "format", format, "bytes", len(data), "elapsed", prog.elapsed())
	return data, nil
}

// renderLayout produces the bytes for one format.
func (c *CLI) renderLayout(ctx context.Context, tree *genealogy.Node, l layout.Layout, format string, opts *renderOpts) ([]byte, error) {
	if opts.nodelink || format == render.FormatDOT {
		return c.renderNodeLink(ctx, tree, l, format, opts)
	}

	svgOpts := []cards.SVGOption{
		cards.WithTheme(c.Config.Theme),
		cards.WithConnectors(opts.connectors),
		cards.WithDetails(opts.detailed),
	}
	if opts.interactive && format == render.FormatSVG {
		svgOpts = append(svgOpts, cards.WithInteraction())
	}
	svg := cards.RenderSVG(tree, l, svgOpts...)
	return c.convert(ctx, svg, format, opts.scale)
}

func (c *CLI) renderNodeLink(ctx context.Context, tree *genealogy.Node, l layout.Layout, format string, opts *renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(tree, l, nodelink.Options{Detailed: opts.detailed})
	switch format {
	case render.FormatDOT:
		return []byte(dot), nil
	case render.FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case render.FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.scale)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "cannot render node-link diagram as %s", format)
}

// convert turns SVG into the requested format.
func (c *CLI) convert(ctx context.Context, svg []byte, format string, scale float64) ([]byte, error) {
	if format == render.FormatSVG {
		return svg, nil
	}

	start := time.Now()
	var (
		data []byte
		err  error
	)
	switch format {
	case render.FormatPDF:
		data, err = render.ToPDF(ctx, svg)
	case render.FormatPNG:
		data, err = render.ToPNG(ctx, svg, scale)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "cannot convert SVG to %s", format)
	}
	c.Logger.Debug("converted", "format", format, "bytes", len(data), "elapsed", time.Since(start))
	return data, err
}
