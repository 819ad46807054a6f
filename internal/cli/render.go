package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/remote"
	"github.com/matzehuels/forcechart/pkg/render"
	"github.com/matzehuels/forcechart/pkg/render/canvas"
	"github.com/matzehuels/forcechart/pkg/render/nodelink"
	"github.com/matzehuels/forcechart/pkg/store"
)

const (
	vizCanvas   = "canvas"   // the editor's own drawing
	vizNodelink = "nodelink" // Graphviz neato diagram

	defaultRenderBase = "flowchart"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file (single type/format) or base path
	vizTypes   []string // visualization types: "canvas", "nodelink"
	formats    []string // output formats: "svg", "png", "pdf", "dot"
	input      string   // render this document file instead of the stored board
	url        string   // render this remote document instead of the stored board
	ticks      int      // layout ticks to run before drawing
	scale      float64  // PNG scale for canvas output
	detailed   bool     // add details to nodelink labels
	relayout   bool     // let neato place nodes itself
	background string   // canvas background colour
}

// renderCommand creates the render command for writing images of the board.
//
// Each requested type/format pair renders concurrently from its own
// snapshot of the board, so formats never observe each other's work.
func (c *CLI) renderCommand() *cobra.Command {
	var vizTypesStr, formatsStr string
	opts := renderOpts{
		ticks: defaultSettleTicks,
		scale: 2.0,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the board to SVG, PNG, PDF or DOT",
		Long: `Render the stored board, a document file (--input) or a remote document
(--url) to image files. The layout runs until it rests before drawing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.vizTypes = parseVizTypes(vizTypesStr)
			opts.formats = parseFormats(formatsStr)
			if err := validateVizTypes(opts.vizTypes); err != nil {
				return err
			}
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.input != "" && opts.url != "" {
				return fmt.Errorf("--input and --url are mutually exclusive")
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single type/format) or base path (default \"flowchart\")")
	cmd.Flags().StringVarP(&vizTypesStr, "type", "t", "", "visualization type(s): canvas (default), nodelink (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")
	cmd.Flags().StringVar(&opts.input, "input", "", "render a document file instead of the stored board")
	cmd.Flags().StringVar(&opts.url, "url", "", "render a remote document instead of the stored board")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "maximum layout ticks before drawing")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor (canvas)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node details (nodelink)")
	cmd.Flags().BoolVar(&opts.relayout, "relayout", false, "ignore positions and let Graphviz lay out (nodelink)")
	cmd.Flags().StringVar(&opts.background, "background", "", "background colour (canvas)")

	return cmd
}

// parseVizTypes parses the --type flag into a slice of visualization types.
// If empty, defaults to ["canvas"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{vizCanvas}
	}
	return strings.Split(s, ",")
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "pdf": true, "dot": true}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'png', 'pdf', or 'dot')", f)
		}
	}
	return nil
}

func validateVizTypes(types []string) error {
	for _, t := range types {
		if t != vizCanvas && t != vizNodelink {
			return fmt.Errorf("invalid type: %s (must be 'canvas' or 'nodelink')", t)
		}
	}
	return nil
}

// basePath derives the base output path. Known format extensions are
// stripped so "-o board.svg -f svg,png" writes board.svg and board.png.
func basePath(output string) string {
	if output == "" {
		return defaultRenderBase
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath names the file for one type/format pair: base.format, or
// base_type.format when several types are requested.
func outputPath(base, vizType, format string, opts *renderOpts) string {
	if len(opts.vizTypes) == 1 && len(opts.formats) == 1 && opts.output != "" && filepath.Ext(opts.output) != "" {
		return opts.output
	}
	if len(opts.vizTypes) == 1 {
		return fmt.Sprintf("%s.%s", base, format)
	}
	return fmt.Sprintf("%s_%s.%s", base, vizType, format)
}

// runRender loads the board, settles the layout and writes every requested
// type/format pair.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	ed, err := c.loadForRender(ctx, opts)
	if err != nil {
		return err
	}
	ticks := ed.Settle(opts.ticks)
	logger.Debug("layout settled", "ticks", ticks, "active", ed.Active())

	scene := ed.Scene()
	doc, err := ed.Document()
	if err != nil {
		return err
	}

	type job struct{ vizType, format string }
	var jobs []job
	for _, t := range opts.vizTypes {
		for _, f := range opts.formats {
			if t == vizCanvas && f == "dot" {
				logger.Debugf("Skipping %s/%s (unsupported combination)", t, f)
				continue
			}
			jobs = append(jobs, job{t, f})
		}
	}

	base := basePath(opts.output)
	paths := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			snapshot, err := graph.Unmarshal(doc)
			if err != nil {
				return err
			}
			data, err := renderBoard(gctx, scene, snapshot, j.vizType, j.format, opts)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", j.vizType, j.format, err)
			}
			path := outputPath(base, j.vizType, j.format, opts)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(paths)))
	printSuccess("Rendered board")
	printBoard(ed.Graph())
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// loadForRender returns a read-only or throwaway editor holding the board
// to draw. Rendering never writes to the configured store.
func (c *CLI) loadForRender(ctx context.Context, opts *renderOpts) (*editor.Editor, error) {
	logger := loggerFromContext(ctx)

	switch {
	case opts.url != "":
		spinner := newSpinner(ctx, os.Stderr, "Fetching "+opts.url)
		spinner.Start()
		data, err := remote.New(nil).Fetch(ctx, opts.url)
		if err != nil {
			spinner.StopWithError("Fetch failed")
			return nil, err
		}
		spinner.Stop()
		ed, _ := c.newEditor(ctx, store.NewNullStore(), logger, true)
		if err := ed.Load(ctx, data); err != nil {
			return nil, err
		}
		return ed, nil

	case opts.input != "":
		ed, err := c.newEditor(ctx, store.NewMemoryStore(), logger, false)
		if err != nil {
			return nil, err
		}
		if err := ed.Import(ctx, opts.input); err != nil {
			return nil, err
		}
		return ed, nil

	default:
		st, err := c.openStore(ctx, false)
		if err != nil {
			return nil, err
		}
		defer st.Close()
		data, ok, err := st.Get(ctx, c.settings().Storage.Key)
		if err != nil {
			return nil, err
		}
		if !ok {
			printWarning("No stored board yet, rendering the empty canvas")
		}
		ed, err := c.newEditor(ctx, store.NewMemoryStore(), logger, false)
		if err != nil {
			return nil, err
		}
		if ok {
			if err := ed.Load(ctx, data); err != nil {
				return nil, err
			}
		}
		return ed, nil
	}
}

// errSkipFormat marks a type/format pair that has no renderer.
var errSkipFormat = errors.New("skip unsupported format")

// renderBoard dispatches to the renderer for vizType.
func renderBoard(ctx context.Context, scene editor.Scene, g *flow.Graph, vizType, format string, opts *renderOpts) ([]byte, error) {
	switch vizType {
	case vizNodelink:
		return renderNodelink(ctx, g, format, opts)
	case vizCanvas:
		return renderCanvas(ctx, scene, format, opts)
	}
	return nil, errSkipFormat
}

func renderCanvas(ctx context.Context, scene editor.Scene, format string, opts *renderOpts) ([]byte, error) {
	var svgOpts []canvas.SVGOption
	if opts.background != "" {
		svgOpts = append(svgOpts, canvas.WithBackground(opts.background))
	}
	svg := canvas.RenderSVG(scene, svgOpts...)

	switch format {
	case "svg":
		return svg, nil
	case "png":
		return render.ToPNG(ctx, svg, opts.scale)
	case "pdf":
		return render.ToPDF(ctx, svg)
	}
	return nil, errSkipFormat
}

func renderNodelink(ctx context.Context, g *flow.Graph, format string, opts *renderOpts) ([]byte, error) {
	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed, Relayout: opts.relayout})

	switch format {
	case "dot":
		return []byte(dot), nil
	case "svg":
		return nodelink.RenderSVG(ctx, dot)
	case "png":
		return nodelink.RenderPNG(ctx, dot)
	case "pdf":
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}
	return nil, errSkipFormat
}
