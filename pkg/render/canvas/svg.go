package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

const canvasCSS = `
    .link { stroke: #999; stroke-opacity: 0.8; stroke-width: 2px; }
    .arrow-marker { fill: #999; }
    .node rect { fill: #fff; stroke: #4a90e2; stroke-width: 2px; }
    .node.pinned rect { stroke-dasharray: 4,2; }
    .node.selected rect { stroke: #f5a623; stroke-width: 3px; }
    .node text { font: 14px sans-serif; fill: #333; text-anchor: middle; dominant-baseline: middle; }
    .temp-link { stroke: #f5a623; stroke-width: 2px; stroke-dasharray: 5,5; }
    .details rect { fill: #fafafa; stroke: #ccc; }
    .details text { font: 12px sans-serif; fill: #333; }
    .details .title { font-weight: bold; }`

const (
	fontSize      = 14.0
	fontCharWidth = 0.55
	fontWidthFill = 0.85
	cornerRadius  = 5

	detailsWidth   = 280.0
	detailsLineH   = 16.0
	detailsPadding = 10.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background  string
	showDetails bool
	markPinned  bool
}

// WithBackground fills the canvas with color instead of leaving it transparent.
func WithBackground(color string) SVGOption { return func(r *svgRenderer) { r.background = color } }

// WithDetails draws the details panel when the scene has it open.
func WithDetails() SVGOption { return func(r *svgRenderer) { r.showDetails = true } }

// WithPinned outlines pinned nodes with a dashed border.
func WithPinned() SVGOption { return func(r *svgRenderer) { r.markPinned = true } }

// RenderSVG draws the scene at its canvas size.
func RenderSVG(s editor.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	renderDefs(&buf)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	buf.WriteString(`  <g class="links">` + "\n")
	for _, l := range s.Links {
		renderLink(&buf, l)
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes">` + "\n")
	for _, n := range s.Nodes {
		r.renderNode(&buf, n, s.NodeWidth, s.NodeHeight)
	}
	buf.WriteString("  </g>\n")

	if s.RubberBand != nil {
		fmt.Fprintf(&buf, `  <line class="temp-link" %s/>`+"\n", lineAttrs(*s.RubberBand))
	}
	if r.showDetails && s.DetailsOpen {
		renderDetails(&buf, s)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(`    <marker id="arrowhead" viewBox="-0 -5 10 10" refX="10" refY="0" orient="auto" markerWidth="8" markerHeight="8">` + "\n")
	buf.WriteString(`      <path class="arrow-marker" d="M0,-5L10,0L0,5"/>` + "\n")
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", canvasCSS)
}

// renderLink skips degenerate links, which have no direction to point an
// arrowhead along.
func renderLink(buf *bytes.Buffer, l editor.SceneLink) {
	if l.Segment.Degenerate() {
		return
	}
	fmt.Fprintf(buf, `    <line class="link" data-source="%d" data-target="%d" %s marker-end="url(#arrowhead)"/>`+"\n",
		l.Source, l.Target, lineAttrs(l.Segment))
}

func (r *svgRenderer) renderNode(buf *bytes.Buffer, n editor.SceneNode, w, h float64) {
	class := "node"
	if n.Selected || n.Source {
		class += " selected"
	}
	if r.markPinned && n.Pinned {
		class += " pinned"
	}
	fmt.Fprintf(buf, `    <g class="%s" id="node-%d" transform="translate(%.2f,%.2f)">`+"\n", class, n.ID, n.Pos.X, n.Pos.Y)
	fmt.Fprintf(buf, `      <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="%d" ry="%d"/>`+"\n",
		-w/2, -h/2, w, h, cornerRadius, cornerRadius)
	fmt.Fprintf(buf, "      <text>%s</text>\n", escapeXML(truncateLabel(n.Label, w)))
	buf.WriteString("    </g>\n")
}

func renderDetails(buf *bytes.Buffer, s editor.Scene) {
	title := ""
	for _, n := range s.Nodes {
		if n.Selected {
			title = n.Label
			break
		}
	}
	lines := strings.Split(s.Details, "\n")
	h := detailsPadding*2 + detailsLineH*float64(len(lines)+1)
	x, y := detailsPadding, s.Height-h-detailsPadding

	fmt.Fprintf(buf, `  <g class="details" transform="translate(%.2f,%.2f)">`+"\n", x, y)
	fmt.Fprintf(buf, `    <rect width="%.2f" height="%.2f" rx="%d" ry="%d"/>`+"\n", detailsWidth, h, cornerRadius, cornerRadius)
	fmt.Fprintf(buf, `    <text class="title" x="%.2f" y="%.2f">%s</text>`+"\n", detailsPadding, detailsPadding+detailsLineH, escapeXML(title))
	for i, line := range lines {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f">%s</text>`+"\n",
			detailsPadding, detailsPadding+detailsLineH*float64(i+2), escapeXML(line))
	}
	buf.WriteString("  </g>\n")
}

func lineAttrs(s geometry.Segment) string {
	return fmt.Sprintf(`x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"`, s.From.X, s.From.Y, s.To.X, s.To.Y)
}

// truncateLabel shortens label to what fits in a box of the given width.
func truncateLabel(label string, width float64) string {
	maxChars := max(3, int(width*fontWidthFill/(fontSize*fontCharWidth)))
	runes := []rune(label)
	if len(runes) <= maxChars {
		return label
	}
	return string(runes[:maxChars-2]) + ".."
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
