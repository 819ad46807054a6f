package editor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/force"
	"github.com/matzehuels/forcechart/pkg/geometry"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/observability"
	"github.com/matzehuels/forcechart/pkg/store"
)

// DefaultDetails replaces empty details when a node is added.
const DefaultDetails = "No details provided."

// noNode marks an empty selection or link source. Node ids are never negative.
const noNode = -1

// Mode is the interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeLinking
)

func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeLinking:
		return "linking"
	default:
		return "idle"
	}
}

// Menu identifies the open context menu.
type Menu int

const (
	MenuNone   Menu = iota
	MenuCanvas      // add node
	MenuNode        // add link, delete node
)

// Options configures an Editor. Zero fields take the defaults from
// [DefaultOptions].
type Options struct {
	Width, Height float64 // viewport size

	NodeWidth   float64
	NodeHeight  float64
	ArrowLength float64
	DragPadding float64

	// DragAlphaTarget is the simulation temperature held while dragging.
	DragAlphaTarget float64

	Force force.Options

	// Store receives the document after every change. Nil disables
	// persistence.
	Store store.Store
	// Key is the storage key, graph.StorageKey by default.
	Key string

	ReadOnly bool

	Logger *log.Logger
}

// DefaultOptions returns the stock node geometry and drag behaviour
// for an 800×600 viewport.
func DefaultOptions() Options {
	return Options{
		Width:           800,
		Height:          600,
		NodeWidth:       120,
		NodeHeight:      50,
		ArrowLength:     16,
		DragPadding:     20,
		DragAlphaTarget: 0.3,
		Force:           force.DefaultOptions(),
		Key:             graph.StorageKey,
	}
}

func (o *Options) setDefaults() {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.ArrowLength <= 0 {
		o.ArrowLength = d.ArrowLength
	}
	if o.DragPadding <= 0 {
		o.DragPadding = d.DragPadding
	}
	if o.DragAlphaTarget <= 0 {
		o.DragAlphaTarget = d.DragAlphaTarget
	}
	if o.Key == "" {
		o.Key = d.Key
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Editor is the flowchart editor state machine.
type Editor struct {
	opts   Options
	logger *log.Logger

	graph    *flow.Graph
	sim      *force.Simulation
	segments []geometry.Segment

	mode       Mode
	dragID     int
	linkSource int

	pressed  bool
	pressPos geometry.Point
	moved    bool
	pointer  geometry.Point

	selected    int
	detailsOpen bool

	menu           Menu
	menuPos        geometry.Point
	lastRightClick geometry.Point

	viewW, viewH   float64
	width, height  float64
	readOnly       bool
	heatedAt       time.Time
	ticksSinceHeat int
}

// New creates an editor holding an empty graph. Call [Editor.Restore] to
// load the persisted document or seed a fresh canvas.
func New(opts Options) *Editor {
	opts.setDefaults()
	center := geometry.Point{X: opts.Width / 2, Y: opts.Height / 2}
	fo := opts.Force
	fo.Center = center

	e := &Editor{
		opts:           opts,
		logger:         opts.Logger.WithPrefix("editor"),
		graph:          flow.New(),
		sim:            force.New(fo),
		dragID:         noNode,
		linkSource:     noNode,
		selected:       noNode,
		lastRightClick: center,
		viewW:          opts.Width,
		viewH:          opts.Height,
		width:          opts.Width,
		height:         opts.Height,
		readOnly:       opts.ReadOnly,
	}
	e.sim.Bind(e.graph)
	return e
}

// =============================================================================
// Accessors
// =============================================================================

// Graph returns the live graph. Callers must not mutate it.
func (e *Editor) Graph() *flow.Graph { return e.graph }

// Mode returns the interaction state.
func (e *Editor) Mode() Mode { return e.mode }

// ReadOnly reports whether mutations are disabled.
func (e *Editor) ReadOnly() bool { return e.readOnly }

// Selected returns the selected node id.
func (e *Editor) Selected() (int, bool) { return e.selected, e.selected != noNode }

// LinkSource returns the source node id while linking.
func (e *Editor) LinkSource() (int, bool) {
	return e.linkSource, e.mode == ModeLinking
}

// Menu returns the open context menu and where it was opened.
func (e *Editor) Menu() (Menu, geometry.Point) { return e.menu, e.menuPos }

// DetailsOpen reports whether the details panel shows the selected node.
func (e *Editor) DetailsOpen() bool { return e.detailsOpen }

// CanvasSize returns the current canvas size, which grows during drags.
func (e *Editor) CanvasSize() (w, h float64) { return e.width, e.height }

// Simulation returns the layout simulation, for inspection.
func (e *Editor) Simulation() *force.Simulation { return e.sim }

// Active reports whether the layout still moves and Tick should be called.
func (e *Editor) Active() bool { return e.sim.Active() }

// =============================================================================
// Layout
// =============================================================================

// Tick advances the layout by one step and reports whether it did anything.
func (e *Editor) Tick() bool {
	if !e.sim.Active() {
		return false
	}
	e.sim.Tick()
	e.ticksSinceHeat++
	e.refreshSegments()
	if !e.sim.Active() {
		observability.Layout().OnRest(context.Background(), e.ticksSinceHeat, time.Since(e.heatedAt))
	}
	return true
}

// Settle ticks until the layout rests or maxTicks is reached.
func (e *Editor) Settle(maxTicks int) int {
	n := 0
	for n < maxTicks && e.Tick() {
		n++
	}
	return n
}

// Resize changes the viewport, re-centres the layout and reheats it.
// The canvas never shrinks below a size reached by dragging.
func (e *Editor) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	e.viewW, e.viewH = w, h
	e.width = math.Max(e.width, w)
	e.height = math.Max(e.height, h)
	e.sim.SetCenter(geometry.Point{X: w / 2, Y: h / 2})
	e.heat(context.Background(), "resize")
}

// heat reheats the layout to full temperature.
func (e *Editor) heat(ctx context.Context, reason string) {
	e.sim.Kick()
	e.restarted(ctx, reason)
}

func (e *Editor) restarted(ctx context.Context, reason string) {
	e.heatedAt = time.Now()
	e.ticksSinceHeat = 0
	observability.Layout().OnRestart(ctx, reason, e.graph.NodeCount())
}

func (e *Editor) refreshSegments() {
	edges := e.graph.Edges()
	if cap(e.segments) < len(edges) {
		e.segments = make([]geometry.Segment, len(edges))
	}
	e.segments = e.segments[:len(edges)]
	for i, edge := range edges {
		src, _ := e.graph.Node(edge.Source)
		dst, _ := e.graph.Node(edge.Target)
		e.segments[i] = geometry.EdgeSegment(src.Pos(), dst.Pos(), e.opts.NodeWidth, e.opts.NodeHeight, e.opts.ArrowLength)
	}
}

// notifyGraphChanged is the single place that reacts to a structural change:
// rebind and reheat the simulation, recompute segments and persist.
func (e *Editor) notifyGraphChanged(ctx context.Context, reason string) {
	e.sim.Bind(e.graph)
	e.heat(ctx, reason)
	e.refreshSegments()
	e.persist(ctx)
}

// =============================================================================
// Persistence
// =============================================================================

func (e *Editor) persist(ctx context.Context) {
	if e.readOnly || e.opts.Store == nil {
		return
	}
	data, err := graph.Marshal(e.graph)
	if err != nil {
		e.logger.Error("encode document", "err", err)
		return
	}
	if err := e.opts.Store.Set(ctx, e.opts.Key, data); err != nil {
		e.logger.Warn("save failed, keeping in-memory state", "key", e.opts.Key, "err", err)
	}
}

// Save writes the current document to the store. Interactive changes are
// saved automatically; Save is for headless callers that moved nodes with
// [Editor.Settle] and want the positions kept.
func (e *Editor) Save(ctx context.Context) error {
	if err := e.checkWritable("save"); err != nil {
		return err
	}
	if e.opts.Store == nil {
		return nil
	}
	data, err := graph.Marshal(e.graph)
	if err != nil {
		return err
	}
	if err := e.opts.Store.Set(ctx, e.opts.Key, data); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save document")
	}
	return nil
}

// Restore loads the persisted document. If nothing is stored, or the stored
// document is unreadable, it seeds a fresh canvas. In read-only mode it does
// nothing; the host loads the remote document with [Editor.Load].
func (e *Editor) Restore(ctx context.Context) error {
	if e.readOnly {
		return nil
	}
	if e.opts.Store != nil {
		data, ok, err := e.opts.Store.Get(ctx, e.opts.Key)
		if err != nil {
			e.logger.Warn("load failed, starting fresh", "key", e.opts.Key, "err", err)
		}
		if ok {
			if err := e.Load(ctx, data); err == nil {
				return nil
			}
			e.logger.Warn("stored document is unreadable, starting fresh", "key", e.opts.Key)
		}
	}
	e.reset(ctx)
	return nil
}

// Load replaces the graph with the document in data. The swap is
// all-or-nothing: on a decode or validation error the current graph and
// interaction state are untouched. Load works in read-only mode but never
// persists there.
func (e *Editor) Load(ctx context.Context, data []byte) error {
	g, err := graph.Unmarshal(data)
	if err != nil {
		e.logger.Error("failed to load data", "err", err)
		return err
	}
	e.install(ctx, g, "load")
	return nil
}

// Import loads the document at path.
func (e *Editor) Import(ctx context.Context, path string) error {
	if err := e.checkWritable("import"); err != nil {
		return err
	}
	g, err := graph.ReadFile(path)
	if err != nil {
		e.logger.Error("failed to load data", "path", path, "err", err)
		return err
	}
	e.install(ctx, g, "import")
	return nil
}

// Export writes the document as indented JSON to path, or to
// graph.DefaultExportName if path is empty. It returns the path written.
func (e *Editor) Export(path string) (string, error) {
	if path == "" {
		path = graph.DefaultExportName
	}
	if err := graph.WriteFile(e.graph, path); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	e.logger.Debug("exported", "path", path, "nodes", e.graph.NodeCount(), "links", e.graph.EdgeCount())
	return path, nil
}

// Document returns the current graph as compact JSON.
func (e *Editor) Document() ([]byte, error) { return graph.Marshal(e.graph) }

func (e *Editor) install(ctx context.Context, g *flow.Graph, reason string) {
	e.graph = g
	e.mode = ModeIdle
	e.dragID, e.linkSource = noNode, noNode
	e.pressed = false
	e.hideDetails()
	e.hideMenus()
	e.notifyGraphChanged(ctx, reason)
}

func (e *Editor) checkWritable(action string) error {
	if e.readOnly {
		return errors.New(errors.ErrCodeReadOnly, "%s is disabled in read-only mode", action)
	}
	return nil
}

// =============================================================================
// Interaction state helpers
// =============================================================================

func (e *Editor) center() geometry.Point {
	return geometry.Point{X: e.viewW / 2, Y: e.viewH / 2}
}

func (e *Editor) hideMenus() { e.menu = MenuNone }

func (e *Editor) hideDetails() {
	e.detailsOpen = false
	e.selected = noNode
}

func (e *Editor) cancelLink() {
	if e.mode == ModeLinking {
		e.mode = ModeIdle
	}
	e.linkSource = noNode
}

// nodeAt returns the topmost node whose body contains p. Later nodes are
// drawn on top.
func (e *Editor) nodeAt(p geometry.Point) (*flow.Node, bool) {
	nodes := e.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		r := geometry.Rect{Center: n.Pos(), W: e.opts.NodeWidth, H: e.opts.NodeHeight}
		if r.Contains(p) {
			return n, true
		}
	}
	return nil, false
}
