package editor

import (
	"context"
	"strings"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

// EventKind identifies an input event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	Click
	ContextMenu
	Key
)

var eventNames = [...]string{"pointer-down", "pointer-move", "pointer-up", "click", "context-menu", "key"}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a toolkit-independent input event. Pos is in canvas coordinates;
// Key is set for Key events ("esc", "enter", ...).
type Event struct {
	Kind EventKind
	Pos  geometry.Point
	Key  string
}

type handler func(e *Editor, ctx context.Context, ev Event) error

// handlers maps every event kind to its transition function.
var handlers = map[EventKind]handler{
	PointerDown: (*Editor).onPointerDown,
	PointerMove: (*Editor).onPointerMove,
	PointerUp:   (*Editor).onPointerUp,
	Click:       (*Editor).onClick,
	ContextMenu: (*Editor).onContextMenu,
	Key:         (*Editor).onKey,
}

// Dispatch feeds one input event to the state machine.
//
// Hosts that only report raw pointer events may rely on PointerDown followed
// by PointerUp without intermediate movement being handled as a Click.
func (e *Editor) Dispatch(ctx context.Context, ev Event) error {
	h, ok := handlers[ev.Kind]
	if !ok {
		return errors.New(errors.ErrCodeUnsupported, "unknown event kind %d", int(ev.Kind))
	}
	return h(e, ctx, ev)
}

// =============================================================================
// Pointer
// =============================================================================

func (e *Editor) onPointerDown(ctx context.Context, ev Event) error {
	e.pressed, e.moved = true, false
	e.pressPos, e.pointer = ev.Pos, ev.Pos

	if e.readOnly || e.mode != ModeIdle {
		return nil
	}
	n, ok := e.nodeAt(ev.Pos)
	if !ok {
		return nil
	}
	e.mode = ModeDragging
	e.dragID = n.ID
	n.Pin(n.Pos())
	e.sim.SetAlphaTarget(e.opts.DragAlphaTarget)
	e.restarted(ctx, "drag")
	return nil
}

func (e *Editor) onPointerMove(_ context.Context, ev Event) error {
	e.pointer = ev.Pos
	if e.pressed && ev.Pos != e.pressPos {
		e.moved = true
	}
	if e.mode != ModeDragging {
		return nil
	}
	n, ok := e.graph.Node(e.dragID)
	if !ok {
		e.endDrag()
		return nil
	}
	e.dragTo(n, ev.Pos)
	return nil
}

// dragTo pins n at p clamped to the top-left padding, and grows the canvas
// to keep a margin of twice the padding on the right and bottom.
func (e *Editor) dragTo(n *flow.Node, p geometry.Point) {
	pad := e.opts.DragPadding
	fx := max(pad, p.X)
	fy := max(pad, p.Y)
	n.Pin(geometry.Point{X: fx, Y: fy})
	n.X, n.Y = fx, fy

	if fx > e.width-2*pad {
		e.width = fx + 2*pad
	}
	if fy > e.height-2*pad {
		e.height = fy + 2*pad
	}
	e.refreshSegments()
}

func (e *Editor) onPointerUp(ctx context.Context, ev Event) error {
	e.pointer = ev.Pos
	wasPressed, moved := e.pressed, e.moved || ev.Pos != e.pressPos
	e.pressed = false

	if e.mode == ModeDragging {
		e.endDrag()
		e.persist(ctx)
	}
	if wasPressed && !moved {
		return e.onClick(ctx, ev)
	}
	return nil
}

func (e *Editor) endDrag() {
	e.mode = ModeIdle
	e.dragID = noNode
	e.sim.SetAlphaTarget(0)
}

// =============================================================================
// Click
// =============================================================================

func (e *Editor) onClick(ctx context.Context, ev Event) error {
	e.hideMenus()
	n, ok := e.nodeAt(ev.Pos)
	if !ok {
		e.hideDetails()
		e.cancelLink()
		return nil
	}
	if e.mode == ModeLinking {
		return e.completeLink(ctx, n.ID)
	}
	if e.selected == n.ID {
		e.hideDetails()
		return nil
	}
	e.selected = n.ID
	e.detailsOpen = true
	return nil
}

func (e *Editor) completeLink(ctx context.Context, target int) error {
	source := e.linkSource
	e.cancelLink()
	e.hideDetails()
	if source == target {
		return nil
	}
	added, err := e.graph.AddEdge(source, target)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "cannot link %d -> %d", source, target)
	}
	if added {
		e.logger.Debug("link added", "source", source, "target", target)
		e.notifyGraphChanged(ctx, "add-link")
	}
	return nil
}

// =============================================================================
// Context menu & keys
// =============================================================================

func (e *Editor) onContextMenu(_ context.Context, ev Event) error {
	if err := e.checkWritable("context menu"); err != nil {
		return err
	}
	if e.mode == ModeDragging {
		return nil
	}
	e.cancelLink()
	e.hideMenus()
	e.menuPos = ev.Pos

	n, ok := e.nodeAt(ev.Pos)
	if !ok {
		e.hideDetails()
		e.lastRightClick = ev.Pos
		e.menu = MenuCanvas
		return nil
	}
	if e.selected != n.ID {
		e.detailsOpen = false
	}
	e.selected = n.ID
	e.menu = MenuNode
	return nil
}

func (e *Editor) onKey(_ context.Context, ev Event) error {
	switch strings.ToLower(ev.Key) {
	case "esc", "escape":
		e.Cancel()
	}
	return nil
}
