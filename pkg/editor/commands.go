package editor

import (
	"context"
	"strings"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/flow"
)

// AddNode adds a node at the last right-click position, pinned there.
// The label is trimmed and required; empty details become
// [DefaultDetails].
func (e *Editor) AddNode(ctx context.Context, label, details string) (*flow.Node, error) {
	if err := e.checkWritable("add node"); err != nil {
		return nil, err
	}
	label, err := errors.ValidateNodeLabel(label)
	if err != nil {
		return nil, err
	}
	details = strings.TrimSpace(details)
	if details == "" {
		details = DefaultDetails
	}
	if err := errors.ValidateNodeDetails(details); err != nil {
		return nil, err
	}

	n, err := e.graph.AddNode(label, details, e.lastRightClick)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "add node")
	}
	e.hideMenus()
	e.logger.Debug("node added", "id", n.ID, "label", n.Label)
	e.notifyGraphChanged(ctx, "add-node")
	return n, nil
}

// StartLink enters linking mode with the selected node as source.
func (e *Editor) StartLink() error {
	if err := e.checkWritable("linking"); err != nil {
		return err
	}
	n, ok := e.graph.Node(e.selected)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no node selected")
	}
	e.hideMenus()
	e.mode = ModeLinking
	e.linkSource = n.ID
	e.pointer = n.Pos()
	return nil
}

// DeleteSelected deletes the selected node.
func (e *Editor) DeleteSelected(ctx context.Context) error {
	if err := e.checkWritable("delete node"); err != nil {
		return err
	}
	if e.selected == noNode {
		return errors.New(errors.ErrCodeNotFound, "no node selected")
	}
	return e.DeleteNode(ctx, e.selected)
}

// DeleteNode deletes node id and every edge touching it. Deleting the
// selected node closes the details panel.
func (e *Editor) DeleteNode(ctx context.Context, id int) error {
	if err := e.checkWritable("delete node"); err != nil {
		return err
	}
	removed, ok := e.graph.RemoveNode(id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no node with id %d", id)
	}
	if e.selected == id {
		e.hideDetails()
	}
	if e.linkSource == id {
		e.cancelLink()
	}
	if e.dragID == id {
		e.endDrag()
	}
	e.hideMenus()
	e.logger.Debug("node deleted", "id", id, "links", removed)
	e.notifyGraphChanged(ctx, "delete-node")
	return nil
}

// Cancel returns to Idle, clears the selection and hides menus and the
// details panel.
func (e *Editor) Cancel() {
	if e.mode == ModeDragging {
		e.endDrag()
	}
	e.cancelLink()
	e.mode = ModeIdle
	e.hideDetails()
	e.hideMenus()
}

// ResetLayout unpins every node and reheats the layout.
func (e *Editor) ResetLayout(ctx context.Context) error {
	if err := e.checkWritable("reset layout"); err != nil {
		return err
	}
	e.graph.UnpinAll()
	e.notifyGraphChanged(ctx, "reset-layout")
	return nil
}

// Clear replaces the graph with the seed node, resets the canvas to the
// viewport and clears all interaction state.
func (e *Editor) Clear(ctx context.Context) error {
	if err := e.checkWritable("clear"); err != nil {
		return err
	}
	e.reset(ctx)
	return nil
}

func (e *Editor) reset(ctx context.Context) {
	e.width, e.height = e.viewW, e.viewH
	e.lastRightClick = e.center()
	e.install(ctx, flow.Seed(e.center()), "clear")
}
