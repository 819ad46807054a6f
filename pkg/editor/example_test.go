package editor_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

func Example() {
	ctx := context.Background()
	e := editor.New(editor.Options{Width: 800, Height: 600})
	_ = e.Restore(ctx)

	// right-click the background and add a node there
	_ = e.Dispatch(ctx, editor.Event{Kind: editor.ContextMenu, Pos: geometry.Point{X: 100, Y: 100}})
	a, _ := e.AddNode(ctx, "A", "")

	// link the seed node to it
	_ = e.Dispatch(ctx, editor.Event{Kind: editor.ContextMenu, Pos: geometry.Point{X: 400, Y: 300}})
	_ = e.StartLink()
	_ = e.Dispatch(ctx, editor.Event{Kind: editor.Click, Pos: a.Pos()})

	for _, n := range e.Graph().Nodes() {
		fmt.Println(n.ID, n.Label)
	}
	for _, l := range e.Graph().Edges() {
		fmt.Printf("%d -> %d\n", l.Source, l.Target)
	}
	// Output:
	// 0 Start
	// 1 A
	// 0 -> 1
}

func ExampleEditor_Scene() {
	ctx := context.Background()
	e := editor.New(editor.Options{Width: 800, Height: 600})
	_ = e.Restore(ctx)

	_ = e.Dispatch(ctx, editor.Event{Kind: editor.Click, Pos: geometry.Point{X: 400, Y: 300}})
	s := e.Scene()
	fmt.Println(s.Width, s.Height, s.Mode)
	fmt.Println(s.Details)
	// Output:
	// 800 600 idle
	// Right-click the background to add a node.
}
