package geometry_test

import (
	"fmt"

	"github.com/matzehuels/forcechart/pkg/geometry"
)

func ExampleEdgeSegment() {
	source := geometry.Point{X: 400, Y: 100}
	target := geometry.Point{X: 100, Y: 100}

	clip := geometry.EdgeClipPoint(source, target, 120, 50)
	seg := geometry.EdgeSegment(source, target, 120, 50, 16)

	fmt.Println("clip:", clip)
	fmt.Println("line:", seg.From, "->", seg.To)
	// Output:
	// clip: {160 100}
	// line: {400 100} -> {176 100}
}
