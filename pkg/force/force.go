package force

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

// Force contributes velocity impulses to nodes on every tick.
type Force interface {
	Apply(nodes []*flow.Node, alpha float64)
}

// Initializer is implemented by forces that cache per-graph state (edge
// endpoints, degrees). Simulation.Bind calls it whenever the graph changes.
type Initializer interface {
	Initialize(g *flow.Graph)
}

// jiggle returns a tiny random offset used to separate coincident nodes.
func jiggle(r *rand.Rand) float64 { return (r.Float64() - 0.5) * 1e-6 }

// =============================================================================
// ManyBody
// =============================================================================

// ManyBody applies a charge force between every pair of nodes. A negative
// Strength repels.
//
// The impulse magnitude is |Strength|·alpha / sqrt(d² + DistanceMin²), which
// decreases strictly with distance d and stays finite when nodes overlap.
type ManyBody struct {
	Strength    float64
	DistanceMin float64

	rng *rand.Rand
}

// NewManyBody creates a charge force with the given strength.
func NewManyBody(strength float64) *ManyBody {
	return &ManyBody{Strength: strength, DistanceMin: 1, rng: rand.New(rand.NewPCG(1, 2))}
}

// Magnitude returns the impulse magnitude between two nodes at distance d.
func (f *ManyBody) Magnitude(d, alpha float64) float64 {
	return math.Abs(f.Strength) * alpha / math.Sqrt(d*d+f.DistanceMin*f.DistanceMin)
}

// Apply implements Force.
func (f *ManyBody) Apply(nodes []*flow.Node, alpha float64) {
	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			dx, dy := b.X-a.X, b.Y-a.Y
			if dx == 0 {
				dx = jiggle(f.rng)
			}
			if dy == 0 {
				dy = jiggle(f.rng)
			}
			d := math.Hypot(dx, dy)
			w := f.Strength * alpha / (d * math.Sqrt(d*d+f.DistanceMin*f.DistanceMin))
			a.VX += dx * w
			a.VY += dy * w
			b.VX -= dx * w
			b.VY -= dy * w
		}
	}
}

// =============================================================================
// Link
// =============================================================================

type spring struct {
	source, target *flow.Node
	strength       float64
	bias           float64
}

// Link pulls the endpoints of every edge toward Distance.
//
// Each spring's stiffness is 1/min(deg(source), deg(target)) and the
// correction is split between the endpoints in proportion to their degree, so
// hubs move less than leaves.
type Link struct {
	Distance float64

	springs []spring
	rng     *rand.Rand
}

// NewLink creates a link force with the given rest distance.
func NewLink(distance float64) *Link {
	return &Link{Distance: distance, rng: rand.New(rand.NewPCG(3, 4))}
}

// Initialize implements Initializer.
func (f *Link) Initialize(g *flow.Graph) {
	edges := g.Edges()
	count := make(map[int]int, g.NodeCount())
	for _, e := range edges {
		count[e.Source]++
		count[e.Target]++
	}

	f.springs = f.springs[:0]
	for _, e := range edges {
		src, ok := g.Node(e.Source)
		if !ok {
			continue
		}
		dst, ok := g.Node(e.Target)
		if !ok {
			continue
		}
		cs, ct := float64(count[e.Source]), float64(count[e.Target])
		f.springs = append(f.springs, spring{
			source:   src,
			target:   dst,
			strength: 1 / min(cs, ct),
			bias:     cs / (cs + ct),
		})
	}
}

// Apply implements Force.
func (f *Link) Apply(_ []*flow.Node, alpha float64) {
	for _, s := range f.springs {
		x := s.target.X + s.target.VX - s.source.X - s.source.VX
		y := s.target.Y + s.target.VY - s.source.Y - s.source.VY
		if x == 0 {
			x = jiggle(f.rng)
		}
		if y == 0 {
			y = jiggle(f.rng)
		}
		l := math.Hypot(x, y)
		l = (l - f.Distance) / l * alpha * s.strength
		x, y = x*l, y*l

		s.target.VX -= x * s.bias
		s.target.VY -= y * s.bias
		s.source.VX += x * (1 - s.bias)
		s.source.VY += y * (1 - s.bias)
	}
}

// =============================================================================
// Center
// =============================================================================

// Center shifts free nodes so that the mean position of the layout moves
// toward Point. Strength 1 recentres in a single tick; smaller values ease in.
type Center struct {
	Point    geometry.Point
	Strength float64
}

// NewCenter creates a centering force.
func NewCenter(p geometry.Point, strength float64) *Center {
	return &Center{Point: p, Strength: strength}
}

// Apply implements Force. It is independent of alpha.
func (f *Center) Apply(nodes []*flow.Node, _ float64) {
	if len(nodes) == 0 {
		return
	}
	var sx, sy float64
	for _, n := range nodes {
		sx += n.X
		sy += n.Y
	}
	k := float64(len(nodes))
	sx = (sx/k - f.Point.X) * f.Strength
	sy = (sy/k - f.Point.Y) * f.Strength
	for _, n := range nodes {
		if n.Pinned() {
			continue
		}
		n.X -= sx
		n.Y -= sy
	}
}
