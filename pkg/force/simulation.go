package force

import (
	"math"

	"github.com/matzehuels/forcechart/pkg/flow"
	"github.com/matzehuels/forcechart/pkg/geometry"
)

const (
	initialRadius = 10
	// initialAngle is the golden angle, which spreads unplaced nodes on a
	// phyllotaxis spiral.
	initialAngle = math.Pi * (3 - 2.23606797749979)
)

// Options configures a Simulation. Zero fields take the defaults from
// [DefaultOptions].
type Options struct {
	Charge         float64        // many-body strength, negative repels
	LinkDistance   float64        // rest length of edge springs
	Center         geometry.Point // canvas centre
	CenterStrength float64        // 0 < s <= 1
	AlphaMin       float64        // rest threshold
	AlphaDecay     float64        // per-tick approach rate toward alphaTarget
	VelocityDecay  float64        // fraction of velocity lost per tick
}

// DefaultOptions returns the layout constants of the flowchart editor.
func DefaultOptions() Options {
	return Options{
		Charge:         -500,
		LinkDistance:   150,
		CenterStrength: 0.1,
		AlphaMin:       0.001,
		AlphaDecay:     1 - math.Pow(0.001, 1.0/300),
		VelocityDecay:  0.4,
	}
}

func (o *Options) setDefaults() {
	d := DefaultOptions()
	if o.Charge == 0 {
		o.Charge = d.Charge
	}
	if o.LinkDistance == 0 {
		o.LinkDistance = d.LinkDistance
	}
	if o.CenterStrength == 0 {
		o.CenterStrength = d.CenterStrength
	}
	if o.AlphaMin == 0 {
		o.AlphaMin = d.AlphaMin
	}
	if o.AlphaDecay == 0 {
		o.AlphaDecay = 1 - math.Pow(o.AlphaMin, 1.0/300)
	}
	if o.VelocityDecay == 0 {
		o.VelocityDecay = d.VelocityDecay
	}
}

// Simulation is a force-directed layout over a borrowed flow.Graph. It
// mutates node positions and velocities in place but never changes graph
// membership.
//
// Simulation is not safe for concurrent use.
type Simulation struct {
	graph  *flow.Graph
	nodes  []*flow.Node
	forces []Force

	link   *Link
	charge *ManyBody
	center *Center

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	ticks int
}

// New creates a simulation with link, charge and center forces registered in
// that order. It starts hot (alpha = 1) with no graph bound.
func New(opts Options) *Simulation {
	opts.setDefaults()
	s := &Simulation{
		link:          NewLink(opts.LinkDistance),
		charge:        NewManyBody(opts.Charge),
		center:        NewCenter(opts.Center, opts.CenterStrength),
		alpha:         1,
		alphaMin:      opts.AlphaMin,
		alphaDecay:    opts.AlphaDecay,
		velocityDecay: 1 - opts.VelocityDecay,
	}
	s.forces = []Force{s.link, s.charge, s.center}
	return s
}

// Bind points the simulation at g, initialises unplaced nodes and rebuilds
// per-graph force state. Call it after every membership change.
func (s *Simulation) Bind(g *flow.Graph) {
	s.graph = g
	s.nodes = g.Nodes()
	s.initializeNodes()
	for _, f := range s.forces {
		if in, ok := f.(Initializer); ok {
			in.Initialize(g)
		}
	}
}

func (s *Simulation) initializeNodes() {
	for i, n := range s.nodes {
		if n.FX != nil {
			n.X = *n.FX
		}
		if n.FY != nil {
			n.Y = *n.FY
		}
		if !n.Placed() {
			r := initialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * initialAngle
			n.X = s.center.Point.X + r*math.Cos(a)
			n.Y = s.center.Point.Y + r*math.Sin(a)
		}
		if math.IsNaN(n.VX) || math.IsNaN(n.VY) {
			n.VX, n.VY = 0, 0
		}
	}
}

// Graph returns the bound graph, or nil.
func (s *Simulation) Graph() *flow.Graph { return s.graph }

// Kick reheats the simulation to maximum temperature.
func (s *Simulation) Kick() { s.alpha = 1 }

// Alpha returns the current temperature.
func (s *Simulation) Alpha() float64 { return s.alpha }

// AlphaTarget returns the temperature the simulation converges to.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget sets the temperature the simulation converges to. A drag
// holds a positive target; releasing it sets 0 so the layout cools to rest.
func (s *Simulation) SetAlphaTarget(t float64) { s.alphaTarget = t }

// SetCenter moves the centering force's target.
func (s *Simulation) SetCenter(p geometry.Point) { s.center.Point = p }

// Center returns the centering force's target.
func (s *Simulation) Center() geometry.Point { return s.center.Point }

// Charge returns the many-body force, for inspection.
func (s *Simulation) Charge() *ManyBody { return s.charge }

// Active reports whether the simulation should be ticked: it still has
// energy, or a drag holds a positive alpha target that will warm it up.
func (s *Simulation) Active() bool {
	return s.alpha >= s.alphaMin || s.alphaTarget >= s.alphaMin
}

// Ticks returns the number of ticks performed since creation.
func (s *Simulation) Ticks() int { return s.ticks }

// Tick advances the simulation by one integration step.
func (s *Simulation) Tick() {
	s.ticks++
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, f := range s.forces {
		f.Apply(s.nodes, s.alpha)
	}

	for _, n := range s.nodes {
		if n.FX != nil {
			n.X, n.VX = *n.FX, 0
		} else {
			n.VX *= s.velocityDecay
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y, n.VY = *n.FY, 0
		} else {
			n.VY *= s.velocityDecay
			n.Y += n.VY
		}
	}
}

// Settle ticks until the simulation comes to rest or maxTicks is reached,
// and returns the number of ticks performed. A positive alpha target keeps
// the simulation active, so Settle then always runs maxTicks.
func (s *Simulation) Settle(maxTicks int) int {
	n := 0
	for s.Active() && n < maxTicks {
		s.Tick()
		n++
	}
	return n
}
