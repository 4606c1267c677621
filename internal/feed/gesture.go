package feed

import "math"

// DefaultGestureThreshold is the drag distance a swipe must exceed.
const DefaultGestureThreshold = 50.0

// ScrollAxis is the main axis of a feed.
type ScrollAxis int

const (
	Vertical ScrollAxis = iota
	Horizontal
)

// GestureKind classifies what a pointer event amounted to.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureSwipe
	GestureTap
)

// Gesture is the result of feeding a pointer event to a [GestureTracker].
type Gesture struct {
	Kind GestureKind
	Dir  Direction
}

// GestureTracker turns pointer down/move/up into at most one swipe or a tap.
type GestureTracker struct {
	axis      ScrollAxis
	threshold float64
	active    bool
	moved     bool
	startX    float64
	startY    float64
}

// NewGestureTracker creates a tracker along axis. A non-positive threshold uses [DefaultGestureThreshold].
func NewGestureTracker(axis ScrollAxis, threshold float64) *GestureTracker {
	if threshold <= 0 {
		threshold = DefaultGestureThreshold
	}
	return &GestureTracker{axis: axis, threshold: threshold}
}

func (g *GestureTracker) Axis() ScrollAxis { return g.axis }
func (g *GestureTracker) Active() bool     { return g.active }
func (g *GestureTracker) Moved() bool      { return g.moved }

// Down starts a gesture at (x, y).
func (g *GestureTracker) Down(x, y float64) {
	g.active = true
	g.moved = false
	g.startX, g.startY = x, y
}

// Move reports a swipe the first time the displacement along the axis strictly exceeds the threshold.
// Dragging toward the start of the axis (up or left) advances to the next item.
func (g *GestureTracker) Move(x, y float64) Gesture {
	if !g.active || g.moved {
		return Gesture{}
	}

	d := g.displacement(x, y)
	if math.Abs(d) <= g.threshold {
		return Gesture{}
	}

	g.moved = true
	if d < 0 {
		return Gesture{Kind: GestureSwipe, Dir: Next}
	}
	return Gesture{Kind: GestureSwipe, Dir: Prev}
}

// Up ends the gesture. A release that crosses the threshold without a prior move still swipes;
// a gesture that never moved is a tap.
func (g *GestureTracker) Up(x, y float64) Gesture {
	if !g.active {
		return Gesture{}
	}

	swipe := g.Move(x, y)
	moved := g.moved
	g.active = false
	g.moved = false

	switch {
	case swipe.Kind == GestureSwipe:
		return swipe
	case moved:
		return Gesture{}
	default:
		return Gesture{Kind: GestureTap}
	}
}

// Cancel drops the current gesture.
func (g *GestureTracker) Cancel() {
	g.active = false
	g.moved = false
}

func (g *GestureTracker) displacement(x, y float64) float64 {
	if g.axis == Horizontal {
		return x - g.startX
	}
	return y - g.startY
}
