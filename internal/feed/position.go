package feed

import "math"

// Direction is a one-step move through the feed.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

func (d Direction) String() string {
	if d == Prev {
		return "prev"
	}
	return "next"
}

// ScrollState is the state of the [PositionController].
type ScrollState int

const (
	Idle ScrollState = iota
	ProgrammaticScroll
)

func (s ScrollState) String() string {
	if s == ProgrammaticScroll {
		return "programmatic"
	}
	return "idle"
}

// Scroller moves the feed viewport. Offsets are along the feed axis, in the same unit as the extent.
type Scroller interface {
	ScrollTo(offset float64)
}

// DefaultScrollEpsilon is the settle tolerance used when none is configured.
const DefaultScrollEpsilon = 2.0

// PositionController keeps the current index and the viewport offset in step.
type PositionController struct {
	scroller Scroller
	count    int
	index    int
	state    ScrollState
	target   int
	extent   float64
	epsilon  float64
}

// NewPositionController creates a controller for a viewport of the given extent.
func NewPositionController(scroller Scroller, extent, epsilon float64) *PositionController {
	if epsilon <= 0 {
		epsilon = DefaultScrollEpsilon
	}
	if extent <= 0 {
		extent = 1
	}
	return &PositionController{scroller: scroller, extent: extent, epsilon: epsilon}
}

func (p *PositionController) Index() int         { return p.index }
func (p *PositionController) Count() int         { return p.count }
func (p *PositionController) State() ScrollState { return p.state }
func (p *PositionController) Extent() float64    { return p.extent }
func (p *PositionController) Busy() bool         { return p.state == ProgrammaticScroll }

// Target returns the index a programmatic scroll is heading to, or -1 while Idle.
func (p *PositionController) Target() int {
	if p.state != ProgrammaticScroll {
		return -1
	}
	return p.target
}

// Offset returns the resting offset of index.
func (p *PositionController) Offset(index int) float64 {
	return float64(index) * p.extent
}

// Reset installs a new item count and returns to index 0.
func (p *PositionController) Reset(count int) {
	p.count = max(count, 0)
	p.index = 0
	if p.count == 0 {
		p.state = Idle
		return
	}
	p.scrollTo(0)
}

// Step moves one item in dir. It reports whether the index changed; steps are rejected while a
// programmatic scroll is in flight and at either edge.
func (p *PositionController) Step(dir Direction) bool {
	if p.state == ProgrammaticScroll || p.count <= 1 {
		return false
	}

	next := p.clamp(p.index + int(dir))
	if next == p.index {
		return false
	}

	p.index = next
	p.scrollTo(next)
	return true
}

// Jump moves straight to index, subject to the same rules as [PositionController.Step].
func (p *PositionController) Jump(index int) bool {
	if p.state == ProgrammaticScroll || p.count <= 1 {
		return false
	}

	next := p.clamp(index)
	if next == p.index {
		return false
	}

	p.index = next
	p.scrollTo(next)
	return true
}

// Observe handles a debounced viewport offset and reports whether the index changed.
func (p *PositionController) Observe(offset float64) bool {
	if p.state == ProgrammaticScroll {
		if math.Abs(p.Offset(p.target)-offset) < p.epsilon {
			p.state = Idle
		}
		return false
	}

	if p.count == 0 {
		return false
	}

	observed := p.clamp(int(math.Round(offset / p.extent)))
	if observed == p.index || p.count <= 1 {
		return false
	}
	p.index = observed
	return true
}

// SetExtent changes the viewport size and re-aligns the viewport with the current index.
func (p *PositionController) SetExtent(extent float64) {
	if extent <= 0 || extent == p.extent {
		return
	}
	p.extent = extent
	if p.count > 0 {
		p.scrollTo(p.index)
	}
}

func (p *PositionController) scrollTo(index int) {
	p.state = ProgrammaticScroll
	p.target = index
	if p.scroller != nil {
		p.scroller.ScrollTo(p.Offset(index))
	}
}

func (p *PositionController) clamp(i int) int {
	if p.count == 0 {
		return 0
	}
	return min(max(i, 0), p.count-1)
}
