package ui

import (
	"math"
	"time"

	"github.com/desertthunder/huddle/internal/feed"
)

const frameInterval = time.Second / 60

var _ feed.Scroller = (*viewport)(nil)

// viewport is the feed's scroll surface. Programmatic scrolls ease toward their target one frame at
// a time; wheel input moves the offset directly.
type viewport struct {
	offset    float64
	target    float64
	animating bool
	ticking   bool
}

// ScrollTo starts an animated scroll to offset.
func (v *viewport) ScrollTo(offset float64) {
	v.target = offset
	v.animating = true
}

// advance moves one frame toward the target and reports whether it arrived.
func (v *viewport) advance() bool {
	if !v.animating {
		return false
	}

	delta := v.target - v.offset
	if math.Abs(delta) <= 1 {
		v.offset = v.target
		v.animating = false
		return true
	}

	step := delta / 3
	if math.Abs(step) < 1 {
		step = math.Copysign(1, delta)
	}
	v.offset += step
	return false
}

// nudge applies user scroll input, clamped to [0, limit].
func (v *viewport) nudge(delta, limit float64) float64 {
	v.offset = min(max(v.offset+delta, 0), max(limit, 0))
	return v.offset
}
