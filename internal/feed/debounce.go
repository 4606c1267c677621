package feed

import "time"

// DefaultDebounce is the scroll observation quiet period.
const DefaultDebounce = 100 * time.Millisecond

// Tag identifies one scheduled debounce.
type Tag uint64

// Debouncer coalesces scroll observations. Each [Debouncer.Bump] supersedes the previous one; the
// event loop schedules a timer carrying the tag and calls [Debouncer.Fire] when it elapses.
type Debouncer struct {
	delay   time.Duration
	tag     Tag
	offset  float64
	pending bool
}

// NewDebouncer creates a debouncer. A non-positive delay uses [DefaultDebounce].
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration { return d.delay }
func (d *Debouncer) Pending() bool        { return d.pending }

// Bump records offset as the latest observation and returns the tag of the timer to schedule.
func (d *Debouncer) Bump(offset float64) Tag {
	d.tag++
	d.offset = offset
	d.pending = true
	return d.tag
}

// Fire returns the latest offset if tag is still the newest one.
func (d *Debouncer) Fire(tag Tag) (float64, bool) {
	if !d.pending || tag != d.tag {
		return 0, false
	}
	d.pending = false
	return d.offset, true
}

// Stop invalidates every outstanding tag.
func (d *Debouncer) Stop() {
	d.tag++
	d.pending = false
}
