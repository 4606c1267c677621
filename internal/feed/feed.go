package feed

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

// Notifier receives transient user-facing messages.
type Notifier func(notice string)

// Options configures [New].
type Options struct {
	Source   Source
	Player   Player
	Scroller Scroller
	Notify   Notifier
	Logger   *log.Logger
	Axis     ScrollAxis
	Filter   models.FilterSelection
	Extent   float64
	Config   shared.FeedConfig
	Mute     bool
}

// State is a snapshot of the feed for rendering.
type State struct {
	Items   []models.Play
	Index   int
	Playing bool
	Status  Status
	Err     error
	Filter  models.FilterSelection
	Scroll  ScrollState
}

// Feed wires the filter store, fetcher, position controller, gesture tracker, debouncer and media
// controller into one event-loop owned unit.
type Feed struct {
	filters  *FilterStore
	fetcher  *Fetcher
	position *PositionController
	gesture  *GestureTracker
	debounce *Debouncer
	media    *MediaController
	notify   Notifier
	logger   *log.Logger
	closed   bool
}

// New builds a feed. Zero config values fall back to the package defaults.
func New(opts Options) *Feed {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(string) {}
	}

	return &Feed{
		filters:  NewFilterStore(opts.Filter),
		fetcher:  NewFetcher(opts.Source),
		position: NewPositionController(opts.Scroller, opts.Extent, opts.Config.ScrollEpsilon),
		gesture:  NewGestureTracker(opts.Axis, opts.Config.GestureThreshold),
		debounce: NewDebouncer(opts.Config.Debounce()),
		media:    NewMediaController(opts.Player, ParseAutoplay(opts.Config.Autoplay), opts.Mute, logger),
		notify:   notify,
		logger:   logger,
	}
}

func (f *Feed) Filters() *FilterStore             { return f.filters }
func (f *Feed) Position() *PositionController     { return f.position }
func (f *Feed) Gestures() *GestureTracker         { return f.gesture }
func (f *Feed) Debouncer() *Debouncer             { return f.debounce }
func (f *Feed) Media() *MediaController           { return f.media }
func (f *Feed) Fetcher() *Fetcher                 { return f.fetcher }
func (f *Feed) Closed() bool                      { return f.closed }
func (f *Feed) Committed() models.FilterSelection { return f.filters.Committed() }

// Load begins a fetch for the committed filter.
func (f *Feed) Load() Request {
	return f.begin(f.filters.Committed())
}

// Refresh is the explicit retry; it refetches the committed filter.
func (f *Feed) Refresh() Request {
	return f.Load()
}

// Apply commits a filter pair and begins its fetch.
func (f *Feed) Apply(formation, playType string) Request {
	return f.begin(f.filters.Apply(formation, playType))
}

// ApplyStaged commits the staged filter and begins its fetch.
func (f *Feed) ApplyStaged() Request {
	return f.begin(f.filters.ApplyStaged())
}

// Clear resets one filter axis and begins a fetch.
func (f *Feed) Clear(axis models.Axis) Request {
	return f.begin(f.filters.Clear(axis))
}

func (f *Feed) begin(filter models.FilterSelection) Request {
	req := f.fetcher.Begin(filter)
	f.logger.Debug("fetch started", "seq", req.Seq, "formation", filter.Formation, "play_type", filter.PlayType)
	return req
}

// Run performs req off the event loop.
func (f *Feed) Run(req Request) Result {
	return f.fetcher.Run(req)
}

// Complete applies a fetch result. Success resets the index to 0 and activates the first item.
func (f *Feed) Complete(res Result) Outcome {
	if f.closed {
		return Outcome{Status: f.fetcher.Status()}
	}

	out := f.fetcher.Complete(res)
	if !out.Applied {
		f.logger.Debug("stale fetch discarded", "seq", res.Seq)
		return out
	}

	if out.Err != nil {
		f.logger.Warn("fetch failed", "seq", res.Seq, "error", out.Err)
		f.notify(out.Notice)
		return out
	}

	f.logger.Debug("fetch applied", "seq", res.Seq, "items", len(f.fetcher.Items()))
	f.position.Reset(len(f.fetcher.Items()))
	f.syncMedia()
	return out
}

// Step moves one item and reports whether the index changed.
func (f *Feed) Step(dir Direction) bool {
	if f.closed || !f.position.Step(dir) {
		return false
	}
	f.syncMedia()
	return true
}

// Jump moves to index, clamped.
func (f *Feed) Jump(index int) bool {
	if f.closed || !f.position.Jump(index) {
		return false
	}
	f.syncMedia()
	return true
}

// PointerDown starts a gesture.
func (f *Feed) PointerDown(x, y float64) {
	f.gesture.Down(x, y)
}

// PointerMove feeds a drag; the first threshold crossing steps the feed.
func (f *Feed) PointerMove(x, y float64) Gesture {
	g := f.gesture.Move(x, y)
	if g.Kind == GestureSwipe {
		f.Step(g.Dir)
	}
	return g
}

// PointerUp ends a gesture; a tap toggles playback.
func (f *Feed) PointerUp(x, y float64) Gesture {
	g := f.gesture.Up(x, y)
	switch g.Kind {
	case GestureSwipe:
		f.Step(g.Dir)
	case GestureTap:
		f.TogglePlay()
	}
	return g
}

// Scrolled records a viewport offset and returns the debounce tag to schedule.
func (f *Feed) Scrolled(offset float64) Tag {
	return f.debounce.Bump(offset)
}

// Settle handles an elapsed debounce timer and reports whether the index changed.
func (f *Feed) Settle(tag Tag) bool {
	if f.closed {
		return false
	}
	offset, ok := f.debounce.Fire(tag)
	if !ok {
		return false
	}
	if !f.position.Observe(offset) {
		return false
	}
	f.syncMedia()
	return true
}

// TogglePlay flips playback of the live item.
func (f *Feed) TogglePlay() bool {
	playing, err := f.media.Toggle()
	if err != nil {
		f.logger.Warn("toggle failed", "error", err)
		f.notify("Player unavailable")
	}
	return playing
}

// Current returns the play at the current index.
func (f *Feed) Current() (models.Play, bool) {
	items := f.fetcher.Items()
	i := f.position.Index()
	if i < 0 || i >= len(items) {
		return models.Play{}, false
	}
	return items[i], true
}

// Update replaces an item in place (after a like or save), keeping the index.
func (f *Feed) Update(play models.Play) bool {
	return f.fetcher.Replace(play)
}

// State returns a rendering snapshot.
func (f *Feed) State() State {
	return State{
		Items:   f.fetcher.Items(),
		Index:   f.position.Index(),
		Playing: f.media.Playing(),
		Status:  f.fetcher.Status(),
		Err:     f.fetcher.Err(),
		Filter:  f.filters.Committed(),
		Scroll:  f.position.State(),
	}
}

// Suspend releases the player while another view is in front. Items, index and filter are kept.
func (f *Feed) Suspend() {
	if f.closed {
		return
	}
	if err := f.media.Deactivate(); err != nil {
		f.logger.Warn("failed to stop media", "error", err)
	}
	f.debounce.Stop()
	f.gesture.Cancel()
}

// Resume re-activates the current item after [Feed.Suspend].
func (f *Feed) Resume() {
	if f.closed {
		return
	}
	f.syncMedia()
}

// Close tears the feed down: media stops, debounce tags and the in-flight fetch are invalidated.
func (f *Feed) Close() {
	if f.closed {
		return
	}
	f.closed = true
	if err := f.media.Deactivate(); err != nil {
		f.logger.Warn("failed to stop media", "error", err)
	}
	f.debounce.Stop()
	f.fetcher.Stop()
	f.gesture.Cancel()
}

func (f *Feed) syncMedia() {
	play, ok := f.Current()
	if !ok {
		if err := f.media.Deactivate(); err != nil {
			f.logger.Warn("failed to stop media", "error", err)
		}
		return
	}

	if err := f.media.Activate(f.position.Index(), play.VideoURL); err != nil {
		f.logger.Warn("failed to activate media", "index", f.position.Index(), "error", err)
		f.notify("Player unavailable")
	}
}
