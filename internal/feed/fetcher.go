package feed

import (
	"context"
	"errors"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
)

// Source loads the plays for a filter.
type Source interface {
	Fetch(ctx context.Context, filter models.FilterSelection) ([]models.Play, error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func(ctx context.Context, filter models.FilterSelection) ([]models.Play, error)

func (f SourceFunc) Fetch(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
	return f(ctx, filter)
}

// Status is the load state of the feed.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Request is one fetch stamped with its sequence number.
type Request struct {
	Seq    uint64
	Filter models.FilterSelection
	ctx    context.Context
}

// Result is what [Fetcher.Run] produced for a [Request].
type Result struct {
	Seq    uint64
	Filter models.FilterSelection
	Plays  []models.Play
	Err    error
}

// Outcome describes what [Fetcher.Complete] did with a [Result].
type Outcome struct {
	Applied bool // false for stale results
	Status  Status
	Err     error
	Notice  string
}

// AuthRequired reports whether the failure needs a sign in rather than a retry.
func (o Outcome) AuthRequired() bool {
	return errors.Is(o.Err, shared.ErrNotAuthenticated)
}

// Fetcher owns the feed items and the loading state.
type Fetcher struct {
	source Source
	seq    uint64
	cancel context.CancelFunc
	items  []models.Play
	status Status
	err    error
	last   models.FilterSelection
}

// NewFetcher creates a fetcher reading from source.
func NewFetcher(source Source) *Fetcher {
	return &Fetcher{source: source, items: []models.Play{}}
}

func (f *Fetcher) Items() []models.Play { return f.items }
func (f *Fetcher) Status() Status       { return f.status }
func (f *Fetcher) Err() error           { return f.err }
func (f *Fetcher) Loading() bool        { return f.status == StatusLoading }

// Filter returns the filter of the most recent request.
func (f *Fetcher) Filter() models.FilterSelection { return f.last }

// Begin starts a new request, superseding and canceling any in flight.
func (f *Fetcher) Begin(filter models.FilterSelection) Request {
	if f.cancel != nil {
		f.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	f.cancel = cancel
	f.seq++
	f.status = StatusLoading
	f.last = filter

	return Request{Seq: f.seq, Filter: filter, ctx: ctx}
}

// Run performs the request. It does not touch fetcher state and may run on any goroutine.
func (f *Fetcher) Run(req Request) Result {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	plays, err := f.source.Fetch(ctx, req.Filter)
	return Result{Seq: req.Seq, Filter: req.Filter, Plays: plays, Err: err}
}

// Complete applies res if it belongs to the latest request. Failures keep the previous items.
func (f *Fetcher) Complete(res Result) Outcome {
	if res.Seq != f.seq || f.status != StatusLoading {
		return Outcome{Applied: false, Status: f.status, Err: f.err}
	}

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}

	if res.Err != nil {
		f.status = StatusError
		f.err = res.Err
		return Outcome{Applied: true, Status: f.status, Err: res.Err, Notice: Notice(res.Err)}
	}

	f.err = nil
	f.items = res.Plays
	if f.items == nil {
		f.items = []models.Play{}
	}
	if len(f.items) == 0 {
		f.status = StatusEmpty
	} else {
		f.status = StatusReady
	}
	return Outcome{Applied: true, Status: f.status}
}

// Stop cancels the in-flight request and makes any pending result stale.
func (f *Fetcher) Stop() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
	if f.status == StatusLoading {
		f.status = StatusIdle
	}
}

// Replace swaps one item in place, matched by id.
func (f *Fetcher) Replace(play models.Play) bool {
	for i := range f.items {
		if f.items[i].ID == play.ID {
			f.items[i] = play
			return true
		}
	}
	return false
}

// Notice renders a failure as a short user-facing message.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, shared.ErrNotAuthenticated):
		return "Please log in to see plays"
	case errors.Is(err, shared.ErrNetwork):
		return "Couldn't reach the server, press r to try again"
	default:
		return "Couldn't load plays, press r to try again"
	}
}
