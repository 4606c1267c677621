// Package feed implements the one-play-at-a-time feed engine.
//
// The engine is UI agnostic and single threaded: every method must be called from one event loop
// (the bubbletea Update in this module). The only work that leaves the loop is [Fetcher.Run], which
// performs the HTTP request and touches no state; its [Result] is handed back to [Feed.Complete].
//
// # Components
//
//   - [FilterStore] : staged-then-committed formation and play type selection
//   - [Fetcher] : loading state, items, and the latest-request guard
//   - [PositionController] : current index and scroll position, Idle or ProgrammaticScroll
//   - [GestureTracker] : pointer drag to swipe/tap disambiguation
//   - [Debouncer] : quiet period for scroll observations
//   - [MediaController] : the single live [Player] bound to the current index
//
// [Feed] composes them. A committed filter begins a request, a successful result replaces the items and
// resets the index to 0, and every index change switches the live media item.
//
// # Position States
//
// While Idle a step moves the index by one (clamped, no wraparound) and issues [Scroller.ScrollTo]. Until a
// debounced observation lands within epsilon of the target, the controller is in ProgrammaticScroll and every
// further step is rejected. Observations while Idle adopt round(offset/extent), covering scrolls the
// controller did not start.
package feed
