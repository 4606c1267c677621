// Package ui implements the interactive play feed using bubbletea's Elm architecture.
//
// The TUI has three views:
//  1. [HomeView] : the full feed, one play at a time, stepped vertically
//  2. [SearchView] : the feed narrowed by formation and play type, stepped horizontally
//  3. [PlaybookView] : the caller's saved plays as a [list.Model]
//
// Each feed view owns a [feed.Feed]. Fetches run in commands via [feed.Feed.Run] and come back as
// [Msg] values, so all feed state changes on the event loop. Programmatic scrolls are animated with
// frame ticks and reported back to the feed once they come to rest; wheel scrolling goes through the
// same debounced observation path.
//
// Only the visible feed may drive the player. Switching views suspends the hidden feed and resumes
// the one brought to the front.
package ui
