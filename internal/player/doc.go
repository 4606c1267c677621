// Package player drives the external video player.
//
// [MPV] launches mpv in idle mode with a JSON IPC socket and sends it newline-terminated commands:
//
//	{"command": ["loadfile", "<url>", "replace"], "request_id": 1}
//	{"command": ["set_property", "pause", false], "request_id": 2}
//
// Responses are matched by request_id; event lines mpv interleaves are skipped.
//
// [Null] stands in when mpv is not installed. It keeps the same state transitions so the feed behaves
// identically, it just has nothing to show.
package player
