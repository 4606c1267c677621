// Package models defines the domain entities shared by the feed, the API client and the terminal UI.
//
// # Plays
//
// [Play] is the canonical in-memory form of a clip. Backend payloads arrive as untyped JSON objects and
// pass through [NormalizePlay], which defaults every field instead of rejecting partial records:
//   - missing strings become ""
//   - numeric ids are formatted without a fraction (5 -> "5")
//   - tags that are not an array become an empty slice
//   - a missing shared_by becomes "Anonymous"
//
// [NormalizePlays] also orders a batch by created_at, newest first.
//
// # Filters
//
// [FilterSelection] pairs a formation with a play type. The empty string is the only "no constraint"
// sentinel; [NewFilterSelection] folds "all", "any" and whitespace into it.
//
// # Vocabulary
//
// [Formations] and [PlayTypes] are the closed vocabularies used as filter keys and upload choices.
package models
