package models

import (
	"net/url"
	"strings"
)

// Axis names one dimension of a [FilterSelection].
type Axis int

const (
	AxisFormation Axis = iota
	AxisPlayType
)

func (a Axis) String() string {
	switch a {
	case AxisFormation:
		return "formation"
	case AxisPlayType:
		return "play_type"
	default:
		return ""
	}
}

// FilterSelection is a formation and play type pair. "" on an axis means unconstrained.
type FilterSelection struct {
	Formation string
	PlayType  string
}

// NewFilterSelection builds a selection with both axes passed through [NormalizeFilterValue].
func NewFilterSelection(formation, playType string) FilterSelection {
	return FilterSelection{
		Formation: NormalizeFilterValue(formation),
		PlayType:  NormalizeFilterValue(playType),
	}
}

// NormalizeFilterValue folds every "no constraint" spelling into "".
func NormalizeFilterValue(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "all", "any", "null":
		return ""
	}
	return v
}

// IsZero reports whether neither axis is constrained.
func (f FilterSelection) IsZero() bool {
	return f.Formation == "" && f.PlayType == ""
}

// Get returns the value of one axis.
func (f FilterSelection) Get(axis Axis) string {
	if axis == AxisFormation {
		return f.Formation
	}
	return f.PlayType
}

// With returns a copy with one axis replaced (normalized).
func (f FilterSelection) With(axis Axis, value string) FilterSelection {
	if axis == AxisFormation {
		f.Formation = NormalizeFilterValue(value)
	} else {
		f.PlayType = NormalizeFilterValue(value)
	}
	return f
}

// Values encodes the selection as query parameters using the given play-type key.
//
// Both keys are always present; the /api/plays and /api/user_playbook endpoints disagree on the play-type key.
func (f FilterSelection) Values(playTypeKey string) url.Values {
	q := url.Values{}
	q.Set("formation", f.Formation)
	q.Set(playTypeKey, f.PlayType)
	return q
}

// String renders a short human label such as "Trips · Inside Run" or "All plays".
func (f FilterSelection) String() string {
	switch {
	case f.IsZero():
		return "All plays"
	case f.Formation == "":
		return PlayTypeLabel(f.PlayType)
	case f.PlayType == "":
		return FormationLabel(f.Formation)
	default:
		return FormationLabel(f.Formation) + " · " + PlayTypeLabel(f.PlayType)
	}
}
