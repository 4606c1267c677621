package feed

import "github.com/desertthunder/huddle/internal/models"

// FilterStore holds the committed selection and a staged copy edited by the filter dialog.
type FilterStore struct {
	committed models.FilterSelection
	staged    models.FilterSelection
	open      bool
}

// NewFilterStore creates a store whose committed selection is initial (normalized).
func NewFilterStore(initial models.FilterSelection) *FilterStore {
	initial = models.NewFilterSelection(initial.Formation, initial.PlayType)
	return &FilterStore{committed: initial, staged: initial}
}

func (s *FilterStore) Committed() models.FilterSelection { return s.committed }
func (s *FilterStore) Staged() models.FilterSelection    { return s.staged }
func (s *FilterStore) IsOpen() bool                      { return s.open }

// Open starts an edit, copying the committed selection into the staged buffer.
func (s *FilterStore) Open() models.FilterSelection {
	s.staged = s.committed
	s.open = true
	return s.staged
}

// SetFormation stages a formation. Nothing is fetched until [FilterStore.Apply].
func (s *FilterStore) SetFormation(v string) {
	s.staged = s.staged.With(models.AxisFormation, v)
}

// SetPlayType stages a play type.
func (s *FilterStore) SetPlayType(v string) {
	s.staged = s.staged.With(models.AxisPlayType, v)
}

// Cancel discards the staged edit.
func (s *FilterStore) Cancel() {
	s.staged = s.committed
	s.open = false
}

// Apply commits the pair and closes the edit. The returned selection is the one to fetch.
func (s *FilterStore) Apply(formation, playType string) models.FilterSelection {
	s.committed = models.NewFilterSelection(formation, playType)
	s.staged = s.committed
	s.open = false
	return s.committed
}

// ApplyStaged commits whatever is staged.
func (s *FilterStore) ApplyStaged() models.FilterSelection {
	return s.Apply(s.staged.Formation, s.staged.PlayType)
}

// Clear resets one axis, staged and committed, leaving the other untouched.
func (s *FilterStore) Clear(axis models.Axis) models.FilterSelection {
	s.committed = s.committed.With(axis, "")
	s.staged = s.staged.With(axis, "")
	return s.committed
}
