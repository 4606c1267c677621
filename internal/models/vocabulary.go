package models

// Option is one entry of a closed vocabulary.
type Option struct {
	Value string
	Label string
}

// PlayTypes is the offensive action vocabulary.
var PlayTypes = []Option{
	{Value: "inside-run", Label: "Inside Run"},
	{Value: "outside-run", Label: "Outside Run"},
	{Value: "option", Label: "Option"},
	{Value: "quick-pass", Label: "Quick Pass"},
	{Value: "medium-pass", Label: "Medium Pass"},
	{Value: "deep-pass", Label: "Deep Pass"},
	{Value: "play-action-pass", Label: "Play Action Pass"},
	{Value: "screen-pass", Label: "Screen Pass"},
	{Value: "trick", Label: "Trick"},
}

// Formations is the offensive alignment vocabulary.
var Formations = []Option{
	{Value: "trips", Label: "Trips"},
	{Value: "trio", Label: "Trio"},
	{Value: "ace", Label: "Ace"},
	{Value: "empty", Label: "Empty"},
	{Value: "full-house", Label: "Full House"},
	{Value: "doubles", Label: "Doubles"},
	{Value: "doubles-close", Label: "Doubles Close"},
	{Value: "split-twins-offset", Label: "Split Twins Offset"},
	{Value: "tight", Label: "Tight"},
	{Value: "wing", Label: "Wing"},
}

func lookup(options []Option, value string) (Option, bool) {
	for _, o := range options {
		if o.Value == value {
			return o, true
		}
	}
	return Option{}, false
}

// IsFormation reports whether value is a known formation.
func IsFormation(value string) bool {
	_, ok := lookup(Formations, value)
	return ok
}

// IsPlayType reports whether value is a known play type.
func IsPlayType(value string) bool {
	_, ok := lookup(PlayTypes, value)
	return ok
}

// FormationLabel returns the display label, or the raw value when unknown.
func FormationLabel(value string) string {
	if o, ok := lookup(Formations, value); ok {
		return o.Label
	}
	return value
}

// PlayTypeLabel returns the display label, or the raw value when unknown.
func PlayTypeLabel(value string) string {
	if o, ok := lookup(PlayTypes, value); ok {
		return o.Label
	}
	return value
}
