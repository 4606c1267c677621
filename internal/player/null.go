package player

// Null is a [Player] that only tracks state.
type Null struct {
	URL     string
	Playing bool
	Looping bool
	Muted   bool
}

func (n *Null) Load(url string) error {
	n.URL = url
	return nil
}

// Play starts playback only when something is loaded.
func (n *Null) Play() error {
	n.Playing = n.URL != ""
	return nil
}

func (n *Null) Pause() error {
	n.Playing = false
	return nil
}

func (n *Null) SetLoop(on bool) error {
	n.Looping = on
	return nil
}

func (n *Null) SetMute(on bool) error {
	n.Muted = on
	return nil
}

func (n *Null) Stop() error {
	n.URL = ""
	n.Playing = false
	return nil
}

func (n *Null) Close() error { return n.Stop() }
