package ui

import "github.com/desertthunder/huddle/internal/feed"

var _ feed.Player = (*panePlayer)(nil)

// panePlayer gates a shared player so that only the visible feed drives it. Calls made while the
// pane is hidden are dropped.
type panePlayer struct {
	inner feed.Player
	live  bool
}

func (p *panePlayer) forward(fn func(feed.Player) error) error {
	if !p.live || p.inner == nil {
		return nil
	}
	return fn(p.inner)
}

func (p *panePlayer) Load(url string) error {
	return p.forward(func(pl feed.Player) error { return pl.Load(url) })
}

func (p *panePlayer) Play() error {
	return p.forward(func(pl feed.Player) error { return pl.Play() })
}

func (p *panePlayer) Pause() error {
	return p.forward(func(pl feed.Player) error { return pl.Pause() })
}

func (p *panePlayer) SetLoop(on bool) error {
	return p.forward(func(pl feed.Player) error { return pl.SetLoop(on) })
}

func (p *panePlayer) SetMute(on bool) error {
	return p.forward(func(pl feed.Player) error { return pl.SetMute(on) })
}

func (p *panePlayer) Stop() error {
	return p.forward(func(pl feed.Player) error { return pl.Stop() })
}
