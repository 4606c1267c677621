package feed

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/shared"
)

// Player is the opaque video player the feed drives.
type Player interface {
	Load(url string) error
	Play() error
	Pause() error
	SetLoop(on bool) error
	SetMute(on bool) error
	Stop() error
}

// Autoplay decides whether a newly focused item starts playing.
type Autoplay int

const (
	AutoplayResume Autoplay = iota
	AutoplayPaused
)

// ParseAutoplay maps the config value onto an [Autoplay]; anything but "paused" resumes.
func ParseAutoplay(s string) Autoplay {
	if s == shared.AutoplayPaused {
		return AutoplayPaused
	}
	return AutoplayResume
}

func (a Autoplay) String() string {
	if a == AutoplayPaused {
		return shared.AutoplayPaused
	}
	return shared.AutoplayResume
}

// MediaController keeps exactly one item live, the one at the current index.
type MediaController struct {
	player  Player
	policy  Autoplay
	mute    bool
	active  int
	url     string
	playing bool
	logger  *log.Logger
}

// NewMediaController creates a controller. A nil logger discards.
func NewMediaController(player Player, policy Autoplay, mute bool, logger *log.Logger) *MediaController {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MediaController{player: player, policy: policy, mute: mute, active: -1, logger: logger}
}

func (m *MediaController) Active() int      { return m.active }
func (m *MediaController) URL() string      { return m.url }
func (m *MediaController) Playing() bool    { return m.playing }
func (m *MediaController) Policy() Autoplay { return m.policy }

// IsPlaying reports whether the item at index is the one playing.
func (m *MediaController) IsPlaying(index int) bool {
	return m.playing && index == m.active
}

// Activate makes index the live item. The previous item is stopped before the new one loads.
// An empty url leaves the item with no live media.
func (m *MediaController) Activate(index int, url string) error {
	if index == m.active && url == m.url {
		return nil
	}

	if err := m.stop(); err != nil {
		m.logger.Warn("failed to stop previous item", "index", m.active, "error", err)
	}

	m.active = index
	m.url = url
	if url == "" || m.player == nil {
		return nil
	}

	if err := m.player.Load(url); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrPlayerUnavailable, err)
	}
	if err := m.player.SetLoop(true); err != nil {
		m.logger.Warn("failed to enable looping", "error", err)
	}
	if err := m.player.SetMute(m.mute); err != nil {
		m.logger.Warn("failed to set mute", "error", err)
	}

	if m.policy == AutoplayPaused {
		return m.pause()
	}
	return m.play()
}

// Toggle flips play/pause on the live item and returns the new state.
func (m *MediaController) Toggle() (bool, error) {
	if m.active < 0 || m.url == "" || m.player == nil {
		return false, nil
	}
	if m.playing {
		return false, m.pause()
	}
	if err := m.play(); err != nil {
		return false, err
	}
	return true, nil
}

// SetMute applies mute to the live item and every later one.
func (m *MediaController) SetMute(on bool) error {
	m.mute = on
	if m.active < 0 || m.url == "" || m.player == nil {
		return nil
	}
	return m.player.SetMute(on)
}

// Deactivate stops the live item, leaving nothing live.
func (m *MediaController) Deactivate() error {
	err := m.stop()
	m.active = -1
	m.url = ""
	return err
}

func (m *MediaController) play() error {
	if err := m.player.Play(); err != nil {
		m.playing = false
		return fmt.Errorf("%w: %w", shared.ErrPlayerUnavailable, err)
	}
	m.playing = true
	return nil
}

func (m *MediaController) pause() error {
	m.playing = false
	if err := m.player.Pause(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrPlayerUnavailable, err)
	}
	return nil
}

func (m *MediaController) stop() error {
	wasLive := m.active >= 0 && m.url != ""
	m.playing = false
	if !wasLive || m.player == nil {
		return nil
	}
	return m.player.Stop()
}
