package feed

import (
	"errors"
	"reflect"
	"testing"

	"github.com/desertthunder/huddle/internal/shared"
	tu "github.com/desertthunder/huddle/internal/testing"
)

func TestMediaController(t *testing.T) {
	t.Run("Activate Resumes By Default", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)

		if err := m.Activate(0, "https://v/a.mp4"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		want := []string{"load https://v/a.mp4", "loop true", "mute false", "play"}
		if !reflect.DeepEqual(p.Calls, want) {
			t.Errorf("expected calls %v, got %v", want, p.Calls)
		}
		if !m.IsPlaying(0) || m.IsPlaying(1) {
			t.Error("expected only index 0 playing")
		}
	})

	t.Run("Paused Policy", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayPaused, true, nil)
		m.Activate(0, "https://v/a.mp4")
		m.Toggle()
		m.Activate(1, "https://v/b.mp4")

		if m.Playing() || p.Playing {
			t.Error("expected paused after index change")
		}
		if !p.Muted || !p.Looping {
			t.Error("expected muted looping playback")
		}
	})

	t.Run("Previous Stopped Before Next Loads", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)
		m.Activate(0, "https://v/a.mp4")
		p.Reset()

		m.Activate(1, "https://v/b.mp4")
		if len(p.Calls) < 2 || p.Calls[0] != "stop" || p.Calls[1] != "load https://v/b.mp4" {
			t.Errorf("expected stop then load, got %v", p.Calls)
		}
		if m.IsPlaying(0) || !m.IsPlaying(1) {
			t.Error("expected playback moved to index 1")
		}
	})

	t.Run("Same Item Is No-op", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)
		m.Activate(2, "https://v/c.mp4")
		p.Reset()

		m.Activate(2, "https://v/c.mp4")
		if len(p.Calls) != 0 {
			t.Errorf("expected no calls, got %v", p.Calls)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)

		if playing, _ := m.Toggle(); playing {
			t.Error("expected toggle with nothing live to do nothing")
		}

		m.Activate(0, "https://v/a.mp4")
		if playing, _ := m.Toggle(); playing || p.Playing {
			t.Error("expected pause")
		}
		if playing, _ := m.Toggle(); !playing || !p.Playing {
			t.Error("expected play")
		}
	})

	t.Run("Empty URL Has No Live Media", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)
		m.Activate(0, "https://v/a.mp4")
		p.Reset()
		m.Activate(1, "")

		if !reflect.DeepEqual(p.Calls, []string{"stop"}) {
			t.Errorf("expected only stop, got %v", p.Calls)
		}
		if m.IsPlaying(1) || m.Active() != 1 {
			t.Error("expected index 1 active with nothing playing")
		}
	})

	t.Run("Deactivate", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)
		m.Activate(0, "https://v/a.mp4")
		m.Deactivate()

		if m.Active() != -1 || m.Playing() || p.Playing {
			t.Error("expected nothing live")
		}
	})

	t.Run("Player Failure", func(t *testing.T) {
		p := &tu.RecordingPlayer{Err: errors.New("socket closed")}
		m := NewMediaController(p, AutoplayResume, false, nil)

		err := m.Activate(0, "https://v/a.mp4")
		if !errors.Is(err, shared.ErrPlayerUnavailable) {
			t.Errorf("expected ErrPlayerUnavailable, got %v", err)
		}
		if m.Playing() {
			t.Error("expected not playing after failure")
		}
	})

	t.Run("SetMute", func(t *testing.T) {
		p := &tu.RecordingPlayer{}
		m := NewMediaController(p, AutoplayResume, false, nil)
		m.SetMute(true)
		m.Activate(0, "https://v/a.mp4")
		if !p.Muted {
			t.Error("expected mute carried to the next item")
		}
	})

	t.Run("ParseAutoplay", func(t *testing.T) {
		if ParseAutoplay("paused") != AutoplayPaused || ParseAutoplay("resume") != AutoplayResume || ParseAutoplay("") != AutoplayResume {
			t.Error("unexpected autoplay parsing")
		}
		if AutoplayPaused.String() != "paused" {
			t.Errorf("unexpected String() %q", AutoplayPaused.String())
		}
	})
}
