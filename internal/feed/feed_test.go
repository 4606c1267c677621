package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
	tu "github.com/desertthunder/huddle/internal/testing"
)

type harness struct {
	feed     *Feed
	player   *tu.RecordingPlayer
	scroller *recordingScroller
	notices  []string
	queries  []string
}

func newHarness(t *testing.T, source SourceFunc, axis ScrollAxis) *harness {
	t.Helper()
	h := &harness{player: &tu.RecordingPlayer{}, scroller: &recordingScroller{}}

	wrapped := SourceFunc(func(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
		h.queries = append(h.queries, filter.Values("play_type").Encode())
		return source(ctx, filter)
	})

	h.feed = New(Options{
		Source:   wrapped,
		Player:   h.player,
		Scroller: h.scroller,
		Notify:   func(n string) { h.notices = append(h.notices, n) },
		Axis:     axis,
		Extent:   100,
		Config:   shared.DefaultConfig().Feed,
	})
	return h
}

// load runs a fetch to completion and settles the reset scroll.
func (h *harness) load(req Request) Outcome {
	out := h.feed.Complete(h.feed.Run(req))
	h.settle()
	return out
}

// settle delivers the last programmatic offset as a debounced observation.
func (h *harness) settle() {
	if len(h.scroller.offsets) == 0 {
		return
	}
	h.feed.Settle(h.feed.Scrolled(h.scroller.last()))
}

func TestFeed(t *testing.T) {
	t.Run("Fetch Resets Index", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(5), nil), Vertical)
		h.load(h.feed.Load())

		h.feed.Step(Next)
		h.settle()
		h.feed.Step(Next)
		h.settle()
		if h.feed.State().Index != 2 {
			t.Fatalf("expected index 2, got %d", h.feed.State().Index)
		}

		h.load(h.feed.Refresh())
		if h.feed.State().Index != 0 {
			t.Errorf("expected index reset to 0, got %d", h.feed.State().Index)
		}
		if h.player.URL != "https://clips.example.com/1.mp4" {
			t.Errorf("expected first clip live, got %s", h.player.URL)
		}
	})

	t.Run("Empty State", func(t *testing.T) {
		h := newHarness(t, staticSource([]models.Play{}, nil), Vertical)
		req := h.feed.Load()
		if h.feed.State().Status != StatusLoading {
			t.Fatal("expected loading while in flight")
		}

		h.load(req)
		st := h.feed.State()
		if st.Status != StatusEmpty || len(st.Items) != 0 {
			t.Errorf("expected empty state, got %s with %d items", st.Status, len(st.Items))
		}
		if h.feed.Media().Active() != -1 {
			t.Error("expected nothing live")
		}
	})

	t.Run("Same Filter Twice", func(t *testing.T) {
		calls := 0
		h := newHarness(t, func(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
			calls++
			plays := playsN(3)
			plays[0].Caption = fmt.Sprintf("batch %d", calls)
			return plays, nil
		}, Horizontal)

		h.load(h.feed.Apply("trips", "inside-run"))
		h.load(h.feed.Apply("trips", "inside-run"))

		if len(h.queries) != 2 || h.queries[0] != h.queries[1] {
			t.Fatalf("expected identical queries, got %v", h.queries)
		}
		if h.queries[0] != "formation=trips&play_type=inside-run" {
			t.Errorf("unexpected query %s", h.queries[0])
		}
		if cur, _ := h.feed.Current(); cur.Caption != "batch 2" {
			t.Errorf("expected second result to replace the first, got %q", cur.Caption)
		}
	})

	t.Run("Clear Triggers One Fetch", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(2), nil), Horizontal)
		h.load(h.feed.Apply("trips", "inside-run"))
		h.load(h.feed.Clear(models.AxisPlayType))

		if h.queries[1] != "formation=trips&play_type=" {
			t.Errorf("unexpected query after clear %s", h.queries[1])
		}
	})

	t.Run("Swipe During Programmatic Scroll Ignored", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(5), nil), Vertical)
		h.load(h.feed.Load())
		h.feed.Step(Next)
		h.settle()

		scrolls := len(h.scroller.offsets)
		h.feed.PointerDown(0, 300)
		h.feed.PointerMove(0, 240)
		h.feed.PointerUp(0, 240)

		if st := h.feed.State(); st.Index != 2 || st.Scroll != ProgrammaticScroll {
			t.Fatalf("expected ProgrammaticScroll(2), got index %d %s", st.Index, st.Scroll)
		}

		h.feed.PointerDown(0, 300)
		h.feed.PointerMove(0, 200)
		h.feed.PointerUp(0, 200)

		if h.feed.State().Index != 2 {
			t.Errorf("expected index to stay 2, got %d", h.feed.State().Index)
		}
		if len(h.scroller.offsets) != scrolls+1 {
			t.Errorf("expected exactly one scroll, got %v", h.scroller.offsets[scrolls:])
		}
	})

	t.Run("Gesture Threshold Through Feed", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(3), nil), Vertical)
		h.load(h.feed.Load())

		h.feed.PointerDown(0, 100)
		h.feed.PointerMove(0, 100-49)
		h.feed.PointerUp(0, 100-49)
		if h.feed.State().Index != 0 {
			t.Errorf("expected a 49px drag to leave index 0, got %d", h.feed.State().Index)
		}

		h.feed.PointerDown(0, 100)
		h.feed.PointerMove(0, 100-51)
		h.feed.PointerUp(0, 100-51)
		if h.feed.State().Index != 1 {
			t.Errorf("expected a 51px drag to step once, got %d", h.feed.State().Index)
		}
	})

	t.Run("Tap Toggles Playback", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(2), nil), Vertical)
		h.load(h.feed.Load())

		if !h.feed.State().Playing {
			t.Fatal("expected autoplay on load")
		}
		h.feed.PointerDown(0, 0)
		if g := h.feed.PointerUp(0, 3); g.Kind != GestureTap {
			t.Fatalf("expected tap, got %+v", g)
		}
		if h.feed.State().Playing {
			t.Error("expected tap to pause")
		}

		h.feed.PointerDown(0, 100)
		h.feed.PointerMove(0, 20)
		h.feed.PointerUp(0, 20)
		if h.feed.State().Index != 1 || !h.feed.State().Playing {
			t.Error("expected swipe to move and resume without toggling")
		}
	})

	t.Run("Failure Notifies And Keeps Items", func(t *testing.T) {
		var err error
		h := newHarness(t, func(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
			if err != nil {
				return nil, err
			}
			return playsN(3), nil
		}, Vertical)
		h.load(h.feed.Load())
		h.feed.Step(Next)
		h.settle()

		err = fmt.Errorf("%w: status 401", shared.ErrNotAuthenticated)
		out := h.feed.Complete(h.feed.Run(h.feed.Refresh()))

		if !out.AuthRequired() {
			t.Errorf("expected auth outcome, got %+v", out)
		}
		st := h.feed.State()
		if st.Status != StatusError || len(st.Items) != 3 || st.Index != 1 {
			t.Errorf("unexpected state after failure %+v", st)
		}
		if len(h.notices) != 1 || h.notices[0] != Notice(shared.ErrNotAuthenticated) {
			t.Errorf("unexpected notices %v", h.notices)
		}
	})

	t.Run("Stale Result After Newer Filter", func(t *testing.T) {
		h := newHarness(t, func(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
			if filter.Formation == "trips" {
				return playsN(1), nil
			}
			return playsN(4), nil
		}, Horizontal)

		slow := h.feed.Apply("trips", "")
		fast := h.feed.Apply("ace", "")
		h.feed.Complete(h.feed.Run(fast))

		if out := h.feed.Complete(h.feed.Run(slow)); out.Applied {
			t.Error("expected stale result discarded")
		}
		if len(h.feed.State().Items) != 4 {
			t.Errorf("expected newer items, got %d", len(h.feed.State().Items))
		}
	})

	t.Run("Idle Observation Switches Media", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(4), nil), Vertical)
		h.load(h.feed.Load())

		if !h.feed.Settle(h.feed.Scrolled(300)) {
			t.Fatal("expected index change")
		}
		if h.feed.State().Index != 3 || h.player.URL != "https://clips.example.com/4.mp4" {
			t.Errorf("expected clip 4 live, got index %d url %s", h.feed.State().Index, h.player.URL)
		}
	})

	t.Run("Suspend And Resume", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(3), nil), Vertical)
		h.load(h.feed.Load())
		h.feed.Step(Next)
		h.settle()

		h.feed.Suspend()
		if h.player.Playing || h.feed.Media().Active() != -1 {
			t.Fatal("expected media released")
		}
		if h.feed.State().Index != 1 {
			t.Errorf("expected index kept, got %d", h.feed.State().Index)
		}

		h.feed.Resume()
		if h.feed.Media().Active() != 1 || h.player.URL != "https://clips.example.com/2.mp4" {
			t.Errorf("expected clip 2 live again, got active %d url %s", h.feed.Media().Active(), h.player.URL)
		}
		if !h.player.Playing {
			t.Error("expected resume policy to start playback")
		}
	})

	t.Run("Close", func(t *testing.T) {
		h := newHarness(t, staticSource(playsN(3), nil), Vertical)
		h.load(h.feed.Load())

		tag := h.feed.Scrolled(200)
		req := h.feed.Refresh()
		h.feed.Close()

		if h.player.Playing || h.feed.Media().Active() != -1 {
			t.Error("expected media stopped")
		}
		if h.feed.Settle(tag) {
			t.Error("expected pending debounce invalidated")
		}
		if out := h.feed.Complete(h.feed.Run(req)); out.Applied {
			t.Error("expected in-flight result discarded")
		}
		if h.feed.Step(Next) {
			t.Error("expected closed feed to ignore input")
		}
		h.feed.Close()
	})
}

// TestFeedInvariants drives random event sequences and checks the index and playback invariants after
// every event.
func TestFeedInvariants(t *testing.T) {
	for _, count := range []int{0, 1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d items", count), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(uint64(count), 42))
			h := newHarness(t, staticSource(playsN(count), nil), Vertical)
			h.load(h.feed.Load())

			for step := range 2000 {
				switch rng.IntN(7) {
				case 0:
					h.feed.Step(Next)
				case 1:
					h.feed.Step(Prev)
				case 2:
					h.settle()
				case 3:
					h.feed.Settle(h.feed.Scrolled(rng.Float64()*1000 - 200))
				case 4:
					y := rng.Float64() * 400
					h.feed.PointerDown(0, y)
					h.feed.PointerMove(0, y+rng.Float64()*200-100)
					h.feed.PointerUp(0, y+rng.Float64()*200-100)
				case 5:
					h.feed.TogglePlay()
				case 6:
					h.feed.Jump(rng.IntN(10) - 2)
				}

				st := h.feed.State()
				if count == 0 {
					if st.Index != 0 || st.Playing {
						t.Fatalf("step %d: empty feed moved or played: %+v", step, st)
					}
					continue
				}
				if st.Index < 0 || st.Index >= count {
					t.Fatalf("step %d: index %d out of range [0,%d)", step, st.Index, count)
				}
				if count == 1 && st.Index != 0 {
					t.Fatalf("step %d: single item feed moved to %d", step, st.Index)
				}

				playing := 0
				for i := range count {
					if h.feed.Media().IsPlaying(i) {
						playing++
					}
				}
				if playing > 1 {
					t.Fatalf("step %d: %d items playing", step, playing)
				}
				if h.feed.Media().Active() != st.Index {
					t.Fatalf("step %d: live item %d does not follow index %d", step, h.feed.Media().Active(), st.Index)
				}
			}
		})
	}
}
