package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/shared"
	tu "github.com/desertthunder/huddle/internal/testing"
)

type fakeClient struct {
	plays    []models.Play
	filtered []models.Play // returned for any non-zero filter when set
	err      error
	filters  []models.FilterSelection
	saved    []string
	saveErr  error
	book     *models.Playbook
}

func (c *fakeClient) ListPlays(_ context.Context, filter models.FilterSelection) ([]models.Play, error) {
	c.filters = append(c.filters, filter)
	if c.err != nil {
		return nil, c.err
	}
	if c.filtered != nil && !filter.IsZero() {
		return append([]models.Play(nil), c.filtered...), nil
	}
	return append([]models.Play(nil), c.plays...), nil
}

func (c *fakeClient) ForYou(ctx context.Context) ([]models.Play, error) {
	return c.ListPlays(ctx, models.FilterSelection{})
}

func (c *fakeClient) VideoOfDay(context.Context) (*models.Play, error) {
	if len(c.plays) == 0 {
		return nil, shared.ErrPlayNotFound
	}
	return &c.plays[0], nil
}

func (c *fakeClient) Playbook(context.Context, models.FilterSelection) (*models.Playbook, error) {
	if c.book == nil {
		return &models.Playbook{}, nil
	}
	return c.book, nil
}

func (c *fakeClient) SavePlay(_ context.Context, playID string) error {
	c.saved = append(c.saved, playID)
	return c.saveErr
}

func (c *fakeClient) CreatePlay(_ context.Context, p models.NewPlay) (*models.Play, error) {
	return &models.Play{ID: "new", VideoURL: p.URL}, nil
}

type fakeLikes map[string]bool

func (l fakeLikes) Set(id string, liked bool) error {
	l[id] = liked
	return nil
}

func (l fakeLikes) Annotate(plays []models.Play) error {
	for i := range plays {
		if liked, ok := l[plays[i].ID]; ok {
			plays[i].Liked = liked
		}
	}
	return nil
}

func testPlays(n int) []models.Play {
	plays := make([]models.Play, n)
	for i := range plays {
		plays[i] = models.Play{
			ID:        fmt.Sprint(i + 1),
			VideoURL:  fmt.Sprintf("https://clips.example.com/%d.mp4", i+1),
			Caption:   fmt.Sprintf("Play %d", i+1),
			Formation: "trips",
			PlayType:  "deep-pass",
			SharedBy:  "coach",
		}
	}
	return plays
}

type testModel struct {
	*Model
	client *fakeClient
	player *tu.RecordingPlayer
	likes  fakeLikes
	opened []string
}

func newTestModel(t *testing.T, client *fakeClient) *testModel {
	t.Helper()
	tm := &testModel{client: client, player: &tu.RecordingPlayer{}, likes: fakeLikes{}}
	open := func(u string) error {
		tm.opened = append(tm.opened, u)
		return nil
	}
	tm.Model = NewModel(context.Background(), Options{
		Client:  client,
		Likes:   tm.likes,
		Player:  tm.player,
		Config:  shared.DefaultConfig().Feed,
		OpenURL: open,
	})
	tm.Update(tea.WindowSizeMsg{Width: 80, Height: 28})
	return tm
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key through handleKey and runs the command it produced.
func (tm *testModel) press(t *testing.T, s string) {
	t.Helper()
	cmd, quit := tm.handleKey(keyMsg(s))
	if quit {
		t.Fatalf("unexpected quit on %q", s)
	}
	tm.pending()
	if cmd != nil {
		tm.Update(cmd())
	}
}

// load fetches v and lets the reset scroll settle.
func (tm *testModel) load(v View) {
	p := tm.pane(v)
	tm.Update(tm.fetch(p, p.feed.Load())())
	tm.settle(v)
}

// settle runs animation frames to completion and delivers the debounced observation.
func (tm *testModel) settle(v View) {
	p := tm.pane(v)
	for i := 0; p.port.animating && i < 1000; i++ {
		tm.Update(frameMsg(v))
	}
	tm.Update(settleMsg(v, p.feed.Scrolled(p.port.offset)))
}

func TestModel(t *testing.T) {
	t.Run("Loading", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		if !strings.Contains(tm.View(), "Loading plays") {
			t.Errorf("expected loading state, got:\n%s", tm.View())
		}
	})

	t.Run("Loaded Feed", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		view := tm.View()
		if !strings.Contains(view, "Play 1") || !strings.Contains(view, "1 / 3") {
			t.Errorf("expected first card, got:\n%s", view)
		}
		if tm.player.URL != "https://clips.example.com/1.mp4" || !tm.player.Playing {
			t.Errorf("expected first clip playing, got %s playing=%t", tm.player.URL, tm.player.Playing)
		}
	})

	t.Run("Empty State", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{})
		tm.load(HomeView)

		if !strings.Contains(tm.View(), "No plays yet") {
			t.Errorf("expected empty state, got:\n%s", tm.View())
		}
	})

	t.Run("Auth Error", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{err: shared.ErrNotAuthenticated})
		tm.load(HomeView)

		if !strings.Contains(tm.View(), "Please log in") {
			t.Errorf("expected login prompt, got:\n%s", tm.View())
		}
		if tm.Toast() != "Please log in to see plays" {
			t.Errorf("unexpected toast %q", tm.Toast())
		}
	})

	t.Run("Keys Step Once Per Scroll", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		tm.press(t, "j")
		tm.press(t, "j")
		if got := tm.Feed(HomeView).State().Index; got != 1 {
			t.Fatalf("expected second key rejected mid-scroll, index %d", got)
		}

		tm.settle(HomeView)
		tm.press(t, "down")
		tm.settle(HomeView)
		tm.press(t, "j")
		if got := tm.Feed(HomeView).State().Index; got != 2 {
			t.Errorf("expected index clamped at 2, got %d", got)
		}
		if tm.player.URL != "https://clips.example.com/3.mp4" {
			t.Errorf("expected third clip live, got %s", tm.player.URL)
		}
	})

	t.Run("Space Toggles", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(2)})
		tm.load(HomeView)

		tm.press(t, " ")
		if tm.player.Playing {
			t.Error("expected paused")
		}
		tm.press(t, " ")
		if !tm.player.Playing {
			t.Error("expected playing")
		}
	})

	t.Run("Filter Dialog", func(t *testing.T) {
		client := &fakeClient{plays: testPlays(2), filtered: testPlays(1)}
		tm := newTestModel(t, client)
		tm.load(HomeView)

		cmd, _ := tm.handleKey(keyMsg("f"))
		if tm.Current() != SearchView || tm.dialog == nil {
			t.Fatalf("expected search view with dialog, got %s", tm.Current())
		}
		stale := cmd

		tm.press(t, "down")
		tm.press(t, "right")
		tm.press(t, "down")
		tm.press(t, "down")
		if got := tm.Feed(SearchView).Committed(); !got.IsZero() {
			t.Fatalf("expected nothing committed while staging, got %s", got)
		}

		tm.press(t, "enter")
		want := models.FilterSelection{Formation: "trips", PlayType: "outside-run"}
		if got := client.filters[len(client.filters)-1]; got != want {
			t.Errorf("expected %v fetched, got %v", want, got)
		}
		tm.settle(SearchView)

		tm.Update(stale())
		if got := len(tm.Feed(SearchView).State().Items); got != 1 {
			t.Errorf("expected stale unfiltered result ignored, got %d items", got)
		}
		if !strings.Contains(tm.View(), "Formation: Trips · Play type: Outside Run") {
			t.Errorf("expected filter header, got:\n%s", tm.View())
		}
	})

	t.Run("Dialog Cancel", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(2)})
		tm.load(HomeView)

		tm.press(t, "f")
		tm.press(t, "down")
		tm.press(t, "esc")
		if tm.dialog != nil {
			t.Fatal("expected dialog closed")
		}
		if got := tm.search.feed.Filters().Staged(); !got.IsZero() {
			t.Errorf("expected staged selection discarded, got %v", got)
		}
	})

	t.Run("Clear Axis", func(t *testing.T) {
		client := &fakeClient{plays: testPlays(2)}
		tm := newTestModel(t, client)
		tm.search.feed.Apply("trips", "deep-pass")
		tm.switchView(SearchView)
		tm.load(SearchView)

		tm.press(t, "x")
		want := models.FilterSelection{PlayType: "deep-pass"}
		if got := client.filters[len(client.filters)-1]; got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("Like", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(2)})
		tm.load(HomeView)

		tm.press(t, "L")
		play, _ := tm.Feed(HomeView).Current()
		if !play.Liked || play.Likes != 1 || !tm.likes["1"] {
			t.Errorf("expected liked play, got %+v", play)
		}

		tm.press(t, "L")
		play, _ = tm.Feed(HomeView).Current()
		if play.Liked || play.Likes != 0 {
			t.Errorf("expected like removed, got %+v", play)
		}
	})

	t.Run("Like Backend Liked Play", func(t *testing.T) {
		plays := testPlays(2)
		plays[0].Liked, plays[0].Likes = true, 10
		tm := newTestModel(t, &fakeClient{plays: plays})
		tm.load(HomeView)

		tm.press(t, "L")
		play, _ := tm.Feed(HomeView).Current()
		if play.Liked || play.Likes != 9 {
			t.Fatalf("expected first press to unlike, got liked=%t likes=%d", play.Liked, play.Likes)
		}

		tm.press(t, "r")
		tm.settle(HomeView)
		if play, _ := tm.Feed(HomeView).Current(); play.Liked {
			t.Error("expected unlike to survive a refresh")
		}

		tm.press(t, "L")
		if play, _ := tm.Feed(HomeView).Current(); !play.Liked {
			t.Error("expected second press to like again")
		}
	})

	t.Run("Save", func(t *testing.T) {
		client := &fakeClient{plays: testPlays(2)}
		tm := newTestModel(t, client)
		tm.load(HomeView)

		tm.press(t, "s")
		play, _ := tm.Feed(HomeView).Current()
		if len(client.saved) != 1 || client.saved[0] != "1" || !play.Saved {
			t.Errorf("expected play 1 saved, got %v %+v", client.saved, play)
		}
		if tm.Toast() != "Saved to playbook" {
			t.Errorf("unexpected toast %q", tm.Toast())
		}

		tm.press(t, "s")
		if len(client.saved) != 1 {
			t.Error("expected second save skipped")
		}
	})

	t.Run("Save Requires Login", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(1), saveErr: shared.ErrNotAuthenticated})
		tm.load(HomeView)

		tm.press(t, "s")
		if tm.Toast() != "Please log in to save plays" {
			t.Errorf("unexpected toast %q", tm.Toast())
		}
	})

	t.Run("Open", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(1)})
		tm.load(HomeView)

		tm.press(t, "o")
		if len(tm.opened) != 1 || tm.opened[0] != "https://clips.example.com/1.mp4" {
			t.Errorf("expected clip opened, got %v", tm.opened)
		}
	})

	t.Run("Drag Swipes", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		tm.Update(tea.MouseMsg{X: 10, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		tm.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
		tm.Update(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

		if got := tm.Feed(HomeView).State().Index; got != 1 {
			t.Errorf("expected one swipe to index 1, got %d", got)
		}
	})

	t.Run("Click Taps", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		tm.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		tm.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})

		if tm.player.Playing {
			t.Error("expected tap to pause")
		}
		if got := tm.Feed(HomeView).State().Index; got != 0 {
			t.Errorf("expected index unchanged, got %d", got)
		}
	})

	t.Run("Wheel Adopts Offset", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		for range 4 {
			tm.Update(tea.MouseMsg{X: 10, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
		}
		tm.settle(HomeView)

		if got := tm.Feed(HomeView).State().Index; got != 1 {
			t.Errorf("expected wheel to land on index 1, got %d", got)
		}
		if tm.player.URL != "https://clips.example.com/2.mp4" {
			t.Errorf("expected second clip live, got %s", tm.player.URL)
		}
	})

	t.Run("Switching Away Mid Settle", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(3)})
		tm.load(HomeView)

		tm.press(t, "j")
		p := tm.pane(HomeView)
		for i := 0; p.port.animating && i < 1000; i++ {
			tm.Update(frameMsg(HomeView))
		}
		if !tm.Feed(HomeView).Position().Busy() {
			t.Fatal("expected scroll to wait for its observation")
		}

		tm.press(t, "tab")
		tm.Update(settleMsg(HomeView, 0))
		tm.press(t, "tab")
		tm.press(t, "tab")
		if tm.Current() != HomeView {
			t.Fatalf("expected home view, got %s", tm.Current())
		}
		if tm.Feed(HomeView).Position().Busy() {
			t.Fatal("expected scroll settled after returning")
		}

		tm.press(t, "j")
		if got := tm.Feed(HomeView).State().Index; got != 2 {
			t.Errorf("expected step after return, got index %d", got)
		}
	})

	t.Run("Switching Views Moves The Player", func(t *testing.T) {
		client := &fakeClient{plays: testPlays(2)}
		tm := newTestModel(t, client)
		tm.load(HomeView)
		tm.press(t, "j")
		tm.settle(HomeView)

		searchFetch, _ := tm.handleKey(keyMsg("tab"))
		if tm.player.URL != "" {
			t.Errorf("expected home clip stopped, got %s", tm.player.URL)
		}

		tm.press(t, "tab")
		if tm.Current() != PlaybookView {
			t.Fatalf("expected playbook view, got %s", tm.Current())
		}

		tm.Update(searchFetch())
		if tm.player.URL != "" || tm.Feed(SearchView).Media().Active() != -1 {
			t.Errorf("expected hidden search feed to leave the player alone, got %s", tm.player.URL)
		}

		tm.press(t, "tab")
		if tm.Current() != HomeView || tm.player.URL != "https://clips.example.com/2.mp4" {
			t.Errorf("expected home clip 2 resumed, got %s %s", tm.Current(), tm.player.URL)
		}
	})

	t.Run("Playbook", func(t *testing.T) {
		client := &fakeClient{plays: testPlays(1), book: &models.Playbook{Plays: testPlays(2)}}
		tm := newTestModel(t, client)
		tm.press(t, "tab")
		tm.press(t, "tab")

		if !strings.Contains(tm.View(), "Playbook (2 plays)") {
			t.Errorf("expected playbook list, got:\n%s", tm.View())
		}
	})

	t.Run("Empty Playbook", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{})
		tm.switchView(PlaybookView)
		tm.Update(tm.loadPlaybook()())

		if !strings.Contains(tm.View(), "Your playbook is empty") {
			t.Errorf("expected empty playbook, got:\n%s", tm.View())
		}
	})

	t.Run("Toast Expiry", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{})
		tm.notify("first")
		stale := tm.toastSeq
		tm.notify("second")

		tm.Update(toastExpiredMsg(stale))
		if tm.Toast() != "second" {
			t.Errorf("expected newer toast kept, got %q", tm.Toast())
		}
		tm.Update(toastExpiredMsg(tm.toastSeq))
		if tm.Toast() != "" {
			t.Errorf("expected toast cleared, got %q", tm.Toast())
		}
	})

	t.Run("Quit", func(t *testing.T) {
		tm := newTestModel(t, &fakeClient{plays: testPlays(1)})
		tm.load(HomeView)

		_, cmd := tm.Update(keyMsg("q"))
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected quit command")
		}
		if !tm.Feed(HomeView).Closed() || tm.player.Playing {
			t.Error("expected feeds closed and playback stopped")
		}
	})
}

func TestViewport(t *testing.T) {
	v := &viewport{}
	v.ScrollTo(100)

	frames := 0
	for !v.advance() {
		frames++
		if frames > 100 {
			t.Fatal("expected animation to arrive")
		}
	}
	if v.offset != 100 || v.animating {
		t.Errorf("expected resting at 100, got %f animating=%t", v.offset, v.animating)
	}
	if v.advance() {
		t.Error("expected idle viewport not to report arrival")
	}

	if got := v.nudge(-500, 300); got != 0 {
		t.Errorf("expected clamp to 0, got %f", got)
	}
	if got := v.nudge(500, 300); got != 300 {
		t.Errorf("expected clamp to 300, got %f", got)
	}
}
