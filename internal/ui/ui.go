package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/feed"
	"github.com/desertthunder/huddle/internal/models"
	"github.com/desertthunder/huddle/internal/services"
	"github.com/desertthunder/huddle/internal/shared"
)

// View identifies a screen of the TUI.
type View int

const (
	HomeView View = iota
	SearchView
	PlaybookView
)

func (v View) String() string {
	switch v {
	case HomeView:
		return "home"
	case SearchView:
		return "search"
	case PlaybookView:
		return "playbook"
	default:
		return "unknown"
	}
}

var viewTitles = []string{"Home", "Search", "Playbook"}

const (
	toastDuration = 3 * time.Second
	chromeRows    = 8
	wheelRows     = 3
	defaultCellPx = 16
)

// LikeStore is the local likes collaborator.
type LikeStore interface {
	Set(playID string, liked bool) error
	Annotate(plays []models.Play) error
}

// Options configures [NewModel].
type Options struct {
	Client  services.PlaysClient
	Likes   LikeStore
	Player  feed.Player
	Config  shared.FeedConfig
	Mute    bool
	Logger  *log.Logger
	Start   View
	Filter  models.FilterSelection // initial search filter
	OpenURL func(string) error
}

// pane is one feed view with its own viewport and player gate.
type pane struct {
	view      View
	feed      *feed.Feed
	port      *viewport
	player    *panePlayer
	unsettled bool
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	client     services.PlaysClient
	likes      LikeStore
	logger     *log.Logger
	openURL    func(string) error
	cellPx     float64
	view       View
	home       *pane
	search     *pane
	book       list.Model
	bookStatus feed.Status
	bookErr    error
	dialog     *filterDialog
	spinner    spinner.Model
	help       help.Model
	keys       keyMap
	toast      string
	toastSeq   int
	toastDue   bool
	width      int
	height     int
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	openURL := opts.OpenURL
	if openURL == nil {
		openURL = shared.OpenBrowser
	}
	cellPx := float64(opts.Config.CellHeightPX)
	if cellPx <= 0 {
		cellPx = defaultCellPx
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.accent

	m := &Model{
		ctx:     ctx,
		client:  opts.Client,
		likes:   opts.Likes,
		logger:  logger,
		openURL: openURL,
		cellPx:  cellPx,
		view:    opts.Start,
		book:    newPlaybookList(nil, 0, 0),
		spinner: s,
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.home = m.newPane(HomeView, feed.Vertical, models.FilterSelection{}, opts)
	m.search = m.newPane(SearchView, feed.Horizontal, opts.Filter, opts)
	if p := m.pane(m.view); p != nil {
		p.player.live = true
	}
	return m
}

func (m *Model) newPane(v View, axis feed.ScrollAxis, filter models.FilterSelection, opts Options) *pane {
	p := &pane{view: v, port: &viewport{}, player: &panePlayer{inner: opts.Player}}
	p.feed = feed.New(feed.Options{
		Source:   feed.SourceFunc(m.fetchPlays),
		Player:   p.player,
		Scroller: p.port,
		Notify:   m.notify,
		Logger:   shared.WithLogger(m.logger, "view", v.String()),
		Axis:     axis,
		Filter:   filter,
		Extent:   m.cellPx * 20,
		Config:   opts.Config,
		Mute:     opts.Mute,
	})
	return p
}

// fetchPlays runs off the event loop; it only reads immutable fields.
func (m *Model) fetchPlays(ctx context.Context, filter models.FilterSelection) ([]models.Play, error) {
	if m.client == nil {
		return nil, shared.ErrServiceUnavailable
	}
	plays, err := m.client.ListPlays(ctx, filter)
	if err != nil {
		return nil, err
	}
	if m.likes != nil {
		if err := m.likes.Annotate(plays); err != nil {
			m.logger.Warn("failed to annotate likes", "error", err)
		}
	}
	return plays, nil
}

func (m *Model) pane(v View) *pane {
	switch v {
	case HomeView:
		return m.home
	case SearchView:
		return m.search
	default:
		return nil
	}
}

func (m *Model) panes() []*pane { return []*pane{m.home, m.search} }

// Feed returns the feed behind v, or nil for [PlaybookView].
func (m *Model) Feed(v View) *feed.Feed {
	if p := m.pane(v); p != nil {
		return p.feed
	}
	return nil
}

// Current returns the active view.
func (m *Model) Current() View { return m.view }

// Toast returns the visible notice, if any.
func (m *Model) Toast() string { return m.toast }

func (m *Model) notify(notice string) {
	m.toast = notice
	m.toastSeq++
	m.toastDue = true
}

// Init starts the spinner and loads the starting view.
func (m *Model) Init() tea.Cmd {
	if m.view == PlaybookView {
		return tea.Batch(m.spinner.Tick, m.loadPlaybook())
	}
	p := m.pane(m.view)
	return tea.Batch(m.spinner.Tick, m.fetch(p, p.feed.Load()))
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		if quit {
			m.Close()
			return m, tea.Quit
		}
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case Msg:
		cmds = append(cmds, m.handleMsg(msg))

	default:
		if m.view == PlaybookView {
			var cmd tea.Cmd
			m.book, cmd = m.book.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, m.pending()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgFetched:
		p := m.pane(msg.view)
		if p == nil {
			return nil
		}
		res, _ := msg.data.(feed.Result)
		p.feed.Complete(res)
		if !p.player.live {
			p.feed.Suspend()
		}

	case MsgFrame:
		p := m.pane(msg.view)
		if p == nil {
			return nil
		}
		p.port.ticking = false
		if p.port.advance() {
			return m.observe(p)
		}

	case MsgSettle:
		p := m.pane(msg.view)
		if p == nil {
			return nil
		}
		if msg.view != m.view {
			p.unsettled = true
			return nil
		}
		tag, _ := msg.data.(feed.Tag)
		p.feed.Settle(tag)

	case MsgToastExpired:
		if seq, _ := msg.data.(int); seq == m.toastSeq {
			m.toast = ""
		}

	case MsgLiked:
		res, _ := msg.data.(likeResult)
		m.applyLike(msg.view, res)

	case MsgSaved:
		res, _ := msg.data.(saveResult)
		m.applySave(msg.view, res)

	case MsgPlaybookLoaded:
		res, _ := msg.data.(playbookResult)
		m.applyPlaybook(res)

	case MsgOpened:
		if err, _ := msg.data.(error); err != nil {
			m.logger.Warn("failed to open browser", "error", err)
			m.notify("Couldn't open the browser")
		}
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return nil, true
	}

	if m.dialog != nil {
		return m.handleDialogKeys(msg), false
	}

	if m.view == PlaybookView {
		return m.handlePlaybookKeys(msg)
	}

	p := m.pane(m.view)
	switch {
	case key.Matches(msg, m.keys.quit):
		return nil, true
	case key.Matches(msg, m.keys.next):
		p.feed.Step(feed.Next)
	case key.Matches(msg, m.keys.prev):
		p.feed.Step(feed.Prev)
	case key.Matches(msg, m.keys.toggle):
		p.feed.TogglePlay()
	case key.Matches(msg, m.keys.like):
		if play, ok := p.feed.Current(); ok {
			return m.toggleLike(p.view, play), false
		}
	case key.Matches(msg, m.keys.save):
		if play, ok := p.feed.Current(); ok {
			return m.savePlay(p.view, play), false
		}
	case key.Matches(msg, m.keys.open):
		if play, ok := p.feed.Current(); ok {
			return m.open(play.VideoURL), false
		}
	case key.Matches(msg, m.keys.filter):
		cmd := m.switchView(SearchView)
		m.dialog = openFilterDialog(m.search.feed.Filters())
		return cmd, false
	case key.Matches(msg, m.keys.clearF):
		if m.view == SearchView {
			return m.fetch(p, p.feed.Clear(models.AxisFormation)), false
		}
	case key.Matches(msg, m.keys.clearT):
		if m.view == SearchView {
			return m.fetch(p, p.feed.Clear(models.AxisPlayType)), false
		}
	case key.Matches(msg, m.keys.refresh):
		return m.fetch(p, p.feed.Refresh()), false
	case key.Matches(msg, m.keys.switchTo):
		return m.switchView(m.nextView()), false
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil, false
}

func (m *Model) handleDialogKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.dialog.cancel()
		m.dialog = nil
	case "enter":
		m.dialog = nil
		return m.fetch(m.search, m.search.feed.ApplyStaged())
	case "left", "right", "h", "l", "tab":
		m.dialog.switchAxis()
	case "up", "k":
		m.dialog.move(-1)
	case "down", "j":
		m.dialog.move(1)
	}
	return nil
}

func (m *Model) handlePlaybookKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.book.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.book, cmd = m.book.Update(msg)
		return cmd, false
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return nil, true
	case key.Matches(msg, m.keys.switchTo):
		return m.switchView(m.nextView()), false
	case key.Matches(msg, m.keys.refresh):
		return m.loadPlaybook(), false
	case key.Matches(msg, m.keys.open):
		if item, ok := m.book.SelectedItem().(playItem); ok {
			return m.open(item.play.VideoURL), false
		}
		return nil, false
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return nil, false
	}

	var cmd tea.Cmd
	m.book, cmd = m.book.Update(msg)
	return cmd, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := m.pane(m.view)
	if p == nil || m.dialog != nil {
		return nil
	}

	if tea.MouseEvent(msg).IsWheel() {
		delta := m.cellPx * wheelRows
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelLeft {
			delta = -delta
		}
		pos := p.feed.Position()
		offset := p.port.nudge(delta, pos.Offset(pos.Count()-1))
		return m.settleAfter(p, p.feed.Scrolled(offset))
	}

	// Cells are roughly twice as tall as they are wide.
	x, y := float64(msg.X)*m.cellPx/2, float64(msg.Y)*m.cellPx
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.feed.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		if p.feed.Gestures().Active() {
			p.feed.PointerMove(x, y)
		}
	case tea.MouseActionRelease:
		if p.feed.Gestures().Active() {
			p.feed.PointerUp(x, y)
		}
	}
	return nil
}

func (m *Model) nextView() View {
	return View((int(m.view) + 1) % len(viewTitles))
}

// switchView moves the player to the pane behind v, loading it on first visit.
func (m *Model) switchView(v View) tea.Cmd {
	if v == m.view {
		return nil
	}

	if p := m.pane(m.view); p != nil {
		// Suspend cancels the pending observation, so it is redone on return.
		if p.feed.Debouncer().Pending() {
			p.unsettled = true
		}
		p.feed.Suspend()
		p.player.live = false
	}
	m.view = v

	if v == PlaybookView {
		if m.bookStatus == feed.StatusIdle {
			return m.loadPlaybook()
		}
		return nil
	}

	p := m.pane(v)
	p.player.live = true
	if p.feed.State().Status == feed.StatusIdle {
		return m.fetch(p, p.feed.Load())
	}
	p.feed.Resume()
	if p.unsettled || (p.feed.Position().Busy() && !p.port.animating) {
		p.unsettled = false
		return m.observe(p)
	}
	return nil
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	rows := max(height-chromeRows, 1)
	for _, p := range m.panes() {
		p.feed.Position().SetExtent(float64(rows) * m.cellPx)
	}
	m.book.SetSize(max(width-4, 0), max(height-chromeRows, 0))
}

// pending returns the frame and toast timers owed after an update.
func (m *Model) pending() []tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.panes() {
		if p.port.animating && !p.port.ticking {
			p.port.ticking = true
			v := p.view
			cmds = append(cmds, tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg(v) }))
		}
	}

	if m.toastDue {
		m.toastDue = false
		seq := m.toastSeq
		cmds = append(cmds, tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg(seq) }))
	}
	return cmds
}

// observe reports the resting viewport offset once a scroll arrives. Hidden panes defer it until
// they are shown again.
func (m *Model) observe(p *pane) tea.Cmd {
	if p.view != m.view {
		p.unsettled = true
		return nil
	}
	return m.settleAfter(p, p.feed.Scrolled(p.port.offset))
}

func (m *Model) settleAfter(p *pane, tag feed.Tag) tea.Cmd {
	v := p.view
	return tea.Tick(p.feed.Debouncer().Delay(), func(time.Time) tea.Msg { return settleMsg(v, tag) })
}

func (m *Model) fetch(p *pane, req feed.Request) tea.Cmd {
	f, v := p.feed, p.view
	return func() tea.Msg {
		return fetchedMsg(v, f.Run(req))
	}
}

func (m *Model) loadPlaybook() tea.Cmd {
	m.bookStatus = feed.StatusLoading
	return func() tea.Msg {
		if m.client == nil {
			return playbookLoadedMsg(nil, shared.ErrServiceUnavailable)
		}
		book, err := m.client.Playbook(m.ctx, models.FilterSelection{})
		if err == nil && m.likes != nil {
			if err := m.likes.Annotate(book.Plays); err != nil {
				m.logger.Warn("failed to annotate likes", "error", err)
			}
		}
		return playbookLoadedMsg(book, err)
	}
}

func (m *Model) toggleLike(v View, play models.Play) tea.Cmd {
	if m.likes == nil {
		return nil
	}
	// Flip what is shown, which may be the backend's flag rather than a local like.
	liked := !play.Liked
	return func() tea.Msg {
		return likedMsg(v, play, liked, m.likes.Set(play.ID, liked))
	}
}

func (m *Model) savePlay(v View, play models.Play) tea.Cmd {
	if play.Saved {
		m.notify("Already in your playbook")
		return nil
	}
	if m.client == nil {
		return nil
	}
	return func() tea.Msg {
		return savedMsg(v, play, m.client.SavePlay(m.ctx, play.ID))
	}
}

func (m *Model) open(url string) tea.Cmd {
	if url == "" {
		m.notify("This play has no video")
		return nil
	}
	return func() tea.Msg {
		return openedMsg(m.openURL(url))
	}
}

func (m *Model) applyLike(v View, res likeResult) {
	if res.err != nil {
		m.logger.Warn("failed to toggle like", "play_id", res.play.ID, "error", res.err)
		m.notify("Couldn't update like")
		return
	}

	play := res.play
	switch {
	case res.liked && !play.Liked:
		play.Likes++
	case !res.liked && play.Liked:
		play.Likes = max(play.Likes-1, 0)
	}
	play.Liked = res.liked

	if p := m.pane(v); p != nil {
		p.feed.Update(play)
	}
}

func (m *Model) applySave(v View, res saveResult) {
	if res.err != nil {
		m.logger.Warn("failed to save play", "play_id", res.play.ID, "error", res.err)
		if errors.Is(res.err, shared.ErrNotAuthenticated) {
			m.notify("Please log in to save plays")
		} else {
			m.notify("Couldn't save play")
		}
		return
	}

	play := res.play
	play.Saved = true
	if p := m.pane(v); p != nil {
		p.feed.Update(play)
	}
	m.bookStatus = feed.StatusIdle
	m.notify("Saved to playbook")
}

func (m *Model) applyPlaybook(res playbookResult) {
	if res.err != nil {
		m.bookStatus = feed.StatusError
		m.bookErr = res.err
		m.notify(feed.Notice(res.err))
		return
	}

	m.bookErr = nil
	m.book = newPlaybookList(res.book, max(m.width-4, 0), max(m.height-chromeRows, 0))
	if len(m.book.Items()) == 0 {
		m.bookStatus = feed.StatusEmpty
	} else {
		m.bookStatus = feed.StatusReady
	}
}

// Close tears down both feeds. The player itself belongs to the caller.
func (m *Model) Close() {
	for _, p := range m.panes() {
		p.feed.Close()
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch {
	case m.dialog != nil:
		body = m.dialog.View()
	case m.view == PlaybookView:
		body = m.renderPlaybook()
	default:
		body = m.renderFeed(m.pane(m.view))
	}

	sections := []string{m.renderTabs(), body}
	if m.toast != "" {
		sections = append(sections, styles.toast.Render(m.toast))
	}
	sections = append(sections, m.renderHelp())
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(viewTitles))
	for i, title := range viewTitles {
		if View(i) == m.view {
			tabs[i] = styles.active.Render(title)
		} else {
			tabs[i] = styles.tab.Render(title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderHelp() string {
	if m.dialog != nil {
		return m.help.ShortHelpView(m.keys.dialogKeys())
	}
	return m.help.View(m.keys)
}

func (m *Model) renderFeed(p *pane) string {
	state := p.feed.State()

	var header string
	if p.view == SearchView {
		header = renderFilter(state.Filter) + "\n"
	}

	if len(state.Items) == 0 {
		switch state.Status {
		case feed.StatusIdle, feed.StatusLoading:
			return header + m.spinner.View() + " Loading plays..."
		case feed.StatusError:
			return header + renderError(state.Err)
		default:
			if state.Filter.IsZero() {
				return header + styles.warn.Render("No plays yet")
			}
			return header + styles.warn.Render("No plays match these filters") + "\n" +
				styles.help.Render("Press x or X to clear a filter, f to change them")
		}
	}

	card := renderCard(state.Items[state.Index], state.Playing)
	position := styles.dim.Render(fmt.Sprintf("%d / %d", state.Index+1, len(state.Items)))
	if state.Status == feed.StatusLoading {
		position = m.spinner.View() + " " + position
	}
	return header + card + "\n" + position
}

func renderFilter(f models.FilterSelection) string {
	formation, playType := "All", "All"
	if f.Formation != "" {
		formation = models.FormationLabel(f.Formation)
	}
	if f.PlayType != "" {
		playType = models.PlayTypeLabel(f.PlayType)
	}
	return styles.dim.Render(fmt.Sprintf("Formation: %s · Play type: %s", formation, playType))
}

func renderError(err error) string {
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return styles.warn.Render("Please log in to see plays") + "\n" +
			styles.help.Render("Run `huddle auth login`, then press r")
	}
	return styles.err.Render(feed.Notice(err))
}

func renderCard(play models.Play, playing bool) string {
	var b strings.Builder
	b.WriteString(styles.accent.Render(play.Title()) + "\n")

	var labels []string
	if play.Formation != "" {
		labels = append(labels, models.FormationLabel(play.Formation))
	}
	if play.PlayType != "" {
		labels = append(labels, models.PlayTypeLabel(play.PlayType))
	}
	if len(labels) > 0 {
		b.WriteString(strings.Join(labels, " • ") + "\n")
	}

	if len(play.Tags) > 0 {
		tags := make([]string, len(play.Tags))
		for i, t := range play.Tags {
			tags[i] = "#" + t
		}
		b.WriteString(styles.dim.Render(strings.Join(tags, " ")) + "\n")
	}
	if play.Description != "" {
		b.WriteString(play.Description + "\n")
	}

	status := "❚❚ paused"
	if playing {
		status = styles.ok.Render("▶ playing")
	}
	if play.VideoURL == "" {
		status = styles.warn.Render("no video")
	}

	likes := fmt.Sprintf("♡ %d", play.Likes)
	if play.Liked {
		likes = styles.ok.Render(fmt.Sprintf("♥ %d", play.Likes))
	}
	meta := []string{status, likes, "shared by " + play.SharedBy}
	if play.Saved {
		meta = append(meta, styles.ok.Render("saved"))
	}
	b.WriteString("\n" + strings.Join(meta, "  "))

	return styles.card.Render(b.String())
}

func (m *Model) renderPlaybook() string {
	switch m.bookStatus {
	case feed.StatusIdle, feed.StatusLoading:
		return m.spinner.View() + " Loading playbook..."
	case feed.StatusError:
		if errors.Is(m.bookErr, shared.ErrNotAuthenticated) {
			return styles.warn.Render("Please log in to see your playbook")
		}
		return styles.err.Render(feed.Notice(m.bookErr))
	case feed.StatusEmpty:
		return styles.warn.Render("Your playbook is empty") + "\n" +
			styles.help.Render("Press s on a play to save it")
	}
	return m.book.View()
}
