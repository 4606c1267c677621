package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/huddle/internal/feed"
	"github.com/desertthunder/huddle/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	view View
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFetched MsgKind = iota
	MsgFrame
	MsgSettle
	MsgToastExpired
	MsgLiked
	MsgSaved
	MsgPlaybookLoaded
	MsgOpened
)

type likeResult struct {
	play  models.Play
	liked bool
	err   error
}

type saveResult struct {
	play models.Play
	err  error
}

type playbookResult struct {
	book *models.Playbook
	err  error
}

// fetchedMsg is the constructor for [MsgFetched]
func fetchedMsg(v View, res feed.Result) Msg {
	return Msg{kind: MsgFetched, view: v, data: res}
}

// frameMsg is the constructor for [MsgFrame]
func frameMsg(v View) Msg {
	return Msg{kind: MsgFrame, view: v}
}

// settleMsg is the constructor for [MsgSettle]
func settleMsg(v View, tag feed.Tag) Msg {
	return Msg{kind: MsgSettle, view: v, data: tag}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(seq int) Msg {
	return Msg{kind: MsgToastExpired, data: seq}
}

// likedMsg is the constructor for [MsgLiked]
func likedMsg(v View, play models.Play, liked bool, err error) Msg {
	return Msg{kind: MsgLiked, view: v, data: likeResult{play, liked, err}}
}

// savedMsg is the constructor for [MsgSaved]
func savedMsg(v View, play models.Play, err error) Msg {
	return Msg{kind: MsgSaved, view: v, data: saveResult{play, err}}
}

// playbookLoadedMsg is the constructor for [MsgPlaybookLoaded]
func playbookLoadedMsg(book *models.Playbook, err error) Msg {
	return Msg{kind: MsgPlaybookLoaded, view: PlaybookView, data: playbookResult{book, err}}
}

// openedMsg is the constructor for [MsgOpened]
func openedMsg(err error) Msg {
	return Msg{kind: MsgOpened, data: err}
}
