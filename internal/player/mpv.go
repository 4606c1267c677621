package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/huddle/internal/shared"
)

// Player is the contract the feed drives, plus Close for shutdown.
type Player interface {
	Load(url string) error
	Play() error
	Pause() error
	SetLoop(on bool) error
	SetMute(on bool) error
	Stop() error
	Close() error
}

// Backends accepted by [shared.PlayerConfig.Backend].
const (
	BackendMPV  = "mpv"
	BackendNone = "none"
)

const socketWait = 3 * time.Second

// MPV controls an mpv process through its IPC socket.
type MPV struct {
	client *Client
	cmd    *exec.Cmd
	logger *log.Logger
}

// NewMPV wraps a connected client, for an mpv the caller started.
func NewMPV(client *Client, logger *log.Logger) *MPV {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MPV{client: client, logger: logger}
}

// LaunchMPV starts mpv idle with an IPC socket and connects to it.
func LaunchMPV(cfg shared.PlayerConfig, logger *log.Logger) (*MPV, error) {
	path, err := CheckMpv()
	if err != nil {
		return nil, err
	}

	socket := cfg.SocketPath
	if socket == "" {
		socket = DefaultSocketPath
	}
	_ = os.Remove(socket)

	cmd := exec.Command(path,
		"--idle=yes",
		"--no-terminal",
		"--force-window=yes",
		"--input-ipc-server="+socket,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start mpv: %v", shared.ErrPlayerUnavailable, err)
	}

	client := NewClient(socket, 0)
	deadline := time.Now().Add(socketWait)
	for {
		if err = client.Connect(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return nil, fmt.Errorf("%w: %v", shared.ErrPlayerUnavailable, err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	m := NewMPV(client, logger)
	m.cmd = cmd
	m.logger.Info("mpv started", "pid", cmd.Process.Pid, "socket", socket)
	return m, nil
}

func (m *MPV) Load(url string) error {
	_, err := m.client.Command("loadfile", url, "replace")
	return err
}

func (m *MPV) Play() error  { return m.client.SetProperty("pause", false) }
func (m *MPV) Pause() error { return m.client.SetProperty("pause", true) }

func (m *MPV) SetLoop(on bool) error {
	v := "no"
	if on {
		v = "inf"
	}
	return m.client.SetProperty("loop-file", v)
}

func (m *MPV) SetMute(on bool) error { return m.client.SetProperty("mute", on) }

func (m *MPV) Stop() error {
	_, err := m.client.Command("stop")
	return err
}

// Close asks mpv to quit and reaps the process if this player started it.
func (m *MPV) Close() error {
	if _, err := m.client.Command("quit"); err != nil && !errors.Is(err, ErrNotConnected) {
		m.logger.Debug("quit failed", "error", err)
	}
	err := m.client.Close()

	if m.cmd == nil || m.cmd.Process == nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- m.cmd.Wait() }()
	select {
	case <-done:
	case <-time.After(socketWait):
		_ = m.cmd.Process.Kill()
		<-done
	}
	return err
}

// New returns the configured player. A missing mpv degrades to [Null] with a warning.
func New(cfg shared.PlayerConfig, logger *log.Logger) Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if cfg.Backend == BackendNone {
		return &Null{}
	}

	m, err := LaunchMPV(cfg, logger)
	if err != nil {
		logger.Warn("video playback disabled", "error", err)
		return &Null{}
	}
	return m
}
