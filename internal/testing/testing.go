// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/huddle/internal/shared"
)

// MockSession is a test double for services.Session
type MockSession struct {
	mu           sync.Mutex
	token        string
	Unauthorized int
}

func NewMockSession(token string) *MockSession {
	return &MockSession{token: token}
}

func (m *MockSession) Token() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", shared.ErrNotAuthenticated
	}
	return m.token, nil
}

// OnUnauthorized counts calls and forgets the token, mirroring a sign-out.
func (m *MockSession) OnUnauthorized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Unauthorized++
	m.token = ""
}

// RecordingPlayer is a media player double that records every call it receives.
type RecordingPlayer struct {
	Calls   []string
	URL     string
	Playing bool
	Looping bool
	Muted   bool
	Err     error
}

func (p *RecordingPlayer) record(format string, args ...any) error {
	p.Calls = append(p.Calls, fmt.Sprintf(format, args...))
	return p.Err
}

func (p *RecordingPlayer) Load(url string) error {
	if err := p.record("load %s", url); err != nil {
		return err
	}
	p.URL = url
	return nil
}

func (p *RecordingPlayer) Play() error {
	if err := p.record("play"); err != nil {
		return err
	}
	p.Playing = true
	return nil
}

func (p *RecordingPlayer) Pause() error {
	if err := p.record("pause"); err != nil {
		return err
	}
	p.Playing = false
	return nil
}

func (p *RecordingPlayer) SetLoop(on bool) error {
	if err := p.record("loop %t", on); err != nil {
		return err
	}
	p.Looping = on
	return nil
}

func (p *RecordingPlayer) SetMute(on bool) error {
	if err := p.record("mute %t", on); err != nil {
		return err
	}
	p.Muted = on
	return nil
}

func (p *RecordingPlayer) Stop() error {
	p.Playing = false
	p.URL = ""
	return p.record("stop")
}

func (p *RecordingPlayer) Close() error {
	p.Playing = false
	return p.record("close")
}

// Reset clears the recorded calls.
func (p *RecordingPlayer) Reset() { p.Calls = nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
