// ABOUTME: E2E harness: builds the real binary once and runs it under a PTY
// ABOUTME: so output, raw mode, and exit behavior match a real terminal.

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	buildPath string
	buildErr  error
)

// binaryPath builds cmd/glimpse into a shared temp location on first
// use. Tests share one build.
func binaryPath(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "glimpse-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		buildPath = filepath.Join(dir, "glimpse")
		cmd := exec.Command("go", "build", "-o", buildPath, "../cmd/glimpse")
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatalf("building binary: %v", buildErr)
	}
	return buildPath
}

// session is one binary run attached to a PTY.
type session struct {
	cmd *exec.Cmd
	pty *os.File

	mu  sync.Mutex
	out strings.Builder

	exited chan error
}

// startGlimpse launches the binary with args under an 80×24 PTY and
// starts draining its output.
func startGlimpse(t *testing.T, args ...string) *session {
	t.Helper()

	cmd := exec.Command(binaryPath(t), args...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 80, Rows: 24})
	if err != nil {
		t.Fatalf("starting pty: %v", err)
	}

	s := &session{cmd: cmd, pty: ptmx, exited: make(chan error, 1)}
	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.out.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	go func() { s.exited <- cmd.Wait() }()
	return s
}

func (s *session) close() {
	s.pty.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
}

func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

func (s *session) send(t *testing.T, text string) {
	t.Helper()
	if _, err := s.pty.Write([]byte(text)); err != nil {
		t.Fatalf("sending %q: %v", text, err)
	}
}

// expectStringTimeout polls the accumulated output for want.
func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("output never contained %q; got:\n%s", want, s.output())
}

// waitExit blocks until the process ends, regardless of exit status.
func (s *session) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-s.exited:
	case <-time.After(timeout):
		t.Fatalf("process did not exit within %s", timeout)
	}
}
