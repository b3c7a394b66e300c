// ABOUTME: Launches a headless Chromium and connects to its DevTools socket.
// ABOUTME: Resolves the executable from options, $CHROME_PATH, then known names.

package browser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/mauromedda/glimpse/internal/log"
)

// Options configures the launched browser.
type Options struct {
	// ExecPath overrides executable discovery when non-empty.
	ExecPath string
	// Width and Height set the viewport in pixels.
	Width  int
	Height int
}

// Browser owns a headless Chromium process and the DevTools connection
// to it.
type Browser struct {
	cmd     *exec.Cmd
	client  *Client
	dataDir string
}

var wsURLPattern = regexp.MustCompile(`ws://[^\s]+`)

// Launch starts a headless browser with a fresh profile and dials its
// DevTools endpoint, scraped from the process's stderr banner.
func Launch(ctx context.Context, opts Options) (*Browser, error) {
	path, err := resolveExecutable(opts.ExecPath)
	if err != nil {
		return nil, err
	}
	log.Debug("launching browser: %s", path)

	dataDir, err := os.MkdirTemp("", "glimpse-profile-")
	if err != nil {
		return nil, fmt.Errorf("creating profile dir: %w", err)
	}

	args := []string{
		"--headless=new",
		"--remote-debugging-port=0",
		fmt.Sprintf("--window-size=%d,%d", opts.Width, opts.Height),
		"--force-device-scale-factor=1",
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-gpu",
		"--hide-scrollbars",
		"--mute-audio",
		"--user-data-dir=" + dataDir,
		"about:blank",
	}
	cmd := exec.CommandContext(ctx, path, args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		os.RemoveAll(dataDir)
		return nil, fmt.Errorf("attaching to browser stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		os.RemoveAll(dataDir)
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	b := &Browser{cmd: cmd, dataDir: dataDir}

	wsURL, err := awaitDevToolsURL(ctx, stderr)
	if err != nil {
		b.Close()
		return nil, err
	}
	log.Debug("devtools endpoint: %s", wsURL)

	client, err := Dial(ctx, wsURL)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.client = client
	return b, nil
}

// Client returns the browser-level DevTools client.
func (b *Browser) Client() *Client {
	return b.client
}

// Close shuts the browser down and removes its temporary profile.
func (b *Browser) Close() {
	if b.client != nil {
		b.client.Close()
	}
	if b.cmd != nil && b.cmd.Process != nil {
		_ = b.cmd.Process.Kill()
		_ = b.cmd.Wait()
	}
	if b.dataDir != "" {
		os.RemoveAll(b.dataDir)
	}
}

// awaitDevToolsURL scans the browser's stderr for the
// "DevTools listening on ws://…" banner.
func awaitDevToolsURL(ctx context.Context, stderr io.Reader) (string, error) {
	type scanResult struct {
		url string
		err error
	}
	ch := make(chan scanResult, 1)

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.Contains(line, "DevTools listening on") {
				continue
			}
			if url := wsURLPattern.FindString(line); url != "" {
				ch <- scanResult{url: url}
				return
			}
		}
		ch <- scanResult{err: fmt.Errorf("browser exited before announcing a DevTools endpoint")}
	}()

	select {
	case res := <-ch:
		return res.url, res.err
	case <-time.After(30 * time.Second):
		return "", fmt.Errorf("timed out waiting for the DevTools endpoint")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// resolveExecutable picks the browser binary: explicit override,
// $CHROME_PATH, then well-known names and install locations.
func resolveExecutable(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path, nil
	}

	names := []string{
		"google-chrome", "google-chrome-stable",
		"chromium", "chromium-browser", "chrome",
	}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	locations := []string{
		"/Applications/Helium.app/Contents/MacOS/Helium",
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
	}
	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no Chromium-based browser found; set CHROME_PATH or chrome_path in the config")
}
