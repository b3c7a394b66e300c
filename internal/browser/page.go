// ABOUTME: Page-level DevTools operations: attach, navigate, capture screenshots.
// ABOUTME: Captures are tagged with declared viewport dimensions and a sequence number.

package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mauromedda/glimpse/internal/log"
	"github.com/mauromedda/glimpse/pkg/render"
)

// Page is an attached browser tab. Captures come from here.
type Page struct {
	client    *Client
	sessionID string
	width     int
	height    int
	quality   int
	seq       atomic.Uint64
}

// navigateTimeout bounds how long Navigate waits for the load event
// before proceeding; partially loaded pages still render.
const navigateTimeout = 10 * time.Second

// NewPage creates a tab and attaches to it. quality is the JPEG
// quality requested per capture.
func (b *Browser) NewPage(ctx context.Context, quality int, width, height int) (*Page, error) {
	var created struct {
		TargetID string `json:"targetId"`
	}
	err := b.client.Call(ctx, "", "Target.createTarget",
		map[string]any{"url": "about:blank"}, &created)
	if err != nil {
		return nil, fmt.Errorf("creating target: %w", err)
	}

	var attached struct {
		SessionID string `json:"sessionId"`
	}
	err = b.client.Call(ctx, "", "Target.attachToTarget",
		map[string]any{"targetId": created.TargetID, "flatten": true}, &attached)
	if err != nil {
		return nil, fmt.Errorf("attaching to target: %w", err)
	}

	p := &Page{
		client:    b.client,
		sessionID: attached.SessionID,
		width:     width,
		height:    height,
		quality:   quality,
	}
	if err := p.client.Call(ctx, p.sessionID, "Page.enable", nil, nil); err != nil {
		return nil, fmt.Errorf("enabling page events: %w", err)
	}
	return p, nil
}

// Navigate loads url and waits for the page's load event, up to a
// timeout. A slow page is not an error — the capture loop will show
// whatever has rendered so far.
func (p *Page) Navigate(ctx context.Context, url string) error {
	loaded := p.client.Subscribe(p.sessionID, "Page.loadEventFired")

	var res struct {
		ErrorText string `json:"errorText"`
	}
	err := p.client.Call(ctx, p.sessionID, "Page.navigate", map[string]any{"url": url}, &res)
	if err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	if res.ErrorText != "" {
		return fmt.Errorf("navigating to %s: %s", url, res.ErrorText)
	}

	select {
	case <-loaded:
	case <-time.After(navigateTimeout):
		log.Debug("load event not seen within %s, rendering anyway", navigateTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// Capture takes one screenshot. The returned capture carries the
// declared viewport dimensions and the next sequence number.
func (p *Page) Capture(ctx context.Context) (render.Capture, error) {
	var res struct {
		Data string `json:"data"`
	}
	err := p.client.Call(ctx, p.sessionID, "Page.captureScreenshot",
		map[string]any{"format": "jpeg", "quality": p.quality}, &res)
	if err != nil {
		return render.Capture{}, fmt.Errorf("capturing screenshot: %w", err)
	}

	data, err := base64.StdEncoding.DecodeString(res.Data)
	if err != nil {
		return render.Capture{}, fmt.Errorf("decoding screenshot payload: %w", err)
	}

	return render.Capture{
		Data:   data,
		Width:  p.width,
		Height: p.height,
		Seq:    p.seq.Add(1),
	}, nil
}

// Closed is closed when the underlying connection dies; no further
// captures will ever succeed.
func (p *Page) Closed() <-chan struct{} {
	return p.client.Done()
}
