// ABOUTME: Tests for the DevTools client against an in-process websocket server.
// ABOUTME: Covers call correlation, protocol errors, events, and closure detection.

package browser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeEndpoint is a scripted DevTools server. handle receives every
// command and returns its result or a protocol error.
type fakeEndpoint struct {
	srv    *httptest.Server
	handle func(method string, params json.RawMessage) (any, *rpcError)

	mu   sync.Mutex
	conn *websocket.Conn
}

func newFakeEndpoint(t *testing.T, handle func(method string, params json.RawMessage) (any, *rpcError)) *fakeEndpoint {
	t.Helper()
	f := &fakeEndpoint{handle: handle}
	upgrader := websocket.Upgrader{}

	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		f.mu.Lock()
		f.conn = conn
		f.mu.Unlock()

		for {
			var req struct {
				ID        uint64          `json:"id"`
				Method    string          `json:"method"`
				Params    json.RawMessage `json:"params"`
				SessionID string          `json:"sessionId"`
			}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			result, rpcErr := f.handle(req.Method, req.Params)
			resp := map[string]any{"id": req.ID}
			if rpcErr != nil {
				resp["error"] = rpcErr
			} else {
				resp["result"] = result
			}
			if req.SessionID != "" {
				resp["sessionId"] = req.SessionID
			}
			f.writeJSON(t, resp)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeEndpoint) writeJSON(t *testing.T, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		t.Fatal("no connection established")
	}
	// Write errors during teardown are expected; the client asserts
	// behavior, not the server.
	_ = f.conn.WriteJSON(v)
}

// hangup closes the server side of the websocket connection. The
// connection is hijacked during the upgrade, so the httptest server's
// CloseClientConnections no longer tracks it and cannot close it.
func (f *fakeEndpoint) hangup(t *testing.T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conn == nil {
		t.Fatal("no connection established")
	}
	_ = f.conn.Close()
}

// emit pushes an event frame to the connected client.
func (f *fakeEndpoint) emit(t *testing.T, sessionID, method string, params any) {
	f.writeJSON(t, map[string]any{
		"method":    method,
		"params":    params,
		"sessionId": sessionID,
	})
}

func (f *fakeEndpoint) wsURL() string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http")
}

func dialFake(t *testing.T, f *fakeEndpoint) *Client {
	t.Helper()
	c, err := Dial(context.Background(), f.wsURL())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_CallRoundTrip(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		if method != "Browser.getVersion" {
			t.Errorf("unexpected method %q", method)
		}
		return map[string]any{"product": "HeadlessChrome/121.0"}, nil
	})
	c := dialFake(t, f)

	var res struct {
		Product string `json:"product"`
	}
	if err := c.Call(context.Background(), "", "Browser.getVersion", nil, &res); err != nil {
		t.Fatalf("call: %v", err)
	}
	if res.Product != "HeadlessChrome/121.0" {
		t.Errorf("product = %q", res.Product)
	}
}

func TestClient_CallSequential(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		return map[string]any{"echo": method}, nil
	})
	c := dialFake(t, f)

	for _, method := range []string{"A.a", "B.b", "C.c"} {
		var res struct {
			Echo string `json:"echo"`
		}
		if err := c.Call(context.Background(), "", method, nil, &res); err != nil {
			t.Fatalf("call %s: %v", method, err)
		}
		if res.Echo != method {
			t.Errorf("response for %s carried %q", method, res.Echo)
		}
	}
}

func TestClient_ProtocolError(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		return nil, &rpcError{Code: -32601, Message: "method not found"}
	})
	c := dialFake(t, f)

	err := c.Call(context.Background(), "", "No.such", nil, nil)
	if err == nil || !strings.Contains(err.Error(), "method not found") {
		t.Errorf("err = %v, want protocol error", err)
	}
}

func TestClient_EventSubscription(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		return map[string]any{}, nil
	})
	c := dialFake(t, f)

	events := c.Subscribe("sess-1", "Page.loadEventFired")

	// A call forces the connection to exist before the server emits.
	if err := c.Call(context.Background(), "", "Page.enable", nil, nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	f.emit(t, "sess-1", "Page.loadEventFired", map[string]any{"timestamp": 1.5})

	select {
	case params := <-events:
		if !strings.Contains(string(params), "timestamp") {
			t.Errorf("event params = %s", params)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestClient_EventSessionIsolation(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		return map[string]any{}, nil
	})
	c := dialFake(t, f)

	other := c.Subscribe("other-session", "Page.loadEventFired")
	if err := c.Call(context.Background(), "", "Page.enable", nil, nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	f.emit(t, "sess-1", "Page.loadEventFired", map[string]any{})

	select {
	case <-other:
		t.Error("event delivered to a different session's subscriber")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestClient_DoneOnServerClose(t *testing.T) {
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		return map[string]any{}, nil
	})
	c := dialFake(t, f)

	if err := c.Call(context.Background(), "", "Page.enable", nil, nil); err != nil {
		t.Fatalf("call: %v", err)
	}
	f.hangup(t)

	select {
	case <-c.Done():
		if c.Err() == nil {
			t.Error("Done closed with nil Err")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Done not closed after server hangup")
	}
}

func TestClient_CallContextCancellation(t *testing.T) {
	block := make(chan struct{})
	f := newFakeEndpoint(t, func(method string, params json.RawMessage) (any, *rpcError) {
		<-block // never respond until released
		return map[string]any{}, nil
	})
	defer close(block)
	c := dialFake(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := c.Call(ctx, "", "Slow.call", nil, nil); err == nil {
		t.Error("expected context error for unanswered call")
	}
}
