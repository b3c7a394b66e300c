// ABOUTME: Minimal DevTools protocol client over a websocket connection.
// ABOUTME: Correlates calls by id, fans events out to subscribers, detects closure.

package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// rpcMessage is the wire shape of everything the protocol sends in
// either direction: command results carry an id, events carry a method.
type rpcMessage struct {
	ID        uint64          `json:"id,omitempty"`
	Method    string          `json:"method,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *rpcError       `json:"error,omitempty"`
	SessionID string          `json:"sessionId,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("devtools error %d: %s", e.Code, e.Message)
}

// Client speaks the DevTools protocol over a single websocket
// connection. Commands are correlated by id; events are delivered to
// subscribers keyed by session and method. The client never initiates
// work on its own: the capture loop and page setup drive it.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan rpcMessage
	subs    map[string][]chan json.RawMessage

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// Dial connects to a DevTools websocket endpoint and starts the read
// loop.
func Dial(ctx context.Context, wsURL string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing devtools at %s: %w", wsURL, err)
	}

	c := &Client{
		conn:    conn,
		pending: make(map[uint64]chan rpcMessage),
		subs:    make(map[string][]chan json.RawMessage),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Call sends a command and waits for its response. sessionID may be
// empty for browser-level commands. When result is non-nil the
// response payload is unmarshaled into it.
func (c *Client) Call(ctx context.Context, sessionID, method string, params, result any) error {
	id := c.nextID.Add(1)
	ch := make(chan rpcMessage, 1)

	c.mu.Lock()
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	req := struct {
		ID        uint64 `json:"id"`
		Method    string `json:"method"`
		Params    any    `json:"params,omitempty"`
		SessionID string `json:"sessionId,omitempty"`
	}{ID: id, Method: method, Params: params, SessionID: sessionID}

	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		return fmt.Errorf("sending %s: %w", method, err)
	}

	select {
	case msg := <-ch:
		if msg.Error != nil {
			return fmt.Errorf("%s: %w", method, msg.Error)
		}
		if result != nil && len(msg.Result) > 0 {
			if err := json.Unmarshal(msg.Result, result); err != nil {
				return fmt.Errorf("decoding %s result: %w", method, err)
			}
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-c.done:
		return fmt.Errorf("%s: %w", method, c.Err())
	}
}

// Subscribe returns a channel receiving the params of every event with
// the given method on the given session. Events arriving while the
// subscriber is busy are dropped rather than blocking the read loop;
// the feed is continuous, so a missed event is recoverable.
func (c *Client) Subscribe(sessionID, method string) <-chan json.RawMessage {
	ch := make(chan json.RawMessage, 16)
	key := sessionID + "\x00" + method

	c.mu.Lock()
	c.subs[key] = append(c.subs[key], ch)
	c.mu.Unlock()
	return ch
}

// Done is closed when the connection is gone — the capture source will
// never produce another frame, which callers treat as fatal.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err reports why the connection closed, nil before Done is closed.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeErr
}

// Close tears the connection down.
func (c *Client) Close() error {
	c.closeWith(fmt.Errorf("client closed"))
	return c.conn.Close()
}

func (c *Client) closeWith(err error) {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closeErr = err
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *Client) readLoop() {
	for {
		var msg rpcMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.closeWith(fmt.Errorf("devtools connection closed: %w", err))
			return
		}

		switch {
		case msg.ID != 0:
			c.mu.Lock()
			ch := c.pending[msg.ID]
			c.mu.Unlock()
			if ch != nil {
				ch <- msg
			}
		case msg.Method != "":
			key := msg.SessionID + "\x00" + msg.Method
			c.mu.Lock()
			subs := c.subs[key]
			c.mu.Unlock()
			for _, ch := range subs {
				select {
				case ch <- msg.Params:
				default:
				}
			}
		}
	}
}
