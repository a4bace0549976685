package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/router"
)

// NavigationEvent is the wire form of a settled navigation, sent to every
// feed subscriber.
type NavigationEvent struct {
	Href       string         `json:"href"`
	Path       string         `json:"path"`
	Params     map[string]any `json:"params,omitempty"`
	Search     map[string]any `json:"search,omitempty"`
	Error      string         `json:"error,omitempty"`
	ErrorLevel int            `json:"errorLevel"`
}

// snapshotEvent projects a resolved snapshot into its wire form. Component
// values stay out of it; subscribers resolve views through their own
// channel.
func snapshotEvent(res *router.Resolved) NavigationEvent {
	ev := NavigationEvent{
		Href:       res.Href,
		Path:       res.Path,
		Params:     res.Params,
		Search:     res.Search,
		ErrorLevel: res.ErrIndex,
	}
	if res.Err != nil {
		ev.Error = res.Err.Error()
	}
	return ev
}

// feed fans settled navigations out to WebSocket subscribers. Each client
// gets a buffered outbound queue and a write pump; clients that cannot
// keep up are dropped rather than back-pressuring the navigation pipeline.
type feed struct {
	logger       *slog.Logger
	upgrader     websocket.Upgrader
	pingInterval time.Duration

	mu      sync.Mutex
	clients map[*feedClient]struct{}
	closed  bool
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

const feedSendBuffer = 16

func newFeed(logger *slog.Logger, checkOrigin func(r *http.Request) bool, pingInterval time.Duration) *feed {
	return &feed{
		logger:       logger,
		upgrader:     websocket.Upgrader{CheckOrigin: checkOrigin},
		pingInterval: pingInterval,
		clients:      make(map[*feedClient]struct{}),
	}
}

// afterHook is registered on the router; every settled navigation is
// broadcast once.
func (f *feed) afterHook(ctx context.Context, nav router.Nav) error {
	msg, err := json.Marshal(snapshotEvent(nav.To))
	if err != nil {
		f.logger.Error("navigation event encoding failed", "error", err)
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
			f.logger.Warn("dropping slow feed client")
			delete(f.clients, c)
			close(c.send)
		}
	}
	return nil
}

func (f *feed) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Error("feed upgrade failed", "error", err)
		return
	}

	c := &feedClient{conn: conn, send: make(chan []byte, feedSendBuffer)}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		conn.Close()
		return
	}
	f.clients[c] = struct{}{}
	f.mu.Unlock()

	go f.writePump(c)
	go f.readPump(c)
}

// writePump drains the client's queue and keeps the connection alive.
func (f *feed) writePump(c *feedClient) {
	ticker := time.NewTicker(f.pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				f.remove(c)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				f.remove(c)
				return
			}
		}
	}
}

// readPump discards inbound messages; the feed is one-way. It exists to
// notice closed connections and process control frames.
func (f *feed) readPump(c *feedClient) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				f.logger.Error("feed read error", "error", err)
			}
			f.remove(c)
			return
		}
	}
}

// remove unregisters a client if still registered, closing its queue.
func (f *feed) remove(c *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; ok {
		delete(f.clients, c)
		close(c.send)
	}
}

// close disconnects every client and refuses new ones.
func (f *feed) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	for c := range f.clients {
		delete(f.clients, c)
		close(c.send)
	}
}
