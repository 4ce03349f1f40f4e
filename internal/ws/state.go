package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/weatherlamp/internal/diagnostics"
	"github.com/coreman2200/weatherlamp/internal/lamp"
	"github.com/coreman2200/weatherlamp/internal/render"
)

// State owns the websocket surface: live frame preview on /ws, the
// inbound control channel on /control, diagnostics on /diag, and
// /health. Control payloads are decoded at the boundary and queued for
// the single control-loop goroutine; nothing here mutates lamp state.
// writeWait bounds every connection write so one stalled client can
// never wedge the render loop.
const writeWait = 200 * time.Millisecond

// diagBacklog is how many recent diagnostics a late /diag subscriber
// gets replayed; startup fallbacks happen before anyone is connected.
const diagBacklog = 16

type State struct {
	mu          sync.Mutex
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	recent      []diag.Diagnostic

	// diagMu serializes writes to /diag connections; PushDiag and the
	// heartbeat run on different goroutines and gorilla allows only one
	// writer per connection.
	diagMu sync.Mutex

	frameID   uint64
	slots     int
	startTime time.Time

	// Commands is drained by the render loop each tick.
	Commands chan lamp.Command

	// Presses is sampled for the heartbeat; may be nil.
	Presses func() int
}

func NewState(slots int) *State {
	return &State{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		slots:       slots,
		startTime:   time.Now(),
		Commands:    make(chan lamp.Command, 16),
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type topology struct {
	Type  string `json:"type"`
	Slots int    `json:"slots"`
}

// HandleFramesWS subscribes a client to binary frame broadcasts.
func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	_ = conn.WriteJSON(topology{Type: "topology", Slots: s.slots})
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleControlWS receives raw control payloads (binary messages) and
// queues decoded commands for the render loop. Bad payloads are logged,
// reported on /diag and dropped; the lamp keeps its state.
func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	go func() {
		defer conn.Close()
		for {
			mt, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			cmd, err := lamp.ParseCommand(payload)
			if err != nil {
				log.Warn().Err(err).Msg("control payload rejected")
				s.PushDiag(diag.CommandRejected(err))
				continue
			}
			select {
			case s.Commands <- cmd:
			default:
				log.Warn().Msg("command queue full, dropping")
			}
		}
	}()
}

// HandleDiagWS subscribes a client to diagnostic events, replaying the
// recent backlog first so events from before the connection (startup
// config fallbacks in particular) are not lost.
func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	backlog := make([]diag.Diagnostic, len(s.recent))
	copy(backlog, s.recent)
	s.mu.Unlock()

	s.diagMu.Lock()
	for _, d := range backlog {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(d); err != nil {
			s.diagMu.Unlock()
			conn.Close()
			return
		}
	}
	s.mu.Lock()
	s.diagClients[conn] = true
	s.mu.Unlock()
	s.diagMu.Unlock()
	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.diagClients, conn)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := map[string]any{
		"status":  "ok",
		"slots":   s.slots,
		"frames":  s.frameID,
		"clients": len(s.clients),
		"uptime":  time.Since(s.startTime).Seconds(),
	}
	s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// BroadcastFrame fans the rendered frame out to preview clients as a
// packed RGB binary message.
func (s *State) BroadcastFrame(frame []render.Color) {
	s.mu.Lock()
	s.frameID++
	if len(s.clients) == 0 {
		s.mu.Unlock()
		return
	}
	rgb := make([]byte, len(frame)*3)
	for i, c := range frame {
		rgb[i*3+0] = c.R
		rgb[i*3+1] = c.G
		rgb[i*3+2] = c.B
	}
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.BinaryMessage, rgb); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}

// PushDiag records a diagnostic and fans it out to /diag subscribers.
func (s *State) PushDiag(d diag.Diagnostic) {
	s.mu.Lock()
	s.recent = append(s.recent, d)
	if len(s.recent) > diagBacklog {
		s.recent = s.recent[len(s.recent)-diagBacklog:]
	}
	s.mu.Unlock()
	s.writeDiag(d)
}

// writeDiag sends one JSON message to every /diag connection, dropping
// connections whose writes fail or time out.
func (s *State) writeDiag(v any) {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.diagClients))
	for c := range s.diagClients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteJSON(v); err != nil {
			s.mu.Lock()
			delete(s.diagClients, c)
			s.mu.Unlock()
			c.Close()
		}
	}
}

type heartbeat struct {
	Type    string  `json:"type"`
	Uptime  float64 `json:"uptime"`
	Frames  uint64  `json:"frames"`
	Presses int     `json:"presses"`
}

// RunHeartbeat publishes a periodic status ping to diagnostic
// subscribers. Observability only; the lamp ignores it.
func (s *State) RunHeartbeat(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			hb := heartbeat{
				Type:   "ping",
				Uptime: time.Since(s.startTime).Seconds(),
				Frames: s.frameID,
			}
			s.mu.Unlock()
			if s.Presses != nil {
				hb.Presses = s.Presses()
			}
			s.writeDiag(hb)
		}
	}
}
