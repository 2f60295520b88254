package preview

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
)

// Server mirrors transmitted frames to websocket clients so a browser
// can show what the strip is doing. It plugs into the controller as a
// frame observer and never touches the serial link itself.
type Server struct {
	mu       sync.RWMutex
	count    int
	last     []byte // payload only, 3*count bytes
	frameID  uint64
	start    time.Time
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewServer(ledCount int, log zerolog.Logger) *Server {
	return &Server{
		count:    ledCount,
		start:    time.Now(),
		clients:  map[*websocket.Conn]bool{},
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		log:      log,
	}
}

// ObserveFrame takes one full wire frame and broadcasts its payload.
// Matches the controller's frame-observer signature.
func (s *Server) ObserveFrame(raw []byte) {
	if len(raw) < frame.HeaderLen {
		return
	}
	payload := raw[frame.HeaderLen:]

	s.mu.Lock()
	s.frameID++
	s.last = append(s.last[:0], payload...)
	msg := struct {
		T       int64  `json:"t"`
		FrameID uint64 `json:"frame_id"`
		Count   int    `json:"count"`
		RGB     []byte `json:"rgb"`
	}{T: time.Now().UnixNano(), FrameID: s.frameID, Count: s.count, RGB: payload}
	b, _ := json.Marshal(msg)
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.log.Debug().Err(err).Msg("write frame")
		}
	}
	s.mu.Unlock()
}

// HandleFrames upgrades to a websocket and streams frames until the
// client goes away.
func (s *Server) HandleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
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

// HandleHealth reports liveness and the last frame counter.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.start).Seconds(),
		"count":    s.count,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// LastPayload returns a copy of the most recent RGB payload, or nil.
func (s *Server) LastPayload() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	return append([]byte(nil), s.last...)
}
