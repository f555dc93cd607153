package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sasha-s/go-deadlock"
)

const spectatorWriteTimeout = 5 * time.Second

// SpectatorSnapshot is the read-only view of the match pushed to observers.
// It never feeds back into simulation state.
type SpectatorSnapshot struct {
	Players     []SpectatorPlayer `json:"players"`
	Leaderboard map[string]int    `json:"leaderboard"`
	Winner      string            `json:"winner,omitempty"`
	Time        int64             `json:"time"`
}

// SpectatorPlayer is the subset of entity state exposed to observers.
type SpectatorPlayer struct {
	ID     uint64  `json:"id"`
	Name   string  `json:"name"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Angle  float32 `json:"angle"`
	Health int     `json:"health"`
	Score  int     `json:"score"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SpectatorHub fans match snapshots out to any number of websocket observers.
type SpectatorHub struct {
	mu    deadlock.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewSpectatorHub creates an empty hub.
func NewSpectatorHub() *SpectatorHub {
	return &SpectatorHub{conns: make(map[*websocket.Conn]struct{})}
}

// Serve runs the spectator HTTP endpoint. Blocks; call in a goroutine.
func (h *SpectatorHub) Serve(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", h.handleSpectate)
	log.Printf("Spectator feed on %s/spectate", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("Spectator server stopped: %v", err)
	}
}

// handleSpectate upgrades the connection and registers it. The read loop only
// detects closure; spectators never send anything meaningful.
func (h *SpectatorHub) handleSpectate(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Spectator upgrade error: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish marshals the snapshot once and writes it to every observer,
// dropping connections that fail.
func (h *SpectatorHub) Publish(snap SpectatorSnapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("Marshaling spectator snapshot failed: %v", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(spectatorWriteTimeout))
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(c)
		}
	}
}

func (h *SpectatorHub) drop(c *websocket.Conn) {
	h.mu.Lock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		c.Close()
	}
	h.mu.Unlock()
}

// buildSpectatorSnapshot copies the spectator-visible slice of match state.
func (s *Server) buildSpectatorSnapshot() SpectatorSnapshot {
	snap := SpectatorSnapshot{
		Players:     make([]SpectatorPlayer, 0, len(s.state.Players)),
		Leaderboard: make(map[string]int, len(s.state.Leaderboard)),
		Winner:      s.state.Winner,
		Time:        time.Now().UnixMilli(),
	}
	for id, p := range s.state.Players {
		snap.Players = append(snap.Players, SpectatorPlayer{
			ID:     id,
			Name:   p.Name,
			X:      p.X,
			Y:      p.Y,
			Angle:  p.Angle,
			Health: p.Health,
			Score:  s.state.Score(p.Name),
		})
	}
	for name, score := range s.state.Leaderboard {
		snap.Leaderboard[name] = score
	}
	return snap
}
