package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"SlideInk/internal/ink"
)

// pointerStride keeps pointer IDs of different peers apart.
const pointerStride = 1 << 16

// Peer is one connected remote pen device.
type Peer struct {
	Conn *websocket.Conn
	slot int

	// down is the pointer of the peer's unfinished gesture, or -1.
	down int
}

// PeerManager tracks connected remote devices.
type PeerManager struct {
	peers map[string]*Peer
	next  int
	mu    sync.RWMutex
}

// NewPeerManager creates a new manager.
func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

// Add registers a peer and assigns it a pointer ID range.
func (pm *PeerManager) Add(conn *websocket.Conn) *Peer {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.next++
	peer := &Peer{Conn: conn, slot: pm.next, down: -1}
	addr := conn.RemoteAddr().String()
	pm.peers[addr] = peer
	log.Printf("[REMOTE] Pen device connected from %s", addr)
	return peer
}

// Remove forgets a peer.
func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	delete(pm.peers, addr)
	log.Printf("[REMOTE] Pen device %s disconnected", addr)
}

// Len returns the number of connected peers.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// CloseAll closes every peer connection.
func (pm *PeerManager) CloseAll() {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	for _, p := range pm.peers {
		p.Conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"),
			time.Now().Add(time.Second))
		p.Conn.Close()
	}
}

// Server accepts remote pen devices over websocket at /pen.
type Server struct {
	addr     string
	sink     func(Event)
	peers    *PeerManager
	upgrader websocket.Upgrader
}

// NewServer returns a server listening on port that hands every valid
// event to sink. sink is called from connection goroutines.
func NewServer(port int, sink func(Event)) *Server {
	return &Server{
		addr:  fmt.Sprintf(":%d", port),
		sink:  sink,
		peers: NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// pen devices are on the local network and load no pages
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving /pen and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/pen", s.handlePen)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"alive","peers":%d}`, s.peers.Len())
	})
	return mux
}

// Serve listens until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("[REMOTE] Pen server listening on %s", s.addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("pen server: %w", err)
	case <-ctx.Done():
	}

	s.peers.CloseAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("pen server shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("pen server: %w", err)
	}
	return nil
}

func (s *Server) handlePen(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[REMOTE] Upgrade failed: %v", err)
		return
	}
	peer := s.peers.Add(conn)
	defer conn.Close()
	defer s.peers.Remove(peer)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[REMOTE] Read from %s: %v", conn.RemoteAddr(), err)
			}
			s.abandon(peer)
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[REMOTE] Skipping malformed message from %s: %v", conn.RemoteAddr(), err)
			continue
		}
		ev, err := msg.Event()
		if err != nil {
			log.Printf("[REMOTE] Skipping message from %s: %v", conn.RemoteAddr(), err)
			continue
		}
		ev.Pointer.ID = peer.slot*pointerStride + ev.Pointer.ID%pointerStride
		switch ev.Kind {
		case EventDown:
			peer.down = ev.Pointer.ID
		case EventUp, EventCancel:
			peer.down = -1
		}
		s.sink(ev)
	}
}

// abandon cancels a gesture the peer left open when its connection dropped.
func (s *Server) abandon(peer *Peer) {
	if peer.down < 0 {
		return
	}
	log.Printf("[REMOTE] Cancelling open gesture of %s", peer.Conn.RemoteAddr())
	s.sink(Event{Kind: EventCancel, Pointer: ink.PointerEvent{ID: peer.down, Device: ink.DevicePen}})
	peer.down = -1
}
