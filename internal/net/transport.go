package net

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"PaintBoard/internal/config"
	"PaintBoard/internal/render"
	"PaintBoard/internal/state"
)

const maxMessageSize = 64 << 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// boards are served on the local network to any browser that finds them
	CheckOrigin: func(*http.Request) bool { return true },
}

// Session is one browser connection and the board it draws on. All reads,
// board events and writes happen on the session's own goroutine.
type Session struct {
	ID    string
	conn  *websocket.Conn
	board *state.Board
	cfg   config.Config
	fonts *render.Fonts
}

// SessionManager tracks the live browser sessions.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (sm *SessionManager) Add(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[s.ID] = s
	log.Printf("[WS] Session %s opened from %s", s.ID, s.conn.RemoteAddr())
}

func (sm *SessionManager) Remove(s *Session) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, s.ID)
	log.Printf("[WS] Session %s closed", s.ID)
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Server hands every websocket connection its own board.
type Server struct {
	cfg      config.Config
	fonts    *render.Fonts
	sessions *SessionManager
	http     *http.Server
}

func NewServer(cfg config.Config, fonts *render.Fonts) *Server {
	s := &Server{cfg: cfg, fonts: fonts, sessions: NewSessionManager()}
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Sessions() *SessionManager { return s.sessions }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Printf("[WS] Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving boards: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	sess := &Session{
		ID:    uuid.NewString(),
		conn:  conn,
		board: s.cfg.NewBoard(),
		cfg:   s.cfg,
		fonts: s.fonts,
	}
	s.sessions.Add(sess)
	defer s.sessions.Remove(sess)
	sess.run()
}

func (s *Session) run() {
	defer s.conn.Close()
	s.conn.SetReadLimit(maxMessageSize)

	s.board.SetRenderer(state.RendererFunc(s.sendFrame))
	s.sendFrame(s.board.Frame())

	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			// a malformed message is reported, the connection survives
			if isDecodeError(err) {
				s.sendError(err)
				continue
			}
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[WS] Session %s ended: %v", s.ID, err)
			}
			return
		}
		if ev.Type == EventSnapshot {
			if err := s.sendSnapshot(); err != nil {
				log.Printf("[WS] Session %s snapshot failed: %v", s.ID, err)
				s.sendError(err)
			}
			continue
		}
		if err := Apply(s.board, ev); err != nil {
			s.sendError(err)
		}
	}
}

func (s *Session) sendFrame(f state.Frame) {
	if err := s.conn.WriteJSON(NewFrameMessage(f)); err != nil {
		log.Printf("[WS] Session %s: sending frame %d: %v", s.ID, f.Revision, err)
	}
}

func (s *Session) sendError(err error) {
	msg := ErrorMessage{Type: "error", Message: err.Error()}
	if werr := s.conn.WriteJSON(msg); werr != nil {
		log.Printf("[WS] Session %s: sending error: %v", s.ID, werr)
	}
}

// sendSnapshot rasterizes the current frame and sends it as a PNG.
func (s *Session) sendSnapshot() error {
	raster := render.NewRaster(s.cfg.Canvas.Width, s.cfg.Canvas.Height, 1, s.fonts)
	defer raster.Close()
	if err := render.FrameOf(raster, s.board.Frame(), s.cfg.RenderOptions()); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, buf.Bytes())
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}
