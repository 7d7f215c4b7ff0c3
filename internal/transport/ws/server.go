// Package ws serves slime chunk searches over a websocket, streaming tile
// progress while the search runs.
package ws

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/llGaetanll/McUtils/internal/storage"
	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Message types sent by the server.
const (
	TypeProgress = "progress"
	TypeResult   = "result"
	TypeError    = "error"
)

// Request is the single message a client sends after connecting.
type Request struct {
	Seed   int64          `json:"seed"`
	Start  world.ChunkPos `json:"start"`
	End    world.ChunkPos `json:"end"`
	Width  int32          `json:"width"`
	Height int32          `json:"height"`
}

// Message is sent by the server. Progress messages carry Done, Total and
// Best; the final result message carries Result and Probability.
type Message struct {
	Type        string         `json:"type"`
	Done        int            `json:"done,omitempty"`
	Total       int            `json:"total,omitempty"`
	Best        *search.Result `json:"best,omitempty"`
	Result      *search.Result `json:"result,omitempty"`
	Probability float64        `json:"probability,omitempty"`
	RunID       string         `json:"run_id,omitempty"`
	Error       string         `json:"error,omitempty"`
}

const writeTimeout = 5 * time.Second

type Server struct {
	cfg   search.Config
	index *storage.Index
	log   *slog.Logger

	upgrader websocket.Upgrader
}

// NewServer creates a search service. cfg supplies tiling and worker
// settings for every search; index, if not nil, records finished runs.
func NewServer(cfg search.Config, index *storage.Index, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg.Logger = log
	cfg.Progress = nil
	if cfg.TileSize <= 0 {
		cfg.TileSize = search.DefaultTileSize
	}
	return &Server{
		cfg:   cfg,
		index: index,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler upgrades the connection and runs one search.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Debug("upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			_ = writeJSON(conn, Message{Type: TypeError, Error: "bad request: " + err.Error()})
			return
		}
		_ = conn.SetReadDeadline(time.Time{})

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Any further read only ends when the client goes away.
		go func() {
			for {
				if _, _, err := conn.NextReader(); err != nil {
					cancel()
					return
				}
			}
		}()

		s.run(ctx, conn, req)
	}
}

func (s *Server) run(ctx context.Context, conn *websocket.Conn, req Request) {
	log := s.log.With("remote", conn.RemoteAddr().String(), "seed", req.Seed)
	w := search.Window{Width: req.Width, Height: req.Height}

	cfg := s.cfg
	cfg.Progress = func(p search.Progress) {
		best := p.Best
		if err := writeJSON(conn, Message{Type: TypeProgress, Done: p.Done, Total: p.Total, Best: &best}); err != nil {
			log.Debug("progress not delivered", "error", err)
		}
	}

	began := time.Now()
	res, err := search.SearchLarge(ctx, req.Seed, req.Start, req.End, w, cfg)
	if err != nil {
		log.Info("search failed", "error", err)
		_ = writeJSON(conn, Message{Type: TypeError, Error: err.Error()})
		return
	}
	elapsed := time.Since(began)

	msg := Message{Type: TypeResult, Result: &res, Probability: res.Probability()}
	if s.index != nil {
		id, err := s.index.Record(ctx, storage.Run{
			Start:    req.Start,
			End:      req.End,
			Window:   w,
			TileSize: s.cfg.TileSize,
			Result:   res,
			Elapsed:  elapsed,
		})
		if err != nil {
			log.Warn("record run", "error", err)
		}
		msg.RunID = id
	}
	log.Info("search done", "count", res.Count, "elapsed", elapsed)
	if err := writeJSON(conn, msg); err != nil {
		log.Debug("result not delivered", "error", err)
		return
	}
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, b)
}
