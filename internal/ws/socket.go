package ws

import (
	"time"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/ntheocharis/undercover/internal/game"
)

// Server broadcasts live game events over Socket.IO. Clients join one room
// per game ID and receive phase_change, message, game_complete, and
// game_failed events; the server never takes game input from clients.
type Server struct {
	io *socketio.Server
}

func New() *Server {
	return &Server{io: socketio.NewServer(nil)}
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := srv.io

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:watch subscribes the connection to one game's event stream.
	io.OnEvent("/", "game:watch", func(s socketio.Conn, payload struct {
		GameID string `json:"gameId"`
	}) map[string]any {
		if payload.GameID == "" {
			return map[string]any{"error": "missing gameId"}
		}
		s.Join(payload.GameID)
		log.Info().Str("sid", s.ID()).Str("gameId", payload.GameID).Msg("game:watch")
		return map[string]any{"ok": true}
	})

	io.OnEvent("/", "game:unwatch", func(s socketio.Conn, payload struct {
		GameID string `json:"gameId"`
	}) {
		if payload.GameID != "" {
			s.Leave(payload.GameID)
		}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Warn().Err(e).Msg("socket error")
	})

	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	return io
}

func (srv *Server) broadcast(gameID, event string, data map[string]any) {
	data["gameId"] = gameID
	data["timestamp"] = time.Now().UTC()
	srv.io.BroadcastToRoom("/", gameID, event, data)
}

// Events returns a game.Events sink that forwards one game's notifications
// to the room for the given ID.
func (srv *Server) Events(gameID string) game.Events {
	return gameEvents{srv: srv, gameID: gameID}
}

// GameFailed announces an aborted game.
func (srv *Server) GameFailed(gameID string, err error) {
	srv.broadcast(gameID, "game_failed", map[string]any{"reason": err.Error()})
}

type gameEvents struct {
	srv    *Server
	gameID string
}

func (e gameEvents) PhaseChange(_ int, phase game.Phase) {
	e.srv.broadcast(e.gameID, "phase_change", map[string]any{"phase": phase})
}

func (e gameEvents) Message(_ int, msg game.Message) {
	e.srv.broadcast(e.gameID, "message", map[string]any{
		"speaker": msg.Speaker,
		"phase":   msg.Phase,
		"round":   msg.Round,
		"content": msg.Content,
		"ordinal": msg.Ordinal,
	})
}

func (e gameEvents) GameComplete(_ int, res *game.Result) {
	e.srv.broadcast(e.gameID, "game_complete", map[string]any{
		"winnerSide": res.WinnerSide,
		"impostor":   res.Impostor,
		"eliminated": res.Eliminated,
		"voteCounts": res.VoteCounts,
	})
}
