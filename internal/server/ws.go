package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lgbarn/connect4-go/internal/board"
	"github.com/lgbarn/connect4-go/internal/game"
	"github.com/lgbarn/connect4-go/internal/output"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSRequest is a client message on /ws. Type is "new", "move" or "undo".
type WSRequest struct {
	Type    string `json:"type"`
	AIFirst bool   `json:"aiFirst,omitempty"`
	Depth   int    `json:"depth,omitempty"`
	Column  int    `json:"column"`
}

// WSResponse is a server message on /ws. Type is "state" or "error".
type WSResponse struct {
	Type     string               `json:"type"`
	Human    string               `json:"human,omitempty"`
	Reply    *int                 `json:"reply,omitempty"` // Column the computer played, if it moved
	Position *output.PositionJSON `json:"position,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// handleWS runs one game per connection. Each request is answered with
// exactly one response; errors leave the game as it was.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
	var session *game.Session

	for {
		if s.cfg.IdleTimeout > 0 {
			conn.SetReadDeadline(time.Now().Add(s.cfg.IdleTimeout))
		}
		var req WSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Msg("websocket closed")
			}
			return
		}

		resp := s.serveWSRequest(r, &session, req, log)
		if s.cfg.WriteTimeout > 0 {
			conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func (s *Server) serveWSRequest(r *http.Request, session **game.Session, req WSRequest, log zerolog.Logger) WSResponse {
	ctx := r.Context()
	reply := -1

	switch req.Type {
	case "new":
		ai := game.NewAIPlayer(s.depth(req.Depth))
		ai.FeatureThreshold = s.search.FeatureThreshold
		ai.Log = log
		next, col, err := game.NewSession(ctx, ai, req.AIFirst)
		if err != nil {
			return wsError(err)
		}
		*session = next
		reply = col
		log.Debug().Bool("ai_first", req.AIFirst).Int("depth", ai.Depth).Int("threshold", ai.FeatureThreshold).Msg("websocket game started")
	case "move":
		if *session == nil {
			return wsError(errNoGame)
		}
		col, err := (*session).Move(ctx, req.Column)
		if err != nil {
			return wsError(err)
		}
		reply = col
	case "undo":
		if *session == nil {
			return wsError(errNoGame)
		}
		if err := (*session).Undo(); err != nil {
			return wsError(err)
		}
	default:
		return wsError(fmt.Errorf("unknown message type %q", req.Type))
	}
	return stateResponse(*session, reply)
}

var errNoGame = fmt.Errorf("no game in progress; send a \"new\" message first")

func stateResponse(s *game.Session, reply int) WSResponse {
	resp := WSResponse{
		Type:     "state",
		Human:    s.Human().String(),
		Position: output.PositionToJSON(s.Board),
	}
	if reply >= 0 && reply < board.Columns {
		resp.Reply = &reply
	}
	return resp
}

func wsError(err error) WSResponse {
	return WSResponse{Type: "error", Error: err.Error()}
}
