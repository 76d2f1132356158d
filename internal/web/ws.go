package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"pokeclone/internal/game"
)

// wsMessage is every frame the server sends on /ws.
type wsMessage struct {
	// fight, step or error
	Type   string           `json:"type"`
	Result *game.StepResult `json:"result,omitempty"`
	Fight  *game.FightView  `json:"fight,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// GET /ws
//
// The client sends actions ({"kind":"attack","index":0}); each one is
// answered with a step frame holding the result and the fight view, or an
// error frame. The connection opens with the current fight, if any.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	gs, id, fresh := s.loadSession(r.Context(), r)
	var header http.Header
	if fresh {
		header = http.Header{"Set-Cookie": {sessionCookie(id).String()}}
	}
	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		slog.Warn("websocket upgrade failed", "session", id, "err", err)
		return
	}
	defer conn.Close()

	if v, err := gs.Fight(); err == nil {
		if err := conn.WriteJSON(wsMessage{Type: "fight", Fight: &v}); err != nil {
			return
		}
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket closed", "session", id, "err", err)
			}
			return
		}

		var a game.Action
		if err := json.Unmarshal(payload, &a); err != nil {
			if err := conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		resp, err := act(gs, a)
		msg := wsMessage{Type: "step", Result: &resp.Result, Fight: &resp.Fight}
		if err != nil {
			msg = wsMessage{Type: "error", Error: err.Error()}
		}
		if err := conn.WriteJSON(msg); err != nil {
			slog.Debug("websocket write failed", "session", id, "err", err)
			return
		}
	}
}
