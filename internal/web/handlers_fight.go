package web

import (
	"net/http"

	"pokeclone/internal/game"
)

// GET /fight
func (s *Server) handleFight(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	v, err := gs.Fight()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// actionResponse answers every fight action, over HTTP and WebSocket.
type actionResponse struct {
	Result game.StepResult `json:"result"`
	Fight  game.FightView  `json:"fight"`
}

// POST /fight/action
func (s *Server) handleFightAction(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	var a game.Action
	if err := decodeBody(r, &a); err != nil {
		writeError(w, err)
		return
	}
	resp, err := act(gs, a)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func act(gs *game.Session, a game.Action) (actionResponse, error) {
	res, err := gs.Act(a)
	if err != nil {
		return actionResponse{}, err
	}
	v, err := gs.Fight()
	if err != nil {
		return actionResponse{}, err
	}
	return actionResponse{Result: res, Fight: v}, nil
}

// POST /fight/trainer
func (s *Server) handleTrainerFight(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	writeError(w, gs.StartTrainerFight())
}
