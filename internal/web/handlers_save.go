package web

import (
	"errors"
	"log/slog"
	"net/http"

	"pokeclone/internal/save"
)

type slotRequest struct {
	Slot string `json:"slot"`
}

type slotResponse struct {
	Slot string    `json:"slot"`
	Save save.Save `json:"save"`
}

var errNoSaves = errors.New("saving is disabled")

func (s *Server) slot(r *http.Request) (string, error) {
	req := slotRequest{Slot: save.DefaultSlot}
	if err := decodeBody(r, &req); err != nil {
		return "", err
	}
	return req.Slot, nil
}

// POST /save
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gs, id := s.getOrCreateSession(ctx, w, r)
	if s.Saves == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: errNoSaves.Error()})
		return
	}
	slot, err := s.slot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sv := save.FromProgress(gs.Progress())
	if err := s.Saves.Write(ctx, slot, sv); err != nil {
		slog.Error("writing save", "session", id, "slot", slot, "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slotResponse{Slot: slot, Save: sv})
}

// POST /load
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gs, id := s.getOrCreateSession(ctx, w, r)
	if s.Saves == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: errNoSaves.Error()})
		return
	}
	slot, err := s.slot(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sv, ok, err := s.Saves.Load(ctx, slot)
	if err != nil {
		slog.Error("reading save", "session", id, "slot", slot, "err", err)
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no save in slot " + slot})
		return
	}
	if err := gs.Restore(sv.Progress()); err != nil {
		slog.Warn("rejected save", "session", id, "slot", slot, "err", err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, gs.Team())
}
