package web

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"pokeclone/internal/dex"
)

// GET /team
func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	writeJSON(w, http.StatusOK, gs.Team())
}

type recruitRequest struct {
	SpeciesID    int    `json:"species_id"`
	IndividualID int    `json:"individual_id"`
	Surname      string `json:"surname"`
}

const maxSurnameLen = 32

// truncateSurname keeps at most maxSurnameLen bytes, cutting on a rune
// boundary.
func truncateSurname(s string) string {
	if len(s) <= maxSurnameLen {
		return s
	}
	n := maxSurnameLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// POST /team/recruit
func (s *Server) handleRecruit(w http.ResponseWriter, r *http.Request) {
	gs, id := s.getOrCreateSession(r.Context(), w, r)
	var req recruitRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	req.Surname = truncateSurname(req.Surname)
	ref := dex.CreatureRef{SpeciesID: req.SpeciesID, IndividualID: req.IndividualID}
	m, err := gs.Recruit(ref, req.Surname)
	if err != nil {
		writeError(w, err)
		return
	}
	slog.Info("recruited", "session", id, "creature", ref.String())
	writeJSON(w, http.StatusCreated, m)
}

type walkRequest struct {
	DX    int  `json:"dx"`
	DY    int  `json:"dy"`
	Herbs bool `json:"herbs"`
}

// POST /walk
func (s *Server) handleWalk(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	var req walkRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	res, err := gs.Walk(req.DX, req.DY, req.Herbs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
