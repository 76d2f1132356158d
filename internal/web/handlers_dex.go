package web

import (
	"fmt"
	"net/http"
	"strconv"

	"pokeclone/internal/dex"
	"pokeclone/internal/dexprint"
)

// GET /dex
func (s *Server) handleDex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dexEntries(s.Dex))
}

// GET /dex/{species}/{individual}
func (s *Server) handleCreature(w http.ResponseWriter, r *http.Request) {
	sid, err1 := strconv.Atoi(r.PathValue("species"))
	iid, err2 := strconv.Atoi(r.PathValue("individual"))
	if err1 != nil || err2 != nil {
		http.NotFound(w, r)
		return
	}
	ref := dex.CreatureRef{SpeciesID: sid, IndividualID: iid}
	// Checked here so the panicking lookups below never see a bad ref.
	c, err := s.Dex.LookupCreature(ref)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	entry := creatureEntry(ref, c)
	attacks := s.Dex.FilterAttacksForCreature(c)
	entry.Attacks = &attacks
	writeJSON(w, http.StatusOK, entry)
}

// GET /dex.pdf
func (s *Server) handleDexPDF(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if title == "" {
		title = fmt.Sprintf("%d species", len(s.Dex.Species))
	}
	pdf, err := dexprint.Generate(s.Dex, title)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="dex.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
