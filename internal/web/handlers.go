package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"pokeclone/internal/dex"
	"pokeclone/internal/game"
	"pokeclone/internal/save"
	"pokeclone/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type Server struct {
	Dex   *dex.Dex
	Store session.Store[*game.Session]
	// Saves may be nil; /save and /load then answer 503.
	Saves save.Store
	// NewGame builds the session of a new player. Nil gives an empty team
	// and the default encounter rate.
	NewGame func() *game.Session
	Tmpl    *template.Template
	// AssetsDir holds drop-in sprites under textures/creatures. Empty means
	// "static".
	AssetsDir string

	upgrader websocket.Upgrader
}

const cookieName = "pokeclone_sid"

// NewServer wires a Server with the embedded templates.
func NewServer(d *dex.Dex, store session.Store[*game.Session], saves save.Store, newGame func() *game.Session) *Server {
	return &Server{
		Dex:     d,
		Store:   store,
		Saves:   saves,
		NewGame: newGame,
		Tmpl:    template.Must(template.ParseFS(templateFS, "templates/*.html")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)

	mux.HandleFunc("GET /dex", s.handleDex)
	mux.HandleFunc("GET /dex/{species}/{individual}", s.handleCreature)
	mux.HandleFunc("GET /dex.pdf", s.handleDexPDF)
	mux.HandleFunc("GET /textures/creatures/{file}", s.handleSprite)

	mux.HandleFunc("GET /team", s.handleTeam)
	mux.HandleFunc("POST /team/recruit", s.handleRecruit)
	mux.HandleFunc("POST /walk", s.handleWalk)

	mux.HandleFunc("GET /fight", s.handleFight)
	mux.HandleFunc("POST /fight/action", s.handleFightAction)
	mux.HandleFunc("POST /fight/trainer", s.handleTrainerFight)
	mux.HandleFunc("GET /ws", s.handleWS)

	mux.HandleFunc("POST /save", s.handleSave)
	mux.HandleFunc("POST /load", s.handleLoad)

	mux.HandleFunc("DELETE /session", s.handleQuit)
	return mux
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	gs, _ := s.getOrCreateSession(r.Context(), w, r)
	vm := IndexViewModel{Species: dexEntries(s.Dex), Team: gs.Team()}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Tmpl.ExecuteTemplate(w, "index.html", vm); err != nil {
		slog.Error("rendering index", "err", err)
	}
}

func (s *Server) newGame() *game.Session {
	if s.NewGame != nil {
		return s.NewGame()
	}
	return game.NewSession(s.Dex, game.Options{EncounterRate: game.DefaultEncounterRate})
}

func (s *Server) getOrCreateSession(ctx context.Context, w http.ResponseWriter, r *http.Request) (*game.Session, string) {
	gs, id, fresh := s.loadSession(ctx, r)
	if fresh {
		http.SetCookie(w, sessionCookie(id))
	}
	return gs, id
}

// loadSession finds the session named by the request cookie, creating one
// when needed. fresh reports that the cookie must be set.
func (s *Server) loadSession(ctx context.Context, r *http.Request) (gs *game.Session, id string, fresh bool) {
	id = s.sessionID(r)
	if id == "" {
		id = s.Store.NewID()
		gs = s.newGame()
		_ = s.Store.Put(ctx, id, gs)
		slog.Debug("new player", "session", id)
		return gs, id, true
	}

	gs, ok, _ := s.Store.Get(ctx, id)
	if !ok {
		gs = s.newGame()
		_ = s.Store.Put(ctx, id, gs)
	}
	return gs, id, false
}

// DELETE /session
//
// Forgets the player's session and expires the cookie. Saved slots stay.
func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if id := s.sessionID(r); id != "" {
		if err := s.Store.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		slog.Debug("player quit", "session", id)
	}
	c := sessionCookie("")
	c.MaxAge = -1
	http.SetCookie(w, c)
	w.WriteHeader(http.StatusNoContent)
}

func sessionCookie(id string) *http.Cookie {
	return &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) sessionID(r *http.Request) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("writing response", "err", err)
	}
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoFight):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInvalidAction), errors.Is(err, game.ErrNoTeam):
		return http.StatusConflict
	case errors.Is(err, game.ErrNotSupported):
		return http.StatusNotImplemented
	case errors.Is(err, game.ErrTeamFull),
		errors.Is(err, dex.ErrUnknownCreature),
		errors.Is(err, save.ErrInvalidSlot):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errBadRequest, err)
	}
	return nil
}
