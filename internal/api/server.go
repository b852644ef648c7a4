// Package api exposes games over HTTP+JSON. Each game is a session held in
// memory under a random ID; progress is written to the shared store when
// one is configured.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"github.com/vovakirdan/stackmatch/internal/engine"
	"github.com/vovakirdan/stackmatch/internal/levels"
	"github.com/vovakirdan/stackmatch/internal/registry"
	"github.com/vovakirdan/stackmatch/internal/session"
	"github.com/vovakirdan/stackmatch/internal/storage"
)

// DefaultPlayer names games created without a player.
const DefaultPlayer = "web"

// DefaultMaxGames bounds the number of games held in memory.
const DefaultMaxGames = 1024

// listedCampaignLevels is how many campaign levels GET /api/levels shows.
const listedCampaignLevels = 10

// entry is one live game. mu serialises access to the session; touched is
// guarded by Server.mu.
type entry struct {
	mu      sync.Mutex
	sess    *session.Session
	touched time.Time
}

// Server handles HTTP requests.
type Server struct {
	store    session.Store
	opts     session.Options
	logger   *log.Logger
	now      func() time.Time
	maxGames int

	mu    sync.Mutex
	games map[string]*entry
}

// NewServer creates an API server. store may be nil. opts is the template
// for every game's session; Player and Seed come from the request.
func NewServer(store *storage.Store, opts session.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "stackmatch-http",
		})
	}
	s := &Server{
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		maxGames: DefaultMaxGames,
		games:    make(map[string]*entry),
	}
	if store != nil {
		s.store = store
	}
	if s.opts.Clock != nil {
		s.now = s.opts.Clock
	}
	return s
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/levels", s.handleListLevels)
		r.Get("/powerups", s.handleListPowerUps)
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Delete("/", s.handleDeleteGame)
			r.Post("/select", s.handleSelect)
			r.Post("/powerups/{kind}", s.handlePowerUp)
			r.Post("/restart", s.handleRestart)
			r.Post("/next", s.handleNext)
		})
	})

	return gzhttp.GzipHandler(r)
}

// NewHTTPServer wraps Routes in an http.Server with conservative timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// accessLog emits one log line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		switch {
		case status >= 500:
			s.logger.Error("http request", fields...)
		case status >= 400:
			s.logger.Warn("http request", fields...)
		default:
			s.logger.Debug("http request", fields...)
		}
	})
}

// GameCount returns the number of games held in memory.
func (s *Server) GameCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

func (s *Server) lookup(id string) (*entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.games[id]
	if ok {
		e.touched = s.now()
	}
	return e, ok
}

// add stores e under a fresh ID, evicting the least recently touched games
// when full.
func (s *Server) add(e *entry) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.games) >= s.maxGames {
		ids := make([]string, 0, len(s.games))
		for k := range s.games {
			ids = append(ids, k)
		}
		sort.Slice(ids, func(i, j int) bool {
			return s.games[ids[i]].touched.Before(s.games[ids[j]].touched)
		})
		for _, k := range ids[:len(s.games)-s.maxGames+1] {
			delete(s.games, k)
		}
		s.logger.Warn("evicted idle games", "limit", s.maxGames)
	}
	s.games[id] = e
	return id
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("cannot encode response", "error", err)
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps session errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNoInventory),
		errors.Is(err, session.ErrRejected),
		errors.Is(err, session.ErrNotFinished),
		errors.Is(err, session.ErrNoMoreLevels),
		errors.Is(err, session.ErrLocked):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Daily {
		req.Mode = levels.ModeDaily
	}
	if req.Mode == "" {
		req.Mode = levels.ModeCampaign
	}
	if req.Level == 0 {
		req.Level = 1
	}
	if req.Player == "" {
		req.Player = DefaultPlayer
	}

	mode, err := registry.Create(req.Mode)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := s.opts
	opts.Player = req.Player
	opts.Logger = s.logger.With("player", req.Player)
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	sess, err := session.New(s.store, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := sess.Start(mode, req.Level); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return
	}

	id := s.add(&entry{sess: sess, touched: s.now()})
	s.logger.Info("game created", "id", id, "player", req.Player, "mode", req.Mode, "level", req.Level)
	s.writeJSON(w, http.StatusCreated, toGameDTO(id, sess))
}

// withGame resolves {id} and runs fn with the game locked.
func (s *Server) withGame(w http.ResponseWriter, r *http.Request, fn func(id string, sess *session.Session)) {
	id := chi.URLParam(r, "id")
	e, ok := s.lookup(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(id, e.sess)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(id string, sess *session.Session) {
		s.writeJSON(w, http.StatusOK, toGameDTO(id, sess))
	})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	_, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()
	if !ok {
		s.writeError(w, http.StatusNotFound, "game not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.withGame(w, r, func(id string, sess *session.Session) {
		if sess.Game().Status().Terminal() {
			s.writeError(w, http.StatusConflict, "game is over")
			return
		}
		res := sess.Select(engine.TileID(req.TileID))
		if !res.Accepted {
			s.writeError(w, http.StatusConflict, "tile is not selectable")
			return
		}
		s.writeJSON(w, http.StatusOK, SelectResponse{
			Accepted: true,
			Matches:  toMatchDTOs(res.Matches),
			Game:     toGameDTO(id, sess),
		})
	})
}

func (s *Server) handlePowerUp(w http.ResponseWriter, r *http.Request) {
	kind, err := engine.ParsePowerUp(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.withGame(w, r, func(id string, sess *session.Session) {
		if err := sess.UsePowerUp(kind); err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, toGameDTO(id, sess))
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(id string, sess *session.Session) {
		if err := sess.Restart(); err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, toGameDTO(id, sess))
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.withGame(w, r, func(id string, sess *session.Session) {
		if err := sess.Next(); err != nil {
			s.writeError(w, statusFor(err), err.Error())
			return
		}
		s.writeJSON(w, http.StatusOK, toGameDTO(id, sess))
	})
}

func (s *Server) handleListLevels(w http.ResponseWriter, _ *http.Request) {
	now := s.now()
	var out []ModeDTO
	for _, info := range registry.List() {
		mode, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		count := mode.Count()
		listed := count
		if listed == 0 {
			listed = listedCampaignLevels
		}
		dto := ModeDTO{
			ID:          mode.ID(),
			Title:       mode.Title(),
			Count:       count,
			Progressive: mode.Progressive(),
			Levels:      make([]LevelDTO, 0, listed),
		}
		for n := 1; n <= listed; n++ {
			lvl, err := mode.Level(n, now)
			if err != nil {
				break
			}
			dto.Levels = append(dto.Levels, toLevelDTO(lvl))
		}
		out = append(out, dto)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleListPowerUps(w http.ResponseWriter, _ *http.Request) {
	infos := engine.PowerUps()
	out := make([]PowerUpDTO, len(infos))
	for i, info := range infos {
		out[i] = PowerUpDTO{
			Key:         info.Key,
			Name:        info.Name,
			Glyph:       info.Glyph,
			Description: info.Description,
		}
	}
	s.writeJSON(w, http.StatusOK, out)
}
