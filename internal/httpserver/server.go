// internal/httpserver/server.go
//
// HTTP server wiring for the hangman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/topics".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/{id}.
//   - Daily word: POST /game/new with "daily": true (POST /daily/new is an alias).
//   - Catalog administration: POST /admin/words (basic auth, bcrypt hash).
//
// Notes:
//   - Creating a game returns a signed token bound to its ID; every later
//     request about that game must present it as a Bearer token.
//   - Turns are applied through store.Update, so concurrent guesses on one
//     game are serialized.
//   - A game is dropped from the store once its final turn is answered;
//     Janitor prunes games left idle for longer than TokenTTL.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ahorcado/internal/game"
	"github.com/robalobadob/ahorcado/internal/store"
	"github.com/robalobadob/ahorcado/internal/words"
)

// Options configures a Server.
type Options struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminPasswordHash string // bcrypt; empty disables /admin
	DailySalt         string
	ClientOrigin      string
	Now               func() time.Time
}

// Server bundles router, game store and word catalog.
type Server struct {
	r       *chi.Mux
	store   store.Store
	catalog words.Catalog
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, catalog words.Catalog, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, catalog: catalog, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"ahorcado","endpoints":["/health","/topics","POST /game/new","POST /game/guess","GET /game/{id}","POST /daily/new","POST /admin/words"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/topics", s.handleTopics)

	s.r.Post("/game/new", s.handleNewGame)
	s.r.With(s.requireGameToken).Post("/game/guess", s.handleGuess)
	s.r.With(s.requireGameToken).Get("/game/{id}", s.handleGetGame)

	s.mountDaily(s.r)
	s.mountAdmin(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Janitor prunes idle games every interval until ctx is cancelled.
func (s *Server) Janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.pruneIdle(ctx)
		}
	}
}

// pruneIdle drops games nobody has played for a full token lifetime; their
// tokens have expired, so no request can reach them anymore.
func (s *Server) pruneIdle(ctx context.Context) {
	if n := s.store.Prune(ctx, s.opts.Now().Add(-s.opts.TokenTTL)); n > 0 {
		log.Info().Int("pruned", n).Int("live", s.store.Len()).Msg("idle games pruned")
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ TOPICS -------------------------------------

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.catalog.Topics(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list topics")
		writeError(w, http.StatusInternalServerError, "catalog_error")
		return
	}
	if topics == nil {
		topics = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"topics": topics})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new and /daily/new.
type newGameReq struct {
	Topic string `json:"topic"`
	Daily bool   `json:"daily"`
}
type newGameRes struct {
	GameID      string `json:"gameId"`
	Token       string `json:"token"`
	Topic       string `json:"topic"`
	Pattern     string `json:"pattern"`
	MaxMistakes int    `json:"maxMistakes"`
}

// handleNewGame starts a game on a random word of the topic, or on the
// topic's word of the day when Daily is set.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	var (
		word string
		err  error
	)
	if req.Daily {
		word, err = s.dailyWord(w, r, req.Topic)
	} else {
		word, err = words.PickWord(r.Context(), s.catalog, req.Topic)
	}
	if err != nil {
		s.catalogError(w, err)
		return
	}
	s.startGame(w, r, req.Topic, word)
}

// startGame stores a new game for word and replies with its token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, topic, word string) {
	g, err := game.New(word)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("catalog word unusable")
		writeError(w, http.StatusInternalServerError, "bad_word")
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signGameToken(g.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign game token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	log.Info().Str("gameId", g.ID).Str("topic", topic).Msg("game started")
	writeJSON(w, http.StatusCreated, newGameRes{
		GameID:      g.ID,
		Token:       tok,
		Topic:       topic,
		Pattern:     g.Pattern(),
		MaxMistakes: g.MaxMistakes(),
	})
}

// gameView is the public state of a game. Word is only revealed once the
// game is over.
type gameView struct {
	GameID      string   `json:"gameId"`
	Pattern     string   `json:"pattern"`
	Mistakes    int      `json:"mistakes"`
	MaxMistakes int      `json:"maxMistakes"`
	Remaining   int      `json:"remaining"`
	Incorrect   []string `json:"incorrect"`
	Finished    bool     `json:"finished"`
	Won         bool     `json:"won"`
	Word        string   `json:"word,omitempty"`
}

func viewOf(g *game.Game) gameView {
	v := gameView{
		GameID:      g.ID,
		Pattern:     g.Pattern(),
		Mistakes:    g.MistakeCount(),
		MaxMistakes: g.MaxMistakes(),
		Remaining:   g.RemainingLetters(),
		Incorrect:   g.IncorrectLetters(),
		Finished:    g.Over(),
		Won:         g.Won(),
	}
	if v.Incorrect == nil {
		v.Incorrect = []string{}
	}
	if v.Finished {
		v.Word = g.Word()
	}
	return v
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	Outcome game.Outcome `json:"outcome"`
	Points  int          `json:"points"`
	gameView
}

var errGameOver = errors.New("game over")

// handleGuess applies one turn to a game.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID != gameIDFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "token_mismatch")
		return
	}

	var res guessRes
	err := s.store.Update(r.Context(), req.GameID, func(g *game.Game) error {
		if g.Over() {
			return errGameOver
		}
		res.Outcome, res.Points = g.ProcessTurn(req.Guess)
		res.gameView = viewOf(g)
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, errGameOver):
		writeError(w, http.StatusConflict, "game_over")
		return
	case err != nil:
		log.Error().Err(err).Str("gameId", req.GameID).Msg("apply guess")
		writeError(w, http.StatusInternalServerError, "update_failed")
		return
	}

	if res.Finished {
		log.Info().Str("gameId", req.GameID).Bool("won", res.Outcome.IsWin()).Int("points", res.Points).Msg("game finished")
		if err := s.store.Delete(r.Context(), req.GameID); err != nil {
			log.Warn().Err(err).Str("gameId", req.GameID).Msg("drop finished game")
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// handleGetGame returns the current state of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != gameIDFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "token_mismatch")
		return
	}
	var v gameView
	err := s.store.View(r.Context(), id, func(g *game.Game) error {
		v = viewOf(g)
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read_failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// catalogError maps catalog lookup failures to HTTP responses.
func (s *Server) catalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, words.ErrTopicNotFound):
		writeError(w, http.StatusNotFound, "topic_not_found")
	case errors.Is(err, words.ErrEmptyTopic):
		writeError(w, http.StatusUnprocessableEntity, "topic_empty")
	default:
		log.Error().Err(err).Msg("catalog lookup")
		writeError(w, http.StatusInternalServerError, "catalog_error")
	}
}

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
