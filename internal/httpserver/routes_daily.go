// internal/httpserver/routes_daily.go
//
// Word of the day:
//   - POST /game/new {topic, daily: true} → start a game on today's word.
//   - POST /daily/new {topic} → same, without the flag.
//
// Every player gets the same word per (UTC date, topic); the choice is an
// HMAC of the date and topic keyed by DailySalt.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/ahorcado/internal/daily"
	"github.com/robalobadob/ahorcado/internal/words"
)

// mountDaily registers /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
	})
}

func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	word, err := s.dailyWord(w, r, req.Topic)
	if err != nil {
		s.catalogError(w, err)
		return
	}
	s.startGame(w, r, req.Topic, word)
}

// dailyWord returns today's word for topic and sets X-Daily-Date.
func (s *Server) dailyWord(w http.ResponseWriter, r *http.Request, topic string) (string, error) {
	now := s.opts.Now()
	word, err := words.DailyWord(r.Context(), s.catalog, topic, now, s.opts.DailySalt)
	if err != nil {
		return "", err
	}
	w.Header().Set("X-Daily-Date", daily.DateKey(now))
	return word, nil
}
