package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/ahorcado/internal/words"
)

type addWordReq struct {
	Topic string `json:"topic"`
	Word  string `json:"word"`
}

// mountAdmin registers catalog administration routes. Without an admin
// password hash the routes are not mounted at all.
func (s *Server) mountAdmin(r chi.Router) {
	if s.opts.AdminPasswordHash == "" {
		return
	}
	r.With(s.requireAdmin).Post("/admin/words", s.handleAddWord)
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	var req addWordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if err := s.catalog.AddWord(r.Context(), req.Topic, req.Word); err != nil {
		if errors.Is(err, words.ErrInvalidEntry) {
			writeError(w, http.StatusBadRequest, "topic_and_word_required")
			return
		}
		log.Error().Err(err).Str("topic", req.Topic).Msg("add word")
		writeError(w, http.StatusInternalServerError, "catalog_error")
		return
	}
	log.Info().Str("topic", req.Topic).Str("word", req.Word).Msg("word added")
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
