package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/ahorcado/internal/game"
	"github.com/robalobadob/ahorcado/internal/store"
	"github.com/robalobadob/ahorcado/internal/words"
)

type fixture struct {
	srv     *Server
	store   store.Store
	catalog *words.Memory
	now     time.Time
}

func newFixture(t *testing.T, adminHash string) *fixture {
	t.Helper()
	ctx := context.Background()
	catalog := words.NewMemory()
	require.NoError(t, catalog.AddWord(ctx, "Bebidas", "café"))
	require.NoError(t, catalog.AddWord(ctx, "Letras", "x"))

	f := &fixture{store: store.NewMemoryStore(), catalog: catalog, now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
	f.srv = New(f.store, catalog, Options{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		AdminPasswordHash: adminHash,
		DailySalt:         "salt",
		Now:               func() time.Time { return f.now },
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.srv.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type guessBody struct {
	Outcome     game.Outcome `json:"outcome"`
	Points      int          `json:"points"`
	Pattern     string       `json:"pattern"`
	Mistakes    int          `json:"mistakes"`
	MaxMistakes int          `json:"maxMistakes"`
	Remaining   int          `json:"remaining"`
	Incorrect   []string     `json:"incorrect"`
	Finished    bool         `json:"finished"`
	Won         bool         `json:"won"`
	Word        string       `json:"word"`
}

func (f *fixture) newGame(t *testing.T) newGameRes {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/game/new", "", newGameReq{Topic: "Bebidas"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[newGameRes](t, rec)
}

func (f *fixture) guess(t *testing.T, ng newGameRes, guess string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodPost, "/game/guess", ng.Token, guessReq{GameID: ng.GameID, Guess: guess})
}

func TestHealthAndTopics(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/topics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"topics":["Bebidas","Letras"]}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestNewGame(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)
	assert.NotEmpty(t, ng.GameID)
	assert.NotEmpty(t, ng.Token)
	assert.Equal(t, "_ _ _ _", ng.Pattern)
	assert.Equal(t, 6, ng.MaxMistakes)

	rec := f.do(t, http.MethodPost, "/game/new", "", newGameReq{Topic: "Nada"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"topic_not_found"}`, rec.Body.String())
}

func TestGuessFlow(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)

	res := decode[guessBody](t, f.guess(t, ng, "z"))
	assert.Equal(t, game.OutcomeWrongLetter, res.Outcome)
	assert.Equal(t, 1, res.Mistakes)
	assert.Equal(t, []string{"z"}, res.Incorrect)
	assert.Empty(t, res.Word)

	res = decode[guessBody](t, f.guess(t, ng, "C"))
	assert.Equal(t, game.OutcomeContinue, res.Outcome)
	assert.Equal(t, "c _ _ _", res.Pattern)
	assert.Equal(t, 3, res.Remaining)

	res = decode[guessBody](t, f.guess(t, ng, "c"))
	assert.Equal(t, game.OutcomeRepeated, res.Outcome)

	res = decode[guessBody](t, f.guess(t, ng, "cafe"))
	assert.Equal(t, game.OutcomeWordCorrect, res.Outcome)
	assert.Equal(t, 255, res.Points)
	assert.True(t, res.Finished)
	assert.True(t, res.Won)
	assert.Equal(t, "café", res.Word)

	// finished games are dropped once the final turn is answered
	assert.Zero(t, f.store.Len())
	rec := f.guess(t, ng, "a")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGuessAfterLoss(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)
	var res guessBody
	for _, l := range []string{"z", "x", "w", "v", "u", "t"} {
		res = decode[guessBody](t, f.guess(t, ng, l))
	}
	assert.True(t, res.Finished)
	assert.False(t, res.Won)
	assert.Equal(t, "café", res.Word)
	assert.Equal(t, http.StatusNotFound, f.guess(t, ng, "c").Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/game/"+ng.GameID, ng.Token, nil).Code)
}

func TestGuessOnFinishedGameConflicts(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)
	require.NoError(t, f.store.Update(context.Background(), ng.GameID, func(g *game.Game) error {
		g.ProcessTurn("cafe")
		return nil
	}))

	rec := f.guess(t, ng, "a")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"game_over"}`, rec.Body.String())
}

func TestGuessRequiresMatchingToken(t *testing.T) {
	f := newFixture(t, "")
	a := f.newGame(t)
	b := f.newGame(t)

	rec := f.do(t, http.MethodPost, "/game/guess", "", guessReq{GameID: a.GameID, Guess: "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/game/guess", "garbage", guessReq{GameID: a.GameID, Guess: "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodPost, "/game/guess", b.Token, guessReq{GameID: a.GameID, Guess: "c"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGuessRejectsExpiredToken(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)
	f.now = f.now.Add(2 * time.Hour)

	assert.Equal(t, http.StatusUnauthorized, f.guess(t, ng, "c").Code)
}

func TestGetGame(t *testing.T) {
	f := newFixture(t, "")
	ng := f.newGame(t)
	f.guess(t, ng, "a")

	rec := f.do(t, http.MethodGet, "/game/"+ng.GameID, ng.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[guessBody](t, rec)
	assert.Equal(t, "_ a _ _", v.Pattern)
	assert.False(t, v.Finished)
}

func TestDailyNewIsStablePerDay(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	require.NoError(t, f.catalog.AddWord(ctx, "Bebidas", "té"))
	require.NoError(t, f.catalog.AddWord(ctx, "Bebidas", "agua"))

	want, err := words.DailyWord(ctx, f.catalog, "Bebidas", f.now, "salt")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		rec := f.do(t, http.MethodPost, "/daily/new", "", newGameReq{Topic: "Bebidas"})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "2026-10-18", rec.Header().Get("X-Daily-Date"))
		ng := decode[newGameRes](t, rec)

		// lose on purpose to reveal the word
		var res guessBody
		for _, l := range []string{"z", "x", "w", "v", "q", "k"} {
			res = decode[guessBody](t, f.guess(t, ng, l))
		}
		require.True(t, res.Finished)
		assert.Equal(t, want, res.Word)
	}
}

func TestNewGameDailyFlagUsesWordOfTheDay(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	for _, w := range []string{"té", "agua", "limonada", "horchata", "refresco", "atole", "jugo", "leche"} {
		require.NoError(t, f.catalog.AddWord(ctx, "Bebidas", w))
	}
	want, err := words.DailyWord(ctx, f.catalog, "Bebidas", f.now, "salt")
	require.NoError(t, err)
	wantGame, err := game.New(want)
	require.NoError(t, err)

	alias := f.do(t, http.MethodPost, "/daily/new", "", newGameReq{Topic: "Bebidas"})
	require.Equal(t, http.StatusCreated, alias.Code)
	assert.Equal(t, wantGame.Pattern(), decode[newGameRes](t, alias).Pattern)

	for i := 0; i < 20; i++ {
		rec := f.do(t, http.MethodPost, "/game/new", "", map[string]any{"topic": "Bebidas", "daily": true})
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "2026-10-18", rec.Header().Get("X-Daily-Date"))
		ng := decode[newGameRes](t, rec)
		require.Equal(t, wantGame.Pattern(), ng.Pattern)

		var res guessBody
		for _, l := range []string{"z", "x", "w", "v", "q", "k"} {
			res = decode[guessBody](t, f.guess(t, ng, l))
		}
		require.True(t, res.Finished)
		assert.Equal(t, want, res.Word)
	}

	rec := f.do(t, http.MethodPost, "/game/new", "", map[string]any{"topic": "Bebidas"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Daily-Date"))
}

func TestPruneIdleDropsExpiredGames(t *testing.T) {
	f := newFixture(t, "")
	f.newGame(t)
	f.newGame(t)
	require.Equal(t, 2, f.store.Len())

	f.now = f.now.AddDate(-100, 0, 0)
	f.srv.pruneIdle(context.Background())
	assert.Equal(t, 2, f.store.Len())

	f.now = f.now.AddDate(200, 0, 0)
	f.srv.pruneIdle(context.Background())
	assert.Zero(t, f.store.Len())
}

func TestAdminAddWord(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	f := newFixture(t, string(hash))

	post := func(user, pw string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
		req := httptest.NewRequest(http.MethodPost, "/admin/words", &buf)
		req.SetBasicAuth(user, pw)
		rec := httptest.NewRecorder()
		f.srv.Router().ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, post("admin", "wrong", addWordReq{Topic: "Frutas", Word: "pera"}).Code)
	assert.Equal(t, http.StatusBadRequest, post("admin", "s3cret", addWordReq{Topic: "Frutas"}).Code)
	assert.Equal(t, http.StatusCreated, post("admin", "s3cret", addWordReq{Topic: "Frutas", Word: "pera"}).Code)

	list, err := f.catalog.Words(context.Background(), "Frutas")
	require.NoError(t, err)
	assert.Equal(t, []string{"pera"}, list)
}

func TestAdminDisabledWithoutHash(t *testing.T) {
	f := newFixture(t, "")
	rec := f.do(t, http.MethodPost, "/admin/words", "", addWordReq{Topic: "Frutas", Word: "pera"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, checkPassword(h, "s3cret"))
	assert.False(t, checkPassword(h, "other"))
}
