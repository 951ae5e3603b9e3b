package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/ahorcado/internal/game"
)

func TestSaveUpdateDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g, err := game.New("cafe")
	require.NoError(t, err)

	require.NoError(t, st.Save(ctx, g))
	assert.Equal(t, 1, st.Len())

	var outcome game.Outcome
	err = st.Update(ctx, g.ID, func(g *game.Game) error {
		outcome, _ = g.ProcessTurn("c")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, game.OutcomeContinue, outcome)
	assert.Equal(t, "c _ _ _", g.Pattern())

	boom := errors.New("boom")
	assert.ErrorIs(t, st.Update(ctx, g.ID, func(*game.Game) error { return boom }), boom)

	require.NoError(t, st.Delete(ctx, g.ID))
	assert.Equal(t, 0, st.Len())
	assert.ErrorIs(t, st.Update(ctx, g.ID, func(*game.Game) error { return nil }), ErrNotFound)
}

func TestUpdateSerializesTurns(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g, err := game.New("abcdefghijklmnopqrstuvwxyz")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	var wg sync.WaitGroup
	for r := 'a'; r <= 'z'; r++ {
		wg.Add(1)
		go func(letter string) {
			defer wg.Done()
			_ = st.Update(ctx, g.ID, func(g *game.Game) error {
				g.ProcessTurn(letter)
				return nil
			})
		}(string(r))
	}
	wg.Wait()

	assert.Equal(t, 0, g.RemainingLetters())
	assert.True(t, g.Won())
}

func TestViewReadsGame(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	g, err := game.New("cafe")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, g))

	var pattern string
	require.NoError(t, st.View(ctx, g.ID, func(g *game.Game) error {
		pattern = g.Pattern()
		return nil
	}))
	assert.Equal(t, "_ _ _ _", pattern)
	assert.ErrorIs(t, st.View(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)
}

func TestPruneDropsIdleGames(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	st := &memory{games: make(map[string]*entry), now: func() time.Time { return clock }}

	idle, err := game.New("cafe")
	require.NoError(t, err)
	active, err := game.New("agua")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, idle))
	require.NoError(t, st.Save(ctx, active))

	clock = clock.Add(time.Hour)
	require.NoError(t, st.Update(ctx, active.ID, func(g *game.Game) error {
		g.ProcessTurn("a")
		return nil
	}))

	assert.Equal(t, 1, st.Prune(ctx, clock.Add(-time.Minute)))
	assert.Equal(t, 1, st.Len())
	assert.ErrorIs(t, st.View(ctx, idle.ID, func(*game.Game) error { return nil }), ErrNotFound)
	assert.NoError(t, st.View(ctx, active.ID, func(*game.Game) error { return nil }))
	assert.Zero(t, st.Prune(ctx, clock.Add(-time.Minute)))
}
