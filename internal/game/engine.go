// internal/game/engine.go
//
// Core game engine for a single hangman round.
// Responsibilities:
//   - Create new games from a secret word.
//   - Classify each turn (letter or whole word) into an Outcome.
//   - Track used/incorrect/correct letters and the mistake counter.
//   - Enforce the full-word deadline and compute the final score.
//
// Notes:
//   - Every comparison uses normalize.Text, so "Á" and "a" are the same letter
//     while "ñ" and "n" are not.
//   - Loss is not an Outcome: callers compare MistakeCount with MaxMistakes.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/ahorcado/internal/normalize"
)

const (
	// MaxMistakes is the number of wrong letters that loses the round.
	MaxMistakes = 6

	// Placeholder marks an unrevealed letter in the pattern.
	Placeholder = '_'

	// wordDeadline is the minimum number of unrevealed distinct letters
	// required to attempt the whole word.
	wordDeadline = 3

	baseScore      = 200
	remainingBonus = 20
	mistakePenalty = 5
)

// ErrEmptyWord is returned by New when the secret word has no guessable
// letters.
var ErrEmptyWord = errors.New("game: secret word is empty")

// New constructs a game around the given secret word.
func New(word string) (*Game, error) {
	word = norm.NFC.String(strings.TrimSpace(word))
	if word == "" {
		return nil, ErrEmptyWord
	}
	g := &Game{
		ID:         randomID(),
		word:       []rune(word),
		normalized: normalize.Text(word),
		used:       make(map[string]struct{}),
		incorrect:  make(map[string]struct{}),
		correct:    make(map[string]struct{}),
	}
	var letters []string
	for _, r := range g.word {
		if l, ok := guessable(r); ok {
			letters = append(letters, l)
		}
	}
	if len(letters) == 0 {
		return nil, ErrEmptyWord
	}
	g.letters = lo.Uniq(letters)
	g.reveal()
	return g, nil
}

// ProcessTurn applies one player input and reports the outcome together with
// the points earned (non-zero only on a win).
//
// Rules, in order:
//   - Blank input is ignored (OutcomeContinue, nothing recorded).
//   - A token already used yields OutcomeRepeated and changes nothing.
//   - A single letter is recorded; if absent it counts as a mistake.
//   - A whole word is rejected with OutcomeTooLate once fewer than three
//     distinct letters remain hidden; that rejection is not recorded, so the
//     same attempt keeps being rejected as late rather than repeated.
//   - A wrong whole word before the deadline is recorded but costs nothing.
func (g *Game) ProcessTurn(input string) (Outcome, int) {
	token := normalize.Text(strings.TrimSpace(input))
	if token == "" {
		return OutcomeContinue, 0
	}
	if _, seen := g.used[token]; seen {
		return OutcomeRepeated, 0
	}

	if utf8.RuneCountInString(token) > 1 {
		return g.guessWord(token)
	}

	g.used[token] = struct{}{}
	if !strings.Contains(g.normalized, token) {
		g.incorrect[token] = struct{}{}
		g.mistakes++
		return OutcomeWrongLetter, 0
	}

	g.correct[token] = struct{}{}
	g.reveal()
	if !g.hasPlaceholders() {
		g.won = true
		return OutcomeLettersComplete, g.Score()
	}
	return OutcomeContinue, 0
}

func (g *Game) guessWord(token string) (Outcome, int) {
	if g.remaining < wordDeadline {
		return OutcomeTooLate, 0
	}
	g.used[token] = struct{}{}
	if token == g.normalized {
		g.won = true
		return OutcomeWordCorrect, g.Score()
	}
	return OutcomeContinue, 0
}

// reveal recomputes the pattern and the count of hidden distinct letters.
func (g *Game) reveal() {
	g.pattern = make([]rune, len(g.word))
	for i, r := range g.word {
		l, ok := guessable(r)
		switch {
		case unicode.IsSpace(r):
			g.pattern[i] = ' '
		case !ok, g.isCorrect(l):
			g.pattern[i] = r
		default:
			g.pattern[i] = Placeholder
		}
	}
	g.remaining = len(g.letters) - len(g.correct)
}

// guessable returns the normalized letter for r. Spaces and marks that
// normalize away (a combining accent with no precomposed base) are shown as
// they are and never need guessing.
func guessable(r rune) (string, bool) {
	if unicode.IsSpace(r) {
		return "", false
	}
	l := normalize.Letter(r)
	return l, l != ""
}

func (g *Game) isCorrect(letter string) bool {
	_, ok := g.correct[letter]
	return ok
}

func (g *Game) hasPlaceholders() bool {
	return lo.Contains(g.pattern, Placeholder)
}

// Score computes 200 + remaining×20 − incorrect×5. It may be negative.
func (g *Game) Score() int {
	return baseScore + g.remaining*remainingBonus - len(g.incorrect)*mistakePenalty
}

// MistakeCount reports how many wrong letters were guessed.
func (g *Game) MistakeCount() int { return g.mistakes }

// MaxMistakes reports the mistake limit for the round.
func (g *Game) MaxMistakes() int { return MaxMistakes }

// RemainingLetters reports how many distinct letters are still hidden.
func (g *Game) RemainingLetters() int { return g.remaining }

// Word returns the secret word as it should be displayed.
func (g *Game) Word() string { return string(g.word) }

// Pattern renders the revealed word with letters separated by single spaces,
// e.g. "c _ f _".
func (g *Game) Pattern() string {
	parts := lo.Map(g.pattern, func(r rune, _ int) string { return string(r) })
	return strings.Join(parts, " ")
}

// IncorrectLetters returns the wrong letters guessed so far, sorted.
func (g *Game) IncorrectLetters() []string {
	return sortedKeys(g.incorrect)
}

// UsedTokens returns every recorded token, sorted.
func (g *Game) UsedTokens() []string {
	return sortedKeys(g.used)
}

// Won reports whether the round ended with a win.
func (g *Game) Won() bool { return g.won }

// Lost reports whether the mistake limit was reached.
func (g *Game) Lost() bool { return !g.won && g.mistakes >= MaxMistakes }

// Over reports whether the round has ended either way.
func (g *Game) Over() bool { return g.won || g.Lost() }

func sortedKeys(m map[string]struct{}) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
