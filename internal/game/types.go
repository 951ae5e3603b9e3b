// internal/game/types.go
//
// Core type definitions for the hangman engine.
// Defines:
//   - Outcome: result of a single turn.
//   - Game: state for a single round.

package game

// Outcome is the result of processing one turn.
// Non-terminal results:
//   - OutcomeRepeated:   token was already used; nothing changed.
//   - OutcomeWrongLetter: letter is not in the word; one more mistake.
//   - OutcomeTooLate:    full-word guess after the deadline.
//   - OutcomeContinue:   correct letter (word not complete) or a wrong word.
//
// Win results:
//   - OutcomeLettersComplete: last missing letter revealed.
//   - OutcomeWordCorrect:     whole word guessed.
type Outcome string

const (
	OutcomeRepeated        Outcome = "LETRA_REPETIDA"
	OutcomeContinue        Outcome = "SEGUIR_JUGANDO"
	OutcomeWrongLetter     Outcome = "LETRA_INCORRECTA"
	OutcomeLettersComplete Outcome = "LETRAS_COMPLETAS"
	OutcomeWordCorrect     Outcome = "PALABRA_CORRECTA"
	OutcomeTooLate         Outcome = "PALABRA_FUERA_DE_TIEMPO"
)

// IsWin reports whether the outcome ends the round with a win.
func (o Outcome) IsWin() bool {
	return o == OutcomeLettersComplete || o == OutcomeWordCorrect
}

// Game holds the state of a single hangman round.
// All fields are mutated only through ProcessTurn.
type Game struct {
	ID string // Unique game identifier (random hex string).

	word       []rune // secret word as displayed (NFC)
	normalized string // canonical form of word, used for comparisons

	mistakes  int
	used      map[string]struct{} // every recorded token, letters and words
	incorrect map[string]struct{} // wrong single letters
	correct   map[string]struct{} // confirmed single letters

	letters   []string // distinct canonical letters of the word, spaces excluded
	pattern   []rune   // revealed letters or Placeholder, one per rune of word
	remaining int      // distinct letters not yet in correct

	won bool
}
