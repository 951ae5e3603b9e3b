// internal/console/console.go
//
// Terminal front end for the hangman game.
// Responsibilities:
//   - Instructions screen, numbered topic menu and topic selection.
//   - The turn loop: draw the gallows, show progress, read a guess,
//     feed it to the engine and report the outcome.
//   - Win/loss messages with the secret word and the score.
//
// Notes:
//   - Input comes from a Prompter; the program wires a readline instance,
//     tests use a scripted fake.
//   - Loss is decided here: the loop ends when MistakeCount reaches
//     MaxMistakes.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/ahorcado/internal/diagram"
	"github.com/robalobadob/ahorcado/internal/game"
	"github.com/robalobadob/ahorcado/internal/words"
)

// ErrAborted is returned when the player closes the input (EOF or Ctrl-C).
var ErrAborted = errors.New("console: input closed")

const clearScreen = "\033[H\033[2J"

const instructions = `
        ¡Bienvenido al Juego del Ahorcado!

        Instrucciones:
        1. Tu misión es descubrir la palabra secreta antes
           de que el ahorcado esté completo.
        2. Puedes adivinar la palabra letra por letra o intentar
           adivinar la palabra completa (siempre que falten al menos tres letras por adivinar).
        3. Por cada letra incorrecta, una nueva parte del dibujo
           del ahorcado aparecerá. ¡Tienes un máximo de 6 intentos!
        4. Si completas el dibujo del ahorcado antes de encontrar
           todas las letras, habrás perdido.
        5. Al terminar cada partida obtendrás una puntuación dependiendo de cuántas letras
           falten por descubrir y cuántos errores hayas tenido.
        6. Si adivinas todas las letras antes de completar el dibujo
           del ahorcado, ¡serás el ganador!

        ¡Buena suerte, y que comience el desafío!
`

// Prompter reads one line of input after showing a prompt.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Result summarizes a finished round.
type Result struct {
	Word     string
	Won      bool
	Points   int
	Mistakes int
}

// Controller drives one console session.
type Controller struct {
	in      Prompter
	out     io.Writer
	gallows *diagram.Gallows
	pause   time.Duration
	sleep   func(time.Duration)
}

// New returns a Controller writing to out and reading from in. pause is how
// long feedback messages stay on screen before it is cleared.
func New(in Prompter, out io.Writer, gallows *diagram.Gallows, pause time.Duration) *Controller {
	if gallows == nil {
		gallows = diagram.New(nil)
	}
	return &Controller{in: in, out: out, gallows: gallows, pause: pause, sleep: time.Sleep}
}

// Run plays a full session: instructions, topic choice, one round.
func (c *Controller) Run(ctx context.Context, catalog words.Catalog) (Result, error) {
	if err := c.ShowInstructions(); err != nil {
		return Result{}, err
	}
	topics, err := catalog.Topics(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list topics: %w", err)
	}
	if len(topics) == 0 {
		return Result{}, errors.New("console: catalog has no topics")
	}
	topic, err := c.SelectTopic(topics)
	if err != nil {
		return Result{}, err
	}
	word, err := words.PickWord(ctx, catalog, topic)
	if err != nil {
		return Result{}, err
	}
	g, err := game.New(word)
	if err != nil {
		return Result{}, fmt.Errorf("topic %q: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Str("gameId", g.ID).Msg("round started")
	return c.Play(g)
}

// ShowInstructions prints the rules and waits for enter.
func (c *Controller) ShowInstructions() error {
	c.clear()
	c.println(instructions)
	if _, err := c.read("Presiona enter para continuar . . ."); err != nil {
		return err
	}
	c.clear()
	return nil
}

// ShowMenu prints the numbered topic menu.
func (c *Controller) ShowMenu(topics []string) {
	width := lo.Max(lo.Map(topics, func(t string, _ int) int { return utf8.RuneCountInString(t) }))
	sep := strings.Repeat("=", width+16)

	c.println("\nSelecciona un tema para comenzar:\n")
	c.println(sep)
	for i, t := range topics {
		entry := fmt.Sprintf("%-3d.- %s", i+1, t)
		c.println(fmt.Sprintf("||    %-*s||", width+8, entry))
	}
	c.println(sep)
}

// SelectTopic shows the menu and asks until a listed number is entered.
func (c *Controller) SelectTopic(topics []string) (string, error) {
	c.ShowMenu(topics)
	for {
		line, err := c.read("Selecciona una opción: ")
		if err != nil {
			return "", err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= 1 && n <= len(topics) {
			return topics[n-1], nil
		}
		c.println("Opción no válida. Intenta de nuevo.")
	}
}

// Play runs the turn loop on g until the player wins or reaches the
// mistake limit.
func (c *Controller) Play(g *game.Game) (Result, error) {
	c.println("¡El juego ha comenzado! Adivina la palabra.")
	for g.MistakeCount() < g.MaxMistakes() {
		c.showProgress(g)
		c.println("Progreso: " + g.Pattern())
		line, err := c.read("Ingresa una letra o intenta adivinar la palabra: ")
		if err != nil {
			return Result{}, err
		}

		outcome, points := g.ProcessTurn(line)
		log.Debug().Str("gameId", g.ID).Str("outcome", string(outcome)).Int("mistakes", g.MistakeCount()).Msg("turn")

		if outcome.IsWin() {
			c.showProgress(g)
			c.println("La palabra es: " + spaced(g.Word()))
			c.println("¡¡¡Felicidades, ganaste!!!")
			c.println(fmt.Sprintf("Puntos: %d", points))
			return Result{Word: g.Word(), Won: true, Points: points, Mistakes: g.MistakeCount()}, nil
		}
		switch outcome {
		case game.OutcomeTooLate:
			c.notice("Ya no puedes adivinar la palabra completa. Sigue letra por letra.")
		case game.OutcomeWrongLetter:
			c.notice("Letra incorrecta")
		case game.OutcomeRepeated:
			c.notice("Ya usaste esa letra")
		}
	}

	c.showProgress(g)
	c.println("¡¡¡Perdiste!!!")
	c.println("La palabra secreta era: " + g.Word())
	return Result{Word: g.Word(), Mistakes: g.MistakeCount()}, nil
}

func (c *Controller) showProgress(g *game.Game) {
	c.clear()
	if err := c.gallows.Draw(c.out, g.MistakeCount()); err != nil {
		log.Warn().Err(err).Msg("draw gallows")
	}
}

func (c *Controller) notice(msg string) {
	c.println(msg)
	if c.pause > 0 {
		c.sleep(c.pause)
	}
}

func (c *Controller) read(prompt string) (string, error) {
	line, err := c.in.Prompt(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, ErrAborted) {
			return "", ErrAborted
		}
		return "", err
	}
	return line, nil
}

func (c *Controller) clear() { _, _ = io.WriteString(c.out, clearScreen) }

func (c *Controller) println(s string) { _, _ = io.WriteString(c.out, s+"\n") }

// spaced returns the word with its letters separated by single spaces.
func spaced(word string) string {
	return strings.Join(strings.Split(word, ""), " ")
}
