package console

import (
	"errors"

	"github.com/chzyer/readline"
)

// Readline adapts a readline instance to Prompter.
type Readline struct {
	l *readline.Instance
}

// NewReadline opens an interactive prompt. historyFile may be empty.
func NewReadline(historyFile string) (*Readline, error) {
	l, err := readline.NewEx(&readline.Config{
		HistoryFile:         historyFile,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	return &Readline{l: l}, nil
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// Prompt implements Prompter. Ctrl-C is reported as ErrAborted.
func (r *Readline) Prompt(prompt string) (string, error) {
	r.l.SetPrompt(prompt)
	line, err := r.l.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrAborted
	}
	return line, err
}

// Close restores the terminal.
func (r *Readline) Close() error { return r.l.Close() }
