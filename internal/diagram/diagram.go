// Package diagram draws the gallows that fills in as mistakes accumulate.
package diagram

import (
	"fmt"
	"io"
	"strings"
)

// DefaultBody is the head, torso, arms and legs in drawing order.
var DefaultBody = []string{"0", "|", "/", `\`, "/", `\`}

// Gallows renders a stick figure with one body part per mistake.
type Gallows struct {
	body []string
}

// New returns a Gallows using body as the ordered part glyphs. A body that
// does not have exactly six parts falls back to DefaultBody.
func New(body []string) *Gallows {
	if len(body) != len(DefaultBody) {
		body = DefaultBody
	}
	return &Gallows{body: body}
}

// Parts returns the glyphs to draw for the given number of mistakes;
// parts not yet earned are blank.
func (g *Gallows) Parts(mistakes int) []string {
	out := make([]string, len(g.body))
	for i, p := range g.body {
		if i < mistakes {
			out[i] = p
		} else {
			out[i] = " "
		}
	}
	return out
}

// Draw writes the gallows for the given number of mistakes.
func (g *Gallows) Draw(w io.Writer, mistakes int) error {
	p := g.Parts(mistakes)
	bar := strings.Repeat("=", 10)
	_, err := fmt.Fprintf(w, "%s\n||     |\n||     %s\n||    %s%s%s\n||    %s %s\n%s\n",
		bar, p[0], p[2], p[1], p[3], p[4], p[5], bar)
	return err
}
