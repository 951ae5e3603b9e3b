// internal/normalize/normalize.go
//
// Canonical text form used for every comparison in the game.
//   - Lowercases the input.
//   - Strips combining marks (á→a, ü→u, Ó→o).
//   - Keeps "ñ" as its own letter; it is never folded into "n".
//
// The result is stable under repeated application.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ñ is parked on a private-use rune while marks are removed, so the tilde
// of "ñ" survives decomposition.
const enyeMarker = '\uE000'

var (
	protectEnye = runes.Map(func(r rune) rune {
		if r == 'ñ' {
			return enyeMarker
		}
		return r
	})
	restoreEnye = runes.Map(func(r rune) rune {
		if r == enyeMarker {
			return 'ñ'
		}
		return r
	})
)

// fold builds a fresh chain; transform.Chain keeps internal buffers and is
// not safe for concurrent use.
func fold() transform.Transformer {
	return transform.Chain(
		norm.NFC, // compose n + U+0303 into ñ first
		protectEnye,
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		restoreEnye,
		norm.NFC,
	)
}

// Text returns the canonical form of a letter or word.
func Text(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(fold(), strings.ToLower(s))
	if err != nil {
		// transform only fails on malformed input; compare on the lowercase form
		return strings.ToLower(s)
	}
	return out
}

// Letter reports the canonical form of a single rune.
func Letter(r rune) string {
	return Text(string(r))
}
