package huffman

import (
	"strconv"
	"strings"
)

// maxSymbol is the largest rune representable as a Symbol (Latin-1).
const maxSymbol = 0xFF

// Symbol is one unit of the input alphabet. Runes U+0000..U+00FF map
// to the byte of the same value.
type Symbol byte

// String returns the symbol as a quoted Go character literal.
func (s Symbol) String() string {
	return strconv.QuoteRune(rune(s))
}

// Symbols converts text into its symbol sequence.
func Symbols(text string) ([]Symbol, error) {
	out := make([]Symbol, 0, len(text))
	for i, r := range text {
		if r > maxSymbol {
			return nil, &UnsupportedCharsetError{Rune: r, Offset: i}
		}
		out = append(out, Symbol(r))
	}
	return out, nil
}

// Text converts a symbol sequence back into text.
func Text(symbols []Symbol) string {
	var b strings.Builder
	b.Grow(len(symbols))
	for _, s := range symbols {
		b.WriteRune(rune(s))
	}
	return b.String()
}
