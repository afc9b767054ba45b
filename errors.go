package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput indicates there is nothing to compress.
	ErrEmptyInput = errors.New("empty input")
	// ErrUnsupportedCharset indicates the text holds a rune outside the symbol alphabet.
	ErrUnsupportedCharset = errors.New("unsupported charset")
	// ErrNoHeader indicates the compressed data does not start with a header.
	ErrNoHeader = errors.New("no header")
	// ErrMalformedHeader indicates the header body could not be parsed.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrInvalidPadding indicates a padding count outside [0, 7].
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrCorruptStream indicates encoded bits that do not decode to a symbol.
	ErrCorruptStream = errors.New("corrupt stream")
	// ErrEmptyHeap indicates a tree was requested from an empty frequency list.
	ErrEmptyHeap = errors.New("empty frequency heap")
	// ErrEmptyTree indicates codes were requested before a tree was built.
	ErrEmptyTree = errors.New("empty tree")
	// ErrUnsortedFrequencies indicates a frequency list not in descending count order.
	ErrUnsortedFrequencies = errors.New("frequencies not sorted")
	// ErrCountOverflow indicates frequency counts whose sum does not fit in 64 bits.
	ErrCountOverflow = errors.New("frequency total overflows")
	// ErrUnknownSymbol indicates a symbol that has no code in the code table.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrInvalidBit indicates a bitstring character other than '0' or '1'.
	ErrInvalidBit = errors.New("invalid bit")
)

// UnsupportedCharsetError reports the first rune that cannot be
// represented as a Symbol.
type UnsupportedCharsetError struct {
	Rune   rune
	Offset int // byte offset in the text
}

func (e *UnsupportedCharsetError) Error() string {
	return fmt.Sprintf("unsupported charset: rune %U at byte offset %d", e.Rune, e.Offset)
}

func (e *UnsupportedCharsetError) Is(target error) bool { return target == ErrUnsupportedCharset }

// MalformedHeaderError reports where and why header parsing failed.
type MalformedHeaderError struct {
	Offset int
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("malformed header at offset %d: %s", e.Offset, e.Reason)
}

func (e *MalformedHeaderError) Is(target error) bool { return target == ErrMalformedHeader }

// InvalidPaddingError reports a padding count that can never be produced
// by the encoder.
type InvalidPaddingError struct {
	Padding int
}

func (e *InvalidPaddingError) Error() string {
	return fmt.Sprintf("invalid padding: %d bits (expected 0-7)", e.Padding)
}

func (e *InvalidPaddingError) Is(target error) bool { return target == ErrInvalidPadding }

// CorruptStreamError reports the bit offset at which decoding failed.
type CorruptStreamError struct {
	BitOffset int
	Reason    string
}

func (e *CorruptStreamError) Error() string {
	return fmt.Sprintf("corrupt stream at bit %d: %s", e.BitOffset, e.Reason)
}

func (e *CorruptStreamError) Is(target error) bool { return target == ErrCorruptStream }
