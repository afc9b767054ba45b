package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// CountPaddingBits returns the number of zero bits needed to extend a
// bitstream of n bits to a whole number of bytes.
func CountPaddingBits(n int) uint8 {
	return uint8((8 - n%8) % 8)
}

// EncodeSymbols concatenates the codes of symbols in input order.
func EncodeSymbols(symbols []Symbol, codes CodeTable) (string, error) {
	var b strings.Builder
	for i, s := range symbols {
		code, ok := codes[s]
		if !ok {
			return "", fmt.Errorf("symbol %s at index %d: %w", s, i, ErrUnknownSymbol)
		}
		b.WriteString(code)
	}
	return b.String(), nil
}

// Pack packs a string of '0' and '1' into bytes, most significant bit
// first, and zero-pads the final byte. It returns the packed bytes and
// the number of padding bits.
func Pack(bits string) ([]byte, uint8, error) {
	buf := bytes.NewBuffer(make([]byte, 0, (len(bits)+7)/8))
	w := bitio.NewWriter(buf)
	for i := 0; i < len(bits); i++ {
		var bit bool
		switch bits[i] {
		case '0':
		case '1':
			bit = true
		default:
			return nil, 0, fmt.Errorf("pack: %q at index %d: %w", bits[i], i, ErrInvalidBit)
		}
		if err := w.WriteBool(bit); err != nil {
			return nil, 0, fmt.Errorf("pack: %w", err)
		}
	}
	padding, err := w.Align()
	if err != nil {
		return nil, 0, fmt.Errorf("pack: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, 0, fmt.Errorf("pack: %w", err)
	}
	return buf.Bytes(), padding, nil
}

// Unpack expands packed bytes back into a string of '0' and '1' and
// strips the trailing padding bits.
func Unpack(payload []byte, padding uint8) (string, error) {
	if padding >= 8 {
		return "", &InvalidPaddingError{Padding: int(padding)}
	}
	total := len(payload) * 8
	if int(padding) > total {
		return "", &CorruptStreamError{BitOffset: total, Reason: fmt.Sprintf("%d padding bits exceed payload", padding)}
	}
	r := bitio.NewReader(bytes.NewReader(payload))
	out := make([]byte, total)
	for i := range out {
		bit, err := r.ReadBool()
		if err != nil {
			return "", &CorruptStreamError{BitOffset: i, Reason: err.Error()}
		}
		out[i] = '0'
		if bit {
			out[i] = '1'
		}
	}
	return string(out[:total-int(padding)]), nil
}

// Decode turns a bitstring into symbols by growing a candidate one bit
// at a time and emitting a symbol whenever the candidate matches a code.
func Decode(bits string, table DecodeTable) ([]Symbol, error) {
	if len(table) == 0 {
		return nil, ErrEmptyTree
	}
	maxLen := 0
	for code := range table {
		maxLen = max(maxLen, len(code))
	}

	var out []Symbol
	start := 0
	for end := 1; end <= len(bits); end++ {
		candidate := bits[start:end]
		if s, ok := table[candidate]; ok {
			out = append(out, s)
			start = end
			continue
		}
		if len(candidate) >= maxLen {
			return out, &CorruptStreamError{BitOffset: start, Reason: fmt.Sprintf("no code matches %q", candidate)}
		}
	}
	if start != len(bits) {
		return out, &CorruptStreamError{BitOffset: start, Reason: fmt.Sprintf("residual %q matches no code", bits[start:])}
	}
	return out, nil
}
