package huffman

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// singleSymbolCode is the code given to the only symbol of a
// one-symbol alphabet, whose tree has no edges.
const singleSymbolCode = "0"

// CodeTable maps each symbol to its bitstring of '0' and '1'.
type CodeTable map[Symbol]string

// DecodeTable maps each bitstring back to its symbol.
type DecodeTable map[string]Symbol

// Codebook holds the encode and decode tables derived from one tree.
// It is immutable once built and may be shared between goroutines.
type Codebook struct {
	Codes   CodeTable
	Decodes DecodeTable
	MaxLen  int // length of the longest code
}

// DeriveCodes walks the tree rooted at root, appending '0' for every
// left step and '1' for every right step.
func DeriveCodes(root *Node) (*Codebook, error) {
	if root == nil {
		return nil, ErrEmptyTree
	}
	cb := &Codebook{
		Codes:   make(CodeTable),
		Decodes: make(DecodeTable),
	}
	if root.IsLeaf() {
		cb.add(root.Symbol, singleSymbolCode)
		return cb, nil
	}
	var walk func(n *Node, prefix []byte) error
	walk = func(n *Node, prefix []byte) error {
		if n == nil {
			return fmt.Errorf("derive codes: missing child below %q: %w", prefix, ErrEmptyTree)
		}
		if n.IsLeaf() {
			cb.add(n.Symbol, string(prefix))
			return nil
		}
		if err := walk(n.Left, append(prefix, '0')); err != nil {
			return err
		}
		return walk(n.Right, append(prefix, '1'))
	}
	if err := walk(root, make([]byte, 0, 16)); err != nil {
		return nil, err
	}
	return cb, nil
}

// NewCodebook builds the code book for a ranked frequency list.
func NewCodebook(list RankedFrequencyList) (*Codebook, error) {
	root, err := BuildTree(list)
	if err != nil {
		return nil, err
	}
	return DeriveCodes(root)
}

func (cb *Codebook) add(s Symbol, code string) {
	cb.Codes[s] = code
	cb.Decodes[code] = s
	cb.MaxLen = max(cb.MaxLen, len(code))
}

// Len returns the number of symbols in the code book.
func (cb *Codebook) Len() int { return len(cb.Codes) }

// EncodedLen returns the number of bits needed to encode a text with
// the frequencies in list.
func (cb *Codebook) EncodedLen(list RankedFrequencyList) (int, error) {
	var n int
	for _, e := range list {
		code, ok := cb.Codes[e.Symbol]
		if !ok {
			return 0, fmt.Errorf("symbol %s: %w", e.Symbol, ErrUnknownSymbol)
		}
		n += len(code) * int(e.Count)
	}
	return n, nil
}

// PrefixFree reports whether no code is a prefix of another. Codes
// derived from a tree always are; the check guards hand-built tables.
func (cb *Codebook) PrefixFree() bool {
	codes := make([]string, 0, len(cb.Codes))
	for _, c := range cb.Codes {
		codes = append(codes, c)
	}
	// after sorting, a prefix sorts directly before the codes it prefixes
	slices.Sort(codes)
	for i := 1; i < len(codes); i++ {
		if strings.HasPrefix(codes[i], codes[i-1]) {
			return false
		}
	}
	return true
}
