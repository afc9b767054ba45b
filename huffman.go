// Package huffman implements static Huffman coding of ASCII and Latin-1
// text into a self-describing binary format.
//
// A compressed file carries the ranked symbol frequencies of the input,
// the packed code bits and a one-byte padding trailer. The decoder
// rebuilds the exact tree the encoder used from the frequencies alone,
// so tree building is fully deterministic: see BuildTree for the
// tie-break rule.
package huffman

import (
	"context"
	"fmt"
)

// Config holds configuration for the encoder and decoder.
type Config struct {
	Parallelism  int // counting goroutines (0 or 1 = sequential)
	ChunkSize    int // symbols per counting task (0 = default)
	CodebookSize int // decoder code book cache entries (0 = no cache)

	// Logf, if non-nil, receives pipeline diagnostics.
	Logf func(f string, a ...any)
}

// Option is a functional option for configuring the encoder and decoder.
type Option func(*Config)

// WithParallelism counts symbol frequencies on up to n goroutines.
func WithParallelism(n int) Option {
	return func(c *Config) {
		c.Parallelism = n
	}
}

// WithChunkSize sets how many symbols each counting goroutine handles.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

// WithCodebookCache keeps the code books of the n most recently seen
// frequency lists in the decoder.
func WithCodebookCache(n int) Option {
	return func(c *Config) {
		c.CodebookSize = n
	}
}

// WithLogf installs a printf-style logger for pipeline diagnostics.
func WithLogf(logf func(f string, a ...any)) Option {
	return func(c *Config) {
		c.Logf = logf
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{Parallelism: defaultParallelism}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c *Config) logf(f string, a ...any) {
	if c.Logf != nil {
		c.Logf(f, a...)
	}
}

// Result is the outcome of one Encode call. Besides the archive it
// exposes the intermediate tables for reporting.
type Result struct {
	Archive     *Archive
	Frequencies RankedFrequencyList
	Codebook    *Codebook
	Bits        string // concatenated codes before padding
	Symbols     int    // number of input symbols
}

// Bytes returns the serialized archive.
func (r *Result) Bytes() ([]byte, error) { return r.Archive.MarshalBinary() }

// Encoder compresses text. It holds no per-call state and is safe for
// concurrent use.
type Encoder struct {
	config Config
}

// NewEncoder creates a new encoder with the given options.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{config: newConfig(opts)}
}

// Encode compresses text. Empty text fails with ErrEmptyInput.
func (e *Encoder) Encode(text string) (*Result, error) {
	return e.EncodeContext(context.Background(), text)
}

// EncodeContext is Encode with a context that bounds parallel counting.
func (e *Encoder) EncodeContext(ctx context.Context, text string) (*Result, error) {
	if len(text) == 0 {
		return nil, ErrEmptyInput
	}
	symbols, err := Symbols(text)
	if err != nil {
		return nil, err
	}
	ft, err := CountFrequenciesParallel(ctx, symbols, e.config.Parallelism, e.config.ChunkSize)
	if err != nil {
		return nil, err
	}
	list := ft.Ranked()
	e.config.logf("counted %d symbols, %d distinct", len(symbols), len(list))

	root, err := BuildTree(list)
	if err != nil {
		return nil, err
	}
	cb, err := DeriveCodes(root)
	if err != nil {
		return nil, err
	}
	e.config.logf("built tree of depth %d, longest code %d bits", root.Depth(), cb.MaxLen)

	bits, err := EncodeSymbols(symbols, cb.Codes)
	if err != nil {
		return nil, err
	}
	payload, padding, err := Pack(bits)
	if err != nil {
		return nil, err
	}
	e.config.logf("packed %d bits into %d bytes with %d padding bits", len(bits), len(payload), padding)

	return &Result{
		Archive: &Archive{
			Frequencies: list,
			Payload:     payload,
			Padding:     padding,
		},
		Frequencies: list,
		Codebook:    cb,
		Bits:        bits,
		Symbols:     len(symbols),
	}, nil
}

// Compress encodes text and returns the serialized archive.
func (e *Encoder) Compress(text string) ([]byte, error) {
	res, err := e.Encode(text)
	if err != nil {
		return nil, err
	}
	return res.Bytes()
}

// Decoder decompresses archives. It is safe for concurrent use.
type Decoder struct {
	config Config
	cache  *codebookCache
}

// NewDecoder creates a new decoder with the given options.
func NewDecoder(opts ...Option) (*Decoder, error) {
	d := &Decoder{config: newConfig(opts)}
	if d.config.CodebookSize > 0 {
		c, err := newCodebookCache(d.config.CodebookSize)
		if err != nil {
			return nil, fmt.Errorf("codebook cache: %w", err)
		}
		d.cache = c
	}
	return d, nil
}

// Decode decompresses a serialized archive.
func (d *Decoder) Decode(data []byte) (string, error) {
	var a Archive
	if err := a.UnmarshalBinary(data); err != nil {
		return "", err
	}
	text, _, err := d.DecodeArchive(&a)
	return text, err
}

// DecodeArchive decompresses a. It also returns the code book it
// rebuilt from the archive's frequencies.
func (d *Decoder) DecodeArchive(a *Archive) (string, *Codebook, error) {
	cb, err := d.codebook(a.Frequencies)
	if err != nil {
		return "", nil, err
	}
	bits, err := Unpack(a.Payload, a.Padding)
	if err != nil {
		return "", nil, err
	}
	symbols, err := Decode(bits, cb.Decodes)
	if err != nil {
		return "", nil, err
	}
	if want := a.Frequencies.Total(); uint64(len(symbols)) != want {
		return "", nil, &CorruptStreamError{
			BitOffset: len(bits),
			Reason:    fmt.Sprintf("decoded %d symbols, header declares %d", len(symbols), want),
		}
	}
	d.config.logf("decoded %d symbols from %d bits", len(symbols), len(bits))
	return Text(symbols), cb, nil
}

func (d *Decoder) codebook(list RankedFrequencyList) (*Codebook, error) {
	if d.cache == nil {
		return NewCodebook(list)
	}
	cb, hit, err := d.cache.get(list)
	if err != nil {
		return nil, err
	}
	if hit {
		d.config.logf("codebook cache hit for %d symbols", len(list))
	}
	return cb, nil
}

var (
	defaultEncoder = NewEncoder()
	defaultDecoder = &Decoder{config: newConfig(nil)}
)

// Compress encodes text with the default encoder.
func Compress(text string) ([]byte, error) {
	return defaultEncoder.Compress(text)
}

// Decompress decodes data with the default decoder.
func Decompress(data []byte) (string, error) {
	return defaultDecoder.Decode(data)
}
