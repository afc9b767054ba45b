// Package report renders compression statistics and encoding tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	"github.com/seiflotfy/huffman"
)

var tableColumns = []string{"CHAR", "OCCURENCES", "ENCODING"}

// Stats summarizes one compression.
type Stats struct {
	OriginalBytes   int     `json:"original_bytes"`
	CompressedBytes int     `json:"compressed_bytes"`
	HeaderBytes     int     `json:"header_bytes"`
	PayloadBytes    int     `json:"payload_bytes"`
	PaddingBits     uint8   `json:"padding_bits"`
	Symbols         int     `json:"symbols"`
	DistinctSymbols int     `json:"distinct_symbols"`
	Ratio           float64 `json:"ratio"` // compressed / original
}

// NewStats computes the statistics of res. originalBytes is the size of
// the input as it was read (UTF-8 bytes).
func NewStats(res *huffman.Result, originalBytes int) Stats {
	a := res.Archive
	s := Stats{
		OriginalBytes:   originalBytes,
		CompressedBytes: a.Len(),
		HeaderBytes:     a.HeaderLen(),
		PayloadBytes:    a.PayloadLen(),
		PaddingBits:     a.Padding,
		Symbols:         res.Symbols,
		DistinctSymbols: len(res.Frequencies),
	}
	if originalBytes > 0 {
		s.Ratio = float64(s.CompressedBytes) / float64(originalBytes)
	}
	return s
}

// WriteStats prints s in human-readable form.
func WriteStats(w io.Writer, s Stats) error {
	_, err := fmt.Fprintf(w,
		"Uncompressed size: %d bytes\n"+
			"Compressed size: %d bytes\n"+
			"+-- Header size: %d bytes\n"+
			"+-- Payload size: %d bytes\n"+
			"+-- Padding bits added to the file: %d\n"+
			"The compressed file is %.2f%% the size of the original\n",
		s.OriginalBytes, s.CompressedBytes, s.HeaderBytes, s.PayloadBytes, s.PaddingBits, 100*s.Ratio)
	return err
}

// WriteStatsJSON writes s as one JSON object.
func WriteStatsJSON(w io.Writer, s Stats) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

type row struct {
	char, count, code string
}

func rows(list huffman.RankedFrequencyList, codes huffman.CodeTable) ([]row, error) {
	out := make([]row, 0, len(list))
	for _, e := range list {
		code, ok := codes[e.Symbol]
		if !ok {
			return nil, fmt.Errorf("symbol %s: %w", e.Symbol, huffman.ErrUnknownSymbol)
		}
		out = append(out, row{
			char:  e.Symbol.String(),
			count: strconv.FormatUint(e.Count, 10),
			code:  code,
		})
	}
	return out, nil
}

// WriteTable prints one aligned row per symbol in ranked order.
func WriteTable(w io.Writer, list huffman.RankedFrequencyList, codes huffman.CodeTable) error {
	rs, err := rows(list, codes)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\n", tableColumns[0], tableColumns[1], tableColumns[2])
	for _, r := range rs {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.char, r.count, r.code)
	}
	return tw.Flush()
}

// WriteCSV writes the encoding table as CSV with a header row.
func WriteCSV(w io.Writer, list huffman.RankedFrequencyList, codes huffman.CodeTable) error {
	if len(list) == 0 {
		return fmt.Errorf("write csv: %w", huffman.ErrEmptyHeap)
	}
	rs, err := rows(list, codes)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(tableColumns); err != nil {
		return err
	}
	for _, r := range rs {
		if err := cw.Write([]string{r.char, r.count, r.code}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
