package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/seiflotfy/huffman"
)

func encode(t *testing.T, text string) *huffman.Result {
	t.Helper()
	res, err := huffman.NewEncoder().Encode(text)
	require.NoError(t, err)
	return res
}

func TestNewStats(t *testing.T) {
	res := encode(t, "aaaaaaaabbbbbbbcccccc")
	s := NewStats(res, 21)
	require.Equal(t, Stats{
		OriginalBytes:   21,
		CompressedBytes: 31,
		HeaderBytes:     25,
		PayloadBytes:    5,
		PaddingBits:     6,
		Symbols:         21,
		DistinctSymbols: 3,
		Ratio:           31.0 / 21.0,
	}, s)

	require.Zero(t, NewStats(res, 0).Ratio)
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStats(&buf, NewStats(encode(t, "aaaaaaaabbbbbbbcccccc"), 21)))
	out := buf.String()
	require.Contains(t, out, "Uncompressed size: 21 bytes\n")
	require.Contains(t, out, "Compressed size: 31 bytes\n")
	require.Contains(t, out, "+-- Header size: 25 bytes\n")
	require.Contains(t, out, "+-- Payload size: 5 bytes\n")
	require.Contains(t, out, "+-- Padding bits added to the file: 6\n")
	require.Contains(t, out, "147.62% the size of the original")
}

func TestWriteStatsJSON(t *testing.T) {
	want := NewStats(encode(t, "hello world"), 11)
	var buf bytes.Buffer
	require.NoError(t, WriteStatsJSON(&buf, want))
	require.Contains(t, buf.String(), `"distinct_symbols": 8`)

	var got Stats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Equal(t, want, got)
}

func TestWriteTable(t *testing.T) {
	res := encode(t, "aaaaaaaabbbbbbbcccccc")
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, res.Frequencies, res.Codebook.Codes))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, []string{"CHAR", "OCCURENCES", "ENCODING"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"'a'", "8", "0"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"'b'", "7", "11"}, strings.Fields(lines[2]))
	require.Equal(t, []string{"'c'", "6", "10"}, strings.Fields(lines[3]))
}

func TestWriteCSV(t *testing.T) {
	res := encode(t, "a,b\"\n")
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res.Frequencies, res.Codebook.Codes))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 6)
	require.Equal(t, tableColumns, records[0])
	for i, e := range res.Frequencies {
		require.Equal(t, e.Symbol.String(), records[i+1][0])
		require.Equal(t, res.Codebook.Codes[e.Symbol], records[i+1][2])
	}
}

func TestWriteTableErrors(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil, nil)
	require.ErrorIs(t, err, huffman.ErrEmptyHeap)

	list := huffman.RankedFrequencyList{{Symbol: 'a', Count: 2}, {Symbol: 'b', Count: 1}}
	err = WriteTable(&buf, list, huffman.CodeTable{'a': "0"})
	require.ErrorIs(t, err, huffman.ErrUnknownSymbol)
	err = WriteCSV(&buf, list, huffman.CodeTable{'a': "0"})
	require.ErrorIs(t, err, huffman.ErrUnknownSymbol)
}
