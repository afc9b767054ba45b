// Command huffman compresses and decompresses text files with static
// Huffman coding.
//
// Usage:
//
//	huffman -c (-f file | -m message) -o out [-v] [-t table.csv] [-s bits.txt]
//	huffman -d -f file -o out [-v] [-t table.csv] [-s bits.txt]
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/seiflotfy/huffman"
	"github.com/seiflotfy/huffman/internal/config"
	"github.com/seiflotfy/huffman/internal/fileio"
	"github.com/seiflotfy/huffman/internal/report"
)

var errUsage = errors.New("usage")

type options struct {
	dashc, dashd bool
	dashf, dashm string
	dasho        string
	dasht, dashs string
	dashconfig   string
	cfg          config.Config
}

func exitf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...any) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

func main() {
	err := run(os.Args[1:], os.Stdout)
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		exitf("huffman: %s\n", describe(err))
	}
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	var (
		dashv, dashjson  bool
		dashp, dashcache int
	)
	flags := flag.NewFlagSet("huffman", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&o.dashc, "c", false, "compress")
	flags.BoolVar(&o.dashd, "d", false, "decompress")
	flags.StringVar(&o.dashf, "f", "", "input file (\"-\" means stdin)")
	flags.StringVar(&o.dashm, "m", "", "compress this message instead of a file")
	flags.StringVar(&o.dasho, "o", "", "output file (\"-\" means stdout)")
	flags.BoolVar(&dashv, "v", false, "show encoding table, header and statistics")
	flags.StringVar(&o.dasht, "t", "", "save the encoding table as CSV")
	flags.StringVar(&o.dashs, "s", "", "save the encoded bits as '0'/'1' text")
	flags.BoolVar(&dashjson, "json", false, "print statistics as JSON")
	flags.StringVar(&o.dashconfig, "config", "", "YAML or JSON configuration file")
	flags.IntVar(&dashp, "p", 0, "frequency counting goroutines (0 means GOMAXPROCS)")
	flags.IntVar(&dashcache, "cache", 0, "decoder code book cache entries")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	o.cfg = config.Default()
	if o.dashconfig != "" {
		cfg, err := config.Load(o.dashconfig)
		if err != nil {
			return nil, err
		}
		o.cfg = cfg
	}
	// explicit flags win over the config file
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":
			o.cfg.Verbose = dashv
		case "json":
			o.cfg.JSON = dashjson
		case "p":
			o.cfg.Parallelism = dashp
		case "cache":
			o.cfg.CacheSize = dashcache
		}
	})
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	usage := func(msg string) error {
		fmt.Fprintf(stderr, "huffman: %s\n", msg)
		flags.Usage()
		return errUsage
	}
	switch {
	case o.dashc == o.dashd:
		return nil, usage("exactly one of -c or -d is required")
	case o.dashf == "" && o.dashm == "":
		return nil, usage("one of -f or -m is required")
	case o.dashf != "" && o.dashm != "":
		return nil, usage("-f and -m are mutually exclusive")
	case o.dashd && o.dashm != "":
		return nil, usage("-m is not allowed with -d")
	case o.dasho == "":
		return nil, usage("-o is required")
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseArgs(args, os.Stderr)
	if err != nil {
		return err
	}
	opts := o.cfg.Options(logf)
	if o.dashc {
		return compress(o, opts, stdout)
	}
	return decompress(o, opts, stdout)
}

func compress(o *options, opts []huffman.Option, stdout io.Writer) error {
	text := o.dashm
	if o.dashf != "" {
		var err error
		text, err = fileio.ReadText(o.dashf)
		if err != nil {
			return err
		}
	}
	res, err := huffman.NewEncoder(opts...).Encode(text)
	if err != nil {
		if o.dashf != "" {
			return fmt.Errorf("%s: %w", o.dashf, err)
		}
		return err
	}
	out, err := res.Bytes()
	if err != nil {
		return err
	}
	if o.cfg.Verbose {
		fmt.Fprintln(stdout, "Algorithm's generated table:")
		if err := report.WriteTable(stdout, res.Frequencies, res.Codebook.Codes); err != nil {
			return err
		}
		header, err := huffman.AppendHeader(nil, res.Frequencies)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nHeader added to the encoded file:\n%q\n\n", header)
	}
	if err := fileio.WriteBytes(o.dasho, out); err != nil {
		return err
	}
	if err := saveExtras(o, res.Frequencies, res.Codebook, res.Bits, stdout); err != nil {
		return err
	}

	stats := report.NewStats(res, len(text))
	switch {
	case o.cfg.JSON:
		return report.WriteStatsJSON(stdout, stats)
	case o.cfg.Verbose:
		return report.WriteStats(stdout, stats)
	}
	return nil
}

func decompress(o *options, opts []huffman.Option, stdout io.Writer) error {
	data, err := fileio.ReadBytes(o.dashf)
	if err != nil {
		return err
	}
	var a huffman.Archive
	if err := a.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("%s: %w", o.dashf, err)
	}
	dec, err := huffman.NewDecoder(opts...)
	if err != nil {
		return err
	}
	text, cb, err := dec.DecodeArchive(&a)
	if err != nil {
		return fmt.Errorf("%s: %w", o.dashf, err)
	}
	if o.cfg.Verbose {
		fmt.Fprintln(stdout, "Algorithm's generated table:")
		if err := report.WriteTable(stdout, a.Frequencies, cb.Codes); err != nil {
			return err
		}
	}
	if err := fileio.WriteText(o.dasho, text); err != nil {
		return err
	}
	var bits string
	if o.dashs != "" {
		bits, err = huffman.Unpack(a.Payload, a.Padding)
		if err != nil {
			return err
		}
	}
	return saveExtras(o, a.Frequencies, cb, bits, stdout)
}

func saveExtras(o *options, list huffman.RankedFrequencyList, cb *huffman.Codebook, bits string, stdout io.Writer) error {
	if o.dashs != "" {
		fmt.Fprintf(stdout, "The encoded binary will be saved in: %s\n", o.dashs)
		if err := fileio.WriteText(o.dashs, bits); err != nil {
			return err
		}
	}
	if o.dasht != "" {
		fmt.Fprintf(stdout, "The encoding table will be saved in: %s\n", o.dasht)
		var buf bytes.Buffer
		if err := report.WriteCSV(&buf, list, cb.Codes); err != nil {
			return err
		}
		if err := fileio.WriteBytes(o.dasht, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// describe turns codec errors into the messages users see.
func describe(err error) string {
	var (
		charset *huffman.UnsupportedCharsetError
		padding *huffman.InvalidPaddingError
	)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Sprintf("file does not exist: %s", err)
	case errors.Is(err, huffman.ErrEmptyInput):
		return "cannot compress empty file/string"
	case errors.As(err, &charset):
		return fmt.Sprintf("only ASCII/Latin-1 text is compressable (%s)", err)
	case errors.Is(err, fileio.ErrNotDecodable):
		return fmt.Sprintf("only UTF-8 encoded files are compressable (%s)", err)
	case errors.Is(err, huffman.ErrNoHeader):
		return fmt.Sprintf("given compressed file has no table header (%s)", err)
	case errors.Is(err, huffman.ErrMalformedHeader):
		return fmt.Sprintf("given compressed file has no valid table header (%s)", err)
	case errors.As(err, &padding):
		return fmt.Sprintf("the acquired padding (%d bits) is not possible", padding.Padding)
	case errors.Is(err, huffman.ErrCorruptStream):
		return fmt.Sprintf("compressed data is truncated or corrupt (%s)", err)
	}
	return err.Error()
}
