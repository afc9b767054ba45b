package huffman

import (
	"bytes"
	"fmt"
	"io"
)

const (
	maxArchiveBytes = 1 << 30 // 1 GiB

	trailerLen = 1
)

// Wire format:
//
//	header  = see header.go (length prefix + frequency list)
//	payload = packed code bits, MSB first, final byte zero padded
//	trailer = 1 ASCII digit '0'..'7': padding bits in the final payload byte
//
// The code tables are never stored; the decoder rebuilds them from
// the frequency list.

// Archive is a decoded compressed file.
type Archive struct {
	Frequencies RankedFrequencyList
	Payload     []byte
	Padding     uint8
}

// HeaderLen returns the encoded header size in bytes.
func (a *Archive) HeaderLen() int { return HeaderLen(a.Frequencies) }

// PayloadLen returns the packed payload size in bytes.
func (a *Archive) PayloadLen() int { return len(a.Payload) }

// Len returns the size of the serialized archive.
func (a *Archive) Len() int { return a.HeaderLen() + a.PayloadLen() + trailerLen }

// Bits returns the number of meaningful payload bits.
func (a *Archive) Bits() int { return len(a.Payload)*8 - int(a.Padding) }

func validateArchive(a *Archive) error {
	if err := a.Frequencies.Validate(); err != nil {
		return fmt.Errorf("frequencies: %w", err)
	}
	if a.Padding >= 8 {
		return &InvalidPaddingError{Padding: int(a.Padding)}
	}
	if len(a.Payload) == 0 {
		return &CorruptStreamError{Reason: "empty payload"}
	}
	return nil
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// AppendBinary appends the serialized archive to dst.
func (a *Archive) AppendBinary(dst []byte) ([]byte, error) {
	if err := validateArchive(a); err != nil {
		return dst, fmt.Errorf("invalid archive: %w", err)
	}
	dst, err := AppendHeader(dst, a.Frequencies)
	if err != nil {
		return dst, err
	}
	dst = append(dst, a.Payload...)
	return append(dst, '0'+a.Padding), nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Archive) MarshalBinary() ([]byte, error) {
	return a.AppendBinary(make([]byte, 0, a.Len()))
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Archive) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrNoHeader)
	}
	list, n, err := ParseHeader(data)
	if err != nil {
		return err
	}
	rest := data[n:]
	if len(rest) < trailerLen {
		return &CorruptStreamError{Reason: fmt.Sprintf("missing padding trailer after %d byte header", n)}
	}
	trailer := rest[len(rest)-1]
	if trailer < '0' || trailer > '7' {
		return &InvalidPaddingError{Padding: paddingValue(trailer)}
	}
	tmp := Archive{
		Frequencies: list,
		Payload:     bytes.Clone(rest[:len(rest)-1]),
		Padding:     trailer - '0',
	}
	if err := validateArchive(&tmp); err != nil {
		return fmt.Errorf("invalid archive structure: %w", err)
	}
	*a = tmp
	return nil
}

// paddingValue interprets a trailer byte for error reporting: digits as
// their value, anything else as the raw byte.
func paddingValue(b byte) int {
	if b >= '0' && b <= '9' {
		return int(b - '0')
	}
	return int(b)
}

// WriteTo serializes the Archive to an io.Writer.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	buf, err := a.MarshalBinary()
	if err != nil {
		return 0, err
	}
	return writeBytes(w, buf)
}

// ReadFrom deserializes an Archive from an io.Reader. It consumes r
// until EOF, because the trailer is the last byte of the stream.
func (a *Archive) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxArchiveBytes+1))
	total := int64(len(data))
	if err != nil {
		return total, fmt.Errorf("read archive at offset %d: %w", total, err)
	}
	if total > maxArchiveBytes {
		return total, fmt.Errorf("archive larger than %d bytes", maxArchiveBytes)
	}
	if err := a.UnmarshalBinary(data); err != nil {
		return total, err
	}
	return total, nil
}
