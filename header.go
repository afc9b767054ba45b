package huffman

import (
	"fmt"
	"math/bits"
	"strconv"
)

const (
	// headerPrefixDigits is the width of the zero-padded decimal length
	// that precedes the header body.
	headerPrefixDigits = 16
	// headerElementSeparator ends every (symbol, count) element.
	headerElementSeparator = 0x07

	// maxHeaderBodyLen is the largest length the prefix can express.
	maxHeaderBodyLen uint64 = 1e16 - 1
)

// Header layout:
//
//	length = 16 ASCII digits, zero padded: byte length of body
//	body   = repeat for each entry in ranked order:
//	  symbol    = 1 byte
//	  count     = decimal ASCII digits
//	  separator = 0x07
//
// The symbol is always exactly one byte, so any value (digits and the
// separator included) may appear as a symbol.

// HeaderLen returns the encoded size of the header for list.
func HeaderLen(list RankedFrequencyList) int {
	n := headerPrefixDigits
	for _, e := range list {
		n += 2 + decimalLen(e.Count)
	}
	return n
}

func decimalLen(v uint64) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// AppendHeader appends the serialized header for list to dst.
func AppendHeader(dst []byte, list RankedFrequencyList) ([]byte, error) {
	if err := list.Validate(); err != nil {
		return dst, fmt.Errorf("append header: %w", err)
	}
	dst, err := appendLengthPrefix(dst, uint64(HeaderLen(list)-headerPrefixDigits))
	if err != nil {
		return dst, fmt.Errorf("append header: %w", err)
	}
	for _, e := range list {
		dst = append(dst, byte(e.Symbol))
		dst = strconv.AppendUint(dst, e.Count, 10)
		dst = append(dst, headerElementSeparator)
	}
	return dst, nil
}

func appendLengthPrefix(dst []byte, bodyLen uint64) ([]byte, error) {
	if bodyLen > maxHeaderBodyLen {
		return dst, fmt.Errorf("body of %d bytes does not fit a %d digit length prefix", bodyLen, headerPrefixDigits)
	}
	return fmt.Appendf(dst, "%0*d", headerPrefixDigits, bodyLen), nil
}

// ParseHeader reads a header from the start of data. It returns the
// frequency list in the order it was written and the number of bytes
// consumed.
func ParseHeader(data []byte) (RankedFrequencyList, int, error) {
	if len(data) < headerPrefixDigits {
		return nil, 0, fmt.Errorf("%w: %d bytes is shorter than the %d digit length prefix", ErrNoHeader, len(data), headerPrefixDigits)
	}
	prefix := data[:headerPrefixDigits]
	for _, c := range prefix {
		if c < '0' || c > '9' {
			return nil, 0, fmt.Errorf("%w: length prefix %q is not decimal", ErrNoHeader, prefix)
		}
	}
	bodyLen, err := strconv.ParseUint(string(prefix), 10, 64)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: length prefix %q: %v", ErrNoHeader, prefix, err)
	}
	if bodyLen == 0 {
		return nil, 0, fmt.Errorf("%w: empty header body", ErrNoHeader)
	}
	if bodyLen > uint64(len(data)-headerPrefixDigits) {
		return nil, 0, fmt.Errorf("%w: header body of %d bytes exceeds the %d bytes available", ErrNoHeader, bodyLen, len(data)-headerPrefixDigits)
	}
	end := headerPrefixDigits + int(bodyLen)
	list, err := parseHeaderBody(data[headerPrefixDigits:end], headerPrefixDigits)
	if err != nil {
		return nil, 0, err
	}
	return list, end, nil
}

func parseHeaderBody(body []byte, base int) (RankedFrequencyList, error) {
	var list RankedFrequencyList
	var seen [alphabetSize]bool
	var total uint64
	for pos := 0; pos < len(body); {
		entryOffset := base + pos
		sym := Symbol(body[pos])
		pos++
		digits := pos
		for pos < len(body) && body[pos] != headerElementSeparator {
			pos++
		}
		if pos == len(body) {
			return nil, &MalformedHeaderError{Offset: entryOffset, Reason: fmt.Sprintf("entry for %s has no separator", sym)}
		}
		segment := body[digits:pos]
		pos++ // separator
		if len(segment) == 0 {
			return nil, &MalformedHeaderError{Offset: entryOffset, Reason: fmt.Sprintf("entry for %s has no count", sym)}
		}
		count, err := strconv.ParseUint(string(segment), 10, 64)
		if err != nil {
			return nil, &MalformedHeaderError{Offset: base + digits, Reason: fmt.Sprintf("count %q for %s is not numeric", segment, sym)}
		}
		if count == 0 {
			return nil, &MalformedHeaderError{Offset: base + digits, Reason: fmt.Sprintf("zero count for %s", sym)}
		}
		if seen[sym] {
			return nil, &MalformedHeaderError{Offset: entryOffset, Reason: fmt.Sprintf("duplicate symbol %s", sym)}
		}
		seen[sym] = true
		if n := len(list); n > 0 && list[n-1].Count < count {
			return nil, &MalformedHeaderError{Offset: entryOffset, Reason: fmt.Sprintf("count %d for %s breaks descending order", count, sym)}
		}
		var carry uint64
		if total, carry = bits.Add64(total, count, 0); carry != 0 {
			return nil, &MalformedHeaderError{Offset: entryOffset, Reason: fmt.Sprintf("count %d for %s overflows the symbol total", count, sym)}
		}
		list = append(list, FrequencyEntry{Symbol: sym, Count: count})
	}
	return list, nil
}
