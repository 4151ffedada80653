package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Serial formatting constants. The shape PREFIX-YYYY-NNNNN is fixed and must
// stay bit-compatible with labels already printed by earlier releases.
const (
	serialSeparator = "-"
	sequenceDigits  = 5
)

// FormatSerial renders the canonical serial string for a minted sequence:
// PREFIX-YYYY-NNNNN with the sequence zero-padded to five digits. The
// function is pure; it performs no allocation against the counter store.
func FormatSerial(category Category, year, sequence int) string {
	return fmt.Sprintf("%s%s%04d%s%0*d",
		category.Prefix(), serialSeparator, year, serialSeparator, sequenceDigits, sequence)
}

// ParsedSerial is the decomposition of a formatted serial string.
type ParsedSerial struct {
	Category Category
	Year     int
	Sequence int
}

// ParseSerial decomposes a serial string back into category, year, and
// sequence. It accepts exactly the shape FormatSerial produces.
func ParseSerial(serial string) (ParsedSerial, error) {
	parts := strings.Split(serial, serialSeparator)
	if len(parts) != 3 {
		return ParsedSerial{}, fmt.Errorf("malformed serial %q: want PREFIX-YYYY-NNNNN", serial)
	}

	category, err := CategoryForPrefix(parts[0])
	if err != nil {
		return ParsedSerial{}, fmt.Errorf("malformed serial %q: %w", serial, err)
	}

	year, err := strconv.Atoi(parts[1])
	if err != nil || len(parts[1]) != 4 {
		return ParsedSerial{}, fmt.Errorf("malformed serial %q: bad year %q", serial, parts[1])
	}

	if len(parts[2]) != sequenceDigits {
		return ParsedSerial{}, fmt.Errorf("malformed serial %q: bad sequence %q", serial, parts[2])
	}
	sequence, err := strconv.Atoi(parts[2])
	if err != nil || sequence < 1 {
		return ParsedSerial{}, fmt.Errorf("malformed serial %q: bad sequence %q", serial, parts[2])
	}

	return ParsedSerial{Category: category, Year: year, Sequence: sequence}, nil
}
