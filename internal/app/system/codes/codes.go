// Package codes formats and parses the human-facing project codes
// ("PRJ0042"). Sequence numbers come from the counters collection; the
// width grows past four digits rather than overflowing.
package codes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the fixed project-code prefix.
const Prefix = "PRJ"

// ErrBadCode is returned by Parse for strings that are not project codes.
var ErrBadCode = errors.New("malformed project code")

// FormatProject renders a sequence number as a project code, zero
// padded to four digits ("PRJ0001", "PRJ0042", "PRJ12345").
func FormatProject(seq int64) string {
	return fmt.Sprintf("%s%04d", Prefix, seq)
}

// Parse extracts the sequence number from a project code.
func Parse(code string) (int64, error) {
	if !strings.HasPrefix(code, Prefix) {
		return 0, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	digits := strings.TrimPrefix(code, Prefix)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadCode, code)
	}
	return n, nil
}

// Valid reports whether code parses as a project code.
func Valid(code string) bool {
	_, err := Parse(code)
	return err == nil
}
