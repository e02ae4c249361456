package changelog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultVersionWidth is the digit count dotted versions are padded to.
const DefaultVersionWidth = 3

// ErrMalformedVersion is returned when a dotted version contains anything but digits and dots.
var ErrMalformedVersion = errors.New("malformed version")

// ParseDotted converts a dotted version into its integer form by concatenating
// the digit groups: "6.3.7" -> 637, "0.0.9" -> 9.
func ParseDotted(s string) (int, error) {
	digits := strings.ReplaceAll(s, ".", "")
	if digits == "" {
		return 0, fmt.Errorf("%w %q", ErrMalformedVersion, s)
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w %q", ErrMalformedVersion, s)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrMalformedVersion, s, err)
	}
	return n, nil
}

// FormatDotted is the inverse of ParseDotted: every digit of n becomes a group,
// after left-padding with zeros to width digits. FormatDotted(637, 3) == "6.3.7",
// FormatDotted(9, 3) == "0.0.9". A width below 1 disables padding.
func FormatDotted(n, width int) string {
	digits := strconv.Itoa(n)
	if pad := width - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	var b strings.Builder
	for i, r := range digits {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
