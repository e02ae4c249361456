package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMalformedDate is returned when a changelog date is not "dd.mm.yy.".
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedSortKey is returned when a catalog sort value is not an integer.
	ErrMalformedSortKey = errors.New("malformed sort key")
)

// FixDate converts "dd.mm.yy." to "dd.mm.20yy".
func FixDate(date string) (string, error) {
	parts := strings.Split(strings.TrimRight(date, "."), ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w %q: expected dd.mm.yy.", ErrMalformedDate, date)
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(year) != 2 || strings.Trim(year, "0123456789") != "" {
		return "", fmt.Errorf("%w %q: year must have exactly two digits", ErrMalformedDate, date)
	}
	return fmt.Sprintf("%s.%s.20%s", day, month, year), nil
}

// RenderHTML renders lines as a single-line unordered list:
// ["A", "B"] -> "<ul><li>A</li><li>B</li></ul>". Text is inserted verbatim.
func RenderHTML(lines []string) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, l := range lines {
		b.WriteString("<li>")
		b.WriteString(l)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

// ReplaceVersion replaces every occurrence of the decimal form of prev in s with next.
// This is a plain substring replacement: any other occurrence of the same digits
// (a year, a build number) is rewritten as well. Existing exports rely on it.
func ReplaceVersion(s string, prev, next int) string {
	return strings.ReplaceAll(s, strconv.Itoa(prev), strconv.Itoa(next))
}

// NextSortKey returns current + step. The site sorts by this column descending;
// keep steps small, the allowed range on the site side is unknown.
func NextSortKey(current string, step int) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(current))
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrMalformedSortKey, current)
	}
	return strconv.Itoa(n + step), nil
}
