package changelog

import (
	"iter"
	"regexp"
	"strings"
)

// CommonMarker marks the header line of a common block.
const CommonMarker = "Общая часть"

// deviceHeaderPattern matches "<name> V<version> ..." headers. The leading class is the
// Unicode equivalent of \w so Cyrillic device names start a header too.
var deviceHeaderPattern = regexp.MustCompile(`^[\p{L}\p{N}_].*\s+[vV][0-9.]+`)

// starts yields the index of every line accepted by match.
func starts(lines []string, match func(string) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, line := range lines {
			if match(line) && !yield(i) {
				return
			}
		}
	}
}

// CommonStarts yields the indices of common block headers.
func CommonStarts(lines []string) iter.Seq[int] {
	return starts(lines, IsCommonHeader)
}

// SpecialStarts yields the indices of model block headers.
func SpecialStarts(lines []string) iter.Seq[int] {
	return starts(lines, IsSpecialHeader)
}

// DeviceStarts yields the indices of standalone device headers.
func DeviceStarts(lines []string) iter.Seq[int] {
	return starts(lines, IsDeviceHeader)
}

// IsCommonHeader reports whether line opens a common block.
func IsCommonHeader(line string) bool {
	return strings.Contains(line, CommonMarker)
}

// IsSpecialHeader reports whether line opens a model block: "- NAME:".
func IsSpecialHeader(line string) bool {
	return strings.HasPrefix(line, "- ") && strings.HasSuffix(line, ":")
}

// IsDeviceHeader reports whether line opens a standalone device block.
func IsDeviceHeader(line string) bool {
	return deviceHeaderPattern.MatchString(line)
}

// IsBlockEnd reports whether line terminates a block.
func IsBlockEnd(line string) bool {
	return line == "" || strings.HasPrefix(line, "===")
}

// StripBullet removes every leading '-', ' ' and '\n' from line.
func StripBullet(line string) string {
	return strings.TrimLeft(line, "- \n")
}
