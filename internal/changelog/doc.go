// Package changelog parses the free-text firmware changelog (changes.txt).
//
// The document is a sequence of blocks separated by empty lines or "===" rulers.
// Three kinds of block are recognised:
//   - common blocks, one per device type ("ЛБv7 Общая часть" followed by a version line)
//   - model blocks ("- THYSSEN:" followed by indented bullets), appended to the common
//     changelog of every catalog row of that model
//   - device blocks ("KONE ESC V1.0.4 05.06.20.") for standalone devices
//
// Block starts are located by line-local rules (see CommonStarts, SpecialStarts,
// DeviceStarts); the extent of a block is decided by the extractors.
package changelog
