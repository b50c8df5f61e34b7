package engine

import "unicode/utf16"

// FPDF text APIs speak UTF-16LE. These helpers convert at the boundary.

// encodeUTF16 returns s as NUL-terminated UTF-16LE code units.
func encodeUTF16(s string) []uint16 {
	units := utf16.Encode([]rune(s))
	return append(units, 0)
}

// decodeUTF16 converts UTF-16LE bytes to a string, stopping at the first NUL
// terminator if one is present.
func decodeUTF16(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u := uint16(b[i]) | uint16(b[i+1])<<8
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}
