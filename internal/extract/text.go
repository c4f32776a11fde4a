package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// foldCase lowercases s without changing its byte length, so offsets found in
// the folded copy index the original text. Runes whose lowercase form has a
// different UTF-8 width are left as they are.
func foldCase(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			buf.WriteByte(s[i])
			i++
			continue
		}
		if lower := unicode.ToLower(r); utf8.RuneLen(lower) == size {
			r = lower
		}
		buf.WriteRune(r)
		i += size
	}

	return buf.String()
}

// lastSentenceBreak returns the offset of the rightmost "." in s that does not
// close abbrev, or -1. Only the one abbreviation is skipped; "J." or "U.S."
// still count as sentence breaks.
func lastSentenceBreak(s string, abbrev string) int {
	for p := strings.LastIndexByte(s, '.'); p >= 0; p = strings.LastIndexByte(s[:p], '.') {
		if !strings.HasSuffix(s[:p+1], abbrev) {
			return p
		}
	}
	return -1
}
