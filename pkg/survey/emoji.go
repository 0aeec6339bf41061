package survey

import (
	"strings"
	"unicode"
)

// Pictograph/emoji code points stripped from stored text. One broad span
// from the enclosed alphanumerics (U+24C2) up to the enclosed ideographs
// (U+1F251) covers dingbats, arrows, stars, flags and the variation selector,
// with the remaining pictograph blocks above it listed separately. Cyrillic
// and Latin text sits entirely below the span.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x24C2, Hi: 0xFFFF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x10000, Hi: 0x1F251, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport symbols
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1}, // supplemental symbols
		{Lo: 0x1FA00, Hi: 0x1FA6F, Stride: 1}, // chess symbols
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1}, // symbols extended-A
	},
}

// StripEmoji removes pictograph code points from s, collapses whitespace runs
// to single spaces and trims the result.
func StripEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(emojiRanges, r) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func stripEmojiList(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, StripEmoji(it))
	}
	return out
}
