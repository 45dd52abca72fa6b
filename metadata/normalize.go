package metadata

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalized is the NFC form of a text together with the rune mapping back
// to the original
type normalized struct {
	text string

	// segStart[i] and segEnd[i] bound, in original runes, the normalization
	// segment that produced normalized rune i
	segStart []int
	segEnd   []int

	total int
}

func normalize(text string) *normalized {
	n := &normalized{}

	var sb strings.Builder
	sb.Grow(len(text))

	var it norm.Iter
	it.InitString(norm.NFC, text)

	orig := 0
	for !it.Done() {
		from := it.Pos()
		seg := it.Next()
		width := utf8.RuneCountInString(text[from:it.Pos()])

		count := utf8.RuneCount(seg)
		for k := 0; k < count; k++ {
			if count == width {
				n.segStart = append(n.segStart, orig+k)
				n.segEnd = append(n.segEnd, orig+k+1)
				continue
			}
			n.segStart = append(n.segStart, orig)
			n.segEnd = append(n.segEnd, orig+width)
		}
		sb.Write(seg)
		orig += width
	}

	n.text = sb.String()
	n.total = orig
	return n
}

// runeRange converts a byte range of the normalized text to a rune range of
// the original text
func (n *normalized) runeRange(startByte, endByte int) (int, int) {
	s := utf8.RuneCountInString(n.text[:startByte])
	e := s + utf8.RuneCountInString(n.text[startByte:endByte])

	start, end := n.total, n.total
	if s < len(n.segStart) {
		start = n.segStart[s]
	}
	if e > 0 && e <= len(n.segEnd) {
		end = n.segEnd[e-1]
	}
	if end < start {
		end = start
	}
	return start, end
}
