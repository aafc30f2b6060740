// Package line provides conversions between byte offsets, LSP
// (line, UTF-16 column) positions and internal (line, UTF-8 column)
// positions over a text buffer.
//
// The design follows gopls's protocol.Mapper: line starts are computed
// lazily and cached, and every conversion is derived from that single
// table plus a per-line "does this line contain non-ASCII" flag so that
// UTF-16 column math can take a fast path for pure-ASCII lines.
package line

import (
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"
)

// Position is an LSP-style position: 0-based line, 0-based UTF-16 column.
type Position struct {
	Line      int
	Character int
}

// Point is an internal position: 0-based line, 0-based UTF-8 byte column.
type Point struct {
	Line int
	Col  int
}

// Index supports bidirectional conversion between byte offsets and the
// two position flavors above, for a fixed text buffer.
//
// An Index is built once per Document payload and is immutable; per §3
// "Line index" the content it indexes never mutates in place, since a
// document mutation always produces a new Document (and thus a new
// Index).
type Index struct {
	text []byte

	once       sync.Once
	lineStart  []int  // byte offset of start of line i (0-based); len == number of lines
	nonASCII   []bool // nonASCII[i] true iff line i contains a byte >= utf8.RuneSelf
}

// NewIndex builds a lazily-initialized Index over text. text is retained,
// not copied; callers must not mutate it afterward.
func NewIndex(text []byte) *Index {
	return &Index{text: text}
}

func (ix *Index) init() {
	ix.once.Do(func() {
		ix.lineStart = []int{0}
		lineHasNonASCII := false
		for offset, b := range ix.text {
			if b >= utf8.RuneSelf {
				lineHasNonASCII = true
			}
			if b == '\n' {
				ix.nonASCII = append(ix.nonASCII, lineHasNonASCII)
				ix.lineStart = append(ix.lineStart, offset+1)
				lineHasNonASCII = false
			}
		}
		ix.nonASCII = append(ix.nonASCII, lineHasNonASCII)
	})
}

// LineCount returns the number of lines in the text (always >= 1).
func (ix *Index) LineCount() int {
	ix.init()
	return len(ix.lineStart)
}

// lineOf returns the 0-based line index enclosing offset, and that line's
// starting byte offset. offset must be in [0, len(text)].
func (ix *Index) lineOf(offset int) (int, int) {
	ix.init()
	// sort.Search finds the first lineStart > offset; the enclosing line
	// is the one before it.
	i := sort.Search(len(ix.lineStart), func(i int) bool {
		return ix.lineStart[i] > offset
	})
	line := i - 1
	if line < 0 {
		line = 0
	}
	return line, ix.lineStart[line]
}

// Offset converts a byte offset to a Position (UTF-16 columns).
func (ix *Index) Offset(offset int) (Position, error) {
	if offset < 0 || offset > len(ix.text) {
		return Position{}, fmt.Errorf("offset %d out of range [0,%d]", offset, len(ix.text))
	}
	ix.init()
	l, start := ix.lineOf(offset)
	var col int
	if ix.nonASCII[l] {
		col = utf16Len(ix.text[start:offset])
	} else {
		col = offset - start
	}
	return Position{Line: l, Character: col}, nil
}

// Point8 converts a byte offset to a Point (UTF-8 byte columns).
func (ix *Index) Point8(offset int) (Point, error) {
	if offset < 0 || offset > len(ix.text) {
		return Point{}, fmt.Errorf("offset %d out of range [0,%d]", offset, len(ix.text))
	}
	l, start := ix.lineOf(offset)
	return Point{Line: l, Col: offset - start}, nil
}

// ToOffset converts a Position (UTF-16 columns) back to a byte offset.
func (ix *Index) ToOffset(pos Position) (int, error) {
	ix.init()
	if pos.Line < 0 || pos.Line >= len(ix.lineStart) {
		return 0, fmt.Errorf("line %d out of range [0,%d)", pos.Line, len(ix.lineStart))
	}
	start := ix.lineStart[pos.Line]
	end := len(ix.text)
	if pos.Line+1 < len(ix.lineStart) {
		end = ix.lineStart[pos.Line+1]
	}
	lineBytes := ix.text[start:end]
	// Trim the line terminator(s) from the searchable region.
	lineBytes = trimEOL(lineBytes)

	if !ix.nonASCII[pos.Line] {
		offset := start + pos.Character
		if offset > start+len(lineBytes) {
			return 0, fmt.Errorf("character %d beyond end of line %d", pos.Character, pos.Line)
		}
		return offset, nil
	}

	// Walk UTF-16 code units until we've consumed pos.Character of them.
	remaining := pos.Character
	i := 0
	for remaining > 0 && i < len(lineBytes) {
		r, size := utf8.DecodeRune(lineBytes[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			remaining--
			continue
		}
		if r > 0xFFFF {
			remaining -= 2
		} else {
			remaining--
		}
		i += size
	}
	if remaining > 0 {
		return 0, fmt.Errorf("character %d beyond end of line %d", pos.Character, pos.Line)
	}
	return start + i, nil
}

// RoundTrip returns offset(position(offset)), for tests that verify the
// line-index round-trip invariant (§8).
func (ix *Index) RoundTrip(offset int) (int, error) {
	pos, err := ix.Offset(offset)
	if err != nil {
		return 0, err
	}
	return ix.ToOffset(pos)
}

func utf16Len(b []byte) int {
	n := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			n++
			b = b[1:]
			continue
		}
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
		b = b[size:]
	}
	return n
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}
