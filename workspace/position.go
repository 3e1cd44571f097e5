package workspace

import (
	"strings"

	"github.com/dhamidi/incipit/pae"
)

// Position is a zero-based line and character in a file.
type Position struct {
	Line      int
	Character int
}

// DataOffset returns the byte offset of the data value in content, or
// -1 when it cannot be found verbatim (escaped JSON strings).
func DataOffset(content []byte, rec pae.Record) int {
	data, ok := rec.Data()
	if !ok || data == "" {
		return -1
	}
	return strings.Index(string(content), data)
}

// Locate maps a diagnostic to the file position of the offending symbol.
// Diagnostics without a position point at the start of the data.
func Locate(content []byte, rec pae.Record, d pae.Diagnostic) Position {
	base := DataOffset(content, rec)
	if base < 0 {
		return Position{}
	}
	offset := base
	if d.Position >= 0 {
		offset += d.Position
	}
	return offsetToPosition(content, offset)
}

func offsetToPosition(content []byte, offset int) Position {
	if offset > len(content) {
		offset = len(content)
	}
	var pos Position
	lineStart := 0
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	pos.Character = offset - lineStart
	return pos
}
