// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
)

// SliceBuffer stores the text as a slice of lines without their newlines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool // Track if buffer has unsaved changes
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines: [][]byte{{}},
	}
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file gives an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			sb.modified = false
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	sb.setBytes(data)
	sb.filePath = filePath
	sb.modified = false
	return nil
}

// Save writes the buffer content to filePath, or to the stored path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// SetText replaces the whole content and marks the buffer modified.
func (sb *SliceBuffer) SetText(text string) {
	sb.setBytes([]byte(text))
	sb.modified = true
}

func (sb *SliceBuffer) setBytes(data []byte) {
	parts := bytes.Split(data, []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, part := range parts {
		sb.lines[i] = append([]byte(nil), part...)
	}
}

// Text returns the content as a string.
func (sb *SliceBuffer) Text() string {
	return string(sb.Bytes())
}

// Bytes joins the lines with newlines.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// Lines returns the underlying lines. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines (at least one).
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns one line without its newline.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrOutOfBounds, index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

func (sb *SliceBuffer) FilePath() string { return sb.filePath }

func (sb *SliceBuffer) SetFilePath(path string) { sb.filePath = path }

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool { return sb.modified }

func (sb *SliceBuffer) SetModified(modified bool) { sb.modified = modified }

// PositionToOffset converts a position to a rune offset from the start of
// the buffer. The position is clamped first.
func (sb *SliceBuffer) PositionToOffset(pos types.Position) int {
	p, _ := sb.validatePosition(pos)
	offset := 0
	for i := 0; i < p.Line; i++ {
		offset += utf8.RuneCount(sb.lines[i]) + 1
	}
	return offset + p.Col
}

// OffsetToPosition converts a rune offset into a position, clamped to the
// end of the buffer.
func (sb *SliceBuffer) OffsetToPosition(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range sb.lines {
		n := utf8.RuneCount(line)
		if offset <= n {
			return types.Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// validatePosition clamps pos into the buffer and returns the byte offset
// of its column within the line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{{}}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}

	line := sb.lines[pos.Line]
	byteOffset := utils.ByteOffset(line, pos.Col)
	if byteOffset < 0 {
		// Past the end of the line
		pos.Col = utf8.RuneCount(line)
		byteOffset = len(line)
	}
	return pos, byteOffset
}

// byteIndex returns the absolute byte offset of a line/byte column pair.
func (sb *SliceBuffer) byteIndex(line, byteCol int) uint32 {
	idx := 0
	for i := 0; i < line; i++ {
		idx += len(sb.lines[i]) + 1
	}
	return uint32(idx + byteCol)
}

func point(line, byteCol int) sitter.Point {
	return sitter.Point{Row: uint32(line), Column: uint32(byteCol)}
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	if len(text) == 0 {
		return types.EditInfo{}, nil
	}

	p, off := sb.validatePosition(pos)
	startIndex := sb.byteIndex(p.Line, off)

	line := sb.lines[p.Line]
	parts := bytes.Split(text, []byte("\n"))
	newLines := make([][]byte, len(parts))
	for i, part := range parts {
		newLines[i] = append([]byte(nil), part...)
	}
	newLines[0] = append(append([]byte(nil), line[:off]...), newLines[0]...)

	last := len(newLines) - 1
	newEndCol := len(newLines[last])
	newLines[last] = append(newLines[last], line[off:]...)

	sb.lines = append(sb.lines[:p.Line], append(newLines, sb.lines[p.Line+1:]...)...)
	sb.modified = true

	return types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    startIndex,
		NewEndIndex:    startIndex + uint32(len(text)),
		StartPosition:  point(p.Line, off),
		OldEndPosition: point(p.Line, off),
		NewEndPosition: point(p.Line+last, newEndCol),
	}, nil
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	s, so := sb.validatePosition(start)
	e, eo := sb.validatePosition(end)
	if e.Line < s.Line || (e.Line == s.Line && eo < so) {
		s, so, e, eo = e, eo, s, so // Swap if start is after end
	}
	if s.Line == e.Line && so == eo {
		return types.EditInfo{}, nil // Nothing to delete
	}

	startIndex := sb.byteIndex(s.Line, so)
	oldEndIndex := sb.byteIndex(e.Line, eo)

	merged := append(append([]byte(nil), sb.lines[s.Line][:so]...), sb.lines[e.Line][eo:]...)
	sb.lines = append(sb.lines[:s.Line], append([][]byte{merged}, sb.lines[e.Line+1:]...)...)
	sb.modified = true

	return types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    oldEndIndex,
		NewEndIndex:    startIndex,
		StartPosition:  point(s.Line, so),
		OldEndPosition: point(e.Line, eo),
		NewEndPosition: point(s.Line, so),
	}, nil
}

// Replace swaps the text between start and end for text as a single edit.
func (sb *SliceBuffer) Replace(start, end types.Position, text []byte) (types.EditInfo, error) {
	start, end = types.Ordered(start, end)
	s, so := sb.validatePosition(start)
	startIndex := sb.byteIndex(s.Line, so)
	info := types.EditInfo{
		StartIndex:     startIndex,
		OldEndIndex:    startIndex,
		NewEndIndex:    startIndex,
		StartPosition:  point(s.Line, so),
		OldEndPosition: point(s.Line, so),
		NewEndPosition: point(s.Line, so),
	}

	del, err := sb.Delete(s, end)
	if err != nil {
		return info, fmt.Errorf("replace: %w", err)
	}
	if del.OldEndIndex > del.StartIndex {
		info.OldEndIndex = del.OldEndIndex
		info.OldEndPosition = del.OldEndPosition
	}

	ins, err := sb.Insert(s, text)
	if err != nil {
		return info, fmt.Errorf("replace: %w", err)
	}
	if len(text) > 0 {
		info.NewEndIndex = ins.NewEndIndex
		info.NewEndPosition = ins.NewEndPosition
	}
	return info, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
