package editor

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core/history"
	"github.com/bethropolis/tidemark/internal/core/selection"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
)

// bufferState is the part of BufferEditor the selection and history
// managers see. Its methods run with the editor lock held.
type bufferState struct {
	buf    buffer.Buffer
	cursor types.Position
	sel    *selection.Manager
}

func (s *bufferState) GetCursor() types.Position { return s.cursor }

func (s *bufferState) GetBuffer() buffer.Buffer { return s.buf }

func (s *bufferState) clamp(pos types.Position) types.Position {
	return s.buf.OffsetToPosition(s.buf.PositionToOffset(pos))
}

func (s *bufferState) SetSelectionPositions(anchor, cursor types.Position) {
	s.cursor = s.clamp(cursor)
	anchor = s.clamp(anchor)
	if anchor == s.cursor {
		s.sel.ClearSelection()
		return
	}
	s.sel.SetAnchor(anchor)
}

// BufferEditor edits a line-slice buffer with a selection manager and an
// undo/redo history.
type BufferEditor struct {
	base

	mu      sync.Mutex
	state   *bufferState
	history *history.Manager
}

// NewBufferEditor creates an empty buffer-backed editor.
func NewBufferEditor(opts Options) *BufferEditor {
	if opts.Engine == nil {
		opts.Engine = markdown.New(markdown.DefaultOptions())
	}
	state := &bufferState{buf: buffer.NewSliceBuffer()}
	state.sel = selection.NewManager(state)
	return &BufferEditor{
		base:    newBase(opts),
		state:   state,
		history: history.NewManager(state, opts.MaxHistory),
	}
}

func (e *BufferEditor) Backend() string { return config.BackendBuffer }

// Buffer exposes the underlying buffer for read access, e.g. by the
// highlighter. Callers must not modify it.
func (e *BufferEditor) Buffer() buffer.Buffer {
	return e.state.buf
}

func (e *BufferEditor) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.buf.Text()
}

// selectionLocked returns the selection as rune offsets.
func (e *BufferEditor) selectionLocked() markdown.Selection {
	buf := e.state.buf
	return markdown.Selection{
		Anchor: buf.PositionToOffset(e.state.sel.Anchor()),
		Focus:  buf.PositionToOffset(e.state.cursor),
	}
}

func (e *BufferEditor) Selection() markdown.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectionLocked()
}

func (e *BufferEditor) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	start, end := e.selectionLocked().Range()
	return runeSlice(e.state.buf.Text(), start, end)
}

func (e *BufferEditor) Cursor() types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.cursor
}

func (e *BufferEditor) FilePath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.buf.FilePath()
}

func (e *BufferEditor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.buf.IsModified()
}

// setSelectionLocked moves both selection ends and fills the notice.
func (e *BufferEditor) setSelectionLocked(sel markdown.Selection, n *notice) {
	buf := e.state.buf
	e.state.SetSelectionPositions(buf.OffsetToPosition(sel.Anchor), buf.OffsetToPosition(sel.Focus))
	e.describeLocked(n)
}

// describeLocked records the current selection and toolbar state.
func (e *BufferEditor) describeLocked(n *notice) {
	n.moved = true
	n.selection = e.selectionLocked()
	n.cursor = e.state.cursor
	n.state = e.engine.StateAt(e.state.buf.Text(), n.selection)
}

func (e *BufferEditor) SetSelection(sel markdown.Selection) {
	e.mu.Lock()
	var n notice
	e.setSelectionLocked(clampSelection(e.state.buf.Text(), sel), &n)
	e.mu.Unlock()
	e.fire(n)
}

// SetValue replaces the whole text as one undoable edit and puts the cursor
// at the end.
func (e *BufferEditor) SetValue(text string) {
	e.mu.Lock()
	var n notice
	old := e.state.buf.Text()
	if old != text {
		end := utf8.RuneCountInString(text)
		e.replaceLocked(old, text, markdown.Cursor(end), &n)
	}
	e.mu.Unlock()
	e.fire(n)
}

// replaceLocked commits after as the new text with the minimal changed span,
// records one history change and selects sel.
func (e *BufferEditor) replaceLocked(before, after string, sel markdown.Selection, n *notice) {
	buf := e.state.buf
	anchorBefore, cursorBefore := e.state.sel.Anchor(), e.state.cursor

	start, end, insert := diffSpan(before, after)
	startPos := buf.OffsetToPosition(start)
	endPos := buf.OffsetToPosition(end)
	removed := runeSlice(before, start, end)

	info, err := buf.Replace(startPos, endPos, []byte(insert))
	if err != nil {
		logger.Errorf("BufferEditor: replace failed: %v", err)
		return
	}
	e.setSelectionLocked(sel, n)

	e.history.RecordChange(history.Change{
		Start:        startPos,
		Removed:      []byte(removed),
		Inserted:     []byte(insert),
		CursorBefore: cursorBefore,
		AnchorBefore: anchorBefore,
		CursorAfter:  e.state.cursor,
		AnchorAfter:  e.state.sel.Anchor(),
	})

	n.textChanged = true
	n.text = after
	n.edit = info
}

// editLocked replaces the rune range [start, end) with insert and leaves a
// collapsed cursor after the inserted text.
func (e *BufferEditor) editLocked(start, end int, insert string, n *notice) {
	before := e.state.buf.Text()
	after := runeSlice(before, 0, start) + insert + before[byteOffset(before, end):]
	if after == before {
		return
	}
	e.replaceLocked(before, after, markdown.Cursor(start+utf8.RuneCountInString(insert)), n)
}

// DispatchFormatCommand applies a markdown command to the current selection
// and commits the result as a single edit.
func (e *BufferEditor) DispatchFormatCommand(cmd markdown.Command) error {
	e.mu.Lock()
	before := e.state.buf.Text()
	sel := e.selectionLocked()
	res, err := e.engine.Apply(cmd, before, sel)
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("format %s: %w", cmd, err)
	}

	var n notice
	if res.Changed && res.Text != before {
		e.replaceLocked(before, res.Text, res.Selection, &n)
	} else {
		e.setSelectionLocked(res.Selection, &n)
	}
	n.applied = &event.FormatAppliedData{Command: cmd, Changed: res.Changed}
	n.blockType = headingBlockType(cmd, res)
	e.mu.Unlock()

	logger.DebugTagf("editor", "BufferEditor: %s changed=%v selection=%+v", cmd, res.Changed, res.Selection)
	e.fire(n)
	return nil
}

func (e *BufferEditor) FormatState() markdown.FormatState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.StateAt(e.state.buf.Text(), e.selectionLocked())
}

// InsertText replaces the selection (if any) with text.
func (e *BufferEditor) InsertText(text string) {
	e.mu.Lock()
	var n notice
	start, end := e.selectionLocked().Range()
	e.editLocked(start, end, text, &n)
	e.mu.Unlock()
	e.fire(n)
}

// DeleteBackward removes the selection, or the rune before the cursor.
func (e *BufferEditor) DeleteBackward() {
	e.mu.Lock()
	var n notice
	start, end := e.selectionLocked().Range()
	if start == end && start > 0 {
		start--
	}
	e.editLocked(start, end, "", &n)
	e.mu.Unlock()
	e.fire(n)
}

// DeleteForward removes the selection, or the rune after the cursor.
func (e *BufferEditor) DeleteForward() {
	e.mu.Lock()
	var n notice
	start, end := e.selectionLocked().Range()
	if start == end {
		end = start + 1
		if total := utf8.RuneCountInString(e.state.buf.Text()); end > total {
			end = total
		}
	}
	e.editLocked(start, end, "", &n)
	e.mu.Unlock()
	e.fire(n)
}

// moveLocked places the cursor at pos, extending the selection or
// clearing it.
func (e *BufferEditor) moveLocked(pos types.Position, extend bool) notice {
	if extend {
		e.state.sel.StartSelection()
	} else {
		e.state.sel.ClearSelection()
	}
	e.state.cursor = e.state.clamp(pos)
	var n notice
	e.describeLocked(&n)
	return n
}

func (e *BufferEditor) MoveCursor(dLine, dCol int, extend bool) {
	e.mu.Lock()
	lens := lineLengths(e.state.buf.Text())
	n := e.moveLocked(movePosition(lens, e.state.cursor, dLine, dCol), extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *BufferEditor) MoveToLineStart(extend bool) {
	e.mu.Lock()
	n := e.moveLocked(types.Position{Line: e.state.cursor.Line}, extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *BufferEditor) MoveToLineEnd(extend bool) {
	e.mu.Lock()
	n := e.moveLocked(types.Position{Line: e.state.cursor.Line, Col: 1 << 30}, extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *BufferEditor) Undo() bool {
	return e.step(e.history.Undo)
}

func (e *BufferEditor) Redo() bool {
	return e.step(e.history.Redo)
}

func (e *BufferEditor) step(apply func() (types.EditInfo, bool, error)) bool {
	e.mu.Lock()
	info, ok, err := apply()
	if err != nil {
		logger.Warnf("BufferEditor: %v", err)
	}
	if !ok {
		e.mu.Unlock()
		return false
	}
	n := notice{textChanged: true, text: e.state.buf.Text(), edit: info}
	e.describeLocked(&n)
	e.mu.Unlock()
	e.fire(n)
	return true
}

// Load replaces the buffer with the file content, clearing history and
// selection. A missing file gives an empty buffer bound to path.
func (e *BufferEditor) Load(path string) error {
	e.mu.Lock()
	if err := e.state.buf.Load(path); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("load %s: %w", path, err)
	}
	e.history.Clear()
	e.state.sel.ClearSelection()
	e.state.cursor = types.Position{}
	n := notice{textChanged: true, text: e.state.buf.Text(), fullReload: true}
	e.describeLocked(&n)
	e.mu.Unlock()

	e.fire(n)
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

// Save writes the buffer to path, or to the loaded path when path is empty.
func (e *BufferEditor) Save(path string) error {
	e.mu.Lock()
	err := e.state.buf.Save(path)
	saved := e.state.buf.FilePath()
	e.mu.Unlock()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: saved})
	return nil
}

var _ MarkdownEditor = (*BufferEditor)(nil)
