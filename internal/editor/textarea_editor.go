package editor

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	textareaUndoLimit = 64
	// Wide enough that soft wrapping never splits ordinary lines.
	textareaWidth = 4096
	// The bubbles textarea drops every line past this one.
	textareaMaxLines = 10000
)

// checkTextareaText reports text the textarea would truncate or rewrite: too
// many lines, tabs and carriage returns (expanded or turned into newlines),
// other control characters and invalid UTF-8 (dropped).
func checkTextareaText(text string) error {
	if n := strings.Count(text, "\n") + 1; n > textareaMaxLines {
		return fmt.Errorf("%w: %d lines exceeds the textarea limit of %d", ErrUnsupportedText, n, textareaMaxLines)
	}
	for i, r := range text {
		switch {
		case r == '\n':
		case r == '\t':
			return fmt.Errorf("%w: tab at byte %d", ErrUnsupportedText, i)
		case r == '\r':
			return fmt.Errorf("%w: carriage return at byte %d", ErrUnsupportedText, i)
		case r == utf8.RuneError:
			return fmt.Errorf("%w: invalid or replacement rune at byte %d", ErrUnsupportedText, i)
		case unicode.IsControl(r):
			return fmt.Errorf("%w: control character %U at byte %d", ErrUnsupportedText, r, i)
		}
	}
	return nil
}

type textareaSnapshot struct {
	value     string
	selection markdown.Selection
}

// TextareaEditor keeps the text in a bubbles textarea. The textarea only
// knows its caret, so the selection anchor is tracked next to it and undo
// works on whole-text snapshots.
type TextareaEditor struct {
	base

	mu       sync.Mutex
	ta       textarea.Model
	anchor   int // rune offset, -1 when nothing is selected
	undo     []textareaSnapshot
	redo     []textareaSnapshot
	limit    int
	filePath string
	modified bool
}

// NewTextareaEditor creates an empty textarea-backed editor.
func NewTextareaEditor(opts Options) *TextareaEditor {
	if opts.Engine == nil {
		opts.Engine = markdown.New(markdown.DefaultOptions())
	}
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.SetWidth(textareaWidth)
	// The textarea ignores key messages while blurred; editor focus is
	// tracked separately.
	ta.Focus()

	limit := opts.MaxHistory
	if limit <= 0 {
		limit = textareaUndoLimit
	}
	return &TextareaEditor{
		base:   newBase(opts),
		ta:     ta,
		anchor: -1,
		limit:  limit,
	}
}

func (e *TextareaEditor) Backend() string { return config.BackendTextarea }

func (e *TextareaEditor) Value() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ta.Value()
}

// caretLocked returns the caret as a rune offset into the value.
func (e *TextareaEditor) caretLocked() int {
	info := e.ta.LineInfo()
	pos := types.Position{Line: e.ta.Line(), Col: info.StartColumn + info.ColumnOffset}
	return offsetForPosition(e.ta.Value(), pos)
}

func (e *TextareaEditor) selectionLocked() markdown.Selection {
	focus := e.caretLocked()
	anchor := e.anchor
	if anchor < 0 {
		anchor = focus
	}
	return markdown.Selection{Anchor: anchor, Focus: focus}
}

func (e *TextareaEditor) Selection() markdown.Selection {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectionLocked()
}

func (e *TextareaEditor) SelectedText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	start, end := e.selectionLocked().Range()
	return runeSlice(e.ta.Value(), start, end)
}

func (e *TextareaEditor) Cursor() types.Position {
	e.mu.Lock()
	defer e.mu.Unlock()
	return positionForOffset(e.ta.Value(), e.caretLocked())
}

func (e *TextareaEditor) FilePath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filePath
}

func (e *TextareaEditor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modified
}

// moveCaretLocked walks the textarea caret to a rune offset.
func (e *TextareaEditor) moveCaretLocked(offset int) {
	value := e.ta.Value()
	pos := positionForOffset(value, offset)
	if lc := e.ta.LineCount(); pos.Line >= lc {
		pos.Line = lc - 1
	}
	for e.ta.Line() > pos.Line {
		e.ta.CursorUp()
	}
	for e.ta.Line() < pos.Line {
		e.ta.CursorDown()
	}
	e.ta.SetCursor(pos.Col)
}

func (e *TextareaEditor) setSelectionLocked(sel markdown.Selection, n *notice) {
	sel = clampSelection(e.ta.Value(), sel)
	e.moveCaretLocked(sel.Focus)
	e.anchor = -1
	if !sel.IsCollapsed() {
		e.anchor = sel.Anchor
	}
	e.describeLocked(n)
}

func (e *TextareaEditor) describeLocked(n *notice) {
	value := e.ta.Value()
	n.moved = true
	n.selection = e.selectionLocked()
	n.cursor = positionForOffset(value, n.selection.Focus)
	n.state = e.engine.StateAt(value, n.selection)
}

func (e *TextareaEditor) SetSelection(sel markdown.Selection) {
	e.mu.Lock()
	var n notice
	e.setSelectionLocked(sel, &n)
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) pushUndoLocked() {
	e.undo = append(e.undo, textareaSnapshot{value: e.ta.Value(), selection: e.selectionLocked()})
	if len(e.undo) > e.limit {
		e.undo = e.undo[len(e.undo)-e.limit:]
	}
	e.redo = nil
}

// commitLocked swaps in a new value as one undoable step.
func (e *TextareaEditor) commitLocked(after string, sel markdown.Selection, n *notice) {
	if after == e.ta.Value() {
		e.setSelectionLocked(sel, n)
		return
	}
	e.pushUndoLocked()
	e.ta.SetValue(after)
	e.modified = true
	if err := checkTextareaText(after); err != nil {
		logger.Warnf("TextareaEditor: text was altered on entry: %v", err)
	}
	e.setSelectionLocked(sel, n)
	n.textChanged = true
	n.text = e.ta.Value()
	n.fullReload = true
}

// keyLocked feeds a key message to the textarea and records an undo step if
// the text changed.
func (e *TextareaEditor) keyLocked(msg tea.KeyMsg, n *notice) {
	before := e.ta.Value()
	snap := textareaSnapshot{value: before, selection: e.selectionLocked()}
	e.ta, _ = e.ta.Update(msg)
	e.anchor = -1
	if e.ta.Value() != before {
		e.undo = append(e.undo, snap)
		if len(e.undo) > e.limit {
			e.undo = e.undo[len(e.undo)-e.limit:]
		}
		e.redo = nil
		e.modified = true
		n.textChanged = true
		n.text = e.ta.Value()
		n.fullReload = true
	}
	e.describeLocked(n)
}

func (e *TextareaEditor) SetValue(text string) {
	e.mu.Lock()
	var n notice
	e.commitLocked(text, markdown.Cursor(utf8.RuneCountInString(text)), &n)
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) DispatchFormatCommand(cmd markdown.Command) error {
	e.mu.Lock()
	before := e.ta.Value()
	res, err := e.engine.Apply(cmd, before, e.selectionLocked())
	if err != nil {
		e.mu.Unlock()
		return fmt.Errorf("format %s: %w", cmd, err)
	}

	var n notice
	e.commitLocked(res.Text, res.Selection, &n)
	n.applied = &event.FormatAppliedData{Command: cmd, Changed: res.Changed}
	n.blockType = headingBlockType(cmd, res)
	e.mu.Unlock()

	logger.DebugTagf("editor", "TextareaEditor: %s changed=%v selection=%+v", cmd, res.Changed, res.Selection)
	e.fire(n)
	return nil
}

func (e *TextareaEditor) FormatState() markdown.FormatState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.StateAt(e.ta.Value(), e.selectionLocked())
}

// replaceSelectionLocked swaps the selected range for text.
func (e *TextareaEditor) replaceSelectionLocked(text string, n *notice) {
	value := e.ta.Value()
	start, end := e.selectionLocked().Range()
	after := value[:byteOffset(value, start)] + text + value[byteOffset(value, end):]
	e.commitLocked(after, markdown.Cursor(start+utf8.RuneCountInString(text)), n)
}

func (e *TextareaEditor) InsertText(text string) {
	if text == "" {
		return
	}
	e.mu.Lock()
	var n notice
	if e.selectionLocked().IsCollapsed() {
		e.pushUndoLocked()
		e.ta.InsertString(text)
		e.modified = true
		n.textChanged = true
		n.text = e.ta.Value()
		n.fullReload = true
		e.describeLocked(&n)
	} else {
		e.replaceSelectionLocked(text, &n)
	}
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) DeleteBackward() {
	e.deleteWith(tea.KeyMsg{Type: tea.KeyBackspace})
}

func (e *TextareaEditor) DeleteForward() {
	e.deleteWith(tea.KeyMsg{Type: tea.KeyDelete})
}

func (e *TextareaEditor) deleteWith(msg tea.KeyMsg) {
	e.mu.Lock()
	var n notice
	if e.selectionLocked().IsCollapsed() {
		e.keyLocked(msg, &n)
	} else {
		e.replaceSelectionLocked("", &n)
	}
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) moveLocked(target types.Position, extend bool) notice {
	value := e.ta.Value()
	caret := e.caretLocked()
	if extend && e.anchor < 0 {
		e.anchor = caret
	}
	if !extend {
		e.anchor = -1
	}
	e.moveCaretLocked(offsetForPosition(value, target))
	if e.anchor == e.caretLocked() {
		e.anchor = -1
	}
	var n notice
	e.describeLocked(&n)
	return n
}

func (e *TextareaEditor) MoveCursor(dLine, dCol int, extend bool) {
	e.mu.Lock()
	value := e.ta.Value()
	pos := positionForOffset(value, e.caretLocked())
	n := e.moveLocked(movePosition(lineLengths(value), pos, dLine, dCol), extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) MoveToLineStart(extend bool) {
	e.mu.Lock()
	value := e.ta.Value()
	pos := positionForOffset(value, e.caretLocked())
	n := e.moveLocked(lineEdge(lineLengths(value), pos, false), extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) MoveToLineEnd(extend bool) {
	e.mu.Lock()
	value := e.ta.Value()
	pos := positionForOffset(value, e.caretLocked())
	n := e.moveLocked(lineEdge(lineLengths(value), pos, true), extend)
	e.mu.Unlock()
	e.fire(n)
}

func (e *TextareaEditor) Undo() bool {
	return e.restore(&e.undo, &e.redo)
}

func (e *TextareaEditor) Redo() bool {
	return e.restore(&e.redo, &e.undo)
}

// restore pops a snapshot from one stack, saving the current state on the
// other.
func (e *TextareaEditor) restore(from, to *[]textareaSnapshot) bool {
	e.mu.Lock()
	if len(*from) == 0 {
		e.mu.Unlock()
		return false
	}
	snap := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, textareaSnapshot{value: e.ta.Value(), selection: e.selectionLocked()})

	e.ta.SetValue(snap.value)
	e.modified = true
	n := notice{textChanged: true, text: snap.value, fullReload: true}
	e.setSelectionLocked(snap.selection, &n)
	e.mu.Unlock()
	e.fire(n)
	return true
}

func (e *TextareaEditor) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := checkTextareaText(string(data)); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	e.mu.Lock()
	e.ta.SetValue(string(data))
	e.undo, e.redo = nil, nil
	e.filePath = path
	e.modified = false
	n := notice{textChanged: true, text: e.ta.Value(), fullReload: true}
	e.setSelectionLocked(markdown.Cursor(0), &n)
	e.mu.Unlock()

	e.fire(n)
	e.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

func (e *TextareaEditor) Save(path string) error {
	e.mu.Lock()
	if path == "" {
		path = e.filePath
	}
	if path == "" {
		e.mu.Unlock()
		return errors.New("save: no file path specified")
	}
	if err := os.WriteFile(path, []byte(e.ta.Value()), 0o644); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.filePath = path
	e.modified = false
	e.mu.Unlock()

	e.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	return nil
}

var _ MarkdownEditor = (*TextareaEditor)(nil)
