package editor

import (
	"sync"
	"sync/atomic"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
)

// base carries what both backends share: the engine, the event bus, the
// registered callbacks and the focus flag.
type base struct {
	engine *markdown.Engine
	events *event.Manager

	focused atomic.Bool

	cbMu     sync.Mutex
	onChange []func(string)
	onFocus  []func()
	onBlur   []func()
}

func newBase(opts Options) base {
	return base{engine: opts.Engine, events: opts.Events}
}

// OnChange registers fn to run with the new text after every text change.
func (b *base) OnChange(fn func(text string)) {
	if fn == nil {
		return
	}
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.onChange = append(b.onChange, fn)
}

// OnFocus registers fn to run when the editor gains focus.
func (b *base) OnFocus(fn func()) {
	if fn == nil {
		return
	}
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.onFocus = append(b.onFocus, fn)
}

// OnBlur registers fn to run when the editor loses focus.
func (b *base) OnBlur(fn func()) {
	if fn == nil {
		return
	}
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.onBlur = append(b.onBlur, fn)
}

func (b *base) Focused() bool { return b.focused.Load() }

func (b *base) Focus() {
	if !b.focused.CompareAndSwap(false, true) {
		return
	}
	b.cbMu.Lock()
	fns := append([]func(){}, b.onFocus...)
	b.cbMu.Unlock()
	for _, fn := range fns {
		fn()
	}
	b.events.Dispatch(event.TypeFocusChanged, event.FocusChangedData{Focused: true})
}

func (b *base) Blur() {
	if !b.focused.CompareAndSwap(true, false) {
		return
	}
	b.cbMu.Lock()
	fns := append([]func(){}, b.onBlur...)
	b.cbMu.Unlock()
	for _, fn := range fns {
		fn()
	}
	b.events.Dispatch(event.TypeFocusChanged, event.FocusChangedData{Focused: false})
}

// notice collects what an operation changed while the backend lock was
// held. fire publishes it once the lock is released.
type notice struct {
	textChanged bool
	text        string
	edit        types.EditInfo
	fullReload  bool

	moved     bool
	selection markdown.Selection
	cursor    types.Position
	state     markdown.FormatState

	applied   *event.FormatAppliedData
	blockType markdown.BlockType
}

func (b *base) fire(n notice) {
	if n.textChanged {
		b.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: n.edit, FullReload: n.fullReload})
		b.cbMu.Lock()
		fns := append([]func(string){}, b.onChange...)
		b.cbMu.Unlock()
		for _, fn := range fns {
			fn(n.text)
		}
	}
	if n.textChanged || n.moved {
		b.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: n.cursor})
		b.events.Dispatch(event.TypeSelectionChanged, event.SelectionChangedData{Selection: n.selection})
		b.events.Dispatch(event.TypeFormatStateChanged, event.FormatStateChangedData{State: n.state})
	}
	if n.applied != nil {
		b.events.Dispatch(event.TypeFormatApplied, *n.applied)
	}
	if n.blockType != markdown.BlockUnknown {
		logger.DebugTagf("editor", "Editor: Block type now %s", n.blockType)
		b.events.Dispatch(event.TypeBlockTypeChanged, event.BlockTypeChangedData{BlockType: n.blockType})
	}
}

// headingBlockType returns the block type a committed heading command
// settled on, or BlockUnknown for every other command.
func headingBlockType(cmd markdown.Command, res markdown.Result) markdown.BlockType {
	if _, ok := cmd.HeadingBlockType(); !ok || !res.Changed {
		return markdown.BlockUnknown
	}
	return res.BlockType
}
