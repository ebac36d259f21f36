package app

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
)

// subscribeEvents wires editor events to the status bar, toolbar and
// highlighter.
func (a *App) subscribeEvents() {
	em := a.eventManager
	em.Subscribe(event.TypeBufferModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferModifiedData); ok && !data.FullReload && !data.Edit.IsZero() {
			logger.DebugTagf("app", "Buffer edit: %s", data.Edit)
		}
		a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
		a.highlightManager.Trigger()
		return false
	})
	em.Subscribe(event.TypeBufferLoaded, func(e event.Event) bool {
		a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
		a.view.TopLine, a.view.LeftCol = 0, 0
		a.requestRedraw()
		return false
	})
	em.Subscribe(event.TypeBufferSaved, func(e event.Event) bool {
		a.statusBar.SetFileInfo(a.editor.FilePath(), a.editor.IsModified())
		return false
	})
	em.Subscribe(event.TypeCursorMoved, func(e event.Event) bool {
		if data, ok := e.Data.(event.CursorMovedData); ok {
			a.statusBar.SetCursorInfo(data.NewPosition)
		}
		return false
	})
	em.Subscribe(event.TypeFormatStateChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.FormatStateChangedData); ok {
			a.toolbar.SetState(data.State)
			a.statusBar.SetBlockType(data.State.BlockType)
		}
		return false
	})
	em.Subscribe(event.TypeBlockTypeChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.BlockTypeChangedData); ok {
			a.statusBar.SetBlockType(data.BlockType)
		}
		return false
	})
}
