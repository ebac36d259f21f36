// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/markdown"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc = commands.Handler

// EditorAPI defines the methods plugins can use to interact with the editor.
type EditorAPI interface {
	// --- Buffer Access ---
	GetText() string
	GetLines() []string
	GetFilePath() string
	IsModified() bool
	GetSelection() markdown.Selection
	GetFormatState() markdown.FormatState

	// --- Buffer Modification ---
	InsertText(text string) // replaces the selection
	ApplyFormat(cmd markdown.Command) error
	Save() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Plugins subscribe
	// to events and register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
