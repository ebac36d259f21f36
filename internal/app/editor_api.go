package app

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// editorAPI implements plugin.EditorAPI over the App.
type editorAPI struct {
	app *App
}

var _ plugin.EditorAPI = (*editorAPI)(nil)

func newEditorAPI(appInstance *App) *editorAPI {
	return &editorAPI{app: appInstance}
}

func (api *editorAPI) GetText() string {
	return api.app.editor.Value()
}

func (api *editorAPI) GetLines() []string {
	return strings.Split(api.app.editor.Value(), "\n")
}

func (api *editorAPI) GetFilePath() string {
	return api.app.editor.FilePath()
}

func (api *editorAPI) IsModified() bool {
	return api.app.editor.IsModified()
}

func (api *editorAPI) GetSelection() markdown.Selection {
	return api.app.editor.Selection()
}

func (api *editorAPI) GetFormatState() markdown.FormatState {
	return api.app.editor.FormatState()
}

func (api *editorAPI) InsertText(text string) {
	api.app.editor.InsertText(text)
	api.app.requestRedraw()
}

func (api *editorAPI) ApplyFormat(cmd markdown.Command) error {
	if err := api.app.editor.DispatchFormatCommand(cmd); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

// Save writes the buffer to its current path.
func (api *editorAPI) Save() error {
	if err := api.app.editor.Save(""); err != nil {
		return err
	}
	api.app.requestRedraw()
	return nil
}

func (api *editorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *editorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

func (api *editorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.commands.Register(name, cmdFunc)
}

func (api *editorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

func (api *editorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
