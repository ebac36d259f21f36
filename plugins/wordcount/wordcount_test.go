package wordcount

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/plugin"
)

type fakeAPI struct {
	text     string
	sel      markdown.Selection
	commands map[string]plugin.CommandFunc
	status   string
}

func (f *fakeAPI) GetText() string                          { return f.text }
func (f *fakeAPI) GetLines() []string                       { return strings.Split(f.text, "\n") }
func (f *fakeAPI) GetFilePath() string                      { return "" }
func (f *fakeAPI) IsModified() bool                         { return false }
func (f *fakeAPI) GetSelection() markdown.Selection         { return f.sel }
func (f *fakeAPI) GetFormatState() markdown.FormatState     { return markdown.Analyze(f.text) }
func (f *fakeAPI) InsertText(text string)                   {}
func (f *fakeAPI) ApplyFormat(markdown.Command) error       { return nil }
func (f *fakeAPI) Save() error                              { return nil }
func (f *fakeAPI) DispatchEvent(event.Type, interface{})    {}
func (f *fakeAPI) SubscribeEvent(event.Type, event.Handler) {}
func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.commands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.commands[name] = fn
	return nil
}
func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}
func (f *fakeAPI) GetPluginConfigValue(string, string) (interface{}, bool) { return nil, false }

func TestCount(t *testing.T) {
	doc := "# Title\n\nSome **bold** text.\n\n- one\n- [x] two\n1. three\n\n| a | b |"
	got := Count(doc)
	want := Stats{Lines: 9, Words: 9, Chars: len([]rune(doc)), Headings: 1, Items: 3}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if (Count("") != Stats{}) {
		t.Fatal("empty document has stats")
	}
}

func TestWordCountCommand(t *testing.T) {
	api := &fakeAPI{text: "one two three", commands: map[string]plugin.CommandFunc{}}
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := api.commands["wordcount"](nil); err != nil {
		t.Fatalf("wordcount: %v", err)
	}
	if want := "Lines: 1, Words: 3, Chars: 13, Headings: 0, Items: 0"; api.status != want {
		t.Fatalf("got %q, want %q", api.status, want)
	}

	api.sel = markdown.Selection{Anchor: 4, Focus: 13}
	if err := api.commands["wc"](nil); err != nil {
		t.Fatalf("wc: %v", err)
	}
	if !strings.HasPrefix(api.status, "Selection: Lines: 1, Words: 2,") {
		t.Fatalf("got %q", api.status)
	}
}
