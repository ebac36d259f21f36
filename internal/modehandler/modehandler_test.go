package modehandler

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/editor"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

type fixture struct {
	mh     *ModeHandler
	ed     editor.MarkdownEditor
	sb     *statusbar.StatusBar
	reg    *commands.Registry
	quit   chan struct{}
	events *event.Manager
	now    time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	events := event.NewManager()
	ed, err := editor.New(editor.Options{Events: events})
	if err != nil {
		t.Fatalf("editor.New: %v", err)
	}
	f := &fixture{
		ed:     ed,
		sb:     statusbar.New(time.Minute),
		reg:    commands.NewRegistry(),
		quit:   make(chan struct{}),
		events: events,
		now:    time.Unix(1000, 0),
	}
	f.mh = New(Config{
		Editor:         ed,
		InputProcessor: input.NewInputProcessor(','),
		EventManager:   events,
		StatusBar:      f.sb,
		Commands:       f.reg,
		Clipboard:      clipboard.NewManager(false),
		QuitSignal:     f.quit,
		TabWidth:       2,
		LeaderTimeout:  500 * time.Millisecond,
		PageHeight:     func() int { return 3 },
	})
	f.mh.now = func() time.Time { return f.now }
	return f
}

func runeKey(r rune) *tcell.EventKey  { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.mh.HandleKeyEvent(runeKey(r))
	}
}

func TestTypingAndTab(t *testing.T) {
	f := newFixture(t)
	f.typeText("ab")
	f.mh.HandleKeyEvent(key(tcell.KeyTab))
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	f.typeText("c")
	f.mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	if got, want := f.ed.Value(), "ab  \n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAltFormatShortcut(t *testing.T) {
	f := newFixture(t)
	f.ed.SetValue("word")
	f.ed.SetSelection(markdown.Selection{Anchor: 0, Focus: 4})
	f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModAlt))
	if got, want := f.ed.Value(), "**word**"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLeaderSequences(t *testing.T) {
	cases := []struct {
		name  string
		keys  string
		delay time.Duration
		want  string
	}{
		{"heading", ",2", 0, "## word"},
		{"quote", ",q", 0, "> word"},
		{"double leader types one", ",,", 0, ",word"},
		{"unbound rune types both", ",x", 0, ",xword"},
		{"late key types leader", ",2", time.Second, ",2word"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.ed.SetValue("word")
			f.ed.SetSelection(markdown.Selection{})
			runes := []rune(tc.keys)
			f.mh.HandleKeyEvent(runeKey(runes[0]))
			if !f.mh.LeaderPending() {
				t.Fatal("leader not pending")
			}
			f.now = f.now.Add(tc.delay)
			f.mh.HandleKeyEvent(runeKey(runes[1]))
			if got := f.ed.Value(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFlushLeader(t *testing.T) {
	f := newFixture(t)
	f.mh.HandleKeyEvent(runeKey(','))
	if f.mh.FlushLeader() {
		t.Fatal("flushed before the timeout")
	}
	f.now = f.now.Add(time.Second)
	if !f.mh.FlushLeader() || f.ed.Value() != "," || f.mh.LeaderPending() {
		t.Fatalf("flush: value %q pending %v", f.ed.Value(), f.mh.LeaderPending())
	}
}

func TestShiftSelectionAndYankPaste(t *testing.T) {
	f := newFixture(t)
	f.typeText("abc")
	f.mh.HandleKeyEvent(key(tcell.KeyHome))
	shiftRight := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift)
	f.mh.HandleKeyEvent(shiftRight)
	f.mh.HandleKeyEvent(shiftRight)
	if got := f.ed.SelectedText(); got != "ab" {
		t.Fatalf("selected %q, want %q", got, "ab")
	}
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlX))
	if got := f.ed.Value(); got != "c" {
		t.Fatalf("after cut got %q, want %q", got, "c")
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEnd))
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlV))
	if got := f.ed.Value(); got != "cab" {
		t.Fatalf("after paste got %q, want %q", got, "cab")
	}
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlZ))
	if got := f.ed.Value(); got != "c" {
		t.Fatalf("after undo got %q, want %q", got, "c")
	}
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t)
	var gotArgs []string
	if err := f.reg.Register("echo", func(args []string) error { gotArgs = args; return nil }); err != nil {
		t.Fatal(err)
	}
	if err := f.reg.Register("fail", func(args []string) error { return errors.New("boom") }); err != nil {
		t.Fatal(err)
	}

	var modes []string
	f.events.Subscribe(event.TypeModeChanged, func(e event.Event) bool {
		modes = append(modes, e.Data.(event.ModeChangedData).Mode)
		return false
	})

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP))
	if f.mh.GetCurrentMode() != ModeCommand || f.ed.Focused() {
		t.Fatalf("mode %v focused %v", f.mh.GetCurrentMode(), f.ed.Focused())
	}
	f.typeText("echo a,b")
	if got := f.mh.GetCommandBuffer(); got != "echo a,b" {
		t.Fatalf("command buffer %q", got)
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if len(gotArgs) != 1 || gotArgs[0] != "a,b" {
		t.Fatalf("args = %v", gotArgs)
	}
	if f.mh.GetCurrentMode() != ModeNormal || !f.ed.Focused() {
		t.Fatal("did not return to normal mode")
	}
	if f.ed.Value() != "" {
		t.Fatalf("command text leaked into buffer: %q", f.ed.Value())
	}

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP))
	f.typeText("nope")
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if msg, _ := f.sb.Text(); msg != "Unknown command: nope" {
		t.Fatalf("status %q", msg)
	}

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP))
	f.typeText("fail")
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if msg, _ := f.sb.Text(); msg != "Error executing command 'fail': boom" {
		t.Fatalf("status %q", msg)
	}

	want := []string{"COMMAND", "NORMAL", "COMMAND", "NORMAL", "COMMAND", "NORMAL"}
	if len(modes) != len(want) {
		t.Fatalf("modes = %v, want %v", modes, want)
	}
}

func TestPreviewMode(t *testing.T) {
	f := newFixture(t)
	f.mh.HandleKeyEvent(key(tcell.KeyCtrlR))
	if f.mh.GetCurrentMode() != ModePreview {
		t.Fatalf("mode = %v", f.mh.GetCurrentMode())
	}
	f.mh.HandleKeyEvent(key(tcell.KeyPgDn))
	f.mh.HandleKeyEvent(key(tcell.KeyDown))
	if f.mh.PreviewTop() != 4 {
		t.Fatalf("preview top = %d, want 4", f.mh.PreviewTop())
	}
	f.mh.ClampPreview(2)
	if f.mh.PreviewTop() != 2 {
		t.Fatalf("clamped preview top = %d, want 2", f.mh.PreviewTop())
	}
	f.typeText("x")
	if f.ed.Value() != "" {
		t.Fatal("preview mode typed into the buffer")
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if f.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("mode = %v", f.mh.GetCurrentMode())
	}
}

func TestQuitOnModifiedBuffer(t *testing.T) {
	f := newFixture(t)
	f.typeText("x")
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	select {
	case <-f.quit:
		t.Fatal("quit with unsaved changes")
	default:
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEscape))
	select {
	case <-f.quit:
	default:
		t.Fatal("second escape did not quit")
	}
	f.mh.Quit() // closing twice must not panic
}

func TestFindMode(t *testing.T) {
	f := newFixture(t)
	f.ed.SetValue("one two one")
	f.ed.SetSelection(markdown.Cursor(0))

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlN))
	if msg, _ := f.sb.Text(); msg != "No search term" {
		t.Fatalf("status %q", msg)
	}

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlF))
	if f.mh.GetCurrentMode() != ModeFind || f.ed.Focused() {
		t.Fatalf("mode %v focused %v", f.mh.GetCurrentMode(), f.ed.Focused())
	}
	f.typeText("one")
	if got := f.mh.GetFindBuffer(); got != "one" {
		t.Fatalf("find buffer %q", got)
	}
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if f.mh.GetCurrentMode() != ModeNormal || f.ed.Value() != "one two one" {
		t.Fatalf("mode %v value %q", f.mh.GetCurrentMode(), f.ed.Value())
	}

	steps := []struct {
		key    tcell.Key
		sel    markdown.Selection
		status string
	}{
		{0, markdown.Selection{Anchor: 0, Focus: 3}, "Match 1/2: one"},
		{tcell.KeyCtrlN, markdown.Selection{Anchor: 8, Focus: 11}, "Match 2/2: one"},
		{tcell.KeyCtrlN, markdown.Selection{Anchor: 0, Focus: 3}, "Match 1/2: one (wrapped)"},
		{tcell.KeyCtrlB, markdown.Selection{Anchor: 8, Focus: 11}, "Match 2/2: one (wrapped)"},
	}
	for i, step := range steps {
		if step.key != 0 {
			f.mh.HandleKeyEvent(key(step.key))
		}
		if got := f.ed.Selection(); got != step.sel {
			t.Fatalf("step %d: selection %+v, want %+v", i, got, step.sel)
		}
		if msg, _ := f.sb.Text(); msg != step.status {
			t.Fatalf("step %d: status %q, want %q", i, msg, step.status)
		}
	}
}

func TestFindModeCancelAndErrors(t *testing.T) {
	cases := []struct {
		name   string
		keys   []*tcell.EventKey
		status string
	}{
		{"escape", []*tcell.EventKey{runeKey('o'), key(tcell.KeyEscape)}, ""},
		{"backspace on empty", []*tcell.EventKey{key(tcell.KeyBackspace2)}, ""},
		{"invalid pattern", []*tcell.EventKey{runeKey('('), key(tcell.KeyEnter)}, "Invalid pattern: invalid search pattern"},
		{"not found", []*tcell.EventKey{runeKey('z'), key(tcell.KeyEnter)}, "Pattern not found: z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.ed.SetValue("one two")
			f.ed.SetSelection(markdown.Cursor(0))
			f.mh.HandleKeyEvent(key(tcell.KeyCtrlF))
			for _, ev := range tc.keys {
				f.mh.HandleKeyEvent(ev)
			}
			if f.mh.GetCurrentMode() != ModeNormal {
				t.Fatalf("mode = %v", f.mh.GetCurrentMode())
			}
			if got := f.ed.Selection(); got != markdown.Cursor(0) || f.ed.Value() != "one two" {
				t.Fatalf("editor changed: %q %+v", f.ed.Value(), got)
			}
			if msg, _ := f.sb.Text(); !strings.HasPrefix(msg, tc.status) {
				t.Fatalf("status %q, want %q", msg, tc.status)
			}
		})
	}
}

func TestSubstituteCommand(t *testing.T) {
	f := newFixture(t)
	if err := f.reg.Register("s", func(args []string) error {
		return f.mh.Substitute(strings.Join(args, " "))
	}); err != nil {
		t.Fatal(err)
	}
	f.ed.SetValue("one two one")
	f.ed.SetSelection(markdown.Cursor(0))

	f.mh.HandleKeyEvent(key(tcell.KeyCtrlP))
	f.typeText("s/one/1/g")
	f.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if got := f.ed.Value(); got != "1 two 1" {
		t.Fatalf("value %q", got)
	}
	if msg, _ := f.sb.Text(); msg != "Replaced 2 occurrence(s)" {
		t.Fatalf("status %q", msg)
	}
	if !f.mh.Undo() || f.ed.Value() != "one two one" {
		t.Fatalf("substitution was not one undo step: %q", f.ed.Value())
	}

	if err := f.mh.Substitute("missing"); err == nil {
		t.Fatal("expected a parse error")
	}
}
