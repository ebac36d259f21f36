// internal/input/keymap.go
package input

import (
	"sort"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// FormatKeymap maps runes to format commands, used for Alt+rune and for the
// rune typed after the leader key.
type FormatKeymap map[rune]markdown.Command

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
	altFormats FormatKeymap
	leaderMap  FormatKeymap
	leader     rune
}

// NewInputProcessor creates a processor with default keybindings and the
// given leader key.
func NewInputProcessor(leader rune) *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
		altFormats: make(FormatKeymap),
		leaderMap:  make(FormatKeymap),
		leader:     leader,
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Simple Keys ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionQuit

	// --- Ctrl bindings ---
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlC] = ActionYank
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlP] = ActionEnterCommandMode
	ctrlMap[tcell.KeyCtrlR] = ActionTogglePreview
	ctrlMap[tcell.KeyCtrlF] = ActionEnterFindMode
	ctrlMap[tcell.KeyCtrlN] = ActionFindNext
	ctrlMap[tcell.KeyCtrlB] = ActionFindPrevious
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// --- Leader ---
	p.runeKeymap[p.leader] = ActionLeader

	// --- Alt+rune inline toggles ---
	p.altFormats['b'] = markdown.CommandBold
	p.altFormats['i'] = markdown.CommandItalic
	p.altFormats['s'] = markdown.CommandStrikethrough
	p.altFormats['c'] = markdown.CommandCode
	p.altFormats['k'] = markdown.CommandLink
	p.altFormats['1'] = markdown.CommandH1
	p.altFormats['2'] = markdown.CommandH2
	p.altFormats['3'] = markdown.CommandH3
	p.altFormats['0'] = markdown.CommandParagraph

	// --- <leader> sequences ---
	p.leaderMap['b'] = markdown.CommandBold
	p.leaderMap['i'] = markdown.CommandItalic
	p.leaderMap['s'] = markdown.CommandStrikethrough
	p.leaderMap['c'] = markdown.CommandCode
	p.leaderMap['1'] = markdown.CommandH1
	p.leaderMap['2'] = markdown.CommandH2
	p.leaderMap['3'] = markdown.CommandH3
	p.leaderMap['0'] = markdown.CommandParagraph
	p.leaderMap['q'] = markdown.CommandQuote
	p.leaderMap['l'] = markdown.CommandUnorderedList
	p.leaderMap['t'] = markdown.CommandCheckList
	p.leaderMap['o'] = markdown.CommandOrderedList
	p.leaderMap['C'] = markdown.CommandCodeBlock
	p.leaderMap['T'] = markdown.CommandTable
	p.leaderMap['k'] = markdown.CommandLink
	p.leaderMap['r'] = markdown.CommandHorizontalRule
}

// Leader returns the configured leader key.
func (p *InputProcessor) Leader() rune {
	return p.leader
}

// ProcessEvent takes a tcell key event and returns the corresponding ActionEvent.
// The mode handler decides what the action means in the current mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// tcell reports Ctrl+letter as its own key, with or without ModCtrl set.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Alt+rune format shortcuts
	if key == tcell.KeyRune && mod == tcell.ModAlt {
		if cmd, ok := p.altFormats[runeVal]; ok {
			return ActionEvent{Action: ActionFormat, Command: cmd}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	// 3. Simple keys; Shift is allowed so Shift+arrows can extend a selection.
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 4. Runes
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

// LeaderCommand resolves the rune typed after the leader key.
func (p *InputProcessor) LeaderCommand(r rune) (markdown.Command, bool) {
	cmd, ok := p.leaderMap[r]
	return cmd, ok
}

// KeysFor lists the key sequences bound to a formatting command, Alt
// chords first, for help output.
func (p *InputProcessor) KeysFor(cmd markdown.Command) []string {
	var alt, leader []string
	for r, c := range p.altFormats {
		if c == cmd {
			alt = append(alt, "Alt+"+string(r))
		}
	}
	for r, c := range p.leaderMap {
		if c == cmd {
			leader = append(leader, string(p.leader)+string(r))
		}
	}
	sort.Strings(alt)
	sort.Strings(leader)
	return append(alt, leader...)
}
