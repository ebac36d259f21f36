// Package find searches the editor text with regular expressions, selects
// matches and runs :s substitutions.
package find

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
)

// ErrNoTerm is returned by FindNext when no search is active.
var ErrNoTerm = errors.New("no search term")

// Editor defines the methods the find manager needs from the editor.
type Editor interface {
	Value() string
	SetValue(text string)
	Selection() markdown.Selection
	SetSelection(sel markdown.Selection)
}

// Match is one occurrence as a rune range [Start, End).
type Match struct {
	Start int
	End   int
}

// Result describes a match selected by FindNext.
type Result struct {
	Match   Match
	Index   int // 1-based position among all matches
	Count   int
	Wrapped bool
}

// Manager keeps the last search and moves the selection between matches.
type Manager struct {
	editor            Editor
	mutex             sync.RWMutex
	lastSearchTerm    string
	lastSearchRegex   *regexp.Regexp
	lastSearchForward bool
}

// NewManager creates a find manager.
func NewManager(editor Editor) *Manager {
	return &Manager{
		editor:            editor,
		lastSearchForward: true,
	}
}

// SetTerm compiles term and makes it the active search. An empty term clears
// the search.
func (m *Manager) SetTerm(term string) error {
	if term == "" {
		m.mutex.Lock()
		m.lastSearchTerm = ""
		m.lastSearchRegex = nil
		m.mutex.Unlock()
		return nil
	}
	re, err := regexp.Compile(term)
	if err != nil {
		logger.Warnf("FindManager: invalid pattern '%s': %v", term, err)
		return fmt.Errorf("invalid search pattern: %w", err)
	}
	m.mutex.Lock()
	m.lastSearchTerm = term
	m.lastSearchRegex = re
	m.mutex.Unlock()
	return nil
}

// Term returns the active search term.
func (m *Manager) Term() string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.lastSearchTerm
}

// LastDirection reports whether the last FindNext searched forward.
func (m *Manager) LastDirection() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.lastSearchForward
}

// Matches returns every non-empty match of the active search.
func (m *Manager) Matches() []Match {
	m.mutex.RLock()
	re := m.lastSearchRegex
	m.mutex.RUnlock()
	if re == nil {
		return nil
	}
	return findAll(re, m.editor.Value())
}

// FindNext selects the first match after the selection start, or the last
// one before it when forward is false. The search wraps around the text. A
// match starting at a collapsed caret counts as the next one.
func (m *Manager) FindNext(forward bool) (Result, error) {
	m.mutex.RLock()
	re := m.lastSearchRegex
	m.mutex.RUnlock()
	if re == nil {
		return Result{}, ErrNoTerm
	}

	matches := findAll(re, m.editor.Value())
	if len(matches) == 0 {
		return Result{}, fmt.Errorf("pattern not found: %s", m.Term())
	}

	sel := m.editor.Selection()
	start, _ := sel.Range()
	idx := -1
	if forward {
		for i, match := range matches {
			if match.Start > start || (match.Start == start && sel.IsCollapsed()) {
				idx = i
				break
			}
		}
	} else {
		for i := len(matches) - 1; i >= 0; i-- {
			if matches[i].Start < start {
				idx = i
				break
			}
		}
	}

	res := Result{Count: len(matches)}
	if idx < 0 {
		res.Wrapped = true
		idx = 0
		if !forward {
			idx = len(matches) - 1
		}
	}
	res.Match = matches[idx]
	res.Index = idx + 1

	m.mutex.Lock()
	m.lastSearchForward = forward
	m.mutex.Unlock()

	m.editor.SetSelection(markdown.Selection{Anchor: res.Match.Start, Focus: res.Match.End})
	logger.Debugf("FindManager: match %d/%d for '%s' at %d-%d", res.Index, res.Count, m.Term(), res.Match.Start, res.Match.End)
	return res, nil
}

// findAll returns the non-empty matches of re in text as rune ranges.
func findAll(re *regexp.Regexp, text string) []Match {
	locs := re.FindAllStringIndex(text, -1)
	matches := make([]Match, 0, len(locs))
	prevByte, prevRune := 0, 0
	for _, loc := range locs {
		if loc[1] == loc[0] {
			continue
		}
		start := prevRune + utf8.RuneCountInString(text[prevByte:loc[0]])
		end := start + utf8.RuneCountInString(text[loc[0]:loc[1]])
		matches = append(matches, Match{Start: start, End: end})
		prevByte, prevRune = loc[1], end
	}
	return matches
}

// --- Replace Logic ---

// ParseSubstituteCommand parses the /pattern/replacement/[g] argument of :s.
func ParseSubstituteCommand(cmdStr string) (pattern, replacement string, global bool, err error) {
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" {
		err = errors.New("invalid format: use /pattern/replacement/[g]")
		return
	}
	pattern = parts[1]
	replacement = parts[2]
	if pattern == "" {
		err = errors.New("search pattern cannot be empty")
		return
	}
	if len(parts) > 3 && strings.Contains(parts[3], "g") {
		global = true
	}
	return
}

// Replace substitutes pattern with replacement ($1 expands submatches). With
// global every match in the text is replaced, otherwise only the first match
// at or after the caret, wrapping to the top. The edit is one undo step and
// the caret lands after the last replacement. It returns how many matches
// were replaced.
func (m *Manager) Replace(pattern, replacement string, global bool) (int, error) {
	if pattern == "" {
		return 0, errors.New("search pattern cannot be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}

	text := m.editor.Value()
	locs := re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return 0, nil
	}

	if !global {
		caret := byteOffset(text, m.editor.Selection().Focus)
		pick := locs[0]
		for _, loc := range locs {
			if loc[0] >= caret {
				pick = loc
				break
			}
		}
		locs = [][]int{pick}
	}

	var out []byte
	last, caretByte := 0, 0
	for _, loc := range locs {
		out = append(out, text[last:loc[0]]...)
		out = re.ExpandString(out, replacement, text, loc)
		caretByte = len(out)
		last = loc[1]
	}
	out = append(out, text[last:]...)

	after := string(out)
	m.editor.SetValue(after)
	m.editor.SetSelection(markdown.Cursor(utf8.RuneCountInString(after[:caretByte])))
	logger.Debugf("FindManager: replaced %d occurrence(s) of '%s'", len(locs), pattern)
	return len(locs), nil
}

// byteOffset converts a rune offset into a byte offset, clamped to text.
func byteOffset(text string, runes int) int {
	if runes <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == runes {
			return i
		}
		n++
	}
	return len(text)
}
