// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// markupChars make up tokens that are pure markdown syntax ("##", "-", "|").
const markupChars = "#*_~`>|-+=[]:"

// Stats summarizes a markdown document.
type Stats struct {
	Lines    int
	Words    int
	Chars    int
	Headings int
	Items    int // list and task items
}

func (s Stats) String() string {
	return fmt.Sprintf("Lines: %d, Words: %d, Chars: %d, Headings: %d, Items: %d",
		s.Lines, s.Words, s.Chars, s.Headings, s.Items)
}

// WordCount registers :wordcount (alias :wc) which reports document stats.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the commands.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	for _, name := range []string{"wordcount", "wc"} {
		if err := api.RegisterCommand(name, p.executeWordCount); err != nil {
			return fmt.Errorf("failed to register '%s' command: %w", name, err)
		}
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this simple plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	text := p.api.GetText()
	if sel := p.api.GetSelection(); !sel.IsCollapsed() && len(args) == 0 {
		start, end := sel.Range()
		runes := []rune(text)
		if end > len(runes) {
			end = len(runes)
		}
		if start < end {
			p.api.SetStatusMessage("Selection: %s", Count(string(runes[start:end])))
			return nil
		}
	}
	p.api.SetStatusMessage("%s", Count(text))
	return nil
}

// Count computes document stats. Words skip tokens made only of markdown
// syntax and ordered list markers.
func Count(text string) Stats {
	var s Stats
	if text == "" {
		return s
	}
	s.Chars = utf8.RuneCountInString(text)
	lines := strings.Split(text, "\n")
	s.Lines = len(lines)
	for _, line := range lines {
		if markdown.DetectBlockType(line) != markdown.BlockParagraph {
			s.Headings++
		}
		if markdown.IsUnorderedListLine(line) || markdown.IsCheckListLine(line) || markdown.IsOrderedListLine(line) {
			s.Items++
		}
		for _, tok := range strings.Fields(line) {
			if !isMarkup(tok) {
				s.Words++
			}
		}
	}
	return s
}

func isMarkup(tok string) bool {
	if strings.Trim(tok, markupChars) == "" || tok == "[x]" || tok == "[X]" {
		return true
	}
	if strings.HasSuffix(tok, ".") {
		digits := strings.TrimSuffix(tok, ".")
		return digits != "" && strings.Trim(digits, "0123456789") == ""
	}
	return false
}
