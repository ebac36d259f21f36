// Package highlighter computes markdown syntax highlighting with the
// tree-sitter block and inline markdown grammars.
package highlighter

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
	mdblock "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	mdinline "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown-inline"
)

//go:embed queries/*/highlights.scm
var queryFS embed.FS

// StyledRange is a highlighted rune range on one line. EndCol is exclusive.
type StyledRange struct {
	StartCol  int
	EndCol    int
	StyleName string
}

// HighlightResult maps line number -> styled ranges on that line, ordered
// by start column. Later ranges override earlier ones where they overlap.
type HighlightResult map[int][]StyledRange

// Highlighter parses markdown in two passes: the block grammar for the
// document structure, then the inline grammar over the block tree's inline
// nodes.
type Highlighter struct {
	blockParser  *sitter.Parser
	inlineParser *sitter.Parser
	blockQuery   *sitter.Query
	inlineQuery  *sitter.Query
}

// New compiles the embedded highlight queries.
func New() (*Highlighter, error) {
	blockLang := mdblock.GetLanguage()
	inlineLang := mdinline.GetLanguage()

	blockQuery, err := loadQuery("markdown", blockLang)
	if err != nil {
		return nil, err
	}
	inlineQuery, err := loadQuery("markdown_inline", inlineLang)
	if err != nil {
		return nil, err
	}

	blockParser := sitter.NewParser()
	blockParser.SetLanguage(blockLang)
	inlineParser := sitter.NewParser()
	inlineParser.SetLanguage(inlineLang)

	return &Highlighter{
		blockParser:  blockParser,
		inlineParser: inlineParser,
		blockQuery:   blockQuery,
		inlineQuery:  inlineQuery,
	}, nil
}

func loadQuery(name string, lang *sitter.Language) (*sitter.Query, error) {
	src, err := queryFS.ReadFile("queries/" + name + "/highlights.scm")
	if err != nil {
		return nil, fmt.Errorf("read %s query: %w", name, err)
	}
	query, err := sitter.NewQuery(src, lang)
	if err != nil {
		return nil, fmt.Errorf("parse %s query: %w", name, err)
	}
	logger.Debugf("Highlighter: Loaded %s query (%d bytes)", name, len(src))
	return query, nil
}

// Highlight parses source and returns its highlights. A Highlighter is not
// safe for concurrent use.
func (h *Highlighter) Highlight(ctx context.Context, source []byte) (HighlightResult, error) {
	blockTree, err := h.blockParser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("block parse failed: %w", err)
	}
	defer blockTree.Close()

	lines := splitLines(source)
	result := make(HighlightResult)
	h.collect(h.blockQuery, blockTree.RootNode(), source, lines, result)

	ranges := inlineRanges(blockTree.RootNode())
	if len(ranges) > 0 {
		h.inlineParser.SetIncludedRanges(ranges)
		inlineTree, err := h.inlineParser.ParseCtx(ctx, nil, source)
		if err != nil {
			return nil, fmt.Errorf("inline parse failed: %w", err)
		}
		defer inlineTree.Close()
		h.collect(h.inlineQuery, inlineTree.RootNode(), source, lines, result)
	}

	for line := range result {
		sort.SliceStable(result[line], func(i, j int) bool {
			return result[line][i].StartCol < result[line][j].StartCol
		})
	}
	logger.DebugTagf("highlight", "Highlighter: Found highlights on %d lines.", len(result))
	return result, nil
}

// inlineRanges returns the byte ranges of every (inline) node.
func inlineRanges(root *sitter.Node) []sitter.Range {
	var ranges []sitter.Range
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "inline" {
			ranges = append(ranges, sitter.Range{
				StartPoint: n.StartPoint(),
				EndPoint:   n.EndPoint(),
				StartByte:  n.StartByte(),
				EndByte:    n.EndByte(),
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return ranges
}

// collect runs query over root and records every capture, splitting
// captures that span several lines into one range per line.
func (h *Highlighter) collect(query *sitter.Query, root *sitter.Node, source []byte, lines [][]byte, result HighlightResult) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, root)

	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			if name == "none" {
				continue
			}
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()
			for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
				line := lines[row]
				startCol := 0
				if row == int(start.Row) {
					startCol = utils.RuneIndex(line, int(start.Column))
				}
				endCol := utf8.RuneCount(line)
				if row == int(end.Row) {
					endCol = utils.RuneIndex(line, int(end.Column))
				}
				if endCol <= startCol {
					continue
				}
				result[row] = append(result[row], StyledRange{StartCol: startCol, EndCol: endCol, StyleName: name})
			}
		}
	}
}

// splitLines splits source on '\n' without copying.
func splitLines(source []byte) [][]byte {
	lines := make([][]byte, 0, 64)
	start := 0
	for i, b := range source {
		if b == '\n' {
			lines = append(lines, source[start:i])
			start = i + 1
		}
	}
	return append(lines, source[start:])
}

// StyleAt returns the style of the last range on a line covering col.
func (r HighlightResult) StyleAt(line, col int) (string, bool) {
	style, found := "", false
	for _, sr := range r[line] {
		if col >= sr.StartCol && col < sr.EndCol {
			style, found = sr.StyleName, true
		}
	}
	return style, found
}
