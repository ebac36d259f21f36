// Package render turns markdown into HTML (goldmark) or styled terminal
// text (glamour).
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in the source is not passed through.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithXHTML(),
	),
)

// HTML converts markdown to an HTML fragment.
func HTML(w io.Writer, src []byte) error {
	if err := markdownRenderer.Convert(src, w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

var documentTemplate = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// HTMLDocument wraps the rendered markdown in a standalone page.
func HTMLDocument(w io.Writer, title string, src []byte) error {
	var body bytes.Buffer
	if err := HTML(&body, src); err != nil {
		return err
	}
	return documentTemplate.Execute(w, struct {
		Title string
		Body  template.HTML
	}{
		Title: title,
		// goldmark output is trusted because raw HTML is disabled above.
		Body: template.HTML(body.String()),
	})
}
