package export

import (
	"strings"

	"github.com/inkweld/inkweld/backend/go-services/internal/document"
)

// TextExporter strips markup down to plain text. Pages are separated by a
// form feed. Stripping is purely lexical (drop tags, decode the handful of
// entities the editor emits); interpreting markup structure belongs to the
// editing surface, not here.
type TextExporter struct{}

func (t *TextExporter) Name() string        { return "txt" }
func (t *TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (t *TextExporter) Export(d *document.Document) ([]byte, error) {
	pages := make([]string, 0, len(d.Content))
	for _, page := range d.Content {
		pages = append(pages, stripMarkup(page))
	}
	return []byte(strings.Join(pages, "\f")), nil
}

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&amp;", "&",
)

// blockCloseTags end a visual line in the editor's output.
var blockCloseTags = []string{"</p>", "</h1>", "</h2>", "</h3>", "</div>", "</li>", "<br>", "<br/>", "<br />"}

func stripMarkup(markup string) string {
	for _, tag := range blockCloseTags {
		markup = strings.ReplaceAll(markup, tag, tag+"\n")
	}

	var b strings.Builder
	inTag := false
	for _, r := range markup {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := entityReplacer.Replace(b.String())

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, "\n")
}
