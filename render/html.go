package render

import (
	"html/template"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	sent "github.com/revelaction/lemmix/sentence"
)

// displaCy entity colors
var entityColors = map[string]string{
	"ORG":         "#7aecec",
	"PRODUCT":     "#bfeeb7",
	"GPE":         "#feca74",
	"LOC":         "#ff9561",
	"PERSON":      "#aa9cfc",
	"NORP":        "#c887fb",
	"FAC":         "#9cc9cc",
	"EVENT":       "#ffeb80",
	"LAW":         "#ff8197",
	"LANGUAGE":    "#ff8197",
	"WORK_OF_ART": "#f0d0ff",
	"DATE":        "#bfe1d9",
	"TIME":        "#bfe1d9",
	"MONEY":       "#e4e7d2",
	"QUANTITY":    "#e4e7d2",
	"ORDINAL":     "#e4e7d2",
	"CARDINAL":    "#e4e7d2",
	"PERCENT":     "#e4e7d2",
}

const defaultEntityColor = "#ddd"

// segment is a piece of the doc text, optionally an entity.
type segment struct {
	Text  string
	Label template.HTML
	Color template.CSS
}

var entTemplate = template.Must(template.New("ents").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body style="font-size: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Helvetica, Arial, sans-serif; padding: 4rem 2rem; direction: ltr">
<figure style="margin-bottom: 6rem">
<div class="entities" style="line-height: 2.5; direction: ltr">
{{- range .Segments}}{{if .Label}}<mark class="entity" style="background: {{.Color}}; padding: 0.45em 0.6em; margin: 0 0.25em; line-height: 1; border-radius: 0.35em;">{{.Text}}<span style="font-size: 0.8em; font-weight: bold; line-height: 1; border-radius: 0.35em; vertical-align: middle; margin-left: 0.5rem">{{.Label}}</span></mark>{{else}}{{.Text}}{{end}}{{end -}}
</div>
</figure>
</body>
</html>
`))

// WriteEntityHTML writes an HTML page of the doc text with its entities
// highlighted. The text is escaped, entity labels are written as they are.
func WriteEntityHTML(w io.Writer, doc sent.Doc, title string) error {
	data := struct {
		Title    string
		Segments []segment
	}{
		Title:    cases.Title(language.English).String(strings.ReplaceAll(title, "_", " ")),
		Segments: segments(doc),
	}

	return entTemplate.Execute(w, data)
}

// segments splits the doc text at entity boundaries. Entities overlapping a
// previous one are ignored.
func segments(doc sent.Doc) []segment {
	runes := []rune(doc.Text)
	out := []segment{}

	cursor := 0
	for _, e := range doc.Entities {
		if e.Len() <= 0 {
			continue
		}

		start := doc.Tokens[e.Start].Idx
		end := doc.Tokens[e.End-1].End()
		if start < cursor || end > len(runes) {
			continue
		}

		if start > cursor {
			out = append(out, segment{Text: string(runes[cursor:start])})
		}

		color, ok := entityColors[e.Label]
		if !ok {
			color = defaultEntityColor
		}
		out = append(out, segment{
			Text:  string(runes[start:end]),
			Label: template.HTML(e.Label),
			Color: template.CSS(color),
		})
		cursor = end
	}

	if cursor < len(runes) {
		out = append(out, segment{Text: string(runes[cursor:])})
	}

	return out
}
