package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// The page is self-contained: styles are embedded so the layout engine needs
// no filesystem access. Physical page size and margins are applied by the
// engine, not here.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; color: #1a1a1a; margin: 0; }
.title { font-size: 24pt; color: navy; text-align: center; margin: 0 0 6pt 0; }
.contact { text-align: center; margin: 0 0 2pt 0; }
.heading { font-size: 13pt; border-bottom: 1pt solid #444444; margin: 10pt 0 4pt 0; }
.subheading { font-weight: bold; margin: 6pt 0 2pt 0; }
.paragraph { margin: 0 0 4pt 0; text-align: justify; }
.label { color: #333333; margin: 0 0 2pt 0; }
.bullet { margin: 0 0 2pt 12pt; }
.spacer { height: 10pt; }
</style>
</head>
<body>
{{- range .Blocks}}
{{- if eq .Kind "title"}}
<h1 class="title">{{.Text}}</h1>
{{- else if eq .Kind "contact"}}
<p class="contact">{{.Text}}</p>
{{- else if eq .Kind "heading"}}
<h2 class="heading">{{.Text}}</h2>
{{- else if eq .Kind "subheading"}}
<p class="subheading">{{.Text}}</p>
{{- else if eq .Kind "paragraph"}}
<p class="paragraph">{{.Text}}</p>
{{- else if eq .Kind "label"}}
<p class="label">{{.Text}}</p>
{{- else if eq .Kind "bullet"}}
<p class="bullet">&bull; {{.Text}}</p>
{{- else if eq .Kind "spacer"}}
<div class="spacer"></div>
{{- end}}
{{- end}}
</body>
</html>
`

var docTmpl = template.Must(template.New("document").Parse(documentTemplate))

// HTML renders the block sequence into a complete page. Output is a pure
// function of the document: no timestamps, no generated identifiers.
func (d Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("execute document template: %w", err)
	}
	return buf.String(), nil
}
