package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/benjaminpeng/sql-audit/pkg/grouping"
	"github.com/benjaminpeng/sql-audit/pkg/model"
)

// SummaryTemplate is the built-in template used when none is configured.
const SummaryTemplate = `SQL audit: {{ .Report.TotalViolations }} violation(s) in {{ .Report.TotalFiles }} file(s)
{{- if .Report.LimitReached }} [truncated]{{ end }}
errors={{ .Report.ErrorCount }} warnings={{ .Report.WarningCount }} info={{ .Report.InfoCount }}
{{- range .Groups }}

{{ .Path }} ({{ len .Violations }})
{{- range .Violations }}
  {{ .Rule.Severity | toString | default "UNKNOWN" | printf "%-7s" }} L{{ .SQLFragment.LineNumber }} {{ .Rule.Name | default "unnamed rule" }}: {{ .Message | trunc 120 }}
{{- end }}
{{- end }}
`

// TemplateData is the value a template executes against.
type TemplateData struct {
	Report *model.ScanReport
	Groups []grouping.FileGroup
}

// TemplateRenderer renders reports through text/template with the sprig
// function library.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses text. An empty text selects SummaryTemplate.
func NewTemplateRenderer(text string) (*TemplateRenderer, error) {
	if strings.TrimSpace(text) == "" {
		text = SummaryTemplate
	}

	funcMap := sprig.TxtFuncMap()
	funcMap["anchor"] = AnchorID
	funcMap["location"] = func(v model.Violation) string { return v.SQLFragment.Location() }

	tmpl, err := template.New("sqlaudit").Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse export template: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// LoadTemplateRenderer reads a template file. An empty path selects the
// built-in template.
func LoadTemplateRenderer(path string) (*TemplateRenderer, error) {
	if path == "" {
		return NewTemplateRenderer("")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export template: %w", err)
	}
	return NewTemplateRenderer(string(data))
}

// Render executes the template for r.
func (t *TemplateRenderer) Render(r *model.ScanReport) ([]byte, error) {
	r = normalized(r)
	var buf bytes.Buffer
	data := TemplateData{Report: r, Groups: grouping.Group(r.Violations, grouping.All)}
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute export template: %w", err)
	}
	return buf.Bytes(), nil
}
