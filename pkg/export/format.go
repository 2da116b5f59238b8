package export

import (
	"fmt"
	"strings"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
)

// Format is an export document type.
type Format string

const (
	Markdown Format = "markdown"
	JSON     Format = "json"

	// Template renders a local text/template. It never goes to the server.
	Template Format = "template"
)

// Formats lists every supported format.
var Formats = []Format{Markdown, JSON, Template}

// ParseFormat maps a case-insensitive name (or common alias) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return Markdown, nil
	case "json":
		return JSON, nil
	case "template", "tmpl":
		return Template, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	switch f {
	case Markdown:
		return ".md"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type of a document in this format.
func (f Format) ContentType() string {
	switch f {
	case Markdown:
		return defaults.ContentTypeMarkdown
	case JSON:
		return defaults.ContentTypeJSON
	default:
		return "text/plain; charset=utf-8"
	}
}

// Remote reports whether the audit service can render this format.
func (f Format) Remote() bool {
	return f == Markdown || f == JSON
}

func (f Format) String() string {
	return string(f)
}
