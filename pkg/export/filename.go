package export

import (
	"mime"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/benjaminpeng/sql-audit/pkg/defaults"
)

// GeneratedFilename returns sql-audit-report-<yyyyMMdd-HHmmss><ext>.
func GeneratedFilename(f Format, now time.Time) string {
	return defaults.ExportFilePrefix + "-" + now.Format(defaults.ExportTimestampLayout) + f.Ext()
}

// FilenameFromHeader extracts a file name from a Content-Disposition value.
// The extended filename* parameter (RFC 5987, charset''percent-encoded) wins
// over a plain filename, and quote characters are stripped from its decoded
// value. The result is reduced to its base name so a server
// cannot direct writes outside the download directory.
func FilenameFromHeader(header string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	if ext, ok := extendedParam(header); ok {
		if name, ok := decodeExtended(ext); ok {
			return sanitize(strings.ReplaceAll(name, `"`, ""))
		}
	}

	// mime.ParseMediaType also decodes filename*, but only for UTF-8 and
	// US-ASCII; the manual pass above covers the rest.
	if _, params, err := mime.ParseMediaType(header); err == nil {
		if name := params["filename"]; name != "" {
			return sanitize(name)
		}
	}
	if name, ok := plainParam(header); ok {
		return sanitize(name)
	}
	return "", false
}

// extendedParam returns the raw value of filename*=.
func extendedParam(header string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "filename*") {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"`), true
	}
	return "", false
}

// plainParam is a lenient filename= reader for headers mime rejects.
func plainParam(header string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "filename") {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// decodeExtended decodes charset'lang'percent-encoded.
func decodeExtended(value string) (string, bool) {
	charset, rest, ok := strings.Cut(value, "'")
	if !ok {
		return "", false
	}
	_, encoded, ok := strings.Cut(rest, "'")
	if !ok {
		return "", false
	}
	raw, err := url.PathUnescape(encoded)
	if err != nil {
		return "", false
	}
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return raw, raw != ""
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return "", false
	}
	decoded, err := enc.NewDecoder().String(raw)
	if err != nil {
		return "", false
	}
	return decoded, decoded != ""
}

func sanitize(name string) (string, bool) {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == ".." || name == "" {
		return "", false
	}
	return name, true
}
