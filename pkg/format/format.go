// Package format dispatches a raw HTTP response body to a content-type
// aware pretty-printer: JSON re-serialization with depth-indexed bracket
// coloring, an XML indenter, or a plain UTF-8-lossy fallback. Grounded on
// the teacher's pkg/core/tools/http.go response formatting and
// pkg/tui/highlight.go's approach to rendering JSON for the terminal,
// generalized from glamour-markdown-wrapping to raw per-bracket lipgloss
// spans since the coloring rule here is nesting-depth based, finer grained
// than glamour's code-block theme.
package format

import "strings"

// Kind is the detected content category of a response body.
type Kind string

const (
	KindJSON  Kind = "json"
	KindXML   Kind = "xml"
	KindPlain Kind = "plain"
)

// DetectKind classifies a response by a case-insensitive substring match of
// its Content-Type header against "json" / "xml"; anything else is plain.
func DetectKind(contentType string) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return KindJSON
	case strings.Contains(ct, "xml"):
		return KindXML
	default:
		return KindPlain
	}
}

// Format re-serializes body according to kind, falling back to the raw
// UTF-8-lossy string on any parse error.
func Format(body []byte, kind Kind) string {
	switch kind {
	case KindJSON:
		if out, err := FormatJSON(body); err == nil {
			return out
		}
	case KindXML:
		if out, err := FormatXML(body); err == nil {
			return out
		}
	}
	return toUTF8Lossy(body)
}

func toUTF8Lossy(body []byte) string {
	return strings.ToValidUTF8(string(body), "�")
}
