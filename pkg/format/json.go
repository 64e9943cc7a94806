package format

import (
	"bytes"
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
)

// FormatJSON re-serializes body with two-space indentation. Any decode
// error (invalid JSON) is returned so the caller falls back to plain text.
func FormatJSON(body []byte) (string, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// bracketColors is the 8-color rainbow cycle indexed by nesting depth; the
// same depth always yields the same color for both {} and [].
var bracketColors = []lipgloss.Color{
	lipgloss.Color("#f7768e"), // red
	lipgloss.Color("#e0af68"), // orange
	lipgloss.Color("#e0d068"), // yellow
	lipgloss.Color("#9ece6a"), // green
	lipgloss.Color("#73daca"), // teal
	lipgloss.Color("#7aa2f7"), // blue
	lipgloss.Color("#bb9af7"), // violet
	lipgloss.Color("#c0caf5"), // lavender
}

var (
	jsonKeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7dcfff"))
	jsonStringStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ece6a"))
	jsonLiteralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9e64"))
)

func bracketStyle(depth int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(bracketColors[depth%len(bracketColors)])
}

// ColorizeJSON re-serializes body and emits an ANSI-styled string with an
// 8-color rainbow indexed by nesting depth for "{}" and "[]" (matching
// brackets share a color), keys styled distinctly from string values, and
// numbers/booleans/null styled as literals. It is only meaningful to call
// when the response's content-type contains "json"; callers are
// responsible for that gating (see DetectKind).
func ColorizeJSON(body []byte) (string, error) {
	pretty, err := FormatJSON(body)
	if err != nil {
		return "", err
	}
	return colorizeJSONText(pretty), nil
}

func colorizeJSONText(src string) string {
	var out bytes.Buffer
	depth := 0
	runes := []rune(src)
	n := len(runes)

	for i := 0; i < n; i++ {
		r := runes[i]
		switch r {
		case '{', '[':
			out.WriteString(bracketStyle(depth).Render(string(r)))
			depth++
		case '}', ']':
			depth--
			if depth < 0 {
				depth = 0
			}
			out.WriteString(bracketStyle(depth).Render(string(r)))
		case '"':
			str, consumed := scanJSONString(runes[i:])
			isKey := followsAsKey(runes, i+consumed)
			if isKey {
				out.WriteString(jsonKeyStyle.Render(str))
			} else {
				out.WriteString(jsonStringStyle.Render(str))
			}
			i += consumed - 1
		default:
			if isLiteralStart(r) {
				lit, consumed := scanJSONLiteral(runes[i:])
				out.WriteString(jsonLiteralStyle.Render(lit))
				i += consumed - 1
			} else {
				out.WriteRune(r)
			}
		}
	}
	return out.String()
}

// scanJSONString reads a full double-quoted JSON string literal (including
// escape sequences) starting at runes[0] == '"'. It returns the literal
// text and the number of runes consumed.
func scanJSONString(runes []rune) (string, int) {
	var sb bytes.Buffer
	sb.WriteRune(runes[0])
	i := 1
	for i < len(runes) {
		r := runes[i]
		sb.WriteRune(r)
		if r == '\\' && i+1 < len(runes) {
			i++
			sb.WriteRune(runes[i])
			i++
			continue
		}
		if r == '"' {
			i++
			break
		}
		i++
	}
	return sb.String(), i
}

// followsAsKey reports whether the next non-whitespace rune after a string
// literal is ':', which marks that string as an object key rather than a
// value.
func followsAsKey(runes []rune, pos int) bool {
	for pos < len(runes) {
		if runes[pos] == ' ' || runes[pos] == '\t' || runes[pos] == '\n' || runes[pos] == '\r' {
			pos++
			continue
		}
		return runes[pos] == ':'
	}
	return false
}

func isLiteralStart(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == 't' || r == 'f' || r == 'n'
}

func isLiteralRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '-' || r == '+' || r == '.' || r == 'e' || r == 'E' ||
		r == 't' || r == 'r' || r == 'u' || r == 'e' || r == 'f' || r == 'a' || r == 'l' || r == 's' || r == 'n'
}

func scanJSONLiteral(runes []rune) (string, int) {
	i := 0
	for i < len(runes) && isLiteralRune(runes[i]) {
		i++
	}
	if i == 0 {
		i = 1
	}
	return string(runes[:i]), i
}
