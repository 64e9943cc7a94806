// Package template implements the two-phase placeholder engine: discovery
// and substitution of user variables {{NAME}} and faker placeholders
// {{f:kind}}. It generalizes the teacher's regex-based SubstituteVariables
// (pkg/storage/env.go) from single-pass replace-in-place to explicit
// discovery plus strict/lenient substitution modes.
package template

import (
	"regexp"
	"strings"

	"github.com/blackcoderx/volt/pkg/core"
)

// placeholderPattern matches {{ + optional whitespace + NAME + optional
// whitespace + }}, where NAME is [A-Za-z0-9_:.-]+. A bare "{{" with no
// matching "}}" does not match here and is caught separately as a syntax
// error; a lone "}}" with no opening is left untouched, same as the
// teacher's pattern which only ever acts on matched pairs.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_:.-]+)\s*\}\}`)

// unmatchedOpenPattern finds a "{{" that isn't part of a well-formed
// placeholder, which is how the syntax-error edge case in §4.2 is detected.
var unmatchedOpenPattern = regexp.MustCompile(`\{\{`)

const fakerPrefix = "f:"

// isFakerName reports whether a placeholder NAME denotes a faker call.
func isFakerName(name string) bool {
	return strings.HasPrefix(strings.ToLower(name), fakerPrefix)
}

// HasVariables reports whether template contains any {{...}} placeholder,
// faker or user variable alike.
func HasVariables(tmpl string) bool {
	return placeholderPattern.MatchString(tmpl)
}

// FindVariables returns the ordered, deduplicated sequence of user-variable
// names referenced by template, excluding faker placeholders. Ordering is
// first-appearance.
func FindVariables(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderPattern.FindAllStringSubmatch(tmpl, -1) {
		name := m[1]
		if isFakerName(name) {
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// checkSyntax reports a TemplateSyntaxError when template has an opening
// "{{" that the placeholder pattern never consumes as part of a matched
// pair — i.e. an unclosed or malformed placeholder.
func checkSyntax(tmpl string) error {
	opens := unmatchedOpenPattern.FindAllStringIndex(tmpl, -1)
	if len(opens) == 0 {
		return nil
	}
	matched := placeholderPattern.FindAllStringIndex(tmpl, -1)
	matchedStarts := make(map[int]bool, len(matched))
	for _, m := range matched {
		matchedStarts[m[0]] = true
	}
	for _, o := range opens {
		if !matchedStarts[o[0]] {
			return &core.TemplateSyntaxError{Template: tmpl}
		}
	}
	return nil
}

// SubstituteStrict expands every placeholder in template. Faker
// placeholders always expand via Generate. User variables resolve from
// vars; the first unresolved name produces a MissingVariableError and
// substitution stops. An unclosed "{{" is a TemplateSyntaxError.
func SubstituteStrict(tmpl string, vars map[string]string) (string, error) {
	if err := checkSyntax(tmpl); err != nil {
		return "", err
	}
	var firstErr error
	result := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if isFakerName(name) {
			kind := name[len(fakerPrefix):]
			val, err := Generate(kind)
			if err != nil {
				firstErr = err
				return match
			}
			return val
		}
		if val, ok := vars[name]; ok {
			return val
		}
		firstErr = &core.MissingVariableError{Name: name}
		return match
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// SubstituteLenient expands template the same way as SubstituteStrict
// except a missing user variable expands to the empty string instead of
// failing. Faker errors (unknown kind) still propagate, since they are a
// template authoring bug rather than a missing value.
func SubstituteLenient(tmpl string, vars map[string]string) (string, error) {
	if err := checkSyntax(tmpl); err != nil {
		return "", err
	}
	var firstErr error
	result := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if isFakerName(name) {
			kind := name[len(fakerPrefix):]
			val, err := Generate(kind)
			if err != nil {
				firstErr = err
				return match
			}
			return val
		}
		return vars[name]
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
