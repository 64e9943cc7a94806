package template

import (
	"regexp"
	"testing"

	"github.com/blackcoderx/volt/pkg/core"
)

func TestFindVariablesOrderedUniqueFakerExcluded(t *testing.T) {
	tmpl := "https://{{host}}/users/{{user_id}}?k={{f:uuid}}&again={{host}}"
	got := FindVariables(tmpl)
	want := []string{"host", "user_id"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSubstituteStrictResolvesUuidFaker(t *testing.T) {
	tmpl := "https://{{host}}/users/{{user_id}}?k={{f:uuid}}"
	out, err := SubstituteStrict(tmpl, map[string]string{"host": "api.example.com", "user_id": "42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	const prefix = "https://api.example.com/users/42?k="
	if len(out) <= len(prefix) || out[:len(prefix)] != prefix {
		t.Fatalf("unexpected prefix in %q", out)
	}
	uuidPart := out[len(prefix):]
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	if !uuidPattern.MatchString(uuidPart) {
		t.Fatalf("expected v4 uuid suffix, got %q", uuidPart)
	}
}

func TestSubstituteStrictVsLenient(t *testing.T) {
	tmpl := "X={{a}} Y={{b}}"
	if _, err := SubstituteStrict(tmpl, map[string]string{"a": "1"}); err == nil {
		t.Fatal("expected MissingVariableError")
	} else if mv, ok := err.(*core.MissingVariableError); !ok || mv.Name != "b" {
		t.Fatalf("expected MissingVariableError{b}, got %v", err)
	}

	out, err := SubstituteLenient(tmpl, map[string]string{"a": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "X=1 Y=" {
		t.Fatalf("got %q, want %q", out, "X=1 Y=")
	}
}

func TestSubstituteStrictAllNamesResolved(t *testing.T) {
	templates := []string{
		"{{a}}-{{b}}-{{c}}",
		"no placeholders here",
		"{{f:uuid}} only faker",
	}
	for _, tmpl := range templates {
		vars := map[string]string{}
		for _, name := range FindVariables(tmpl) {
			vars[name] = "x"
		}
		if _, err := SubstituteStrict(tmpl, vars); err != nil {
			t.Errorf("template %q: unexpected error %v", tmpl, err)
		}
	}
}

func TestHasVariables(t *testing.T) {
	if !HasVariables("{{x}}") {
		t.Error("expected true")
	}
	if HasVariables("plain text") {
		t.Error("expected false")
	}
}

func TestUnclosedPlaceholderIsSyntaxError(t *testing.T) {
	_, err := SubstituteStrict("{{unclosed", nil)
	if _, ok := err.(*core.TemplateSyntaxError); !ok {
		t.Fatalf("expected TemplateSyntaxError, got %v", err)
	}
}

func TestLiteralBraceIsPassedThrough(t *testing.T) {
	out, err := SubstituteStrict("a { b } c", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "a { b } c" {
		t.Fatalf("got %q", out)
	}
}

func TestUnopenedClosingBraceIsPassedThrough(t *testing.T) {
	out, err := SubstituteStrict("value}} trailer", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "value}} trailer" {
		t.Fatalf("got %q", out)
	}
}

func TestUnknownFakerKind(t *testing.T) {
	_, err := SubstituteStrict("{{f:notreal}}", nil)
	uk, ok := err.(*core.UnknownFakerKindError)
	if !ok {
		t.Fatalf("expected UnknownFakerKindError, got %v", err)
	}
	if uk.Kind != "notreal" {
		t.Fatalf("got kind %q", uk.Kind)
	}
}
