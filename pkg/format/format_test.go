package format

import (
	"strings"
	"testing"
)

func TestDetectKind(t *testing.T) {
	cases := map[string]Kind{
		"application/json":             KindJSON,
		"application/json; charset=utf8": KindJSON,
		"text/xml":                     KindXML,
		"application/xhtml+xml":        KindXML,
		"text/plain":                   KindPlain,
		"":                             KindPlain,
	}
	for ct, want := range cases {
		if got := DetectKind(ct); got != want {
			t.Errorf("DetectKind(%q) = %v, want %v", ct, got, want)
		}
	}
}

func TestFormatJSONIndents(t *testing.T) {
	out, err := FormatJSON([]byte(`{"a":1,"b":[1,2,3]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected indented output, got %q", out)
	}
}

func TestFormatJSONInvalidFallsBackViaFormat(t *testing.T) {
	body := []byte("not json at all")
	out := Format(body, KindJSON)
	if out != "not json at all" {
		t.Fatalf("expected raw fallback, got %q", out)
	}
}

func TestFormatXMLIndents(t *testing.T) {
	out, err := FormatXML([]byte(`<root><a>1</a><b>2</b></root>`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n") {
		t.Fatalf("expected indented output, got %q", out)
	}
}

func TestFormatXMLInvalidFallsBack(t *testing.T) {
	body := []byte("plain text, not xml <<<")
	out := Format(body, KindXML)
	if !strings.Contains(out, "plain text") {
		t.Fatalf("expected raw fallback containing original text, got %q", out)
	}
}

func TestColorizeJSONProducesKeyAndStringStyling(t *testing.T) {
	out, err := ColorizeJSON([]byte(`{"name":"volt","count":3,"nested":{"ok":true}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "name") || !strings.Contains(out, "volt") {
		t.Fatalf("expected key/value text preserved, got %q", out)
	}
}

func TestScanJSONStringHandlesEscapes(t *testing.T) {
	src := []rune(`"a\"b" rest`)
	str, consumed := scanJSONString(src)
	if str != `"a\"b"` {
		t.Fatalf("got %q", str)
	}
	if consumed != len(`"a\"b"`) {
		t.Fatalf("got consumed %d", consumed)
	}
}
