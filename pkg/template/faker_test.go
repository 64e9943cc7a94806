package template

import (
	"testing"

	"github.com/blackcoderx/volt/pkg/core"
)

func TestGenerateKnownKinds(t *testing.T) {
	kinds := []string{
		"firstname", "lastname", "fullname", "name", "title", "suffix", "email",
		"username", "password", "domain", "ipv4", "ipv6", "useragent", "url",
		"phone", "cellnumber", "street", "city", "state", "stateabbr", "zipcode",
		"country", "countrycode", "latitude", "longitude", "company",
		"companysuffix", "industry", "profession", "word", "words", "sentence",
		"sentences", "paragraph", "paragraphs", "number", "float", "digit",
		"boolean", "date", "datetime", "timestamp", "time", "uuid", "color",
		"hexcolor",
	}
	for _, kind := range kinds {
		t.Run(kind, func(t *testing.T) {
			val, err := Generate(kind)
			if err != nil {
				t.Fatalf("unexpected error for kind %q: %v", kind, err)
			}
			if val == "" {
				t.Fatalf("expected non-empty value for kind %q", kind)
			}
		})
	}
}

func TestGenerateCaseInsensitive(t *testing.T) {
	if _, err := Generate("UUID"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	_, err := Generate("not-a-real-kind")
	if _, ok := err.(*core.UnknownFakerKindError); !ok {
		t.Fatalf("expected UnknownFakerKindError, got %v", err)
	}
}

func TestGeneratePasswordLengthInRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		val, err := Generate("password")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(val) < 8 || len(val) > 16 {
			t.Fatalf("password length %d out of [8,16]: %q", len(val), val)
		}
	}
}
