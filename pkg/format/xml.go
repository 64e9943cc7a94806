package format

import (
	"bytes"
	"encoding/xml"
	"io"
)

// FormatXML re-indents an XML document, preserving text content. No XML
// library appears anywhere in the retrieved example corpus, so this uses
// the standard library decoder/encoder directly (see DESIGN.md).
func FormatXML(body []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	var out bytes.Buffer
	encoder := xml.NewEncoder(&out)
	encoder.Indent("", "  ")

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if err := encoder.EncodeToken(tok); err != nil {
			return "", err
		}
	}
	if err := encoder.Flush(); err != nil {
		return "", err
	}
	if out.Len() == 0 {
		return "", io.ErrUnexpectedEOF
	}
	return out.String(), nil
}
