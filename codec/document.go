package codec

import (
	"bytes"
	"encoding/json"

	"skytheme/style"
)

// MarshalDocument encodes the toolchain document as indented JSON.
func MarshalDocument(doc style.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
