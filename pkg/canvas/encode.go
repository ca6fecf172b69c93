package canvas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Extension is the file extension of canvas files.
const Extension = ".canvas"

// SerializationError reports a document that could not be encoded or decoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("canvas serialization: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Encode renders d as JSON indented by two spaces, without a trailing newline.
func Encode(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, &SerializationError{Err: err}
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a canvas file.
func Decode(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, &SerializationError{Err: err}
	}
	return NewDocument(d.Nodes, d.Edges), nil
}

// FileTitle returns title with the ".canvas" extension, appending it only when missing.
func FileTitle(title string) string {
	if strings.HasSuffix(title, Extension) {
		return title
	}
	return title + Extension
}

// Path joins folder and the file title of title with a single "/".
// Neither part is cleaned; the backing store decides what a legal path is.
func Path(folder, title string) string {
	return folder + "/" + FileTitle(title)
}
