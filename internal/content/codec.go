package content

import (
	"encoding/json"
	"fmt"

	"github.com/moizhassan7/crisp-cms/internal/store"
)

// The codec is the typed boundary around the schema-less store: everything
// read from a collection passes through Decode before any field is touched,
// so shape problems surface as errors here instead of as assertions
// scattered through handlers.

// Decode converts an untyped store document into a typed record. Unknown
// fields in the document are ignored; mistyped fields are an error.
func Decode[T any](doc store.Document) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("failed to read document: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode document: %w", err)
	}
	return out, nil
}

// Encode converts a typed record into the untyped document the store
// persists. All values come out as plain JSON types.
func Encode[T any](v T) (store.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var doc store.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return doc, nil
}
