package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertPayloadDoesNotTouchCaller(t *testing.T) {
	doc := Document{"title": "Managed IT", "features": []any{"a"}}

	payload := insertPayload(doc, "abc123")
	require.Equal(t, "abc123", payload["_id"])
	require.Equal(t, "Managed IT", payload["title"])

	// The caller's document gained no key.
	require.NotContains(t, doc, "_id")
	require.Len(t, doc, 2)

	// And the payload is a distinct map.
	payload["title"] = "mutated"
	require.Equal(t, "Managed IT", doc["title"])
}
