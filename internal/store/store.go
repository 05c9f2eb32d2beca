package store

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound is returned by Get, Update and Delete when the addressed
// document does not exist in its collection.
var ErrNotFound = errors.New("document not found")

// Document is an untyped content document as held by the store. Values are
// restricted to JSON types (string, float64, bool, []any, map[string]any);
// the content package owns encoding to and decoding from typed records.
type Document map[string]any

// Record pairs a document with its store-assigned identifier.
type Record struct {
	ID   string
	Data Document
}

// ListOptions controls collection listing. OrderBy names a top-level
// document field; an empty OrderBy returns the backend's natural order.
type ListOptions struct {
	OrderBy    string
	Descending bool
}

// Store is the document database boundary. Identifiers are assigned by the
// store on Add; Update and Delete address existing documents only. Put is
// the upsert path for fixed-key singleton documents. Every write replaces
// the whole document; there are no partial patches.
type Store interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	List(ctx context.Context, collection string, opts ListOptions) ([]Record, error)
	Add(ctx context.Context, collection string, doc Document) (string, error)
	Update(ctx context.Context, collection, id string, doc Document) error
	Put(ctx context.Context, collection, id string, doc Document) error
	Delete(ctx context.Context, collection, id string) error
	Close(ctx context.Context) error
}

// sortRecords orders records in place by a top-level document field.
// Backends without server-side ordering (memory, the SQL document table)
// share this; mixed or missing values sort after present ones.
func sortRecords(records []Record, opts ListOptions) {
	if opts.OrderBy == "" {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		less := lessValue(records[i].Data[opts.OrderBy], records[j].Data[opts.OrderBy])
		if opts.Descending {
			return lessValue(records[j].Data[opts.OrderBy], records[i].Data[opts.OrderBy])
		}
		return less
	})
}

func lessValue(a, b any) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	switch av := a.(type) {
	case float64:
		if bv, ok := toFloat(b); ok {
			return av < bv
		}
	case int:
		if bv, ok := toFloat(b); ok {
			return float64(av) < bv
		}
	case int64:
		if bv, ok := toFloat(b); ok {
			return float64(av) < bv
		}
	case string:
		if bv, ok := b.(string); ok {
			return av < bv
		}
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
