package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/moizhassan7/crisp-cms/internal/store"
)

// draftAdapter exposes a typed Controller to the untyped draft engine.
type draftAdapter[T any] struct {
	ctrl *Controller[T]
}

// AsDraftResource wires a controller into the draft engine.
func AsDraftResource[T any](ctrl *Controller[T]) DraftResource {
	return draftAdapter[T]{ctrl: ctrl}
}

func (a draftAdapter[T]) Collection() string { return a.ctrl.Collection() }

func (a draftAdapter[T]) Seed() (store.Document, error) {
	return Encode(a.ctrl.NewDraft())
}

func (a draftAdapter[T]) Load(ctx context.Context, id string) (store.Document, error) {
	if a.ctrl.res.Singleton {
		item, _, err := a.ctrl.GetSingleton(ctx)
		if err != nil {
			return nil, err
		}
		return Encode(item)
	}
	item, err := a.ctrl.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Encode(item)
}

func (a draftAdapter[T]) DefaultListItem(field string) (any, bool) {
	def, ok := a.ctrl.res.ListDefaults[field]
	return def, ok
}

func (a draftAdapter[T]) Submit(ctx context.Context, id string, mirror store.Document) (string, error) {
	draft, err := Decode[T](mirror)
	if err != nil {
		return "", err
	}
	if a.ctrl.res.Singleton {
		return a.ctrl.res.SingletonID, a.ctrl.UpsertSingleton(ctx, draft)
	}
	if id == "" {
		return a.ctrl.Create(ctx, draft)
	}
	return id, a.ctrl.Update(ctx, id, draft)
}

// copyValue deep-copies any JSON-representable value and canonicalizes it
// to plain JSON types (a struct default becomes a map, for example).
func copyValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to copy value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to copy value: %w", err)
	}
	return out, nil
}

func copyDocument(doc store.Document) (store.Document, error) {
	v, err := copyValue(map[string]any(doc))
	if err != nil {
		return nil, err
	}
	out, ok := v.(map[string]any)
	if !ok {
		return store.Document{}, nil
	}
	return store.Document(out), nil
}
