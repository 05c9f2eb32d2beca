package content

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/store"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

// Entry pairs a typed record with its store identifier for list views.
type Entry[T any] struct {
	ID   string `json:"id"`
	Item T      `json:"item"`
}

// Controller is the persistence side of the form engine, one instance per
// content type. Every submit normalizes the draft, validates it, stamps
// updatedAt (and createdAt on add) and issues exactly one store call; a
// failure leaves nothing half-written and the caller's draft untouched.
type Controller[T any] struct {
	res     Resource[T]
	store   store.Store
	logger  *zap.Logger
	metrics *metrics.Collector
	now     func() time.Time
}

func NewController[T any](res Resource[T], st store.Store, logger *zap.Logger, mc *metrics.Collector) *Controller[T] {
	return &Controller[T]{
		res:     res,
		store:   st,
		logger:  logger.With(zap.String("collection", res.Collection)),
		metrics: mc,
		now:     time.Now,
	}
}

func (c *Controller[T]) Collection() string { return c.res.Collection }

// NewDraft returns the default-shaped draft for this content type.
func (c *Controller[T]) NewDraft() T { return c.res.NewDraft() }

// List fetches the whole collection in the type's display order. Documents
// that fail to decode are logged and skipped so one malformed record never
// takes a section down.
func (c *Controller[T]) List(ctx context.Context) ([]Entry[T], error) {
	defer c.observe("list")()

	records, err := c.store.List(ctx, c.res.Collection, c.res.ListOptions)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry[T], 0, len(records))
	for _, rec := range records {
		item, err := Decode[T](rec.Data)
		if err != nil {
			c.logger.Warn("Skipping undecodable document",
				zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		entries = append(entries, Entry[T]{ID: rec.ID, Item: item})
	}
	return entries, nil
}

func (c *Controller[T]) Get(ctx context.Context, id string) (T, error) {
	defer c.observe("get")()

	var zero T
	doc, err := c.store.Get(ctx, c.res.Collection, id)
	if err != nil {
		return zero, err
	}
	return Decode[T](doc)
}

// GetSingleton loads the fixed-key document of a singleton resource. A
// missing document yields the default draft, matching the about page's
// seed-on-missing behavior. The second return reports whether the document
// existed.
func (c *Controller[T]) GetSingleton(ctx context.Context) (T, bool, error) {
	item, err := c.Get(ctx, c.res.SingletonID)
	if errors.Is(err, store.ErrNotFound) {
		return c.res.NewDraft(), false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return item, true, nil
}

// Create persists a new draft and returns the store-assigned id.
func (c *Controller[T]) Create(ctx context.Context, draft T) (string, error) {
	defer c.observe("create")()

	doc, err := c.prepare(&draft)
	if err != nil {
		return "", err
	}
	doc["createdAt"] = c.now().UTC().Format(time.RFC3339)

	id, err := c.store.Add(ctx, c.res.Collection, doc)
	if err != nil {
		c.logger.Error("Failed to add document", zap.Error(err))
		return "", err
	}
	c.logger.Info("Document created", zap.String("id", id))
	return id, nil
}

// Update rewrites an existing document in full.
func (c *Controller[T]) Update(ctx context.Context, id string, draft T) error {
	defer c.observe("update")()

	doc, err := c.prepare(&draft)
	if err != nil {
		return err
	}
	if err := c.store.Update(ctx, c.res.Collection, id, doc); err != nil {
		c.logger.Error("Failed to update document", zap.String("id", id), zap.Error(err))
		return err
	}
	c.logger.Info("Document updated", zap.String("id", id))
	return nil
}

// UpsertSingleton writes the singleton document under its fixed key,
// creating it on first save.
func (c *Controller[T]) UpsertSingleton(ctx context.Context, draft T) error {
	defer c.observe("upsert")()

	doc, err := c.prepare(&draft)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.res.Collection, c.res.SingletonID, doc); err != nil {
		c.logger.Error("Failed to save singleton document", zap.Error(err))
		return err
	}
	c.logger.Info("Singleton document saved", zap.String("id", c.res.SingletonID))
	return nil
}

// Delete issues exactly one delete call. Callers only drop the entry from
// their list views when this returns nil.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	defer c.observe("delete")()

	if err := c.store.Delete(ctx, c.res.Collection, id); err != nil {
		c.logger.Error("Failed to delete document", zap.String("id", id), zap.Error(err))
		return err
	}
	c.logger.Info("Document deleted", zap.String("id", id))
	return nil
}

// prepare runs the submit pipeline shared by every write path: normalize,
// validate, encode, stamp updatedAt.
func (c *Controller[T]) prepare(draft *T) (store.Document, error) {
	if c.res.Normalize != nil {
		c.res.Normalize(draft)
	}
	if c.res.Validate != nil {
		if err := c.res.Validate(draft); err != nil {
			return nil, err
		}
	}
	doc, err := Encode(*draft)
	if err != nil {
		return nil, err
	}
	doc["updatedAt"] = c.now().UTC().Format(time.RFC3339)
	return doc, nil
}

func (c *Controller[T]) observe(op string) func() {
	start := c.now()
	return func() {
		c.metrics.IncrementCounter("store_ops", c.res.Collection+":"+op)
		c.metrics.ObserveLatency("store_"+op, time.Since(start))
	}
}
