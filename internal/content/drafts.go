package content

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/store"
)

// ErrNoSession is returned for unknown or expired draft session ids.
var ErrNoSession = errors.New("draft session not found")

// DraftResource is the untyped view of a content type the draft engine
// needs: seed a blank mirror, load an existing document into one, know the
// default record for each nested list, and push a finished mirror through
// the typed submit pipeline.
type DraftResource interface {
	Collection() string
	Seed() (store.Document, error)
	Load(ctx context.Context, id string) (store.Document, error)
	DefaultListItem(field string) (any, bool)
	Submit(ctx context.Context, id string, mirror store.Document) (string, error)
}

// Op is one mutation against a draft mirror. Kind selects the operation;
// the remaining fields apply per kind:
//
//	set        Field, Value
//	listSet    Field, Index, ItemField (empty for plain string lists), Value
//	listAdd    Field
//	listRemove Field, Index
type Op struct {
	Kind      string `json:"kind"`
	Field     string `json:"field"`
	Index     int    `json:"index"`
	ItemField string `json:"itemField,omitempty"`
	Value     any    `json:"value,omitempty"`
}

// Session is one open draft: the editable in-memory mirror of a document
// between load and submit. DocID is empty for add flows.
type Session struct {
	ID         string         `json:"id"`
	Collection string         `json:"collection"`
	DocID      string         `json:"docId,omitempty"`
	Mirror     store.Document `json:"mirror"`

	touched time.Time
}

// Drafts manages draft sessions across all content types. Sessions are held
// in memory and swept after the idle TTL; a successful submit removes its
// session, so resubmitting the same session id fails rather than writing
// twice.
type Drafts struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	resources map[string]DraftResource
	ttl       time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

func NewDrafts(resources []DraftResource, ttl time.Duration, logger *zap.Logger) *Drafts {
	d := &Drafts{
		sessions:  make(map[string]*Session),
		resources: make(map[string]DraftResource, len(resources)),
		ttl:       ttl,
		logger:    logger.With(zap.String("component", "drafts")),
		now:       time.Now,
	}
	for _, res := range resources {
		d.resources[res.Collection()] = res
	}
	go d.sweep()
	return d
}

func (d *Drafts) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		d.mu.Lock()
		cutoff := d.now().Add(-d.ttl)
		for id, sess := range d.sessions {
			if sess.touched.Before(cutoff) {
				delete(d.sessions, id)
			}
		}
		d.mu.Unlock()
	}
}

// Open starts a session for one document. An empty docID seeds the
// resource's default draft (add flow); otherwise the document is loaded and
// mirrored (edit flow). Singleton resources seed on not-found inside Load.
func (d *Drafts) Open(ctx context.Context, collection, docID string) (*Session, error) {
	res, ok := d.resources[collection]
	if !ok {
		return nil, fmt.Errorf("unknown content collection: %s", collection)
	}

	var mirror store.Document
	var err error
	if docID == "" {
		mirror, err = res.Seed()
	} else {
		mirror, err = res.Load(ctx, docID)
	}
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:         uuid.NewString(),
		Collection: collection,
		DocID:      docID,
		Mirror:     mirror,
		touched:    d.now(),
	}

	snap, err := sess.snapshot()
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.sessions[sess.ID] = sess
	d.mu.Unlock()

	d.logger.Info("Draft opened",
		zap.String("session", sess.ID),
		zap.String("collection", collection),
		zap.String("doc_id", docID))
	return snap, nil
}

// Get returns the current state of a session. The returned session is a
// detached copy: callers may read or serialize it without holding any lock,
// and mutating it never reaches the live mirror.
func (d *Drafts) Get(sessionID string) (*Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, ok := d.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	return sess.snapshot()
}

func (s *Session) snapshot() (*Session, error) {
	mirror, err := copyDocument(s.Mirror)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:         s.ID,
		Collection: s.Collection,
		DocID:      s.DocID,
		Mirror:     mirror,
		touched:    s.touched,
	}, nil
}

// Apply mutates the session mirror. Scalar sets replace one top-level
// field; list operations follow array splice semantics and never touch
// elements other than the addressed one.
func (d *Drafts) Apply(sessionID string, op Op) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	sess, ok := d.sessions[sessionID]
	if !ok {
		return ErrNoSession
	}
	sess.touched = d.now()

	switch op.Kind {
	case "set":
		sess.Mirror[op.Field] = op.Value
		return nil
	case "listSet":
		return d.listSet(sess, op)
	case "listAdd":
		return d.listAdd(sess, op)
	case "listRemove":
		return d.listRemove(sess, op)
	default:
		return fmt.Errorf("unknown draft operation: %s", op.Kind)
	}
}

func (d *Drafts) list(sess *Session, field string) ([]any, error) {
	raw, ok := sess.Mirror[field]
	if !ok || raw == nil {
		return []any{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("field %s is not a list", field)
	}
	return list, nil
}

func (d *Drafts) listSet(sess *Session, op Op) error {
	list, err := d.list(sess, op.Field)
	if err != nil {
		return err
	}
	if op.Index < 0 || op.Index >= len(list) {
		return fmt.Errorf("index %d out of range for %s", op.Index, op.Field)
	}

	if op.ItemField == "" {
		list[op.Index] = op.Value
		sess.Mirror[op.Field] = list
		return nil
	}

	item, ok := list[op.Index].(map[string]any)
	if !ok {
		return fmt.Errorf("%s[%d] is not a record", op.Field, op.Index)
	}
	item[op.ItemField] = op.Value
	return nil
}

func (d *Drafts) listAdd(sess *Session, op Op) error {
	res := d.resources[sess.Collection]
	def, ok := res.DefaultListItem(op.Field)
	if !ok {
		return fmt.Errorf("field %s has no list defaults", op.Field)
	}

	list, err := d.list(sess, op.Field)
	if err != nil {
		return err
	}

	// Records must be copied so sessions never share default instances.
	item, err := copyValue(def)
	if err != nil {
		return err
	}
	sess.Mirror[op.Field] = append(list, item)
	return nil
}

func (d *Drafts) listRemove(sess *Session, op Op) error {
	list, err := d.list(sess, op.Field)
	if err != nil {
		return err
	}
	if op.Index < 0 || op.Index >= len(list) {
		return fmt.Errorf("index %d out of range for %s", op.Index, op.Field)
	}
	sess.Mirror[op.Field] = append(list[:op.Index], list[op.Index+1:]...)
	return nil
}

// Submit pushes the mirror through the typed pipeline (decode, normalize,
// validate, persist) and drops the session on success. On failure the
// session stays open and editable for another attempt.
func (d *Drafts) Submit(ctx context.Context, sessionID string) (string, error) {
	d.mu.Lock()
	sess, ok := d.sessions[sessionID]
	if !ok {
		d.mu.Unlock()
		return "", ErrNoSession
	}
	res := d.resources[sess.Collection]
	mirror, err := copyDocument(sess.Mirror)
	d.mu.Unlock()
	if err != nil {
		return "", err
	}

	id, err := res.Submit(ctx, sess.DocID, mirror)
	if err != nil {
		return "", err
	}

	d.mu.Lock()
	delete(d.sessions, sessionID)
	d.mu.Unlock()

	d.logger.Info("Draft submitted",
		zap.String("session", sessionID),
		zap.String("collection", sess.Collection),
		zap.String("doc_id", id))
	return id, nil
}

// Discard drops a session without persisting anything.
func (d *Drafts) Discard(sessionID string) {
	d.mu.Lock()
	delete(d.sessions, sessionID)
	d.mu.Unlock()
}
