package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moizhassan7/crisp-cms/internal/config"
	"github.com/moizhassan7/crisp-cms/internal/content"
	"github.com/moizhassan7/crisp-cms/internal/objectstore"
	"github.com/moizhassan7/crisp-cms/internal/services"
	"github.com/moizhassan7/crisp-cms/internal/store"
	"github.com/moizhassan7/crisp-cms/pkg/metrics"
)

// failingStore wraps a Store and fails one named operation for one
// collection, for exercising error paths end to end.
type failingStore struct {
	store.Store
	op         string
	collection string
}

func (f *failingStore) fail(op, collection string) error {
	if op == f.op && collection == f.collection {
		return fmt.Errorf("simulated %s failure", op)
	}
	return nil
}

func (f *failingStore) List(ctx context.Context, collection string, opts store.ListOptions) ([]store.Record, error) {
	if err := f.fail("list", collection); err != nil {
		return nil, err
	}
	return f.Store.List(ctx, collection, opts)
}

func (f *failingStore) Delete(ctx context.Context, collection, id string) error {
	if err := f.fail("delete", collection); err != nil {
		return err
	}
	return f.Store.Delete(ctx, collection, id)
}

func newTestRouter(t *testing.T, st store.Store) (*Router, *services.AuthService) {
	t.Helper()

	cfg := config.Default()
	cfg.ObjectStore.Type = "memory"
	logger := zap.NewNop()
	mc := metrics.NewCollector()
	auth := services.NewAuthService(st, time.Hour, logger)
	uploads := services.NewUploadService(objectstore.NewMemoryStore(), logger, mc)

	router := NewRouter(Deps{
		Config:  cfg,
		Store:   st,
		Auth:    auth,
		Uploads: uploads,
		Logger:  logger,
		Metrics: mc,
	})
	router.SetupRoutes()
	return router, auth
}

func doJSON(router *Router, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// login creates an admin user and returns its session cookie.
func login(t *testing.T, router *Router, auth *services.AuthService) *http.Cookie {
	t.Helper()
	require.NoError(t, auth.CreateUser(context.Background(), "admin", "s3cret"))

	w := doJSON(router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "s3cret"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == "crisp_session" {
			return c
		}
	}
	t.Fatal("login response did not set a session cookie")
	return nil
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, store.NewMemoryStore())

	w := doJSON(router, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "up", decodeBody(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, store.NewMemoryStore())

	doJSON(router, http.MethodGet, "/health", nil, nil)
	w := doJSON(router, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Contains(t, body, "counters")
	require.Contains(t, body, "latencies")
}

func TestNoRoute(t *testing.T) {
	router, _ := newTestRouter(t, store.NewMemoryStore())

	w := doJSON(router, http.MethodGet, "/api/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRequiresSession(t *testing.T) {
	router, _ := newTestRouter(t, store.NewMemoryStore())

	for _, path := range []string{"/api/admin/services", "/api/admin/about", "/api/admin/drafts/x"} {
		w := doJSON(router, http.MethodGet, path, nil, nil)
		require.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := doJSON(router, http.MethodGet, "/api/admin/services", nil,
		&http.Cookie{Name: "crisp_session", Value: "forged"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	require.NoError(t, auth.CreateUser(context.Background(), "admin", "s3cret"))

	w := doJSON(router, http.MethodPost, "/api/auth/login",
		map[string]string{"username": "admin", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionEndpoint(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())

	w := doJSON(router, http.MethodGet, "/api/auth/session", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeBody(t, w)["authenticated"])

	cookie := login(t, router, auth)
	w = doJSON(router, http.MethodGet, "/api/auth/session", nil, cookie)
	body := decodeBody(t, w)
	require.Equal(t, true, body["authenticated"])
	require.Equal(t, "admin", body["username"])

	w = doJSON(router, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/auth/session", nil, cookie)
	require.Equal(t, false, decodeBody(t, w)["authenticated"])
}

func TestServiceCRUDOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/services", map[string]any{
		"title":       "Managed IT",
		"description": "Round-the-clock support",
		"features":    []string{"monitoring", "", " helpdesk "},
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)
	require.NotEmpty(t, id)

	w = doJSON(router, http.MethodGet, "/api/admin/services/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)["item"].(map[string]any)
	require.Equal(t, "Managed IT", item["title"])
	require.Equal(t, "Server", item["iconName"])
	require.Equal(t, []any{"monitoring", "helpdesk"}, item["features"])

	w = doJSON(router, http.MethodPut, "/api/admin/services/"+id, map[string]any{
		"title":       "Cloud",
		"description": "Migrations",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/services", nil, cookie)
	items := decodeBody(t, w)["items"].([]any)
	require.Len(t, items, 1)

	w = doJSON(router, http.MethodDelete, "/api/admin/services/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(router, http.MethodGet, "/api/admin/services/"+id, nil, cookie)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/services",
		map[string]any{"title": "  "}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeBody(t, w)["error"], "required")

	w = doJSON(router, http.MethodGet, "/api/admin/services", nil, cookie)
	require.Empty(t, decodeBody(t, w)["items"])
}

func TestGalleryRequiresImageOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/gallery", map[string]any{
		"title":   "Office",
		"altText": "Our office",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, decodeBody(t, w)["error"], "upload an image")
}

func TestDeleteFailureKeepsEntity(t *testing.T) {
	st := store.NewMemoryStore()
	failing := &failingStore{Store: st, op: "delete", collection: content.CollectionServices}
	router, auth := newTestRouter(t, failing)
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/services", map[string]any{
		"title": "Managed IT", "description": "support",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["id"].(string)

	w = doJSON(router, http.MethodDelete, "/api/admin/services/"+id, nil, cookie)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The entity is still there after the failed delete.
	w = doJSON(router, http.MethodGet, "/api/admin/services/"+id, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAboutSingletonOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodGet, "/api/admin/about", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decodeBody(t, w)["exists"])

	w = doJSON(router, http.MethodPut, "/api/admin/about", map[string]any{
		"mainTitle": "About Us",
		"values":    []map[string]any{{"iconName": "Target", "title": "", "description": ""}},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/admin/about", nil, cookie)
	body := decodeBody(t, w)
	require.Equal(t, true, body["exists"])
	item := body["item"].(map[string]any)
	require.Equal(t, "About Us", item["mainTitle"])
	values := item["values"].([]any)
	require.Len(t, values, 1, "records are persisted exactly as edited")
	require.Equal(t, "Target", values[0].(map[string]any)["iconName"])
}

func TestDraftFlowOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/drafts",
		map[string]string{"collection": content.CollectionServices}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)
	sessID := decodeBody(t, w)["id"].(string)

	ops := []map[string]any{
		{"kind": "set", "field": "title", "value": "Managed IT"},
		{"kind": "set", "field": "description", "value": "Support"},
		{"kind": "listSet", "field": "features", "index": 0, "value": "monitoring"},
	}
	for _, op := range ops {
		w = doJSON(router, http.MethodPost, "/api/admin/drafts/"+sessID+"/ops", op, cookie)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = doJSON(router, http.MethodPost, "/api/admin/drafts/"+sessID+"/submit", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	docID := decodeBody(t, w)["id"].(string)

	w = doJSON(router, http.MethodGet, "/api/admin/services/"+docID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)["item"].(map[string]any)
	require.Equal(t, "Managed IT", item["title"])

	// The session is gone after a successful submit.
	w = doJSON(router, http.MethodPost, "/api/admin/drafts/"+sessID+"/submit", nil, cookie)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadOverHTTP(t *testing.T) {
	router, auth := newTestRouter(t, store.NewMemoryStore())
	cookie := login(t, router, auth)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="office.png"`)
	header.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads/gallery", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.Engine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	url := decodeBody(t, w)["url"].(string)
	require.True(t, strings.HasPrefix(url, "https://objects.test/gallery/"))
	require.True(t, strings.HasSuffix(url, "_office.png"))
}

func TestPublicEndpoints(t *testing.T) {
	st := store.NewMemoryStore()
	router, auth := newTestRouter(t, st)
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/services", map[string]any{
		"title": "Managed IT", "description": "support", "iconName": "NotARealIcon",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/pricing", map[string]any{
		"name": "Business", "description": "for teams",
		"monthlyPrice": 1000, "annualPrice": 9600,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/site/services", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["items"].([]any)
	require.Len(t, items, 1)
	svc := items[0].(map[string]any)["item"].(map[string]any)
	require.Equal(t, "HelpCircle", svc["iconName"], "unknown icons resolve to the fallback")

	w = doJSON(router, http.MethodGet, "/api/site/pricing", nil, nil)
	items = decodeBody(t, w)["items"].([]any)
	plan := items[0].(map[string]any)
	require.Equal(t, float64(800), plan["annualPerMonth"])
	require.Equal(t, float64(20), plan["savings"])
}

func TestHomeSectionsDegradeIndependently(t *testing.T) {
	st := store.NewMemoryStore()
	failing := &failingStore{Store: st, op: "list", collection: content.CollectionTeam}
	router, auth := newTestRouter(t, failing)
	cookie := login(t, router, auth)

	w := doJSON(router, http.MethodPost, "/api/admin/services", map[string]any{
		"title": "Managed IT", "description": "support",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/site/home", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	sections := decodeBody(t, w)["sections"].([]any)
	byName := map[string]map[string]any{}
	var order []string
	for _, raw := range sections {
		s := raw.(map[string]any)
		name := s["name"].(string)
		byName[name] = s
		order = append(order, name)
	}

	require.Equal(t, []string{"hero", "services", "gallery", "projects", "about", "team", "pricing", "contact"}, order)
	require.Contains(t, byName["team"], "error")
	require.NotContains(t, byName["services"], "error")
	require.Len(t, byName["services"]["data"].([]any), 1)
}
