package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jekabolt/store-console/internal/cache"
	"github.com/jekabolt/store-console/internal/catalog"
	"github.com/jekabolt/store-console/internal/csvimport"
	"github.com/jekabolt/store-console/internal/dashboard"
	"github.com/jekabolt/store-console/internal/entity"
	"github.com/jekabolt/store-console/internal/filter"
	"github.com/jekabolt/store-console/internal/format"
	"github.com/jekabolt/store-console/internal/invalidate"
	"github.com/jekabolt/store-console/internal/notify"
	"github.com/jekabolt/store-console/internal/storeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend is an in-memory store API.
type backend struct {
	mu       sync.Mutex
	products []map[string]any
	deleted  []string
	uploads  int
	lists    int
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/api/analysis/":
		if r.URL.Query().Get("category") == "9" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = io.WriteString(w, `{"metrics":{"total_revenue":"100.00","total_transactions":4,"avg_quantity":"1.5"},"products_performance":[{"name":"Mouse","revenue":"60.00","quantity":3},{"name":"Pad","revenue":"40.00"}]}`)
	case r.URL.Path == "/api/categories/":
		_, _ = io.WriteString(w, `[{"id":1,"name":"Peripherals"}]`)
	case r.URL.Path == "/api/products/" && r.Method == http.MethodGet:
		b.lists++
		_ = json.NewEncoder(w).Encode(b.products)
	case r.URL.Path == "/api/products/" && r.Method == http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = len(b.products) + 1
		body["category_name"] = "Peripherals"
		b.products = append(b.products, body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(body)
	case strings.HasPrefix(r.URL.Path, "/api/products/") && r.Method == http.MethodDelete:
		b.deleted = append(b.deleted, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/api/sales/":
		b.lists++
		_, _ = io.WriteString(w, `[{"id":1,"product":1,"product_name":"Mouse","quantity":2,"total_price":"40.00","date":"2024-03-05T10:00:00Z"}]`)
	case r.URL.Path == "/api/products/upload-csv/":
		b.uploads++
		_, _ = io.WriteString(w, `{"message":"imported 2 rows"}`)
	default:
		http.NotFound(w, r)
	}
}

func newTestServer(t *testing.T) (*Server, *backend) {
	t.Helper()
	be := &backend{products: []map[string]any{}}
	srv := httptest.NewServer(be)
	t.Cleanup(srv.Close)

	api := storeapi.New(&storeapi.Config{BaseURL: srv.URL + "/api", Timeout: 2 * time.Second})
	center := notify.New(0)
	bus := invalidate.New(2)
	categories := cache.NewCategoryCache(api, cache.Config{TTL: time.Minute, Retries: 1, RetryInterval: time.Millisecond})
	orch := dashboard.New(api, categories, center)
	products := catalog.NewProducts(api, bus, center)
	sales := catalog.NewSales(api, bus, center)
	bus.Subscribe("dashboard", orch, entity.TopicProducts, entity.TopicSales, entity.TopicImport)
	f, err := format.New(&format.Config{Locale: "en-US", Currency: "USD"})
	require.NoError(t, err)

	s := New(&Config{}, Services{
		Dashboard:     orch,
		Debouncer:     filter.NewDebouncer(orch.Filter(), 10*time.Millisecond),
		Products:      products,
		Sales:         sales,
		Importer:      csvimport.New(api, bus, center),
		Notifications: center,
		Format:        f,
		ExportPrefix:  "store",
	})
	s.now = func() time.Time { return time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC) }
	return s, be
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDashboardReloadAndFilter(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/dashboard/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, 4, resp.Metrics.TotalTransactions)
	assert.Equal(t, "25", resp.Metrics.AvgTicket.String())
	require.Len(t, resp.ProductsPerformance, 2)
	assert.Nil(t, resp.ProductsPerformance[1].Quantity)

	rec = do(t, h, http.MethodPost, "/api/dashboard/filter/", strings.NewReader(`{"start_date":"2024-01-01","category":1}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2024-01-01", resp.Filter.StartDate)
	assert.Equal(t, 1, resp.Filter.CategoryID)

	rec = do(t, h, http.MethodDelete, "/api/dashboard/filter/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, FilterResponse{}, resp.Filter)
}

func TestDashboardFailureKeepsData(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/dashboard/reload", nil).Code)

	rec := do(t, h, http.MethodPost, "/api/dashboard/filter/", strings.NewReader(`{"category":9}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, "server", resp.ErrorKind)
	assert.Equal(t, 4, resp.Metrics.TotalTransactions)
}

func TestFilterRejectsBadDate(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodPost, "/api/dashboard/filter/", strings.NewReader(`{"start_date":"05/03/2024"}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportPerformance(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/dashboard/export.csv", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/api/dashboard/reload", nil).Code)
	rec = do(t, h, http.MethodGet, "/api/dashboard/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="store-products-performance-20240305-103000.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "name,revenue,quantity\n"))
	assert.Contains(t, rec.Body.String(), "Pad,40,\n")
}

func TestExportUsesLoadedListsOnly(t *testing.T) {
	s, be := newTestServer(t)
	be.products = append(be.products, map[string]any{"id": 1, "name": "Mouse", "price": "10.00", "category": 1, "category_name": "P"})
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/products/export.csv", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/sales/export.csv", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 0, be.lists)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/products/", nil).Code)
	rec = do(t, h, http.MethodGet, "/api/products/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "id,name,price,category\n1,Mouse,10.00,P\n", rec.Body.String())
	assert.Equal(t, 1, be.lists)
}

func TestProductLifecycle(t *testing.T) {
	s, be := newTestServer(t)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/products/", strings.NewReader(`{"name":"","price":"abc","category":1}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/products/", strings.NewReader(`{"name":"Mouse","price":19.9,"category":1}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "19.9", p.Price.String())

	rec = do(t, h, http.MethodGet, "/api/products/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []ProductResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = do(t, h, http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Empty(t, be.deleted)

	rec = do(t, h, http.MethodDelete, "/api/products/1?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"/api/products/1/"}, be.deleted)

	rec = do(t, h, http.MethodDelete, "/api/products/abc?confirm=true", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSales(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s.Handler(), http.MethodGet, "/api/sales/", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var list []SaleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Mouse", list[0].ProductName)
	assert.Equal(t, "03/05/2024", list[0].DateDisplay)
}

func TestImportCSV(t *testing.T) {
	s, be := newTestServer(t)
	h := s.Handler()

	upload := func(name, content string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		fw, err := mw.CreateFormFile("file", name)
		require.NoError(t, err)
		_, _ = io.WriteString(fw, content)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/import/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := upload("products.txt", "name,price\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, be.uploads)

	rec = upload("products.csv", "name,price,category\nMouse,19.90,1\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp ImportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "succeeded", resp.Status)
	assert.Equal(t, "imported 2 rows", resp.Message)
	assert.Equal(t, uint64(2), resp.InputGeneration)
	assert.Equal(t, 1, be.uploads)
}

func TestNotificationsDrain(t *testing.T) {
	s, _ := newTestServer(t)
	h := s.Handler()

	do(t, h, http.MethodPost, "/api/products/", strings.NewReader(`{"name":"","price":"1","category":1}`))

	rec := do(t, h, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []NotificationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	assert.Equal(t, "error", list[0].Level)

	rec = do(t, h, http.MethodGet, "/api/notifications", nil)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestIsOriginAllowed(t *testing.T) {
	assert.True(t, isOriginAllowed("http://localhost:3000", nil))
	assert.True(t, isOriginAllowed("https://admin.example.com", []string{"https://admin.example.com"}))
	assert.False(t, isOriginAllowed("https://evil.example.com", []string{"https://admin.example.com"}))
}
