package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"storefront/pkg/apperror"
	"storefront/pkg/cart"
	"storefront/pkg/catalog"
	"storefront/pkg/checkout"
	"storefront/pkg/order"
	"storefront/pkg/order/memory"
	"storefront/pkg/orderlog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubSink struct {
	recordErr error
	lines     []string
}

func (s *stubSink) Open(context.Context) error { return nil }

func (s *stubSink) Record(_ context.Context, id int, method string) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.lines = append(s.lines, orderlog.FormatLine(id, method))
	return nil
}

func (s *stubSink) Close() error { return nil }

func setupRouter(t *testing.T, ledgerCap int, sink orderlog.Sink) http.Handler {
	t.Helper()
	cat := catalog.New(50)
	require.NoError(t, catalog.Seed(cat, catalog.DefaultItems()))
	session := checkout.New(cat, cart.New(100), memory.New(ledgerCap), sink, zap.NewNop())
	return NewRouter(NewHandler(session, zap.NewNop()))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestListProducts(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	w := do(t, router, http.MethodGet, "/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var items []catalog.Item
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 11)
	assert.Equal(t, "LAP", items[0].ID)
	assert.Equal(t, "50000", items[0].Price.String())
}

func TestGetProduct(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedKind   string
	}{
		{name: "known code", path: "/products/MOU", expectedStatus: http.StatusOK},
		{name: "unknown code", path: "/products/ZZZ", expectedStatus: http.StatusNotFound, expectedKind: "NOT_FOUND"},
		{name: "lowercase is not normalised", path: "/products/mou", expectedStatus: http.StatusNotFound, expectedKind: "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, decodeError(t, w).Error)
			}
		})
	}
}

func TestAddToCart(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedKind   string
	}{
		{name: "valid", body: `{"code":"USB","quantity":2}`, expectedStatus: http.StatusOK},
		{name: "merge", body: `{"code":"USB","quantity":3}`, expectedStatus: http.StatusOK},
		{name: "zero quantity", body: `{"code":"USB","quantity":0}`, expectedStatus: http.StatusBadRequest, expectedKind: "INVALID_ARGUMENT"},
		{name: "unknown code", body: `{"code":"ZZZ","quantity":1}`, expectedStatus: http.StatusNotFound, expectedKind: "NOT_FOUND"},
		{name: "malformed body", body: `{"code":`, expectedStatus: http.StatusBadRequest, expectedKind: "INVALID_ARGUMENT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/cart/items", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedKind != "" {
				assert.Equal(t, tt.expectedKind, decodeError(t, w).Error)
			}
		})
	}

	w := do(t, router, http.MethodGet, "/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var view checkout.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 5, view.Lines[0].Quantity)
	assert.Equal(t, "2500.00", view.Total.StringFixed(2))
}

func TestCheckoutFlow(t *testing.T) {
	sink := &stubSink{}
	router := setupRouter(t, 100, sink)

	w := do(t, router, http.MethodPost, "/checkout", `{"payment":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMPTY_CART", decodeError(t, w).Error)

	do(t, router, http.MethodPost, "/cart/items", `{"code":"LAP","quantity":1}`)
	do(t, router, http.MethodPost, "/cart/items", `{"code":"MOU","quantity":2}`)

	w = do(t, router, http.MethodPost, "/checkout", `{"payment":4}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SELECTION", decodeError(t, w).Error)

	w = do(t, router, http.MethodPost, "/checkout", `{"payment":2}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var o order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &o))
	assert.Equal(t, 1, o.ID)
	assert.Equal(t, "Credit/Debit Card", o.PaymentMethod)
	assert.Equal(t, "51600.00", o.Total.StringFixed(2))
	assert.Equal(t, []string{"[ORDER #1] Paid with Credit/Debit Card"}, sink.lines)

	w = do(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []order.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	w = do(t, router, http.MethodGet, "/orders/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, router, http.MethodGet, "/orders/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(t, router, http.MethodGet, "/orders/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/cart", "")
	var view checkout.CartView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Empty(t, view.Lines)
}

func TestCheckoutLedgerFull(t *testing.T) {
	router := setupRouter(t, 1, &stubSink{})

	do(t, router, http.MethodPost, "/cart/items", `{"code":"KEY","quantity":1}`)
	w := do(t, router, http.MethodPost, "/checkout", `{"payment":1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	do(t, router, http.MethodPost, "/cart/items", `{"code":"KEY","quantity":1}`)
	w = do(t, router, http.MethodPost, "/checkout", `{"payment":1}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LEDGER_FULL", decodeError(t, w).Error)
}

func TestCheckoutSinkWriteFailureReturnsOrder(t *testing.T) {
	sink := &stubSink{recordErr: apperror.Wrap(apperror.SinkUnavailable, errors.New("disk full"), "write order log")}
	router := setupRouter(t, 100, sink)

	do(t, router, http.MethodPost, "/cart/items", `{"code":"SPK","quantity":1}`)
	w := do(t, router, http.MethodPost, "/checkout", `{"payment":3}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "SINK_UNAVAILABLE", resp.Error)
	require.NotNil(t, resp.Order)
	assert.Equal(t, 1, resp.Order.ID)
	assert.Equal(t, "GCash", resp.Order.PaymentMethod)
}

func TestListPaymentMethods(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	w := do(t, router, http.MethodGet, "/payment-methods", "")
	require.Equal(t, http.StatusOK, w.Code)
	var methods []paymentMethod
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	assert.Equal(t, []paymentMethod{
		{Index: 1, Name: "Cash"},
		{Index: 2, Name: "Credit/Debit Card"},
		{Index: 3, Name: "GCash"},
	}, methods)
}

func TestRequestID(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	w := do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	router := setupRouter(t, 100, &stubSink{})

	do(t, router, http.MethodGet, "/products", "")
	w := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")
}

func TestStatusFor(t *testing.T) {
	tests := map[apperror.Kind]int{
		apperror.NotFound:         http.StatusNotFound,
		apperror.InvalidArgument:  http.StatusBadRequest,
		apperror.InvalidSelection: http.StatusBadRequest,
		apperror.CapacityExceeded: http.StatusConflict,
		apperror.Overflow:         http.StatusConflict,
		apperror.EmptyCart:        http.StatusConflict,
		apperror.LedgerFull:       http.StatusConflict,
		apperror.InvalidState:     http.StatusConflict,
		apperror.SinkUnavailable:  http.StatusServiceUnavailable,
		apperror.Unknown:          http.StatusInternalServerError,
	}
	for kind, want := range tests {
		assert.Equal(t, want, statusFor(kind), kind.String())
	}
}
