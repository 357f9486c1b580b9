package placeorder

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/services/ordersvc"
)

type stubService struct {
	placed *order.Order
	err    error
	got    ordersvc.PlaceOrderModel
}

func (s *stubService) PlaceOrder(
	ctx context.Context,
	model ordersvc.PlaceOrderModel,
) (*order.Order, error) {
	s.got = model
	if s.err != nil {
		return nil, s.err
	}

	return s.placed, nil
}

func doRequest(svc service, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	PlaceOrder(rec, req, svc)

	return rec
}

func TestPlaceOrder(t *testing.T) {
	svc := &stubService{placed: &order.Order{ID: "o1", CustomerID: "c1", TotalPriceCents: 3000}}

	rec := doRequest(svc, `{
		"customerId": "c1",
		"products": [{"productId": "p1", "quantity": 3}]
	}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"o1"`)

	require.Len(t, svc.got.Items, 1)
	assert.Equal(t, "c1", svc.got.CustomerID)
	assert.Equal(t, "p1", svc.got.Items[0].ProductID)
	assert.Equal(t, 3, svc.got.Items[0].Quantity)
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "missing customer id", body: `{"products": [{"productId": "p1", "quantity": 1}]}`},
		{name: "empty products", body: `{"customerId": "c1", "products": []}`},
		{name: "zero quantity", body: `{"customerId": "c1", "products": [{"productId": "p1", "quantity": 0}]}`},
		{name: "negative quantity", body: `{"customerId": "c1", "products": [{"productId": "p1", "quantity": -1}]}`},
		{name: "missing product id", body: `{"customerId": "c1", "products": [{"quantity": 1}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{placed: &order.Order{ID: "o1"}}

			rec := doRequest(svc, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.got.CustomerID, "service must not be called")
		})
	}
}

func TestPlaceOrder_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "customer not found",
			err:        ordersvc.ErrCustomerNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "insufficient stock",
			err:        &ordersvc.InsufficientStockError{ProductIDs: []string{"p1"}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "catalog unavailable",
			err:        ordersvc.ErrCatalogUnavailable,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "persistence failure",
			err:        ordersvc.ErrPersistence,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubService{err: tc.err}

			rec := doRequest(svc, `{
				"customerId": "c1",
				"products": [{"productId": "p1", "quantity": 1}]
			}`)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
