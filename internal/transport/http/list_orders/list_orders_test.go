package listorders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucianotavernard/order-svc/internal/service/models/order"
	"github.com/lucianotavernard/order-svc/internal/service/models/orderitem"
)

type stubService struct {
	orders []order.Order
	err    error
	got    orderitem.QueryOrderItemsModel
}

func (s *stubService) GetOrders(
	ctx context.Context,
	model orderitem.QueryOrderItemsModel,
) ([]order.Order, error) {
	s.got = model
	if s.err != nil {
		return nil, s.err
	}

	return s.orders, nil
}

func doRequest(svc service, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ListOrders(rec, req, svc)

	return rec
}

func TestListOrders(t *testing.T) {
	svc := &stubService{orders: []order.Order{{ID: "o1"}, {ID: "o2"}}}

	rec := doRequest(svc, "/api/orders")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"o1"`)
	assert.Contains(t, rec.Body.String(), `"o2"`)
}

func TestListOrders_QueryDecoding(t *testing.T) {
	svc := &stubService{}

	rec := doRequest(svc, "/api/orders?ids=o1&ids=o2&customerIds=c1&page=2&pageSize=10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"o1", "o2"}, svc.got.Ids)
	assert.Equal(t, []string{"c1"}, svc.got.CustomerIds)
	assert.Equal(t, 2, svc.got.Page)
	assert.Equal(t, 10, svc.got.PageSize)
}

func TestListOrders_ServiceFailure(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}

	rec := doRequest(svc, "/api/orders")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
