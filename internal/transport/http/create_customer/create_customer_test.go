package createcustomer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lucianotavernard/order-svc/internal/service/models/customer"
	"github.com/lucianotavernard/order-svc/internal/service/services/customersvc"
)

type stubService struct {
	created *customer.Customer
	err     error
}

func (s *stubService) CreateCustomer(
	ctx context.Context,
	name, email string,
) (*customer.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}

	return s.created, nil
}

func doRequest(svc service, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/customers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateCustomer(rec, req, svc)

	return rec
}

func TestCreateCustomer(t *testing.T) {
	svc := &stubService{created: &customer.Customer{ID: "c1", Name: "Luciano", Email: "luciano@example.com"}}

	rec := doRequest(svc, `{"name": "Luciano", "email": "luciano@example.com"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"c1"`)
}

func TestCreateCustomer_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{`},
		{name: "missing name", body: `{"email": "luciano@example.com"}`},
		{name: "missing email", body: `{"name": "Luciano"}`},
		{name: "invalid email", body: `{"name": "Luciano", "email": "not-an-email"}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(&stubService{}, tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateCustomer_EmailTaken(t *testing.T) {
	svc := &stubService{err: customersvc.ErrEmailTaken}

	rec := doRequest(svc, `{"name": "Luciano", "email": "luciano@example.com"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
