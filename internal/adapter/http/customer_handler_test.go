package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type memCustomers struct {
	byID map[string]*usecase.CustomerRecord
}

func (m *memCustomers) GetByID(_ context.Context, id string) (*usecase.CustomerRecord, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCustomers) UpdateDiscount(_ context.Context, id string, rate float64) error {
	m.byID[id].DiscountRate = rate
	return nil
}

func (m *memCustomers) UpdateCredit(_ context.Context, id string, cents int64) error {
	m.byID[id].CreditCents = cents
	return nil
}

type noOrders struct{ usecase.OrderRepo }

func (noOrders) ListByCustomer(context.Context, string) ([]usecase.OrderRecord, error) {
	return nil, nil
}

func newCustomerRouter(store *memCustomers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCustomerHandler(usecase.NewCustomers(store, noOrders{}))
	r := gin.New()
	r.PUT("/customers/:id/discount", h.SetDiscount)
	r.PUT("/customers/:id/credit", h.SetCredit)
	r.GET("/customers/:id", h.GetCustomer)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestSetDiscountAccepted(t *testing.T) {
	store := &memCustomers{byID: map[string]*usecase.CustomerRecord{
		"cust-1": {ID: "cust-1", DiscountRate: 0.1},
	}}
	r := newCustomerRouter(store)

	w, out := doJSON(t, r, http.MethodPut, "/customers/cust-1/discount", `{"rate":0.25}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.25, out["discountRate"])
	assert.Equal(t, 0.25, store.byID["cust-1"].DiscountRate)
}

func TestSetDiscountRejectedEchoesPriorRate(t *testing.T) {
	store := &memCustomers{byID: map[string]*usecase.CustomerRecord{
		"cust-1": {ID: "cust-1", DiscountRate: 0.1},
	}}
	r := newCustomerRouter(store)

	w, out := doJSON(t, r, http.MethodPut, "/customers/cust-1/discount", `{"rate":1.5}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "discount_out_of_range", out["error"])
	assert.Equal(t, 0.1, out["discountRate"])
	assert.Equal(t, 0.1, store.byID["cust-1"].DiscountRate)
}

func TestSetCreditNegativeClampsToZero(t *testing.T) {
	store := &memCustomers{byID: map[string]*usecase.CustomerRecord{
		"cust-1": {ID: "cust-1", CreditCents: 2000},
	}}
	r := newCustomerRouter(store)

	w, out := doJSON(t, r, http.MethodPut, "/customers/cust-1/credit", `{"cents":-500}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "negative_credit", out["error"])
	assert.Equal(t, float64(0), out["creditCents"])
	assert.Equal(t, int64(0), store.byID["cust-1"].CreditCents)
}

func TestCustomerNotFound(t *testing.T) {
	r := newCustomerRouter(&memCustomers{byID: map[string]*usecase.CustomerRecord{}})

	w, out := doJSON(t, r, http.MethodGet, "/customers/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", out["error"])
}
