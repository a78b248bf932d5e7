package kafka

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/usecase"
)

type memOrders struct {
	byID map[string]*usecase.OrderRecord
}

func (m *memOrders) Create(_ context.Context, o *usecase.OrderRecord) error {
	m.byID[o.ID] = o
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*usecase.OrderRecord, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByCustomer(_ context.Context, customerID string) ([]usecase.OrderRecord, error) {
	var out []usecase.OrderRecord
	for _, o := range m.byID {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id, toStatus string) error {
	o, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = toStatus
	return nil
}

func (m *memOrders) UpdateStatusIf(_ context.Context, id, fromStatus, toStatus string) (bool, error) {
	o, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	if o.Status != fromStatus {
		return false, nil
	}
	o.Status = toStatus
	return true, nil
}

type memProducts struct {
	usecase.ProductRepo
	restored map[int64]int
}

func (m *memProducts) RestoreStock(_ context.Context, id int64, qty int) error {
	m.restored[id] += qty
	return nil
}

type memOutbox struct{ entries int }

func (m *memOutbox) Insert(context.Context, string, []byte) error {
	m.entries++
	return nil
}

type memCache struct{ statuses map[string]string }

func (m *memCache) SetStatus(_ context.Context, id, status string) error {
	m.statuses[id] = status
	return nil
}

func (m *memCache) GetStatus(_ context.Context, id string) (string, bool, error) {
	s, ok := m.statuses[id]
	return s, ok, nil
}

func newHandlerFixture(status string) (*PaymentStatusHandler, *memOrders, *memProducts, *memCache) {
	orders := &memOrders{byID: map[string]*usecase.OrderRecord{
		"ord-1": {
			ID:         "ord-1",
			CustomerID: "cust-1",
			Status:     status,
			Lines: []usecase.OrderLineRecord{
				{ProductID: 7, Quantity: 2},
			},
		},
	}}
	products := &memProducts{restored: map[int64]int{}}
	cache := &memCache{statuses: map[string]string{}}
	cancel := usecase.NewCancelOrder(orders, products, &memOutbox{}, cache)
	h := NewPaymentStatusHandler(orders, products, cache, cancel, slog.Default())
	return h, orders, products, cache
}

func TestRefundCancelsAndRestocks(t *testing.T) {
	h, orders, products, cache := newHandlerFixture(string(domain.StatusConfirmed))

	err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		OrderID: "ord-1", Status: "REFUNDED",
	})
	require.NoError(t, err)

	rec, err := orders.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), rec.Status)
	assert.Equal(t, 2, products.restored[7])
	assert.Equal(t, string(domain.StatusCancelled), cache.statuses["ord-1"])
}

func TestChargebackOnCancelledOrderIsIgnored(t *testing.T) {
	h, _, products, _ := newHandlerFixture(string(domain.StatusCancelled))

	err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		OrderID: "ord-1", Status: "CHARGEBACK",
	})
	require.NoError(t, err)
	assert.Empty(t, products.restored)
}

func TestFailedMarksOrderFailedWithoutRestock(t *testing.T) {
	h, orders, products, cache := newHandlerFixture(string(domain.StatusConfirmed))

	err := h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		OrderID: "ord-1", Status: "FAILED", Reason: "card declined",
	})
	require.NoError(t, err)

	rec, err := orders.GetByID(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusFailed), rec.Status)
	assert.Empty(t, products.restored)
	assert.Equal(t, string(domain.StatusFailed), cache.statuses["ord-1"])
}

func TestUnknownStatusAndMissingOrderAreAcked(t *testing.T) {
	h, _, _, _ := newHandlerFixture(string(domain.StatusConfirmed))

	assert.NoError(t, h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		OrderID: "ord-1", Status: "AUTHORIZED",
	}))
	assert.NoError(t, h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		OrderID: "missing", Status: "REFUNDED",
	}))
	assert.NoError(t, h.Handle(context.Background(), usecase.PaymentStatusChangedMsg{
		Status: "REFUNDED",
	}))
}
