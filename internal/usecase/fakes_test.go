package usecase

import (
	"context"
	"errors"
	"sync"

	domain "github.com/misja/webshop-api/internal/entity"
)

// In-memory fakes for the ports. They are deliberately strict: not-found
// surfaces domain.ErrNotFound exactly like the SQL repos do.

type fakeProducts struct {
	mu       sync.Mutex
	byID     map[int64]*ProductRecord
	nextID   int64
	restored map[int64]int
}

func newFakeProducts(recs ...*ProductRecord) *fakeProducts {
	f := &fakeProducts{byID: map[int64]*ProductRecord{}, restored: map[int64]int{}, nextID: 1}
	for _, r := range recs {
		cp := *r
		f.byID[r.ID] = &cp
		if r.ID >= f.nextID {
			f.nextID = r.ID + 1
		}
	}
	return f
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*ProductRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeProducts) ListByCategory(_ context.Context, categoryID int64) ([]ProductRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ProductRecord
	for _, r := range f.byID {
		if r.CategoryID == categoryID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListCategories(context.Context) ([]CategoryRecord, error) {
	return nil, nil
}

func (f *fakeProducts) Insert(_ context.Context, p *ProductRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.byID[p.ID] = &cp
	return p.ID, nil
}

func (f *fakeProducts) Update(_ context.Context, p *ProductRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakeProducts) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeProducts) DecrementStockIf(_ context.Context, id int64, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if r.Stock < qty {
		return false, nil
	}
	r.Stock -= qty
	return true, nil
}

func (f *fakeProducts) RestoreStock(_ context.Context, id int64, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Stock += qty
	f.restored[id] += qty
	return nil
}

func (f *fakeProducts) stock(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].Stock
}

type fakeCustomers struct {
	byID map[string]*CustomerRecord
}

func newFakeCustomers(recs ...*CustomerRecord) *fakeCustomers {
	f := &fakeCustomers{byID: map[string]*CustomerRecord{}}
	for _, r := range recs {
		cp := *r
		f.byID[r.ID] = &cp
	}
	return f
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*CustomerRecord, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeCustomers) UpdateDiscount(_ context.Context, id string, rate float64) error {
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.DiscountRate = rate
	return nil
}

func (f *fakeCustomers) UpdateCredit(_ context.Context, id string, cents int64) error {
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.CreditCents = cents
	return nil
}

type fakeOrders struct {
	mu      sync.Mutex
	byID    map[string]*OrderRecord
	created []string
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: map[string]*OrderRecord{}}
}

func (f *fakeOrders) Create(_ context.Context, o *OrderRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *o
	f.byID[o.ID] = &cp
	f.created = append(f.created, o.ID)
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeOrders) ListByCustomer(_ context.Context, customerID string) ([]OrderRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []OrderRecord
	for _, id := range f.created {
		if f.byID[id].CustomerID == customerID {
			out = append(out, *f.byID[id])
		}
	}
	return out, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, toStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Status = toStatus
	return nil
}

func (f *fakeOrders) UpdateStatusIf(_ context.Context, id, fromStatus, toStatus string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || r.Status != fromStatus {
		return false, nil
	}
	r.Status = toStatus
	return true, nil
}

type fakeOutbox struct {
	entries []string
}

func (f *fakeOutbox) Insert(_ context.Context, channel string, _ []byte) error {
	f.entries = append(f.entries, channel)
	return nil
}

type fakeCarts struct {
	lines map[string][]CartLineRecord
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{lines: map[string][]CartLineRecord{}}
}

func (f *fakeCarts) Get(_ context.Context, customerID string) ([]CartLineRecord, error) {
	return append([]CartLineRecord(nil), f.lines[customerID]...), nil
}

func (f *fakeCarts) Append(_ context.Context, customerID string, line CartLineRecord) error {
	f.lines[customerID] = append(f.lines[customerID], line)
	return nil
}

func (f *fakeCarts) RemoveFirst(_ context.Context, customerID string, productID int64) (bool, error) {
	for i, l := range f.lines[customerID] {
		if l.ProductID == productID {
			f.lines[customerID] = append(f.lines[customerID][:i], f.lines[customerID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCarts) Clear(_ context.Context, customerID string) error {
	delete(f.lines, customerID)
	return nil
}

type fakeIdem struct {
	locked     map[string]bool
	remembered map[string]string
}

func newFakeIdem() *fakeIdem {
	return &fakeIdem{locked: map[string]bool{}, remembered: map[string]string{}}
}

func (f *fakeIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if f.locked[k] {
		return false, nil
	}
	f.locked[k] = true
	return true, nil
}

func (f *fakeIdem) Unlock(_ context.Context, scope, key string) error {
	delete(f.locked, scope+":"+key)
	return nil
}

func (f *fakeIdem) Remember(_ context.Context, scope, key, value string) error {
	f.remembered[scope+":"+key] = value
	return nil
}

func (f *fakeIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := f.remembered[scope+":"+key]
	return v, ok, nil
}

type fakePublisher struct {
	msgs []OrderConfirmedMsg
	fail bool
}

func (f *fakePublisher) PublishConfirmed(_ context.Context, msg OrderConfirmedMsg) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

type fakeCache struct {
	statuses map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{statuses: map[string]string{}} }

func (f *fakeCache) SetStatus(_ context.Context, orderID, status string) error {
	f.statuses[orderID] = status
	return nil
}

func (f *fakeCache) GetStatus(_ context.Context, orderID string) (string, bool, error) {
	s, ok := f.statuses[orderID]
	return s, ok, nil
}
