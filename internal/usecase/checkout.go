package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	domain "github.com/misja/webshop-api/internal/entity"
	"github.com/misja/webshop-api/internal/logging"
)

var (
	ErrDuplicate            = errors.New("duplicate idempotency key")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

const confirmedChannel = "orders.confirmed.v1"

type PlaceOrderInput struct {
	CustomerID     string
	IdempotencyKey string
	PaymentKind    string
}

type PlaceOrderOutput struct {
	OrderID string
	Status  string
	Receipt domain.Receipt
}

// Checkout converts a session cart into a confirmed order: stock is taken
// atomically per line, the domain order is placed, the record persisted and
// the confirmation published.
type Checkout struct {
	products  ProductRepo
	customers CustomerRepo
	orders    OrderRepo
	carts     CartStore
	idem      IdempotencyStore
	outbox    OutboxRepo
	pub       ConfirmationPublisher
	cache     OrderCache

	policy  domain.ShippingPolicy
	methods map[string]domain.PaymentMethod
	log     *slog.Logger
}

func NewCheckout(
	products ProductRepo,
	customers CustomerRepo,
	orders OrderRepo,
	carts CartStore,
	idem IdempotencyStore,
	outbox OutboxRepo,
	pub ConfirmationPublisher,
	cache OrderCache,
	policy domain.ShippingPolicy,
	methods map[string]domain.PaymentMethod,
) *Checkout {
	return &Checkout{
		products:  products,
		customers: customers,
		orders:    orders,
		carts:     carts,
		idem:      idem,
		outbox:    outbox,
		pub:       pub,
		cache:     cache,
		policy:    policy,
		methods:   methods,
		log:       logging.New("checkout"),
	}
}

func (uc *Checkout) Execute(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	method, ok := uc.methods[in.PaymentKind]
	if !ok {
		return PlaceOrderOutput{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, in.PaymentKind)
	}

	// Fast path: a replayed request returns the original order.
	if in.IdempotencyKey != "" {
		if id, found, _ := uc.idem.Recall(ctx, in.CustomerID, in.IdempotencyKey); found {
			return uc.replay(ctx, id)
		}
		locked, err := uc.idem.TryLock(ctx, in.CustomerID, in.IdempotencyKey)
		if err != nil {
			return PlaceOrderOutput{}, err
		}
		if !locked {
			return PlaceOrderOutput{}, ErrDuplicate
		}
	}

	out, err := uc.place(ctx, in, method)
	if err != nil && in.IdempotencyKey != "" {
		// Release the lock so the caller can retry after a recoverable failure.
		_ = uc.idem.Unlock(ctx, in.CustomerID, in.IdempotencyKey)
	}
	if err == nil && in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.CustomerID, in.IdempotencyKey, out.OrderID)
	}
	return out, err
}

func (uc *Checkout) place(ctx context.Context, in PlaceOrderInput, method domain.PaymentMethod) (PlaceOrderOutput, error) {
	custRec, err := uc.customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}

	lines, err := uc.carts.Get(ctx, in.CustomerID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	if len(lines) == 0 {
		return PlaceOrderOutput{}, domain.ErrEmptyCart
	}

	customer, cart, grouped, err := uc.assemble(ctx, custRec, lines)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	order := domain.NewOrder(customer, cart, method, uc.policy)

	// Re-validate stock atomically with settlement; compensate the lines
	// already taken when a later one cannot be covered.
	var taken []groupedLine
	for _, g := range grouped {
		ok, err := uc.products.DecrementStockIf(ctx, g.productID, g.qty)
		if err == nil && !ok {
			err = fmt.Errorf("product %d: %w", g.productID, domain.ErrInsufficientStock)
		}
		if err != nil {
			uc.restore(ctx, taken)
			return PlaceOrderOutput{}, err
		}
		taken = append(taken, g)
	}

	receipt, err := order.Place()
	if err != nil {
		uc.restore(ctx, taken)
		return PlaceOrderOutput{}, err
	}

	rec := recordFromReceipt(uuid.NewString(), in, receipt, grouped)
	if err := uc.orders.Create(ctx, rec); err != nil {
		uc.restore(ctx, taken)
		return PlaceOrderOutput{}, err
	}

	msg := confirmedMsg(rec, receipt)
	if payload, err := json.Marshal(msg); err == nil {
		if err := uc.outbox.Insert(ctx, confirmedChannel, payload); err != nil {
			uc.log.Warn("outbox insert failed", "order_id", rec.ID, "err", err)
		}
	}
	// Fire-and-forget: the confirmation never un-confirms the order.
	if err := uc.pub.PublishConfirmed(ctx, msg); err != nil {
		uc.log.Warn("confirmation publish failed", "order_id", rec.ID, "err", err)
	}

	if err := uc.carts.Clear(ctx, in.CustomerID); err != nil {
		uc.log.Warn("cart clear failed", "customer_id", in.CustomerID, "err", err)
	}
	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, rec.ID, rec.Status)
	}

	return PlaceOrderOutput{OrderID: rec.ID, Status: rec.Status, Receipt: receipt}, nil
}

type groupedLine struct {
	productID int64
	qty       int
}

// assemble loads the referenced products once each, rebuilds the domain cart
// (duplicates as separate lines) and groups quantities for the stock pass.
func (uc *Checkout) assemble(ctx context.Context, custRec *CustomerRecord, lines []CartLineRecord) (*domain.Customer, *domain.Cart, []groupedLine, error) {
	customer := customerFromRecord(custRec)
	cart := domain.NewCart(customer.ID)

	products := make(map[int64]*domain.Product)
	var grouped []groupedLine
	index := make(map[int64]int)

	for _, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			rec, err := uc.products.GetByID(ctx, line.ProductID)
			if err != nil {
				return nil, nil, nil, err
			}
			p = productFromRecord(rec)
			products[line.ProductID] = p
			index[line.ProductID] = len(grouped)
			grouped = append(grouped, groupedLine{productID: line.ProductID})
		}
		cart.Add(p)
		grouped[index[line.ProductID]].qty++
	}

	return customer, cart, grouped, nil
}

func (uc *Checkout) restore(ctx context.Context, taken []groupedLine) {
	for _, g := range taken {
		if err := uc.products.RestoreStock(ctx, g.productID, g.qty); err != nil {
			uc.log.Error("stock restore failed", "product_id", g.productID, "qty", g.qty, "err", err)
		}
	}
}

func (uc *Checkout) replay(ctx context.Context, orderID string) (PlaceOrderOutput, error) {
	rec, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	cust, err := uc.customers.GetByID(ctx, rec.CustomerID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return PlaceOrderOutput{
		OrderID: rec.ID,
		Status:  rec.Status,
		Receipt: receiptFromRecord(rec, cust),
	}, nil
}

func customerFromRecord(rec *CustomerRecord) *domain.Customer {
	c := domain.NewCustomer(rec.ID, rec.Name, rec.Email)
	_ = c.SetCredit(domain.EUR(rec.CreditCents))
	_ = c.SetDiscountRate(rec.DiscountRate)
	return c
}

func productFromRecord(rec *ProductRecord) *domain.Product {
	p := &domain.Product{
		ID:        rec.ID,
		Name:      rec.Name,
		UnitPrice: domain.Money{Cents: rec.PriceCents, Currency: rec.Currency},
		Stock:     rec.Stock,
	}
	if rec.Digital {
		p.Kind = domain.Digital{}
	} else {
		p.Kind = domain.Physical{WeightGrams: rec.WeightGrams}
	}
	if p.UnitPrice.Currency == "" {
		p.UnitPrice.Currency = domain.DefaultCurrency
	}
	return p
}

func recordFromReceipt(id string, in PlaceOrderInput, r domain.Receipt, grouped []groupedLine) *OrderRecord {
	names := make(map[int64]string, len(r.Lines))
	prices := make(map[int64]int64, len(r.Lines))
	for _, l := range r.Lines {
		names[l.ProductID] = l.Name
		prices[l.ProductID] = l.UnitPrice.Cents
	}

	lines := make([]OrderLineRecord, len(grouped))
	for i, g := range grouped {
		lines[i] = OrderLineRecord{
			ProductID:      g.productID,
			Name:           names[g.productID],
			UnitPriceCents: prices[g.productID],
			Quantity:       g.qty,
		}
	}

	return &OrderRecord{
		ID:             id,
		CustomerID:     in.CustomerID,
		Status:         string(domain.StatusConfirmed),
		SubtotalCents:  r.Subtotal.Cents,
		ShippingCents:  r.ShippingFee.Cents,
		TotalCents:     r.FinalTotal.Cents,
		Currency:       r.FinalTotal.Currency,
		PaymentKind:    r.PaymentKind,
		IdempotencyKey: in.IdempotencyKey,
		PlacedAt:       r.PlacedAt,
		Lines:          lines,
	}
}

func confirmedMsg(rec *OrderRecord, r domain.Receipt) OrderConfirmedMsg {
	lines := make([]ConfirmedLine, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = ConfirmedLine{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
		}
	}
	return OrderConfirmedMsg{
		OrderID:       rec.ID,
		CustomerID:    rec.CustomerID,
		Email:         r.CustomerEmail,
		Lines:         lines,
		SubtotalCents: rec.SubtotalCents,
		ShippingCents: rec.ShippingCents,
		TotalCents:    rec.TotalCents,
		Currency:      rec.Currency,
		PaymentKind:   rec.PaymentKind,
		PlacedAt:      rec.PlacedAt,
	}
}

func receiptFromRecord(rec *OrderRecord, cust *CustomerRecord) domain.Receipt {
	var lines []domain.OrderLine
	for _, l := range rec.Lines {
		for i := 0; i < l.Quantity; i++ {
			lines = append(lines, domain.OrderLine{
				ProductID: l.ProductID,
				Name:      l.Name,
				UnitPrice: domain.Money{Cents: l.UnitPriceCents, Currency: rec.Currency},
			})
		}
	}
	return domain.Receipt{
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Lines:         lines,
		Subtotal:      domain.Money{Cents: rec.SubtotalCents, Currency: rec.Currency},
		ShippingFee:   domain.Money{Cents: rec.ShippingCents, Currency: rec.Currency},
		FinalTotal:    domain.Money{Cents: rec.TotalCents, Currency: rec.Currency},
		PaymentKind:   rec.PaymentKind,
		PlacedAt:      rec.PlacedAt,
	}
}
