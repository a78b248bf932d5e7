package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() ShippingPolicy {
	return ShippingPolicy{FreeThreshold: EUR(5000), BaseFee: EUR(595)}
}

func TestShippingPolicyFeeFor(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name     string
		subtotal Money
		want     Money
	}{
		{name: "below threshold", subtotal: EUR(4999), want: EUR(595)},
		{name: "exactly at threshold", subtotal: EUR(5000), want: EUR(0)},
		{name: "above threshold", subtotal: EUR(13548), want: EUR(0)},
		{name: "empty", subtotal: EUR(0), want: EUR(595)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want.Cents, policy.FeeFor(tt.subtotal).Cents)
		})
	}
}

func TestPlaceFreeShippingScenario(t *testing.T) {
	// 19.99 + 25.50 + 89.99 = 135.48 → free shipping, no surcharge
	cust := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	cart := NewCart(cust.ID)
	cart.Add(&Product{ID: 1, Name: "a", UnitPrice: EUR(1999)})
	cart.Add(&Product{ID: 2, Name: "b", UnitPrice: EUR(2550)})
	cart.Add(&Product{ID: 3, Name: "c", UnitPrice: EUR(8999)})

	o := NewOrder(cust, cart, PaymentMethod{Kind: "ideal", Surcharge: EUR(0)}, testPolicy())
	receipt, err := o.Place()
	require.NoError(t, err)

	assert.Equal(t, int64(13548), receipt.Subtotal.Cents)
	assert.Equal(t, int64(0), receipt.ShippingFee.Cents)
	assert.Equal(t, int64(13548), receipt.FinalTotal.Cents)
	assert.Equal(t, StatusConfirmed, o.Status)
}

func TestPlaceSurchargeAndShippingScenario(t *testing.T) {
	// 10.00 < 50 → shipping 5.95 → 15.95, creditcard surcharge 2.50 → 18.45
	cust := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	cart := NewCart(cust.ID)
	cart.Add(&Product{ID: 1, Name: "a", UnitPrice: EUR(1000)})

	o := NewOrder(cust, cart, PaymentMethod{Kind: "creditcard", Surcharge: EUR(250)}, testPolicy())
	receipt, err := o.Place()
	require.NoError(t, err)

	assert.Equal(t, int64(1000), receipt.Subtotal.Cents)
	assert.Equal(t, int64(595), receipt.ShippingFee.Cents)
	assert.Equal(t, int64(1845), receipt.FinalTotal.Cents)
	assert.Equal(t, "creditcard", receipt.PaymentKind)
}

func TestPlaceEmptyCartMutatesNothing(t *testing.T) {
	cust := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	cart := NewCart(cust.ID)

	o := NewOrder(cust, cart, PaymentMethod{Kind: "ideal"}, testPolicy())
	_, err := o.Place()
	require.ErrorIs(t, err, ErrEmptyCart)

	assert.Equal(t, StatusPending, o.Status)
	assert.Empty(t, cust.Orders(), "no order recorded")
	assert.True(t, cart.Empty())
}

func TestPlaceConfirmsClearsAndRecords(t *testing.T) {
	cust := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	cart := NewCart(cust.ID)
	p := &Product{ID: 1, Name: "Book", UnitPrice: EUR(1999)}
	cart.Add(p)
	cart.Add(p)

	o := NewOrder(cust, cart, PaymentMethod{Kind: "paypal", Surcharge: EUR(100)}, testPolicy())
	receipt, err := o.Place()
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, o.Status)
	assert.True(t, cart.Empty(), "live cart cleared after placement")
	require.Len(t, cust.Orders(), 1, "exactly one new history entry")
	require.Len(t, receipt.Lines, 2, "snapshot keeps repeated lines")
	assert.Equal(t, "Book", receipt.Lines[0].Name)
	assert.False(t, receipt.PlacedAt.IsZero())

	// A placed order cannot be placed twice.
	_, err = o.Place()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	cust := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	cart := NewCart(cust.ID)
	cart.Add(&Product{ID: 1, Name: "Book", UnitPrice: EUR(1999)})

	o := NewOrder(cust, cart, PaymentMethod{Kind: "ideal"}, testPolicy())

	require.ErrorIs(t, o.Cancel(), ErrInvalidTransition, "pending orders cannot cancel")

	_, err := o.Place()
	require.NoError(t, err)
	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
	assert.True(t, o.Status.IsTerminal())

	require.ErrorIs(t, o.Cancel(), ErrInvalidTransition, "cancel is terminal")
}

func TestSettle(t *testing.T) {
	pm := PaymentMethod{Kind: "creditcard", Surcharge: EUR(250)}
	assert.Equal(t, int64(10249), pm.Settle(EUR(9999)).Cents)

	free := PaymentMethod{Kind: "ideal", Surcharge: EUR(0)}
	assert.Equal(t, int64(9999), free.Settle(EUR(9999)).Cents)
}
