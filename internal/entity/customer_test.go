package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDiscountRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		wantErr  error
		wantRate float64
	}{
		{name: "zero", rate: 0, wantErr: nil, wantRate: 0},
		{name: "fifteen percent", rate: 0.15, wantErr: nil, wantRate: 0.15},
		{name: "full discount", rate: 1, wantErr: nil, wantRate: 1},
		{name: "above one", rate: 2.0, wantErr: ErrDiscountOutOfRange, wantRate: 0.15},
		{name: "negative", rate: -0.1, wantErr: ErrDiscountOutOfRange, wantRate: 0.15},
	}

	c := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.SetDiscountRate(tt.rate)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantRate, c.DiscountRate(), "rejected values keep the prior rate")
		})
	}
}

func TestSetCredit(t *testing.T) {
	c := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")

	require.NoError(t, c.SetCredit(EUR(100000)))
	assert.Equal(t, EUR(100000), c.Credit())

	err := c.SetCredit(EUR(-5000))
	require.ErrorIs(t, err, ErrNegativeCredit)
	assert.Equal(t, int64(0), c.Credit().Cents, "negative credit clamps to zero")
}

func TestDiscountAmount(t *testing.T) {
	c := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	require.NoError(t, c.SetDiscountRate(0.15))

	assert.Equal(t, EUR(1500), c.DiscountAmount(EUR(10000)))
	assert.Equal(t, EUR(1500), c.DiscountAmount(EUR(10000)), "pure computation")
}

func TestRecordOrderAppendsHistory(t *testing.T) {
	c := NewCustomer("cust-1", "Jan Jansen", "jan@email.nl")
	assert.Empty(t, c.Orders())

	o := &Order{Status: StatusConfirmed}
	c.RecordOrder(o)
	require.Len(t, c.Orders(), 1)

	history := c.Orders()
	history[0] = nil
	assert.NotNil(t, c.Orders()[0], "history is append-only through RecordOrder")
}
