package models

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warunglabs/kasirpos/pkg/types"
)

func TestOrder_Paid(t *testing.T) {
	var nilOrder *Order
	require.False(t, nilOrder.Paid())

	o := &Order{Status: types.OrderStatusPending, PaymentStatus: types.PaymentStatusPending}
	require.False(t, o.Paid())

	o.PaymentStatus = types.PaymentStatusPaid
	require.True(t, o.Paid())
}
