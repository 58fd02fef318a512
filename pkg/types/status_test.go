package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaymentStatus_Terminal(t *testing.T) {
	require.False(t, PaymentStatusPending.Terminal())
	require.True(t, PaymentStatusPaid.Terminal())
	require.True(t, PaymentStatusFailed.Terminal())
	require.True(t, PaymentStatusRefunded.Terminal())
	require.False(t, PaymentStatus("garbage").Terminal())
}
