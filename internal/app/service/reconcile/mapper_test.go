package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/types"
)

func TestResolveStatus_CaptureSettlementAccepted(t *testing.T) {
	cases := []struct {
		name        string
		txStatus    string
		fraudStatus string
	}{
		{"capture accepted", gateway.TransactionStatusCapture, gateway.FraudStatusAccept},
		{"capture no fraud signal", gateway.TransactionStatusCapture, ""},
		{"settlement accepted", gateway.TransactionStatusSettlement, gateway.FraudStatusAccept},
		{"settlement no fraud signal", gateway.TransactionStatusSettlement, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveStatus(&gateway.TransactionSnapshot{
				TransactionStatus: tc.txStatus,
				FraudStatus:       tc.fraudStatus,
			}, types.OrderStatusPending)

			require.True(t, got.Known)
			require.Equal(t, types.OrderStatusCompleted, got.Status)
			require.Equal(t, types.PaymentStatusPaid, got.PaymentStatus)
		})
	}
}

func TestResolveStatus_PendingLeavesOrderStatus(t *testing.T) {
	got := ResolveStatus(&gateway.TransactionSnapshot{
		TransactionStatus: gateway.TransactionStatusPending,
	}, types.OrderStatusPending)

	require.True(t, got.Known)
	require.Equal(t, types.OrderStatusPending, got.Status)
	require.Equal(t, types.PaymentStatusPending, got.PaymentStatus)
}

func TestResolveStatus_FailureStatesCancel(t *testing.T) {
	for _, txStatus := range []string{
		gateway.TransactionStatusDeny,
		gateway.TransactionStatusExpire,
		gateway.TransactionStatusCancel,
	} {
		t.Run(txStatus, func(t *testing.T) {
			got := ResolveStatus(&gateway.TransactionSnapshot{TransactionStatus: txStatus}, types.OrderStatusPending)

			require.True(t, got.Known)
			require.Equal(t, types.OrderStatusCancelled, got.Status)
			require.Equal(t, types.PaymentStatusFailed, got.PaymentStatus)
		})
	}
}

func TestResolveStatus_CaptureUnderFraudReviewStaysPending(t *testing.T) {
	for _, fraudStatus := range []string{gateway.FraudStatusChallenge, gateway.FraudStatusDeny} {
		t.Run(fraudStatus, func(t *testing.T) {
			got := ResolveStatus(&gateway.TransactionSnapshot{
				TransactionStatus: gateway.TransactionStatusCapture,
				FraudStatus:       fraudStatus,
			}, types.OrderStatusPending)

			require.True(t, got.Known)
			require.Equal(t, types.OrderStatusPending, got.Status)
			require.Equal(t, types.PaymentStatusPending, got.PaymentStatus)
		})
	}
}

func TestResolveStatus_UnknownStatusIsConservative(t *testing.T) {
	got := ResolveStatus(&gateway.TransactionSnapshot{TransactionStatus: "refund_chargeback"}, types.OrderStatusCompleted)

	require.False(t, got.Known)
	require.Equal(t, types.OrderStatusCompleted, got.Status)
	require.Equal(t, types.PaymentStatusPending, got.PaymentStatus)
}

func TestShouldApply(t *testing.T) {
	cases := []struct {
		name string
		cur  orderState
		next MappedState
		want bool
	}{
		{
			name: "no change is a no-op",
			cur:  orderState{types.OrderStatusPending, types.PaymentStatusPending},
			next: MappedState{Status: types.OrderStatusPending, PaymentStatus: types.PaymentStatusPending},
			want: false,
		},
		{
			name: "pending to paid applies",
			cur:  orderState{types.OrderStatusPending, types.PaymentStatusPending},
			next: MappedState{Status: types.OrderStatusCompleted, PaymentStatus: types.PaymentStatusPaid},
			want: true,
		},
		{
			name: "pending to failed applies",
			cur:  orderState{types.OrderStatusPending, types.PaymentStatusPending},
			next: MappedState{Status: types.OrderStatusCancelled, PaymentStatus: types.PaymentStatusFailed},
			want: true,
		},
		{
			name: "paid never regresses to pending",
			cur:  orderState{types.OrderStatusCompleted, types.PaymentStatusPaid},
			next: MappedState{Status: types.OrderStatusCompleted, PaymentStatus: types.PaymentStatusPending},
			want: false,
		},
		{
			name: "paid never regresses to failed",
			cur:  orderState{types.OrderStatusCompleted, types.PaymentStatusPaid},
			next: MappedState{Status: types.OrderStatusCancelled, PaymentStatus: types.PaymentStatusFailed},
			want: false,
		},
		{
			name: "failed never regresses to pending",
			cur:  orderState{types.OrderStatusCancelled, types.PaymentStatusFailed},
			next: MappedState{Status: types.OrderStatusCancelled, PaymentStatus: types.PaymentStatusPending},
			want: false,
		},
		{
			name: "failed may progress to paid",
			cur:  orderState{types.OrderStatusCancelled, types.PaymentStatusFailed},
			next: MappedState{Status: types.OrderStatusCompleted, PaymentStatus: types.PaymentStatusPaid},
			want: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, shouldApply(&tc.cur, tc.next))
		})
	}
}
