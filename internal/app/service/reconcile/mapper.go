package reconcile

import (
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/types"
)

// MappedState is the local order state derived from a gateway snapshot.
type MappedState struct {
	Status        types.OrderStatus
	PaymentStatus types.PaymentStatus
	// Known is false when the transaction status fell through to the
	// conservative default, so callers can flag the snapshot as anomalous.
	Known bool
}

// ResolveStatus translates a gateway transaction snapshot into the local
// (order status, payment status) pair. Pure: no I/O, no side effects.
//
// Rules, in priority order:
//  1. capture/settlement with fraud accept or no fraud signal: PAID, COMPLETED
//  2. pending: payment PENDING, order status unchanged
//  3. deny/expire/cancel: FAILED, CANCELLED
//  4. anything else (incl. capture/settlement under fraud challenge/deny):
//     payment PENDING, order status unchanged
func ResolveStatus(snap *gateway.TransactionSnapshot, current types.OrderStatus) MappedState {
	switch snap.TransactionStatus {
	case gateway.TransactionStatusCapture, gateway.TransactionStatusSettlement:
		if snap.FraudStatus == "" || snap.FraudStatus == gateway.FraudStatusAccept {
			return MappedState{Status: types.OrderStatusCompleted, PaymentStatus: types.PaymentStatusPaid, Known: true}
		}
		// Captured but not cleared by fraud review: treat as still pending.
		return MappedState{Status: current, PaymentStatus: types.PaymentStatusPending, Known: true}
	case gateway.TransactionStatusPending:
		return MappedState{Status: current, PaymentStatus: types.PaymentStatusPending, Known: true}
	case gateway.TransactionStatusDeny, gateway.TransactionStatusExpire, gateway.TransactionStatusCancel:
		return MappedState{Status: types.OrderStatusCancelled, PaymentStatus: types.PaymentStatusFailed, Known: true}
	default:
		return MappedState{Status: current, PaymentStatus: types.PaymentStatusPending, Known: false}
	}
}

// shouldApply is the write-back guard: persist only when the mapped state
// differs from the stored one, and never regress a terminal payment status
// to a non-terminal or conflicting one through reconciliation.
func shouldApply(o *orderState, next MappedState) bool {
	if o.Status == next.Status && o.PaymentStatus == next.PaymentStatus {
		return false
	}
	if o.PaymentStatus.Terminal() && next.PaymentStatus == types.PaymentStatusPending {
		return false
	}
	// A completed payment is only undone by the explicit refund flow.
	if o.PaymentStatus == types.PaymentStatusPaid && next.PaymentStatus != types.PaymentStatusPaid {
		return false
	}
	return true
}

type orderState struct {
	Status        types.OrderStatus
	PaymentStatus types.PaymentStatus
}
