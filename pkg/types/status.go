package types

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus is the payment lifecycle state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusFailed   PaymentStatus = "FAILED"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// Terminal reports whether the payment status is final. Terminal statuses only
// change through the explicit refund flow, never through reconciliation.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// PaymentGateway identifies the upstream payment processor.
type PaymentGateway string

const (
	PaymentGatewayMidtrans PaymentGateway = "midtrans"
)
