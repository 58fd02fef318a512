package models

import (
	"time"

	"github.com/warunglabs/kasirpos/pkg/types"
)

// Order is a POS order. It is created by the order-placement flow in
// PENDING/PENDING and afterwards mutated only by payment reconciliation.
//
// Invariant: PaymentStatus PAID implies PaidAt is set and Status is COMPLETED.
type Order struct {
	ID string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	// OrderNumber is the human-facing reference, also used as the
	// merchant-side transaction key at the payment gateway.
	OrderNumber   string              `gorm:"column:order_number;type:varchar(64);not null;uniqueIndex" json:"order_number"`
	Status        types.OrderStatus   `gorm:"column:status;type:varchar(32);not null" json:"status"`
	PaymentStatus types.PaymentStatus `gorm:"column:payment_status;type:varchar(32);not null" json:"payment_status"`
	// PaymentMethod is the payment channel reported by the gateway (free text).
	PaymentMethod string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`
	// GrossAmount is the order total in minor currency units.
	GrossAmount int64  `gorm:"column:gross_amount;type:bigint;not null" json:"gross_amount"`
	CashierID   string `gorm:"column:cashier_id;type:varchar(64);index" json:"cashier_id"`
	// PaidAt is set exactly once, when payment is confirmed.
	PaidAt    *time.Time `gorm:"column:paid_at;default:null" json:"paid_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

func (o *Order) Paid() bool {
	return o != nil && o.PaymentStatus == types.PaymentStatusPaid
}
