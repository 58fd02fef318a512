package gateway

import (
	"time"
)

// Gateway transaction states, as reported by Midtrans.
const (
	TransactionStatusCapture    = "capture"
	TransactionStatusSettlement = "settlement"
	TransactionStatusPending    = "pending"
	TransactionStatusDeny       = "deny"
	TransactionStatusExpire     = "expire"
	TransactionStatusCancel     = "cancel"
)

// Fraud states accompanying capture/settlement.
const (
	FraudStatusAccept    = "accept"
	FraudStatusChallenge = "challenge"
	FraudStatusDeny      = "deny"
)

// transactionTimeLayout is the timestamp format used by the gateway,
// e.g. "2024-01-01 10:00:00".
const transactionTimeLayout = "2006-01-02 15:04:05"

// TransactionSnapshot is a point-in-time, gateway-reported view of a
// transaction. It is consumed to update the order, never persisted verbatim.
type TransactionSnapshot struct {
	TransactionID     string    `json:"transaction_id"`
	OrderNumber       string    `json:"order_number"`
	TransactionStatus string    `json:"transaction_status"`
	FraudStatus       string    `json:"fraud_status,omitempty"`
	PaymentType       string    `json:"payment_type"`
	TransactionTime   time.Time `json:"transaction_time"`
	GrossAmount       string    `json:"gross_amount"`
	StatusCode        string    `json:"status_code"`
}

// ParseTransactionTime parses the gateway timestamp format. A zero time is
// returned for empty or malformed input.
func ParseTransactionTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(transactionTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
