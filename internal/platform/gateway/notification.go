package gateway

// Notification is the webhook body Midtrans posts on transaction state
// changes. OrderID carries the merchant-side order number.
type Notification struct {
	TransactionType   string `json:"transaction_type,omitempty"`
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message,omitempty"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	SettlementTime    string `json:"settlement_time,omitempty"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id" binding:"required"`
	MerchantID        string `json:"merchant_id,omitempty"`
	Issuer            string `json:"issuer,omitempty"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	Currency          string `json:"currency,omitempty"`
	Acquirer          string `json:"acquirer,omitempty"`
}

// Snapshot converts the notification body into the common transaction view.
func (n *Notification) Snapshot() *TransactionSnapshot {
	return &TransactionSnapshot{
		TransactionID:     n.TransactionID,
		OrderNumber:       n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		PaymentType:       n.PaymentType,
		TransactionTime:   ParseTransactionTime(n.TransactionTime),
		GrossAmount:       n.GrossAmount,
		StatusCode:        n.StatusCode,
	}
}
