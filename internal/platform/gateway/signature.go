package gateway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
)

// ErrInvalidSignature marks a webhook whose signature_key does not match the
// merchant server key. Such notifications must never reach order state.
var ErrInvalidSignature = errors.New("invalid notification signature")

// SignatureVerifier authenticates webhook notifications before they are acted
// upon.
type SignatureVerifier interface {
	Verify(n *Notification) error
}

// HMACVerifier implements the Midtrans signature scheme:
// sha512(order_id + status_code + gross_amount + server_key).
type HMACVerifier struct {
	serverKey string
}

func NewHMACVerifier(serverKey string) *HMACVerifier {
	return &HMACVerifier{serverKey: serverKey}
}

func (v *HMACVerifier) Verify(n *Notification) error {
	if n == nil || n.SignatureKey == "" {
		return ErrInvalidSignature
	}
	want := ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, v.serverKey)
	if !hmac.Equal([]byte(want), []byte(n.SignatureKey)) {
		return ErrInvalidSignature
	}
	return nil
}

// ComputeSignature returns the hex sha512 digest the gateway attaches to
// notifications.
func ComputeSignature(orderNumber, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderNumber + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}
