package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeSignature_KnownVector(t *testing.T) {
	// sha512("ORDER-1" + "200" + "10000.00" + "secret")
	got := ComputeSignature("ORDER-1", "200", "10000.00", "secret")
	require.Len(t, got, 128)
	require.Equal(t, got, ComputeSignature("ORDER-1", "200", "10000.00", "secret"))
	require.NotEqual(t, got, ComputeSignature("ORDER-2", "200", "10000.00", "secret"))
}

func TestHMACVerifier_AcceptsValidSignature(t *testing.T) {
	v := NewHMACVerifier("server-key")
	n := &Notification{
		OrderID:     "POS-1",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	n.SignatureKey = ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")

	require.NoError(t, v.Verify(n))
}

func TestHMACVerifier_RejectsTampering(t *testing.T) {
	v := NewHMACVerifier("server-key")
	n := &Notification{
		OrderID:     "POS-1",
		StatusCode:  "200",
		GrossAmount: "150000.00",
	}
	n.SignatureKey = ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, "server-key")
	n.GrossAmount = "1.00"

	require.ErrorIs(t, v.Verify(n), ErrInvalidSignature)
}

func TestHMACVerifier_RejectsMissingSignature(t *testing.T) {
	v := NewHMACVerifier("server-key")
	require.ErrorIs(t, v.Verify(&Notification{OrderID: "POS-1"}), ErrInvalidSignature)
	require.ErrorIs(t, v.Verify(nil), ErrInvalidSignature)
}
