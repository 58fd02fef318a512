package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"

	"github.com/warunglabs/kasirpos/pkg/config"
)

var (
	// ErrTransactionNotFound means the gateway has no record for the order
	// number. Non-fatal on the pull path: local state is returned unchanged.
	ErrTransactionNotFound = errors.New("gateway transaction not found")
	// ErrGatewayUnavailable covers transport failures and gateway 5xx.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// StatusChecker queries the gateway for the current transaction state keyed
// by order number.
type StatusChecker interface {
	CheckTransaction(ctx context.Context, orderNumber string) (*TransactionSnapshot, error)
}

// Client wraps the Midtrans core API client behind StatusChecker, translating
// SDK errors into the typed taxonomy above so call sites never inspect
// messages or status strings.
type Client struct {
	core coreapi.Client
}

func NewClient(cfg *config.Config) *Client {
	env := midtrans.Sandbox
	if cfg.Midtrans.IsProd {
		env = midtrans.Production
	}
	var core coreapi.Client
	core.New(cfg.Midtrans.ServerKey, env)
	return &Client{core: core}
}

func (c *Client) CheckTransaction(ctx context.Context, orderNumber string) (*TransactionSnapshot, error) {
	res, err := c.core.CheckTransaction(orderNumber)
	if err != nil {
		return nil, mapMidtransError(err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: empty status response", ErrGatewayUnavailable)
	}
	return &TransactionSnapshot{
		TransactionID:     res.TransactionID,
		OrderNumber:       res.OrderID,
		TransactionStatus: res.TransactionStatus,
		FraudStatus:       res.FraudStatus,
		PaymentType:       res.PaymentType,
		TransactionTime:   ParseTransactionTime(res.TransactionTime),
		GrossAmount:       res.GrossAmount,
		StatusCode:        res.StatusCode,
	}, nil
}

// mapMidtransError converts the SDK error into the package taxonomy. The SDK
// reports the upstream HTTP status code; the decision is made here, once, so
// callers can use errors.Is.
func mapMidtransError(err *midtrans.Error) error {
	switch {
	case err.StatusCode == 404:
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, err.Message)
	case err.StatusCode == 0 || err.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrGatewayUnavailable, err.Message)
	default:
		return fmt.Errorf("gateway status query rejected (%d): %s", err.StatusCode, err.Message)
	}
}
