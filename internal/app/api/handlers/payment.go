package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	mw "github.com/warunglabs/kasirpos/internal/app/api/middleware"
	"github.com/warunglabs/kasirpos/internal/app/service/reconcile"
	"github.com/warunglabs/kasirpos/internal/models"
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/types"
)

// OrderPayload is the order view returned by payment endpoints.
type OrderPayload struct {
	ID            string              `json:"id"`
	OrderNumber   string              `json:"orderNumber"`
	Status        types.OrderStatus   `json:"status"`
	PaymentStatus types.PaymentStatus `json:"paymentStatus"`
}

// SnapshotPayload exposes the raw gateway snapshot fields for observability.
type SnapshotPayload struct {
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	PaymentType       string `json:"payment_type"`
	TransactionTime   string `json:"transaction_time,omitempty"`
	GrossAmount       string `json:"gross_amount"`
}

type CheckStatusResp struct {
	Success bool `json:"success"`
	// Order is the final local order state.
	Order OrderPayload `json:"order"`
	// Midtrans is nil when the gateway has no record of the transaction.
	Midtrans *SnapshotPayload `json:"midtrans"`
}

type ErrorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toOrderPayload(o *models.Order) OrderPayload {
	return OrderPayload{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
	}
}

func toSnapshotPayload(s *gateway.TransactionSnapshot) *SnapshotPayload {
	if s == nil {
		return nil
	}
	var transactionTime string
	if !s.TransactionTime.IsZero() {
		transactionTime = s.TransactionTime.UTC().Format(time.RFC3339)
	}
	return &SnapshotPayload{
		TransactionID:     s.TransactionID,
		TransactionStatus: s.TransactionStatus,
		FraudStatus:       s.FraudStatus,
		PaymentType:       s.PaymentType,
		TransactionTime:   transactionTime,
		GrossAmount:       s.GrossAmount,
	}
}

// writeReconcileError maps service errors to the documented error responses.
// Discrimination is by errors.Is on the typed taxonomy, never by message.
func writeReconcileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reconcile.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResp{Error: "UNAUTHORIZED"})
	case errors.Is(err, gateway.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, ErrorResp{Error: "INVALID_SIGNATURE"})
	case errors.Is(err, reconcile.ErrInvalidQuery), errors.Is(err, reconcile.ErrInvalidNotification):
		c.JSON(http.StatusBadRequest, ErrorResp{Error: "BAD_REQUEST", Details: err.Error()})
	case errors.Is(err, reconcile.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, ErrorResp{Error: "NOT_FOUND"})
	case errors.Is(err, reconcile.ErrUpstream):
		c.JSON(http.StatusInternalServerError, ErrorResp{Error: "UPSTREAM_FAILURE", Details: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResp{Error: "PERSISTENCE_FAILURE", Details: err.Error()})
	}
}

// @Summary      Check payment status
// @Description  Reconciles the order against the gateway-reported transaction state and returns the final local order state. Exactly one of orderId / orderNumber must be given.
// @Tags         Payment
// @Produce      json
// @Param        orderId      query  string  false  "Order ID"
// @Param        orderNumber  query  string  false  "Order number"
// @Success      200  {object}  handlers.CheckStatusResp
// @Failure      400  {object}  handlers.ErrorResp
// @Failure      401  {object}  handlers.ErrorResp
// @Failure      404  {object}  handlers.ErrorResp
// @Router       /api/v1/payment/status [get]
func ApiCheckPaymentStatus(svc reconcile.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := mw.AuthFromContext(c)
		q := reconcile.CheckOrderQuery{
			OrderID:     c.Query("orderId"),
			OrderNumber: c.Query("orderNumber"),
		}

		res, err := svc.CheckOrder(c.Request.Context(), auth, q)
		if err != nil {
			writeReconcileError(c, err)
			return
		}
		c.JSON(http.StatusOK, CheckStatusResp{
			Success:  true,
			Order:    toOrderPayload(res.Order),
			Midtrans: toSnapshotPayload(res.Snapshot),
		})
	}
}

func RegisterPaymentRoutes(r gin.IRouter, svc reconcile.Reconciler) {
	r.GET("/status", ApiCheckPaymentStatus(svc))
}
