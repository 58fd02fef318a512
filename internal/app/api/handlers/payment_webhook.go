package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/warunglabs/kasirpos/internal/app/service/reconcile"
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/logctx"
	"github.com/warunglabs/kasirpos/pkg/types"

	"go.uber.org/zap"
)

type WebhookOrderPayload struct {
	Status        types.OrderStatus   `json:"status"`
	PaymentStatus types.PaymentStatus `json:"paymentStatus"`
}

type WebhookResp struct {
	Success          bool                `json:"success"`
	Order            WebhookOrderPayload `json:"order"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
}

// @Summary      Midtrans Webhook
// @Description  Handles Midtrans HTTP notifications. The signature_key is verified against the merchant server key before any order state is touched.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        payload body gateway.Notification true "Midtrans transaction notification"
// @Success      200  {object}  handlers.WebhookResp
// @Failure      400  {object}  handlers.ErrorResp
// @Failure      401  {object}  handlers.ErrorResp
// @Failure      404  {object}  handlers.ErrorResp
// @Router       /api/v1/payment/webhook/midtrans [post]
func ApiMidtransWebhook(svc reconcile.Reconciler, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var n gateway.Notification
		if err := c.ShouldBindJSON(&n); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResp{Error: "BAD_REQUEST", Details: err.Error()})
			return
		}
		logctx.FromGin(c, log).Infow("webhook_midtrans_received",
			"order_number", n.OrderID,
			"transaction_status", n.TransactionStatus,
		)

		res, err := svc.HandleNotification(c.Request.Context(), &n)
		if err != nil {
			logctx.FromGin(c, log).Errorw("webhook_midtrans_handle_error", "error", err.Error())
			writeReconcileError(c, err)
			return
		}

		c.JSON(http.StatusOK, WebhookResp{
			Success: true,
			Order: WebhookOrderPayload{
				Status:        res.Order.Status,
				PaymentStatus: res.Order.PaymentStatus,
			},
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		})
	}
}

func RegisterPaymentWebhookRoutes(r gin.IRouter, svc reconcile.Reconciler, log *zap.SugaredLogger) {
	r.POST("/midtrans", ApiMidtransWebhook(svc, log))
}
