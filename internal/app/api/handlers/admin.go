package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/warunglabs/kasirpos/internal/app/api/middleware"
	notificationlog "github.com/warunglabs/kasirpos/internal/app/service/notification_log"
	"github.com/warunglabs/kasirpos/pkg/response"
)

// @Summary      List gateway notifications
// @Description  Paginated, filterable scan over the webhook audit log. Admin role required.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body notification_log.ScanRequest true "Scan request"
// @Success      200  {object}  handlers.RespScanNotifications
// @Router       /api/v1/admin/list_notifications [post]
func ApiListNotifications(svc *notificationlog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := mw.AuthFromContext(c)
		if !auth.IsAdmin() {
			c.JSON(http.StatusForbidden, ErrorResp{Error: "FORBIDDEN"})
			return
		}

		var req notificationlog.ScanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}

		res, err := svc.Scan(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func RegisterAdminRoutes(r gin.IRouter, svc *notificationlog.Service) {
	r.POST("/list_notifications", ApiListNotifications(svc))
}
