package handlers

import (
	notificationlog "github.com/warunglabs/kasirpos/internal/app/service/notification_log"
	"github.com/warunglabs/kasirpos/pkg/response"
)

// RespScanNotifications wraps the admin notification listing in the standard envelope.
type RespScanNotifications struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    notificationlog.ScanResponse `json:"data"`
}
