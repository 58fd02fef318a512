package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/warunglabs/kasirpos/pkg/types"
)

type PaymentNotificationLogStatus string

const (
	PaymentNotificationLogStatusReceived     PaymentNotificationLogStatus = "received"
	PaymentNotificationLogStatusHandled      PaymentNotificationLogStatus = "handled"
	PaymentNotificationLogStatusHandleFailed PaymentNotificationLogStatus = "handle_failed"
)

// PaymentNotificationLog is the audit record of a gateway webhook delivery:
// the raw notification body and, once processed, the handling outcome.
type PaymentNotificationLog struct {
	ID               string                       `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Gateway          types.PaymentGateway         `gorm:"column:gateway;type:varchar(32);not null" json:"gateway"`
	TraceID          string                       `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	OrderNumber      string                       `gorm:"column:order_number;type:varchar(64);index" json:"order_number"`
	TransactionID    string                       `gorm:"column:transaction_id;type:varchar(128)" json:"transaction_id"`
	NotificationTime time.Time                    `gorm:"column:notification_time" json:"notification_time"`
	Data             datatypes.JSON               `gorm:"column:data;type:jsonb" json:"data"`
	Result           *datatypes.JSON              `gorm:"column:result;type:jsonb" json:"result"`
	Status           PaymentNotificationLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}

func (PaymentNotificationLog) TableName() string { return "payment_notification_log" }
