package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/warunglabs/kasirpos/internal/app/api/server"
	notificationlog "github.com/warunglabs/kasirpos/internal/app/service/notification_log"
	"github.com/warunglabs/kasirpos/internal/app/service/order"
	"github.com/warunglabs/kasirpos/internal/app/service/reconcile"
	"github.com/warunglabs/kasirpos/internal/platform/db"
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/config"
	"github.com/warunglabs/kasirpos/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	gateway.Module,
	order.Module,
	notificationlog.Module,
	reconcile.Module,
)
