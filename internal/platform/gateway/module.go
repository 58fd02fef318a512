package gateway

import (
	"go.uber.org/fx"

	"github.com/warunglabs/kasirpos/pkg/config"
)

var Module = fx.Options(
	fx.Provide(func(cfg *config.Config) StatusChecker { return NewClient(cfg) }),
	fx.Provide(func(cfg *config.Config) SignatureVerifier { return NewHMACVerifier(cfg.Midtrans.ServerKey) }),
)
