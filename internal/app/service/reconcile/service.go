package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/warunglabs/kasirpos/internal/app/service/order"
	"github.com/warunglabs/kasirpos/internal/models"
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/logctx"
	"github.com/warunglabs/kasirpos/pkg/types"
)

var (
	ErrUnauthorized        = errors.New("authentication required")
	ErrInvalidQuery        = errors.New("exactly one of order id or order number is required")
	ErrInvalidNotification = errors.New("malformed gateway notification")
	ErrOrderNotFound       = errors.New("order not found")
	ErrUpstream            = errors.New("gateway status query failed")
	ErrPersistence         = errors.New("order state write failed")
)

var (
	transitionsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kasirpos",
		Subsystem: "reconcile",
		Name:      "transitions_applied_total",
		Help:      "Order state transitions persisted by reconciliation.",
	}, []string{"payment_status"})
	writesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "kasirpos",
		Subsystem: "reconcile",
		Name:      "writes_skipped_total",
		Help:      "Reconciliations that produced no state change (write-back guard).",
	})
	unknownStatusTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kasirpos",
		Subsystem: "reconcile",
		Name:      "unknown_status_total",
		Help:      "Gateway snapshots with an unrecognized transaction status.",
	}, []string{"transaction_status"})
)

// CheckOrderQuery identifies an order on the pull path. Exactly one field
// must be set.
type CheckOrderQuery struct {
	OrderID     string
	OrderNumber string
}

// Result is the outcome of one reconciliation invocation.
type Result struct {
	Order *models.Order
	// Snapshot is the gateway-reported transaction view, nil when the
	// gateway has no record of the order.
	Snapshot *gateway.TransactionSnapshot
	// Applied reports whether a state change was persisted.
	Applied bool
}

// AuditLog records raw gateway notifications and their handling outcome.
type AuditLog interface {
	Save(ctx context.Context, entry *models.PaymentNotificationLog)
}

// Reconciler resolves gateway-reported transaction state into the local
// order lifecycle, idempotently, on both the pull and push paths.
type Reconciler interface {
	// CheckOrder queries the gateway for the order's transaction and
	// applies the outcome.
	CheckOrder(ctx context.Context, auth *types.AuthContext, q CheckOrderQuery) (*Result, error)
	// HandleNotification applies a gateway webhook notification. The
	// signature is verified before any order state is touched; no outbound
	// gateway call is made.
	HandleNotification(ctx context.Context, n *gateway.Notification) (*Result, error)
}

type Service struct {
	store    order.Store
	checker  gateway.StatusChecker
	verifier gateway.SignatureVerifier
	audit    AuditLog
	log      *zap.SugaredLogger
	locks    *keyedMutex
}

func NewService(store order.Store, checker gateway.StatusChecker, verifier gateway.SignatureVerifier, audit AuditLog, log *zap.SugaredLogger) Reconciler {
	return &Service{
		store:    store,
		checker:  checker,
		verifier: verifier,
		audit:    audit,
		log:      log,
		locks:    newKeyedMutex(),
	}
}

func (s *Service) CheckOrder(ctx context.Context, auth *types.AuthContext, q CheckOrderQuery) (*Result, error) {
	if auth == nil {
		return nil, ErrUnauthorized
	}
	if (q.OrderID == "") == (q.OrderNumber == "") {
		return nil, ErrInvalidQuery
	}

	var (
		o   *models.Order
		err error
	)
	if q.OrderID != "" {
		o, err = s.store.FindByID(ctx, q.OrderID)
	} else {
		o, err = s.store.FindByNumber(ctx, q.OrderNumber)
	}
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	unlock := s.locks.Lock(o.OrderNumber)
	defer unlock()

	// Re-read under the lock: a concurrent reconciler may have moved the
	// order between the lookup and the lock acquisition.
	o, err = s.store.FindByNumber(ctx, o.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	snap, err := s.checker.CheckTransaction(ctx, o.OrderNumber)
	if err != nil {
		if errors.Is(err, gateway.ErrTransactionNotFound) {
			// Gateway has no record yet: report local state unchanged.
			logctx.FromCtx(ctx, s.log).Infow("gateway_transaction_unknown", "order_number", o.OrderNumber)
			return &Result{Order: o}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	return s.apply(ctx, o, snap)
}

func (s *Service) HandleNotification(ctx context.Context, n *gateway.Notification) (resResult *Result, resErr error) {
	if n == nil || n.OrderID == "" || n.TransactionStatus == "" {
		return nil, ErrInvalidNotification
	}
	// Authenticity gate: nothing below runs for a forged notification.
	if err := s.verifier.Verify(n); err != nil {
		return nil, err
	}

	s.saveAudit(ctx, n, models.PaymentNotificationLogStatusReceived, nil, nil)
	defer func() {
		status := models.PaymentNotificationLogStatusHandled
		if resErr != nil {
			status = models.PaymentNotificationLogStatusHandleFailed
		}
		s.saveAudit(ctx, n, status, resResult, resErr)
	}()

	unlock := s.locks.Lock(n.OrderID)
	defer unlock()

	o, err := s.store.FindByNumber(ctx, n.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	return s.apply(ctx, o, n.Snapshot())
}

// apply runs the mapper and the guarded write-back. Callers hold the
// per-order-number lock.
func (s *Service) apply(ctx context.Context, o *models.Order, snap *gateway.TransactionSnapshot) (*Result, error) {
	mapped := ResolveStatus(snap, o.Status)
	if !mapped.Known {
		logctx.FromCtx(ctx, s.log).Warnw("unknown_gateway_status",
			"order_number", o.OrderNumber,
			"transaction_status", snap.TransactionStatus,
			"fraud_status", snap.FraudStatus,
		)
		unknownStatusTotal.WithLabelValues(snap.TransactionStatus).Inc()
	}

	if !shouldApply(&orderState{Status: o.Status, PaymentStatus: o.PaymentStatus}, mapped) {
		writesSkipped.Inc()
		return &Result{Order: o, Snapshot: snap}, nil
	}

	change := order.StateChange{
		Status:        mapped.Status,
		PaymentStatus: mapped.PaymentStatus,
		PaymentMethod: snap.PaymentType,
	}
	if mapped.PaymentStatus == types.PaymentStatusPaid {
		paidAt := snap.TransactionTime
		if paidAt.IsZero() {
			paidAt = time.Now()
		}
		change.PaidAt = lo.ToPtr(paidAt)
	}

	fresh, applied, err := s.store.ApplyStatus(ctx, o, change)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if applied {
		transitionsApplied.WithLabelValues(string(mapped.PaymentStatus)).Inc()
		logctx.FromCtx(ctx, s.log).Infow("order_state_applied",
			"order_number", o.OrderNumber,
			"status", mapped.Status,
			"payment_status", mapped.PaymentStatus,
		)
	}
	return &Result{Order: fresh, Snapshot: snap, Applied: applied}, nil
}

func (s *Service) saveAudit(ctx context.Context, n *gateway.Notification, status models.PaymentNotificationLogStatus, res *Result, herr error) {
	if s.audit == nil {
		return
	}
	var traceID string
	if tid, ok := ctx.Value("traceID").(string); ok {
		traceID = tid
	}
	dataBytes, _ := json.Marshal(n)

	entry := &models.PaymentNotificationLog{
		Gateway:          types.PaymentGatewayMidtrans,
		TraceID:          traceID,
		OrderNumber:      n.OrderID,
		TransactionID:    n.TransactionID,
		NotificationTime: time.Now(),
		Data:             datatypes.JSON(dataBytes),
		Status:           status,
	}
	if status != models.PaymentNotificationLogStatusReceived {
		resMap := map[string]any{}
		if res != nil && res.Order != nil {
			resMap["status"] = res.Order.Status
			resMap["payment_status"] = res.Order.PaymentStatus
			resMap["applied"] = res.Applied
		}
		if herr != nil {
			resMap["error"] = herr.Error()
		}
		resBytes, _ := json.Marshal(resMap)
		j := datatypes.JSON(resBytes)
		entry.Result = &j
	}
	s.audit.Save(ctx, entry)
}
