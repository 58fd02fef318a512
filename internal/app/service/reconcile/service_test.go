package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warunglabs/kasirpos/internal/app/service/order"
	"github.com/warunglabs/kasirpos/internal/models"
	"github.com/warunglabs/kasirpos/internal/platform/gateway"
	"github.com/warunglabs/kasirpos/pkg/types"
)

type fakeStore struct {
	orders     map[string]*models.Order // keyed by order number
	writes     int
	failWrites bool
}

func newFakeStore(orders ...*models.Order) *fakeStore {
	m := make(map[string]*models.Order, len(orders))
	for _, o := range orders {
		m[o.OrderNumber] = o
	}
	return &fakeStore{orders: m}
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, order.ErrNotFound
}

func (f *fakeStore) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	o, ok := f.orders[orderNumber]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeStore) ApplyStatus(ctx context.Context, prev *models.Order, next order.StateChange) (*models.Order, bool, error) {
	if f.failWrites {
		return nil, false, errors.New("connection reset")
	}
	cur, ok := f.orders[prev.OrderNumber]
	if !ok {
		return nil, false, order.ErrNotFound
	}
	if cur.Status != prev.Status || cur.PaymentStatus != prev.PaymentStatus {
		cp := *cur
		return &cp, false, nil
	}
	cur.Status = next.Status
	cur.PaymentStatus = next.PaymentStatus
	cur.PaymentMethod = next.PaymentMethod
	cur.PaidAt = next.PaidAt
	f.writes++
	cp := *cur
	return &cp, true, nil
}

type fakeChecker struct {
	snap  *gateway.TransactionSnapshot
	err   error
	calls int
}

func (f *fakeChecker) CheckTransaction(ctx context.Context, orderNumber string) (*gateway.TransactionSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeAudit struct {
	entries []*models.PaymentNotificationLog
}

func (f *fakeAudit) Save(ctx context.Context, entry *models.PaymentNotificationLog) {
	f.entries = append(f.entries, entry)
}

const testServerKey = "SB-Mid-server-testkey"

func pendingOrder() *models.Order {
	return &models.Order{
		ID:            "0195c7a4-1111-7000-8000-000000000001",
		OrderNumber:   "POS-20240101-0001",
		Status:        types.OrderStatusPending,
		PaymentStatus: types.PaymentStatusPending,
		GrossAmount:   150000,
	}
}

func newTestService(store order.Store, checker gateway.StatusChecker, audit AuditLog) Reconciler {
	return NewService(store, checker, gateway.NewHMACVerifier(testServerKey), audit, zap.NewNop().Sugar())
}

func cashierAuth() *types.AuthContext {
	return &types.AuthContext{UserID: "cashier-1", Role: types.RoleCashier}
}

func TestCheckOrder_SettlementMarksPaid(t *testing.T) {
	store := newFakeStore(pendingOrder())
	txTime := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	checker := &fakeChecker{snap: &gateway.TransactionSnapshot{
		TransactionID:     "mt-1",
		OrderNumber:       "POS-20240101-0001",
		TransactionStatus: gateway.TransactionStatusSettlement,
		FraudStatus:       gateway.FraudStatusAccept,
		PaymentType:       "qris",
		TransactionTime:   txTime,
	}}
	svc := newTestService(store, checker, nil)

	res, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.Equal(t, types.OrderStatusCompleted, res.Order.Status)
	require.Equal(t, types.PaymentStatusPaid, res.Order.PaymentStatus)
	require.Equal(t, "qris", res.Order.PaymentMethod)
	require.NotNil(t, res.Order.PaidAt)
	require.Equal(t, txTime, *res.Order.PaidAt)
	require.NotNil(t, res.Snapshot)
	require.Equal(t, 1, store.writes)
}

func TestCheckOrder_IsIdempotent(t *testing.T) {
	store := newFakeStore(pendingOrder())
	checker := &fakeChecker{snap: &gateway.TransactionSnapshot{
		OrderNumber:       "POS-20240101-0001",
		TransactionStatus: gateway.TransactionStatusSettlement,
		FraudStatus:       gateway.FraudStatusAccept,
		TransactionTime:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}}
	svc := newTestService(store, checker, nil)

	first, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.NoError(t, err)
	second, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.NoError(t, err)

	require.True(t, first.Applied)
	require.False(t, second.Applied)
	require.Equal(t, first.Order.Status, second.Order.Status)
	require.Equal(t, first.Order.PaymentStatus, second.Order.PaymentStatus)
	require.Equal(t, 1, store.writes, "second application must be a no-op")
}

func TestCheckOrder_ExpireCancelsWithoutPaidAt(t *testing.T) {
	store := newFakeStore(pendingOrder())
	checker := &fakeChecker{snap: &gateway.TransactionSnapshot{
		OrderNumber:       "POS-20240101-0001",
		TransactionStatus: gateway.TransactionStatusExpire,
	}}
	svc := newTestService(store, checker, nil)

	res, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.NoError(t, err)
	require.Equal(t, types.OrderStatusCancelled, res.Order.Status)
	require.Equal(t, types.PaymentStatusFailed, res.Order.PaymentStatus)
	require.Nil(t, res.Order.PaidAt)
}

func TestCheckOrder_RequiresAuth(t *testing.T) {
	svc := newTestService(newFakeStore(pendingOrder()), &fakeChecker{}, nil)

	_, err := svc.CheckOrder(context.Background(), nil, CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckOrder_RequiresExactlyOneKey(t *testing.T) {
	svc := newTestService(newFakeStore(pendingOrder()), &fakeChecker{}, nil)

	_, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{})
	require.ErrorIs(t, err, ErrInvalidQuery)

	_, err = svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{
		OrderID:     "0195c7a4-1111-7000-8000-000000000001",
		OrderNumber: "POS-20240101-0001",
	})
	require.ErrorIs(t, err, ErrInvalidQuery)
}

func TestCheckOrder_ByID(t *testing.T) {
	store := newFakeStore(pendingOrder())
	checker := &fakeChecker{snap: &gateway.TransactionSnapshot{
		OrderNumber:       "POS-20240101-0001",
		TransactionStatus: gateway.TransactionStatusPending,
	}}
	svc := newTestService(store, checker, nil)

	res, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderID: "0195c7a4-1111-7000-8000-000000000001"})
	require.NoError(t, err)
	require.Equal(t, "POS-20240101-0001", res.Order.OrderNumber)
	require.Equal(t, 0, store.writes)
}

func TestCheckOrder_UnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeChecker{}, nil)

	_, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-missing"})
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCheckOrder_GatewayHasNoRecord(t *testing.T) {
	store := newFakeStore(pendingOrder())
	checker := &fakeChecker{err: fmt.Errorf("%w: 404", gateway.ErrTransactionNotFound)}
	svc := newTestService(store, checker, nil)

	res, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.NoError(t, err, "gateway-unknown transactions must not fail the request")
	require.Nil(t, res.Snapshot)
	require.Equal(t, types.OrderStatusPending, res.Order.Status)
	require.Equal(t, types.PaymentStatusPending, res.Order.PaymentStatus)
	require.Equal(t, 0, store.writes)
}

func TestCheckOrder_UpstreamFailure(t *testing.T) {
	checker := &fakeChecker{err: fmt.Errorf("%w: 502", gateway.ErrGatewayUnavailable)}
	svc := newTestService(newFakeStore(pendingOrder()), checker, nil)

	_, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.ErrorIs(t, err, ErrUpstream)
}

func TestCheckOrder_PersistenceFailure(t *testing.T) {
	store := newFakeStore(pendingOrder())
	store.failWrites = true
	checker := &fakeChecker{snap: &gateway.TransactionSnapshot{
		OrderNumber:       "POS-20240101-0001",
		TransactionStatus: gateway.TransactionStatusSettlement,
	}}
	svc := newTestService(store, checker, nil)

	_, err := svc.CheckOrder(context.Background(), cashierAuth(), CheckOrderQuery{OrderNumber: "POS-20240101-0001"})
	require.ErrorIs(t, err, ErrPersistence)
}

func signedNotification(orderNumber, txStatus, fraudStatus string) *gateway.Notification {
	n := &gateway.Notification{
		TransactionID:     "mt-1",
		TransactionStatus: txStatus,
		FraudStatus:       fraudStatus,
		TransactionTime:   "2024-01-01 10:00:00",
		StatusCode:        "200",
		PaymentType:       "gopay",
		OrderID:           orderNumber,
		GrossAmount:       "150000.00",
	}
	n.SignatureKey = gateway.ComputeSignature(n.OrderID, n.StatusCode, n.GrossAmount, testServerKey)
	return n
}

func TestHandleNotification_SettlementMarksPaid(t *testing.T) {
	store := newFakeStore(pendingOrder())
	checker := &fakeChecker{}
	audit := &fakeAudit{}
	svc := newTestService(store, checker, audit)

	res, err := svc.HandleNotification(context.Background(), signedNotification("POS-20240101-0001", "settlement", "accept"))
	require.NoError(t, err)
	require.True(t, res.Applied)
	require.Equal(t, types.OrderStatusCompleted, res.Order.Status)
	require.Equal(t, types.PaymentStatusPaid, res.Order.PaymentStatus)
	require.NotNil(t, res.Order.PaidAt)
	require.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), *res.Order.PaidAt)

	// no outbound gateway call on the push path
	require.Equal(t, 0, checker.calls)

	require.Len(t, audit.entries, 2)
	require.Equal(t, models.PaymentNotificationLogStatusReceived, audit.entries[0].Status)
	require.Equal(t, models.PaymentNotificationLogStatusHandled, audit.entries[1].Status)
}

func TestHandleNotification_RejectsForgedSignature(t *testing.T) {
	store := newFakeStore(pendingOrder())
	audit := &fakeAudit{}
	svc := newTestService(store, &fakeChecker{}, audit)

	n := signedNotification("POS-20240101-0001", "settlement", "accept")
	n.SignatureKey = "deadbeef"

	_, err := svc.HandleNotification(context.Background(), n)
	require.ErrorIs(t, err, gateway.ErrInvalidSignature)
	require.Equal(t, 0, store.writes, "forged notifications must not touch order state")
	require.Empty(t, audit.entries)
}

func TestHandleNotification_MalformedBody(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeChecker{}, nil)

	_, err := svc.HandleNotification(context.Background(), &gateway.Notification{OrderID: "x"})
	require.ErrorIs(t, err, ErrInvalidNotification)
}

func TestHandleNotification_UnknownOrder(t *testing.T) {
	audit := &fakeAudit{}
	svc := newTestService(newFakeStore(), &fakeChecker{}, audit)

	_, err := svc.HandleNotification(context.Background(), signedNotification("POS-missing", "settlement", "accept"))
	require.ErrorIs(t, err, ErrOrderNotFound)
	require.Len(t, audit.entries, 2)
	require.Equal(t, models.PaymentNotificationLogStatusHandleFailed, audit.entries[1].Status)
}

func TestHandleNotification_StalePendingAfterPaid(t *testing.T) {
	paidAt := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	o := pendingOrder()
	o.Status = types.OrderStatusCompleted
	o.PaymentStatus = types.PaymentStatusPaid
	o.PaidAt = &paidAt
	store := newFakeStore(o)
	svc := newTestService(store, &fakeChecker{}, nil)

	res, err := svc.HandleNotification(context.Background(), signedNotification("POS-20240101-0001", "pending", ""))
	require.NoError(t, err)
	require.False(t, res.Applied)
	require.Equal(t, types.PaymentStatusPaid, res.Order.PaymentStatus)
	require.NotNil(t, res.Order.PaidAt)
	require.Equal(t, 0, store.writes)
}

func TestHandleNotification_DuplicateDeliveryIsNoOp(t *testing.T) {
	store := newFakeStore(pendingOrder())
	svc := newTestService(store, &fakeChecker{}, nil)
	n := signedNotification("POS-20240101-0001", "settlement", "accept")

	first, err := svc.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	second, err := svc.HandleNotification(context.Background(), n)
	require.NoError(t, err)

	require.True(t, first.Applied)
	require.False(t, second.Applied)
	require.Equal(t, 1, store.writes)
	require.Equal(t, *first.Order.PaidAt, *second.Order.PaidAt)
}
