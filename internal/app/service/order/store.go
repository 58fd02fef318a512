package order

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/warunglabs/kasirpos/internal/models"
	"github.com/warunglabs/kasirpos/pkg/types"
)

// ErrNotFound is returned when no order matches the given key.
var ErrNotFound = errors.New("order not found")

// StateChange is the reconciliation outcome to persist on an order.
type StateChange struct {
	Status        types.OrderStatus
	PaymentStatus types.PaymentStatus
	PaymentMethod string
	// PaidAt is set on the PAID transition, nil otherwise.
	PaidAt *time.Time
}

// Store is the order persistence collaborator of the reconciliation service.
type Store interface {
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	// ApplyStatus writes next onto the order, conditional on the stored
	// (status, payment_status) pair still matching what prev was read with.
	// A false return means a concurrent reconciler won the write; the
	// returned order is the fresh row either way.
	ApplyStatus(ctx context.Context, prev *models.Order, next StateChange) (*models.Order, bool, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store { return &GormStore{db: db} }

func (s *GormStore) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) FindByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	var o models.Order
	if err := s.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (s *GormStore) ApplyStatus(ctx context.Context, prev *models.Order, next StateChange) (*models.Order, bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ? AND payment_status = ?", prev.ID, prev.Status, prev.PaymentStatus).
		Updates(map[string]any{
			"status":         next.Status,
			"payment_status": next.PaymentStatus,
			"payment_method": next.PaymentMethod,
			"paid_at":        next.PaidAt,
		})
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		// Lost the conditional write; surface whatever state won.
		fresh, err := s.FindByID(ctx, prev.ID)
		if err != nil {
			return nil, false, err
		}
		return fresh, false, nil
	}
	fresh, err := s.FindByID(ctx, prev.ID)
	if err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}
