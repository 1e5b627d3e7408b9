package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchDOGGGG/relook-online-store/models"
	"gorm.io/gorm"
)

// OrderRepository implements checkout.OrderStore on top of GORM/MySQL.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) OrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Where("payment_reference = ?", reference).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order by reference: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) OrderWithItems(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("OrderItems").Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order with items: %w", err)
	}
	return &order, nil
}

// SetPaymentReference records the gateway reference on the order. Writing the
// same value again on an initialize retry is a no-op.
func (r *OrderRepository) SetPaymentReference(ctx context.Context, orderID, reference string) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_reference", reference)
	if result.Error != nil {
		return fmt.Errorf("update payment reference: %w", result.Error)
	}
	return nil
}

// MarkPaid is a conditional update: only a pending order is flipped to paid,
// and the affected-row count tells the caller whether this invocation won.
// Concurrent verifies of the same reference therefore apply the transition
// once.
func (r *OrderRepository) MarkPaid(ctx context.Context, reference string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_reference = ? AND status = ?", reference, models.OrderStatusPending).
		Update("status", models.OrderStatusPaid)
	if result.Error != nil {
		return false, fmt.Errorf("mark order paid: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
