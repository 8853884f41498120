package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrOrderIsNotTracked is returned by Update for orders that were not loaded or
// added through the same unit of work.
var ErrOrderIsNotTracked = errors.New("order was not loaded in this unit of work")

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker remembers the aggregates touched by a unit of work and the row
// version each order had when it was read.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
	TrackVersion(id kernel.UUID, version int64)
	TrackedVersion(id kernel.UUID) (int64, bool)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if !aggregate.IsInitialized() {
		return errs.NewValueIsRequiredError("orderId")
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateError(err)
	}

	r.tracker.TrackVersion(aggregate.ID().UUID, dto.Version)
	r.tracker.TrackAggregate(aggregate.ID().UUID, aggregate)
	return nil
}

// Update writes status and failure messages. Items are immutable once an order
// is created, so they are not rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	id := aggregate.ID().UUID
	version, ok := r.tracker.TrackedVersion(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderIsNotTracked, id)
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, version).
		Updates(map[string]any{
			"status":           dto.Status,
			"failure_messages": dto.FailureMessages,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return translateError(err)
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderId", id.String())
		}
		return errs.NewVersionIsInvalidErrorWithCause("order",
			fmt.Errorf("order %s changed since version %d", id, version))
	}

	r.tracker.TrackVersion(id, version+1)
	r.tracker.TrackAggregate(id, aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "orderId", id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetByTrackingID(ctx context.Context, trackingID order.TrackingID) (*order.Order, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "trackingId", trackingID.String(), "tracking_id = ?", trackingID.Bytes())
}

func (r *GormOrderRepository) first(ctx context.Context, param, key string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, translateError(err)
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackVersion(o.ID().UUID, dto.Version)
	return o, nil
}

// translateError reports serialization failures as version conflicts so the
// command is retried as a whole.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		(pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected) {
		return errs.NewVersionIsInvalidErrorWithCause("order", err)
	}
	return err
}
