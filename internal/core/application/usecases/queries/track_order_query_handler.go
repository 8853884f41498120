package queries

import (
	"context"
	"database/sql"
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler reads order progress straight from the orders table
// without loading the aggregate.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for unknown tracking ids.
func (h TrackOrderQueryHandler) Handle(ctx context.Context, query TrackOrderQuery) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var row struct {
		Status          int
		FailureMessages pq.StringArray
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			failure_messages
		FROM orders
		WHERE tracking_id = ?
	`, query.TrackingID().Bytes()).Row().Scan(&row.Status, &row.FailureMessages)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("trackingId", query.TrackingID().String())
		}
		return TrackOrderQueryResponse{}, err
	}

	status := order.Status(row.Status)
	if err = status.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var messages []string
	if len(row.FailureMessages) > 0 {
		messages = []string(row.FailureMessages)
	}

	return TrackOrderQueryResponse{
		TrackingID:      query.TrackingID(),
		Status:          status,
		FailureMessages: messages,
	}, nil
}
