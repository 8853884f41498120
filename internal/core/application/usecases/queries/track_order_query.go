package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery looks up the progress of an order by the tracking id handed to
// the customer at creation time.
type TrackOrderQuery struct {
	trackingID order.TrackingID
	guard      guard.ConstructorGuard
}

func NewTrackOrderQuery(trackingID order.TrackingID) (TrackOrderQuery, error) {
	if err := trackingID.Validate(); err != nil {
		return TrackOrderQuery{}, errs.NewValueIsRequiredErrorWithCause("trackingId", err)
	}
	return TrackOrderQuery{trackingID: trackingID, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

func (q TrackOrderQuery) TrackingID() order.TrackingID {
	return q.trackingID
}

type TrackOrderQueryResponse struct {
	TrackingID      order.TrackingID
	Status          order.Status
	FailureMessages []string
}
