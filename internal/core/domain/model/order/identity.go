package order

import "ordering/internal/core/domain/model/kernel"

// IdentityGenerator hands out identifiers on Initialize.
type IdentityGenerator interface {
	NextOrderID() kernel.OrderID
	NextTrackingID() TrackingID
}

type randomIdentityGenerator struct{}

// NewRandomIdentityGenerator returns a generator backed by random UUIDs.
func NewRandomIdentityGenerator() IdentityGenerator {
	return randomIdentityGenerator{}
}

func (randomIdentityGenerator) NextOrderID() kernel.OrderID {
	return kernel.NewOrderID(kernel.NewUUID())
}

func (randomIdentityGenerator) NextTrackingID() TrackingID {
	return NewTrackingID(kernel.NewUUID())
}
