package order

import "ordering/internal/core/domain/model/kernel"

// TrackingID is the customer-facing handle of an order. The HTTP API only ever
// exposes this id; the order id travels between saga participants.
type TrackingID struct{ kernel.UUID }

func NewTrackingID(id kernel.UUID) TrackingID {
	return TrackingID{UUID: id}
}

// TrackingIDFromString parses a tracking id received from a client.
func TrackingIDFromString(s string) (TrackingID, error) {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return TrackingID{}, err
	}
	return TrackingID{UUID: id}, nil
}
