package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned for the nil UUID, which is also the zero value.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, customers, restaurants and products. It is comparable
// and can be used as a map key. The zero value is the nil UUID and is invalid.
//
// Constructors:
//   - NewUUID for identities created by this service
//   - UUIDFromString for ids received over HTTP or in broker messages
//   - UUIDFromBytes for ids read back from uuid columns
//
// Example:
//
//	orderID := kernel.NewOrderID(kernel.NewUUID())
//
//	id, err := kernel.UUIDFromString(request.TrackingId)
//	if err != nil {
//	    return err
//	}
//
// Example (reading a row):
//
//	id, err := kernel.UUIDFromBytes(dto.ID[:])
type UUID struct {
	id uuid.UUID
}

// NewUUID returns a random version 4 UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString accepts every textual form uuid.Parse does, braces and urn prefix
// included. The nil UUID is rejected.
func UUIDFromString(s string) (UUID, error) {
	return wrap(uuid.Parse(s))
}

// UUIDFromBytes reads the 16 byte form stored in uuid columns.
func UUIDFromBytes(b []byte) (UUID, error) {
	return wrap(uuid.FromBytes(b))
}

func wrap(id uuid.UUID, parseErr error) (UUID, error) {
	if parseErr != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", parseErr)
	}
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes exposes the google/uuid value for drivers and query parameters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
