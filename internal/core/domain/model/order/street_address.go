package order

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrStreetAddressIsNotConstructed = errs.NewValueIsRequiredError("street address must be created via NewStreetAddress")

// StreetAddress is the delivery destination of an order.
type StreetAddress struct {
	id         kernel.UUID
	street     string
	postalCode string
	city       string
	guard      guard.ConstructorGuard
}

// NewStreetAddress assigns a fresh id to the address. Fields are trimmed.
func NewStreetAddress(street, postalCode, city string) (StreetAddress, error) {
	return RestoreStreetAddress(kernel.NewUUID(), street, postalCode, city)
}

func RestoreStreetAddress(id kernel.UUID, street, postalCode, city string) (StreetAddress, error) {
	a := StreetAddress{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		id.Validate(),
		requireText("street", street, &a.street),
		requireText("postalCode", postalCode, &a.postalCode),
		requireText("city", city, &a.city),
	); err != nil {
		return StreetAddress{}, err
	}
	a.id = id
	return a, nil
}

func (a StreetAddress) Validate() error {
	return a.guard.Validate(ErrStreetAddressIsNotConstructed)
}

func (a StreetAddress) ID() kernel.UUID {
	return a.id
}

func (a StreetAddress) Street() string {
	return a.street
}

func (a StreetAddress) PostalCode() string {
	return a.postalCode
}

func (a StreetAddress) City() string {
	return a.city
}

// IsEqual compares the address lines and ignores the id.
func (a StreetAddress) IsEqual(other StreetAddress) bool {
	return a.street == other.street && a.postalCode == other.postalCode && a.city == other.city
}

func requireText(param, value string, dst *string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	*dst = value
	return nil
}
