package restaurant

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var ErrRestaurantIsNotConstructed = errors.New("restaurant must be created via NewRestaurant")

// Restaurant is the subset of a restaurant the order service reads: its active flag
// and the products requested by one order.
type Restaurant struct {
	id       kernel.RestaurantID
	active   bool
	products map[kernel.ProductID]Product

	isConstructed bool
}

func NewRestaurant(id kernel.RestaurantID, active bool, products []Product) (*Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}

	r := &Restaurant{
		id:            id,
		active:        active,
		products:      make(map[kernel.ProductID]Product, len(products)),
		isConstructed: true,
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.products[p.ID()]; dup {
			continue
		}
		r.products[p.ID()] = p
	}

	return r, nil
}

func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

func (r *Restaurant) ID() kernel.RestaurantID {
	return r.id
}

func (r *Restaurant) IsActive() bool {
	return r.active
}

// FindProduct looks a product up by id.
func (r *Restaurant) FindProduct(id kernel.ProductID) (Product, bool) {
	p, ok := r.products[id]
	return p, ok
}
