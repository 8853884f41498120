package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
)

type RestaurantRepository interface {
	// GetRestaurantInformation returns the restaurant with the subset of its catalog
	// named by productIDs. Unknown products are simply absent from the result.
	// An unknown restaurant yields errs.ErrObjectNotFound.
	GetRestaurantInformation(
		ctx context.Context,
		id kernel.RestaurantID,
		productIDs []kernel.ProductID,
	) (*restaurant.Restaurant, error)
}
