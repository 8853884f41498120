package kernel

// CustomerID identifies the ordering party.
type CustomerID struct{ UUID }

// RestaurantID identifies the restaurant an order is placed at.
type RestaurantID struct{ UUID }

// OrderID identifies an order aggregate.
type OrderID struct{ UUID }

// ProductID identifies a catalog product of a restaurant.
type ProductID struct{ UUID }

func NewCustomerID(id UUID) CustomerID {
	return CustomerID{UUID: id}
}

func NewRestaurantID(id UUID) RestaurantID {
	return RestaurantID{UUID: id}
}

func NewOrderID(id UUID) OrderID {
	return OrderID{UUID: id}
}

func NewProductID(id UUID) ProductID {
	return ProductID{UUID: id}
}
