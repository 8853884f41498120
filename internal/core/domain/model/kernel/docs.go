// Package kernel provides the shared value objects of the ordering domain.
//
// The package includes:
//   - UUID: a validated wrapper over github.com/google/uuid
//   - CustomerID, RestaurantID, OrderID, ProductID: typed identifiers so that
//     ids of different kinds cannot be mixed up at compile time
//   - Money: a non-negative amount with exact decimal arithmetic
//
// All values are immutable and their zero values are invalid; use the
// constructors and call Validate when a value comes from outside the domain.
package kernel
