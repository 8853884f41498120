package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("order item must be created via NewItem")

// ItemID numbers the items of one order starting at 1.
type ItemID int64

// Item is one ordered line. It refers back to its order by id only.
type Item struct {
	id       ItemID
	orderID  kernel.OrderID
	product  restaurant.Product
	quantity int
	price    kernel.Money
	subTotal kernel.Money
	guard    guard.ConstructorGuard
}

// NewItem creates an unnumbered item. Price consistency is checked later by
// Order.ValidateOrder, once the product has been confirmed against the catalog.
func NewItem(product restaurant.Product, quantity int, price, subTotal kernel.Money) (*Item, error) {
	item := &Item{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		item.setProduct(product),
		item.setQuantity(quantity),
		item.setPrice(price),
		item.setSubTotal(subTotal),
	); err != nil {
		return nil, err
	}
	return item, nil
}

type RestoreItemParams struct {
	ID       ItemID
	OrderID  kernel.OrderID
	Product  restaurant.Product
	Quantity int
	Price    kernel.Money
	SubTotal kernel.Money
}

// RestoreItem rebuilds a persisted item.
func RestoreItem(p RestoreItemParams) (*Item, error) {
	item, err := NewItem(p.Product, p.Quantity, p.Price, p.SubTotal)
	if err != nil {
		return nil, err
	}

	var idErr error
	if p.ID < 1 {
		idErr = errs.NewValueIsOutOfRangeError("itemId", p.ID, 1, "unbounded")
	}
	if err = errors.Join(idErr, p.OrderID.Validate()); err != nil {
		return nil, err
	}

	item.id = p.ID
	item.orderID = p.OrderID
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() ItemID {
	return i.id
}

func (i *Item) OrderID() kernel.OrderID {
	return i.orderID
}

func (i *Item) Product() restaurant.Product {
	return i.product
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) Price() kernel.Money {
	return i.price
}

func (i *Item) SubTotal() kernel.Money {
	return i.subTotal
}

func (i *Item) isAssigned() bool {
	return i.id != 0 || i.orderID.Validate() == nil
}

func (i *Item) initialize(orderID kernel.OrderID, id ItemID) {
	i.orderID = orderID
	i.id = id
}

// validatePrice returns one error per broken price rule of this item.
func (i *Item) validatePrice() error {
	var problems []error
	if !i.price.IsGreaterThanZero() {
		problems = append(problems, fmt.Errorf("price %s is not greater than zero", i.price))
	}
	if !i.price.IsEqual(i.product.Price()) {
		problems = append(problems, fmt.Errorf("price %s does not match product price %s", i.price, i.product.Price()))
	}
	if expected := i.price.Multiply(i.quantity); !i.subTotal.IsEqual(expected) {
		problems = append(problems, fmt.Errorf("subtotal %s is not %s x %d", i.subTotal, i.price, i.quantity))
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("item %d (product %s): %w", i.id, i.product.ID(), errors.Join(problems...))
}

func (i *Item) setProduct(product restaurant.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	i.product = product
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	i.price = price
	return nil
}

func (i *Item) setSubTotal(subTotal kernel.Money) error {
	if err := subTotal.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("subTotal", err)
	}
	i.subTotal = subTotal
	return nil
}
