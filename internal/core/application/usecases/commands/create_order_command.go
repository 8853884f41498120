package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderItemInput is one requested line as sent by the client.
type OrderItemInput struct {
	ProductID kernel.ProductID
	Quantity  int
	Price     kernel.Money
	SubTotal  kernel.Money
}

// AddressInput is the delivery address as sent by the client.
type AddressInput struct {
	Street     string
	PostalCode string
	City       string
}

// CreateOrderCommand places a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, restaurantID, kernel.MustMoney("20.00"),
//	    []OrderItemInput{{ProductID: pizzaID, Quantity: 2, Price: kernel.MustMoney("10.00"), SubTotal: kernel.MustMoney("20.00")}},
//	    AddressInput{Street: "Main street 1", PostalCode: "10115", City: "Berlin"})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.CustomerID
	restaurantID kernel.RestaurantID
	price        kernel.Money
	items        []OrderItemInput
	address      AddressInput

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	price kernel.Money,
	items []OrderItemInput,
	address AddressInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setPrice(price),
		cmd.setItems(items),
		cmd.setAddress(address),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

func (c CreateOrderCommand) RestaurantID() kernel.RestaurantID {
	return c.restaurantID
}

func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

func (c CreateOrderCommand) Items() []OrderItemInput {
	items := make([]OrderItemInput, len(c.items))
	copy(items, c.items)
	return items
}

func (c CreateOrderCommand) Address() AddressInput {
	return c.address
}

// ProductIDs lists the distinct products of the command in request order.
func (c CreateOrderCommand) ProductIDs() []kernel.ProductID {
	seen := make(map[kernel.ProductID]struct{}, len(c.items))
	ids := make([]kernel.ProductID, 0, len(c.items))
	for _, item := range c.items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

func (c *CreateOrderCommand) setCustomerID(id kernel.CustomerID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(id kernel.RestaurantID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	c.restaurantID = id
	return nil
}

func (c *CreateOrderCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	c.price = price
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	var problems []error
	for idx, item := range items {
		if err := errors.Join(
			item.ProductID.Validate(),
			item.Price.Validate(),
			item.SubTotal.Validate(),
		); err != nil {
			problems = append(problems, fmt.Errorf("items[%d]: %w", idx, err))
		}
		if item.Quantity <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", idx), fmt.Errorf("%d is not greater than 0", item.Quantity)))
		}
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}

	c.items = make([]OrderItemInput, len(items))
	copy(c.items, items)
	return nil
}

func (c *CreateOrderCommand) setAddress(address AddressInput) error {
	var problems []error
	if strings.TrimSpace(address.Street) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("address.street"))
	}
	if strings.TrimSpace(address.PostalCode) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("address.postalCode"))
	}
	if strings.TrimSpace(address.City) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("address.city"))
	}
	if len(problems) > 0 {
		return errors.Join(problems...)
	}
	c.address = address
	return nil
}
