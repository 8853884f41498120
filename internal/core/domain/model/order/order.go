package order

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder constructor")

	// ErrOrderAlreadyInitialized is wrapped by Initialize when identifiers are already set.
	ErrOrderAlreadyInitialized = errors.New("order is already initialized")
)

// Order is the aggregate root of one customer's order at one restaurant.
//
// Invariants:
//   - the total price equals the sum of item subtotals (checked by ValidateOrder)
//   - items are owned exclusively and numbered 1..N on Initialize
//   - status changes only through Pay, Approve, InitCancel and Cancel
//   - failure messages are append-only
//
// A new order is transient: it has no id, tracking id or status until Initialize.
type Order struct {
	id              kernel.OrderID
	trackingID      TrackingID
	customerID      kernel.CustomerID
	restaurantID    kernel.RestaurantID
	address         StreetAddress
	price           kernel.Money
	items           []*Item
	status          Status
	failureMessages []string

	isConstructed bool
}

// NewOrder builds a transient order from a client request.
//
// Example:
//
//	item, _ := order.NewItem(product, 2, kernel.MustMoney("10.00"), kernel.MustMoney("20.00"))
//	o, err := order.NewOrder(customerID, restaurantID, address, kernel.MustMoney("20.00"), []*order.Item{item})
func NewOrder(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	address StreetAddress,
	price kernel.Money,
	items []*Item,
) (*Order, error) {
	o, err := newOrder(customerID, restaurantID, address, price, items)
	if err != nil {
		return nil, err
	}
	if err = o.checkItemsUnassigned(); err != nil {
		return nil, err
	}
	return o, nil
}

func newOrder(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	address StreetAddress,
	price kernel.Money,
	items []*Item,
) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setAddress(address),
		o.setPrice(price),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	return o, nil
}

type RestoreOrderParams struct {
	ID              kernel.OrderID
	TrackingID      TrackingID
	CustomerID      kernel.CustomerID
	RestaurantID    kernel.RestaurantID
	Address         StreetAddress
	Price           kernel.Money
	Items           []*Item
	Status          Status
	FailureMessages []string
}

// RestoreOrder rebuilds a persisted order. Items must already carry the order id.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	o, err := newOrder(p.CustomerID, p.RestaurantID, p.Address, p.Price, p.Items)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(
		p.ID.Validate(),
		p.TrackingID.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range p.Items {
		if item.OrderID() != p.ID {
			return nil, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item %d belongs to order %s", item.ID(), item.OrderID()))
		}
	}

	o.id = p.ID
	o.trackingID = p.TrackingID
	o.status = p.Status
	o.failureMessages = nonBlank(p.FailureMessages)
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsInitialized reports whether Initialize has assigned identifiers.
func (o *Order) IsInitialized() bool {
	return o.id.Validate() == nil
}

func (o *Order) ID() kernel.OrderID {
	return o.id
}

func (o *Order) TrackingID() TrackingID {
	return o.trackingID
}

func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

func (o *Order) RestaurantID() kernel.RestaurantID {
	return o.restaurantID
}

func (o *Order) Address() StreetAddress {
	return o.address
}

func (o *Order) Price() kernel.Money {
	return o.price
}

func (o *Order) Status() Status {
	return o.status
}

// Items returns the items in insertion order. The slice is a copy.
func (o *Order) Items() []*Item {
	items := make([]*Item, len(o.items))
	copy(items, o.items)
	return items
}

// FailureMessages returns a copy of the accumulated messages.
func (o *Order) FailureMessages() []string {
	if o.failureMessages == nil {
		return nil
	}
	msgs := make([]string, len(o.failureMessages))
	copy(msgs, o.failureMessages)
	return msgs
}

// ConfirmProducts replaces every item's product with the catalog entry of the
// restaurant. It is only allowed before Initialize.
func (o *Order) ConfirmProducts(r *restaurant.Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if o.IsInitialized() {
		return errs.NewDomainErrorWithCause("products can only be confirmed before initialization", ErrOrderAlreadyInitialized)
	}

	confirmed := make([]restaurant.Product, len(o.items))
	var missing []error
	for idx, item := range o.items {
		p, ok := r.FindProduct(item.Product().ID())
		if !ok {
			missing = append(missing, fmt.Errorf("product %s is not in the catalog", item.Product().ID()))
			continue
		}
		confirmed[idx] = p
	}
	if len(missing) > 0 {
		return errs.NewDomainErrorWithCause("could not confirm products", errors.Join(missing...))
	}

	for idx, item := range o.items {
		item.product = confirmed[idx]
	}
	return nil
}

// Initialize assigns the order id, tracking id and PENDING status and numbers the
// items from 1 in insertion order. A second call fails and keeps all identifiers.
func (o *Order) Initialize(gen IdentityGenerator) error {
	if o.IsInitialized() || o.status != Unknown {
		return errs.NewDomainErrorWithCause("order is not in correct state for initialization", ErrOrderAlreadyInitialized)
	}
	if err := o.checkItemsUnassigned(); err != nil {
		return errs.NewDomainErrorWithCause("order items were taken by another order", err)
	}

	o.id = gen.NextOrderID()
	o.trackingID = gen.NextTrackingID()
	o.status = Pending
	for idx, item := range o.items {
		item.initialize(o.id, ItemID(idx+1))
	}
	return nil
}

// ValidateOrder checks a freshly initialized order: PENDING state, a positive
// total, valid items and a total equal to the sum of subtotals.
func (o *Order) ValidateOrder() error {
	if !o.IsInitialized() || o.status != Pending {
		return errs.NewDomainError("order is not in correct state for validation")
	}

	if !o.price.IsGreaterThanZero() {
		return errs.NewDomainError("total price must be greater than zero")
	}

	var itemProblems []error
	itemsTotal := kernel.ZeroMoney()
	for _, item := range o.items {
		if err := item.validatePrice(); err != nil {
			itemProblems = append(itemProblems, err)
		}
		itemsTotal = itemsTotal.Add(item.SubTotal())
	}
	if len(itemProblems) > 0 {
		return errs.NewDomainErrorWithCause("order item price is not valid", errors.Join(itemProblems...))
	}

	if !itemsTotal.IsEqual(o.price) {
		return errs.NewDomainError(fmt.Sprintf(
			"total price %s is not equal to order items total %s", o.price, itemsTotal))
	}
	return nil
}

func (o *Order) Pay() error {
	return o.transition(o.status.Pay)
}

func (o *Order) Approve() error {
	return o.transition(o.status.Approve)
}

// InitCancel moves a paid order to CANCELLING and records why.
func (o *Order) InitCancel(failureMessages []string) error {
	if err := o.transition(o.status.InitCancel); err != nil {
		return err
	}
	o.updateFailureMessages(failureMessages)
	return nil
}

// Cancel moves a PENDING or CANCELLING order to CANCELLED and records why.
func (o *Order) Cancel(failureMessages []string) error {
	if err := o.transition(o.status.Cancel); err != nil {
		return err
	}
	o.updateFailureMessages(failureMessages)
	return nil
}

func (o *Order) transition(next func() (Status, error)) error {
	status, err := next()
	if err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) updateFailureMessages(msgs []string) {
	filtered := nonBlank(msgs)
	if o.failureMessages == nil {
		o.failureMessages = filtered
		return
	}
	o.failureMessages = append(o.failureMessages, filtered...)
}

func (o *Order) setCustomerID(id kernel.CustomerID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.RestaurantID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("restaurantId", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setAddress(address StreetAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("price", err)
	}
	o.price = price
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	seen := make(map[*Item]struct{}, len(items))
	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item]; dup {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item at position %d is listed more than once", idx+1))
		}
		seen[item] = struct{}{}
	}
	o.items = make([]*Item, len(items))
	copy(o.items, items)
	return nil
}

// checkItemsUnassigned rejects items that an initialized order already numbered.
func (o *Order) checkItemsUnassigned() error {
	for idx, item := range o.items {
		if item.isAssigned() {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("item at position %d belongs to order %s", idx+1, item.OrderID()))
		}
	}
	return nil
}

func nonBlank(msgs []string) []string {
	if msgs == nil {
		return nil
	}
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m) != "" {
			out = append(out, m)
		}
	}
	return out
}
