package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

// ErrRestaurantIsNotActive is wrapped when an order is placed at a closed restaurant.
var ErrRestaurantIsNotActive = errors.New("restaurant is not active")

// OrderDomainService is stateless apart from its id generator and clock.
//
// Example usage:
//
//	svc := services.NewOrderDomainService(order.NewRandomIdentityGenerator(), time.Now)
//	created, err := svc.ValidateAndInitiateOrder(o, r)
//	if errors.Is(err, errs.ErrDomain) {
//	    // reject the request
//	}
type OrderDomainService struct {
	ids order.IdentityGenerator
	now func() time.Time
}

func NewOrderDomainService(ids order.IdentityGenerator, now func() time.Time) *OrderDomainService {
	if ids == nil {
		ids = order.NewRandomIdentityGenerator()
	}
	if now == nil {
		now = time.Now
	}
	return &OrderDomainService{ids: ids, now: now}
}

// ValidateAndInitiateOrder checks the order against the restaurant catalog, then
// initializes and validates it. Every offending item is reported in one error.
func (s *OrderDomainService) ValidateAndInitiateOrder(o *order.Order, r *restaurant.Restaurant) (order.CreatedEvent, error) {
	if err := errors.Join(o.Validate(), r.Validate()); err != nil {
		return order.CreatedEvent{}, err
	}

	if !r.IsActive() {
		return order.CreatedEvent{}, errs.NewDomainErrorWithCause(
			fmt.Sprintf("restaurant with id %s is currently not active", r.ID()),
			ErrRestaurantIsNotActive,
		)
	}

	if err := matchCatalog(o, r); err != nil {
		return order.CreatedEvent{}, err
	}

	if err := o.ConfirmProducts(r); err != nil {
		return order.CreatedEvent{}, err
	}
	if err := o.Initialize(s.ids); err != nil {
		return order.CreatedEvent{}, err
	}
	if err := o.ValidateOrder(); err != nil {
		return order.CreatedEvent{}, err
	}

	return order.NewCreatedEvent(o, s.now()), nil
}

func (s *OrderDomainService) PayOrder(o *order.Order) (order.PaidEvent, error) {
	if err := o.Pay(); err != nil {
		return order.PaidEvent{}, err
	}
	return order.NewPaidEvent(o, s.now()), nil
}

func (s *OrderDomainService) ApproveOrder(o *order.Order) (order.ApprovedEvent, error) {
	if err := o.Approve(); err != nil {
		return order.ApprovedEvent{}, err
	}
	return order.NewApprovedEvent(o, s.now()), nil
}

// CancelOrderPayment starts cancellation of a paid order. The returned event asks
// the payment service for a reversal.
func (s *OrderDomainService) CancelOrderPayment(o *order.Order, failureMessages []string) (order.CancelledEvent, error) {
	if err := o.InitCancel(failureMessages); err != nil {
		return order.CancelledEvent{}, err
	}
	return order.NewCancelledEvent(o, s.now()), nil
}

func (s *OrderDomainService) CancelOrder(o *order.Order, failureMessages []string) error {
	return o.Cancel(failureMessages)
}

func matchCatalog(o *order.Order, r *restaurant.Restaurant) error {
	var offending []error
	for _, item := range o.Items() {
		claimed := item.Product()
		product, ok := r.FindProduct(claimed.ID())
		switch {
		case !ok:
			offending = append(offending, fmt.Errorf("product %s is not offered", claimed.ID()))
		case !product.Available():
			offending = append(offending, fmt.Errorf("product %s is not available", claimed.ID()))
		case !item.Price().IsEqual(product.Price()):
			offending = append(offending, fmt.Errorf("product %s costs %s, not %s",
				claimed.ID(), product.Price(), item.Price()))
		}
	}
	if len(offending) == 0 {
		return nil
	}
	return errs.NewDomainErrorWithCause(
		fmt.Sprintf("%d order item(s) do not match the catalog of restaurant %s", len(offending), r.ID()),
		errors.Join(offending...),
	)
}
