package restaurant

import (
	"errors"
	"strings"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrProductIsNotConstructed = errs.NewValueIsRequiredError("product must be created via NewProduct")

// Product is a catalog entry. Two products are the same product when their ids match,
// regardless of name or price.
type Product struct {
	id        kernel.ProductID
	name      string
	price     kernel.Money
	available bool
	guard     guard.ConstructorGuard
}

func NewProduct(id kernel.ProductID, name string, price kernel.Money, available bool) (Product, error) {
	p := Product{available: available, guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setPrice(price),
	); err != nil {
		return Product{}, err
	}
	return p, nil
}

// NewProductReference creates a product known only by id and claimed price, as sent
// by a client. Name and availability are filled in from the catalog later.
func NewProductReference(id kernel.ProductID, price kernel.Money) (Product, error) {
	p := Product{guard: guard.NewConstructorGuard()}
	if err := errors.Join(p.setID(id), p.setPrice(price)); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) Validate() error {
	return p.guard.Validate(ErrProductIsNotConstructed)
}

func (p Product) ID() kernel.ProductID {
	return p.id
}

func (p Product) Name() string {
	return p.name
}

func (p Product) Price() kernel.Money {
	return p.price
}

func (p Product) Available() bool {
	return p.available
}

func (p Product) IsEqual(other Product) bool {
	return p.id == other.id
}

func (p *Product) setID(id kernel.ProductID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	p.name = name
	return nil
}

func (p *Product) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productPrice", err)
	}
	p.price = price
	return nil
}
