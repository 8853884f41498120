// Package customerrepo reads the customers known to the order service. The table is
// a replica kept up to date by the customer service.
package customerrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.CustomerID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customerId", id.String())
		}
		return nil, err
	}

	return customer.NewCustomer(id)
}
