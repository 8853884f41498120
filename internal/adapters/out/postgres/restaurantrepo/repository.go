// Package restaurantrepo reads restaurants and their catalog. Both tables are
// replicas maintained by the restaurant service; the order service never writes them.
package restaurantrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RestaurantDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Active bool      `gorm:"not null"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO is a catalog entry. The same product id may be offered by several
// restaurants at different prices.
type ProductDTO struct {
	RestaurantID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Available    bool            `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "restaurant_products"
}

type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) GetRestaurantInformation(
	ctx context.Context,
	id kernel.RestaurantID,
	productIDs []kernel.ProductID,
) (*restaurant.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurantId", id.String())
		}
		return nil, err
	}

	products := make([]restaurant.Product, 0, len(productIDs))
	if len(productIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(productIDs))
		for _, productID := range productIDs {
			ids = append(ids, productID.Bytes())
		}

		var dtos []ProductDTO
		if err := r.db.WithContext(ctx).
			Where("restaurant_id = ? AND id IN ?", dto.ID, ids).
			Order("id").
			Find(&dtos).Error; err != nil {
			return nil, err
		}

		for _, p := range dtos {
			product, err := productToDomain(p)
			if err != nil {
				return nil, err
			}
			products = append(products, product)
		}
	}

	return restaurant.NewRestaurant(id, dto.Active, products)
}

func productToDomain(dto ProductDTO) (restaurant.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return restaurant.Product{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return restaurant.Product{}, err
	}
	return restaurant.NewProduct(kernel.NewProductID(id), dto.Name, price, dto.Available)
}
