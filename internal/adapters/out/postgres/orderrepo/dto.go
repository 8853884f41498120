package orderrepo

import (
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Version is bumped on every update and
// guards concurrent writers.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RestaurantID    uuid.UUID       `gorm:"type:uuid;not null"`
	Address         AddressDTO      `gorm:"embedded;embeddedPrefix:address_"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status          int             `gorm:"type:smallint;not null;index"`
	FailureMessages pq.StringArray  `gorm:"type:text[]"`
	Version         int64           `gorm:"not null;default:1"`
	Items           []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid"`
	Street     string    `gorm:"type:varchar(255);not null"`
	PostalCode string    `gorm:"type:varchar(32);not null"`
	City       string    `gorm:"type:varchar(255);not null"`
}

// ItemDTO is one row of order_items, keyed by order id and item number.
type ItemDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ID        int64           `gorm:"primaryKey;autoIncrement:false"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SubTotal  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
}

func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	items := make([]ItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			ID:        int64(item.ID()),
			ProductID: item.Product().ID().Bytes(),
			Quantity:  item.Quantity(),
			Price:     item.Price().Amount(),
			SubTotal:  item.SubTotal().Amount(),
		})
	}

	address := o.Address()
	return OrderDTO{
		ID:           orderID,
		TrackingID:   o.TrackingID().Bytes(),
		CustomerID:   o.CustomerID().Bytes(),
		RestaurantID: o.RestaurantID().Bytes(),
		Address: AddressDTO{
			ID:         address.ID().Bytes(),
			Street:     address.Street(),
			PostalCode: address.PostalCode(),
			City:       address.City(),
		},
		Price:           o.Price().Amount(),
		Status:          int(o.Status()),
		FailureMessages: pq.StringArray(o.FailureMessages()),
		Version:         1,
		Items:           items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID := kernel.NewOrderID(id)

	trackingID, err := kernel.UUIDFromBytes(dto.TrackingID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	addressID, err := kernel.UUIDFromBytes(dto.Address.ID[:])
	if err != nil {
		return nil, err
	}
	address, err := order.RestoreStreetAddress(addressID, dto.Address.Street, dto.Address.PostalCode, dto.Address.City)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(orderID, itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:              orderID,
		TrackingID:      order.NewTrackingID(trackingID),
		CustomerID:      kernel.NewCustomerID(customerID),
		RestaurantID:    kernel.NewRestaurantID(restaurantID),
		Address:         address,
		Price:           price,
		Items:           items,
		Status:          order.Status(dto.Status),
		FailureMessages: dto.FailureMessages,
	})
}

// itemToDomain restores an item with a product reference. Names and availability
// belong to the restaurant catalog and are not stored with the order.
func itemToDomain(orderID kernel.OrderID, dto ItemDTO) (*order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	subTotal, err := kernel.NewMoney(dto.SubTotal)
	if err != nil {
		return nil, err
	}
	product, err := restaurant.NewProductReference(kernel.NewProductID(productID), price)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(order.RestoreItemParams{
		ID:       order.ItemID(dto.ID),
		OrderID:  orderID,
		Product:  product,
		Quantity: dto.Quantity,
		Price:    price,
		SubTotal: subTotal,
	})
}
