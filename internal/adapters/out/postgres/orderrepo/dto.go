// Package orderrepo persists order aggregates. It maps the aggregate to an
// orders row plus an order_items child table and implements the conditional
// status update that linearizes concurrent transitions.
package orderrepo

import (
	"time"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Restaurant links are stored as a text[] column; order lines live in their
// own table so queries can aggregate over them.
type OrderDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID      `gorm:"type:uuid;index"`
	RiderID         *uuid.UUID     `gorm:"type:uuid;index"`
	RestaurantIDs   pq.StringArray `gorm:"type:text[]"`
	Items           []ItemDTO      `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     int64
	Status          string `gorm:"type:varchar(32);index"`
	PaymentStatus   string `gorm:"type:varchar(16)"`
	DeliveryAddress string
	ContactNumber   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line.
type ItemDTO struct {
	ID           uint      `gorm:"primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ItemID       uuid.UUID `gorm:"type:uuid"`
	Name         string
	UnitPrice    int64
	Quantity     int
	RestaurantID uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var riderID *uuid.UUID
	if id := aggregate.RiderID(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	restaurantIDs := make(pq.StringArray, 0, len(aggregate.RestaurantIDs()))
	for _, id := range aggregate.RestaurantIDs() {
		restaurantIDs = append(restaurantIDs, id.String())
	}

	orderID := aggregate.ID().Bytes()
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:      orderID,
			ItemID:       item.ItemID().Bytes(),
			Name:         item.Name(),
			UnitPrice:    item.UnitPrice(),
			Quantity:     item.Quantity(),
			RestaurantID: item.RestaurantID().Bytes(),
		})
	}

	return OrderDTO{
		ID:              orderID,
		CustomerID:      aggregate.CustomerID().Bytes(),
		RiderID:         riderID,
		RestaurantIDs:   restaurantIDs,
		Items:           items,
		TotalAmount:     aggregate.TotalAmount(),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		DeliveryAddress: aggregate.DeliveryAddress(),
		ContactNumber:   aggregate.ContactNumber(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO back to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}
		riderID = &rID
	}

	restaurantIDs := make([]kernel.UUID, 0, len(dto.RestaurantIDs))
	for _, raw := range dto.RestaurantIDs {
		restaurantID, rErr := kernel.UUIDFromString(raw)
		if rErr != nil {
			return nil, rErr
		}
		restaurantIDs = append(restaurantIDs, restaurantID)
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, iErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if iErr != nil {
			return nil, iErr
		}
		restaurantID, iErr := kernel.UUIDFromBytes(itemDTO.RestaurantID[:])
		if iErr != nil {
			return nil, iErr
		}

		item, iErr := order.NewItem(itemID, itemDTO.Name, itemDTO.UnitPrice, itemDTO.Quantity, restaurantID)
		if iErr != nil {
			return nil, iErr
		}
		items = append(items, item)
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, customerID, restaurantIDs, riderID, items,
		status, paymentStatus,
		dto.DeliveryAddress, dto.ContactNumber,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
