package order

import (
	"errors"

	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/pkg/errs"
)

const maxItemQuantity = 100

// Item is a line of an order: one menu item from one restaurant with a
// quantity and the unit price captured at placement time. Prices are in
// minor currency units. Item is a value object and immutable once built.
type Item struct {
	itemID       kernel.UUID
	name         string
	unitPrice    int64
	quantity     int
	restaurantID kernel.UUID
}

// NewItem creates a validated order line.
// The unit price must be non-negative and the quantity within [1, 100].
func NewItem(itemID kernel.UUID, name string, unitPrice int64, quantity int, restaurantID kernel.UUID) (Item, error) {
	item := Item{}

	if err := errors.Join(
		item.setItemID(itemID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
		item.setRestaurantID(restaurantID),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// ItemID returns the identifier of the menu item.
func (i Item) ItemID() kernel.UUID {
	return i.itemID
}

// Name returns the display name captured at placement time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price per unit in minor currency units.
func (i Item) UnitPrice() int64 {
	return i.unitPrice
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// RestaurantID returns the restaurant this line belongs to.
func (i Item) RestaurantID() kernel.UUID {
	return i.restaurantID
}

// Subtotal returns unit price times quantity.
func (i Item) Subtotal() int64 {
	return i.unitPrice * int64(i.quantity)
}

func (i *Item) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.itemID = id
	return nil
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setUnitPrice(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("unit price")
	}
	i.unitPrice = price
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity < 1 || quantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.restaurantID = id
	return nil
}
