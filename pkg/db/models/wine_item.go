package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WineItem is one line of an offer, binding an inventory lot to a wine list.
// A lot appears at most once per list. AcceptQty is nil until the client or
// staff confirms a quantity; once set it never exceeds OfferQty.
type WineItem struct {
	ID          uint            `gorm:"column:id;primaryKey"`
	WineListID  uint            `gorm:"column:wine_list_id;not null;uniqueIndex:idx_wine_items_list_lot"`
	InventoryID uint            `gorm:"column:inventory_id;not null;uniqueIndex:idx_wine_items_list_lot"`
	Inventory   *WineInventory  `gorm:"foreignKey:InventoryID;constraint:OnDelete:RESTRICT"`
	OfferPrice  decimal.Decimal `gorm:"column:offer_price;type:numeric(12,2);not null"`
	OfferQty    int             `gorm:"column:offer_qty;not null;default:1;check:offer_qty >= 0"`
	AcceptQty   *int            `gorm:"column:accept_qty"`
	Note        *string         `gorm:"column:note"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// AcceptedQty resolves the effective accepted quantity: the stored value when
// present, otherwise the full offered quantity.
func (i WineItem) AcceptedQty() int {
	if i.AcceptQty != nil {
		return *i.AcceptQty
	}
	return i.OfferQty
}
