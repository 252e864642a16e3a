package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// WineInventory is one physical purchase lot of a wine: a batch bought at a
// given bottle size and price. Offer items reference lots without owning
// them, so a lot with offer items cannot be deleted.
type WineInventory struct {
	ID            uint                `gorm:"column:id;primaryKey"`
	WineID        uint                `gorm:"column:wine_id;not null;index"`
	Wine          *Wine               `gorm:"foreignKey:WineID"`
	BottleSize    *int                `gorm:"column:bottle_size"` // cl, e.g. 75
	Qty           int                 `gorm:"column:qty;not null;default:0;check:qty >= 0"`
	PurchasePrice decimal.NullDecimal `gorm:"column:purchase_price;type:numeric(12,2)"`
	PurchaseDate  *time.Time          `gorm:"column:purchase_date;type:date"`
	Status        enums.LotStatus     `gorm:"column:status;size:50;not null;default:in_stock"`
	Source        *string             `gorm:"column:source;size:255"`
	Location      *string             `gorm:"column:location;size:255"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TotalValue returns purchase price times quantity, or false when the lot has
// no recorded price.
func (i WineInventory) TotalValue() (decimal.Decimal, bool) {
	if !i.PurchasePrice.Valid {
		return decimal.Zero, false
	}
	return i.PurchasePrice.Decimal.Mul(decimal.NewFromInt(int64(i.Qty))), true
}
