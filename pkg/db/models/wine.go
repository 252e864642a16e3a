package models

import (
	"time"

	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// Wine is the abstract wine definition shared by every purchase lot.
// The de-duplication identity used by the importer is (name, category,
// vintage, region); rows are only hard-deleted together with their lots.
type Wine struct {
	ID          uint               `gorm:"column:id;primaryKey"`
	Name        string             `gorm:"column:name;size:255;not null"`
	Vintage     string             `gorm:"column:vintage;size:10"` // "NV", a 4-digit year, or "-" when unparsable
	Category    enums.WineCategory `gorm:"column:category;size:50;not null;default:other"`
	Region      *string            `gorm:"column:region;size:255"`
	Appellation *string            `gorm:"column:appellation;size:255"`
	Rating      *string            `gorm:"column:rating;size:50"`
	Note        *string            `gorm:"column:note"`
	Inventories []WineInventory    `gorm:"foreignKey:WineID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
