package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// WineList is a curated offer shared with a client. The UUID is the only
// identifier ever exposed outside the staff API; knowing it grants read and
// submit access to the portal, so internal row ids must never leak.
type WineList struct {
	ID           uint             `gorm:"column:id;primaryKey"`
	UUID         uuid.UUID        `gorm:"column:uuid;type:uuid;not null;uniqueIndex"`
	Name         string           `gorm:"column:name;size:255;not null"`
	Description  *string          `gorm:"column:description"`
	Status       enums.ListStatus `gorm:"column:status;size:50;not null;default:created"`
	SentToClient bool             `gorm:"column:sent_to_client;not null;default:false"`
	Items        []WineItem       `gorm:"foreignKey:WineListID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
