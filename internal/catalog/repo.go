package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations over wines and lots.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads one lot with its wine definition.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.WineInventory, error) {
	var lot models.WineInventory
	err := r.db.WithContext(ctx).Preload("Wine").First(&lot, id).Error
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

// FindByIDs loads the selected lots with their wine definitions, ordered by
// wine name the way the staff inventory screen shows them.
func (r *Repository) FindByIDs(ctx context.Context, ids []uint) ([]models.WineInventory, error) {
	var lots []models.WineInventory
	err := r.db.WithContext(ctx).
		Preload("Wine").
		Joins("JOIN wines ON wines.id = wine_inventories.wine_id").
		Where("wine_inventories.id IN ?", ids).
		Order("wines.name").
		Find(&lots).Error
	if err != nil {
		return nil, err
	}
	return lots, nil
}

// List returns lots ordered by wine name, the way the staff inventory screen
// shows them, with cursor pagination over (wines.name, lot id).
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.WineInventory, error) {
	query := r.db.WithContext(ctx).
		Model(&models.WineInventory{}).
		Preload("Wine").
		Joins("JOIN wines ON wines.id = wine_inventories.wine_id")

	if opts.cursor != nil {
		query = query.Where(
			"(wines.name > ?) OR (wines.name = ? AND wine_inventories.id > ?)",
			opts.cursor.Key, opts.cursor.Key, opts.cursor.ID,
		)
	}

	query = query.Order("wines.name").Order("wine_inventories.id").Limit(opts.limit)

	var lots []models.WineInventory
	if err := query.Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// SaveWine persists definition-level edits.
func (r *Repository) SaveWine(ctx context.Context, wine *models.Wine) error {
	return r.db.WithContext(ctx).Save(wine).Error
}

// UpdateLot applies the sparse lot-level column set to one lot.
func (r *Repository) UpdateLot(ctx context.Context, id uint, columns map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.WineInventory{}).
		Where("id = ?", id).
		Updates(columns).Error
}
