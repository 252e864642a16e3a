package importer

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db"
	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// Repository persists imported wines and lots.
type Repository struct {
	client *db.Client
}

// NewRepository constructs an importer repository over the shared DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// ImportRow persists one parsed workbook row: the wine definition is resolved
// by its normalized (name, category, vintage, region) identity, created when
// absent, and the lot is appended to it. Both writes share one transaction so
// a failed lot insert never leaves an orphan definition behind.
func (r *Repository) ImportRow(ctx context.Context, wine *models.Wine, lot *models.WineInventory) (*models.Wine, error) {
	var persisted *models.Wine
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		resolved, err := getOrCreateWine(tx, wine)
		if err != nil {
			return err
		}

		lot.WineID = resolved.ID
		if lot.Status == "" {
			lot.Status = enums.LotStatusInStock
		}
		if err := tx.Create(lot).Error; err != nil {
			return err
		}

		persisted = resolved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return persisted, nil
}

// getOrCreateWine folds case and trims whitespace on the lookup; stored
// values keep their display casing.
func getOrCreateWine(tx *gorm.DB, wine *models.Wine) (*models.Wine, error) {
	name := strings.ToLower(strings.TrimSpace(wine.Name))
	vintage := strings.ToLower(strings.TrimSpace(wine.Vintage))
	region := ""
	if wine.Region != nil {
		region = strings.ToLower(strings.TrimSpace(*wine.Region))
	}

	var existing models.Wine
	err := tx.
		Where("LOWER(TRIM(name)) = ?", name).
		Where("category = ?", wine.Category).
		Where("LOWER(TRIM(vintage)) = ?", vintage).
		Where("LOWER(TRIM(COALESCE(region, ''))) = ?", region).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := tx.Create(wine).Error; err != nil {
		return nil, err
	}
	return wine, nil
}
