package offers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// Repository exposes wine list persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wine list repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the list together with its items.
func (r *Repository) Create(ctx context.Context, list *models.WineList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// FindByUUID loads a list with its items and the wine behind each lot.
func (r *Repository) FindByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error) {
	var list models.WineList
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Inventory").
		Preload("Items.Inventory.Wine").
		Where("uuid = ?", id).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// FindActiveByUUID is FindByUUID restricted to non-archived lists; the client
// portal never sees archived offers.
func (r *Repository) FindActiveByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error) {
	var list models.WineList
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Inventory").
		Preload("Items.Inventory.Wine").
		Where("uuid = ? AND status <> ?", id, enums.ListStatusArchived).
		First(&list).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// List returns lists newest first using cursor pagination.
func (r *Repository) List(ctx context.Context, opts listQuery) ([]models.WineList, error) {
	query := r.db.WithContext(ctx).Model(&models.WineList{})

	if opts.cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", opts.cursor.CreatedAt, opts.cursor.CreatedAt, opts.cursor.ID)
	}

	query = query.Order("created_at DESC").Order("id DESC").Limit(opts.limit)

	var rows []models.WineList
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindItem loads one item scoped to its list.
func (r *Repository) FindItem(ctx context.Context, listID, itemID uint) (*models.WineItem, error) {
	var item models.WineItem
	err := r.db.WithContext(ctx).
		Preload("Inventory").
		Where("id = ? AND wine_list_id = ?", itemID, listID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SaveItem persists a single item row. Batch callers invoke this once per
// item so one failure never rolls back earlier rows.
func (r *Repository) SaveItem(ctx context.Context, item *models.WineItem) error {
	return r.db.WithContext(ctx).
		Model(&models.WineItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"offer_price": item.OfferPrice,
			"accept_qty":  item.AcceptQty,
		}).Error
}

// MarkSent flips the sent-to-client flag once the client has fetched the
// offer.
func (r *Repository) MarkSent(ctx context.Context, listID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.WineList{}).
		Where("id = ?", listID).
		Update("sent_to_client", true).Error
}

// SetStatus updates a single list's status.
func (r *Repository) SetStatus(ctx context.Context, listID uint, status enums.ListStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.WineList{}).
		Where("id = ?", listID).
		Update("status", status).Error
}

// UpdateStatuses applies the status to every matching list in one set-based
// update and reports how many rows changed.
func (r *Repository) UpdateStatuses(ctx context.Context, uuids []uuid.UUID, status enums.ListStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.WineList{}).
		Where("uuid IN ?", uuids).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
