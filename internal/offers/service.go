package offers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db"
	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	pkgpagination "github.com/margauxcellars/cellar-backend/pkg/pagination"
)

type listsRepository interface {
	Create(ctx context.Context, list *models.WineList) error
	FindByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error)
	FindActiveByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error)
	List(ctx context.Context, opts listQuery) ([]models.WineList, error)
	FindItem(ctx context.Context, listID, itemID uint) (*models.WineItem, error)
	SaveItem(ctx context.Context, item *models.WineItem) error
	SetStatus(ctx context.Context, listID uint, status enums.ListStatus) error
	MarkSent(ctx context.Context, listID uint) error
	UpdateStatuses(ctx context.Context, uuids []uuid.UUID, status enums.ListStatus) (int64, error)
}

type lotsRepository interface {
	FindByID(ctx context.Context, id uint) (*models.WineInventory, error)
}

// Service exposes offer creation, client acceptance, staff amendment, and
// lifecycle management for wine lists.
type Service interface {
	CreateList(ctx context.Context, input CreateListInput) (*ListDetail, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*ListDetail, error)
	GetForStaff(ctx context.Context, id uuid.UUID) (*ListDetail, error)
	ListLists(ctx context.Context, params ListParams) (*ListResult, error)
	SubmitAcceptances(ctx context.Context, id uuid.UUID, items []AcceptanceInput) error
	AmendItems(ctx context.Context, id uuid.UUID, items []AmendmentInput) error
	UpdateStatuses(ctx context.Context, uuids []uuid.UUID, status string) (int64, error)
	RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type service struct {
	repo listsRepository
	lots lotsRepository
}

// NewService builds the offer service backed by the provided repositories.
func NewService(repo listsRepository, lots lotsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wine list repository required")
	}
	if lots == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, lots: lots}, nil
}

// CreateList assembles a new offer. Unresolvable lots are skipped best-effort;
// the call only fails when nothing at all survives the filter.
func (s *service) CreateList(ctx context.Context, input CreateListInput) (*ListDetail, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	seen := make(map[uint]bool, len(input.Items))
	items := make([]models.WineItem, 0, len(input.Items))
	for _, candidate := range input.Items {
		if candidate.InventoryID == 0 || seen[candidate.InventoryID] {
			continue
		}

		lot, err := s.lots.FindByID(ctx, candidate.InventoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup inventory lot")
		}
		seen[candidate.InventoryID] = true

		qty := 1
		if candidate.OfferQty != nil && *candidate.OfferQty > 0 {
			qty = *candidate.OfferQty
		}

		price := lot.PurchasePrice.Decimal
		if candidate.OfferPrice != nil {
			price = *candidate.OfferPrice
		}

		items = append(items, models.WineItem{
			InventoryID: lot.ID,
			OfferPrice:  price,
			OfferQty:    qty,
			Note:        candidate.Note,
		})
	}

	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no items selected")
	}

	list := &models.WineList{
		UUID:        uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Status:      enums.ListStatusCreated,
		Items:       items,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		if db.IsUniqueViolation(err, "idx_wine_items_list_lot") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "lot already on this list")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wine list")
	}

	// Reload so item details carry the wine definitions.
	created, err := s.repo.FindByUUID(ctx, list.UUID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wine list")
	}
	return toListDetail(created), nil
}

// GetByUUID returns the portal view of a list. Archived lists read as
// missing. The first successful fetch flips the sent-to-client flag so staff
// can see the client has opened the offer.
func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*ListDetail, error) {
	list, err := s.repo.FindActiveByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine list")
	}

	if !list.SentToClient {
		if err := s.repo.MarkSent(ctx, list.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark wine list sent")
		}
		list.SentToClient = true
	}
	return toListDetail(list), nil
}

// GetForStaff returns a list for the staff console. Unlike the portal read it
// includes archived lists and leaves the sent-to-client flag alone.
func (s *service) GetForStaff(ctx context.Context, id uuid.UUID) (*ListDetail, error) {
	list, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine list")
	}
	return toListDetail(list), nil
}

func (s *service) ListLists(ctx context.Context, params ListParams) (*ListResult, error) {
	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{limit: pkgpagination.LimitWithBuffer(params.Limit)}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wine lists")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		nextCursor = pkgpagination.EncodeCursor(pkgpagination.Cursor{
			CreatedAt: rows[limit-1].CreatedAt,
			ID:        rows[limit-1].ID,
		})
	}

	items := make([]ListSummary, len(rows))
	for i, row := range rows {
		items[i] = toListSummary(row)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

// SubmitAcceptances applies client-chosen quantities. Each accepted quantity
// is clamped to the offered quantity; invalid pairs are dropped without
// failing the batch. The list always moves to "submitted" afterwards, even
// when every pair was skipped.
func (s *service) SubmitAcceptances(ctx context.Context, id uuid.UUID, items []AcceptanceInput) error {
	list, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine list")
	}

	if list.Status != enums.ListStatusCreated {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "wine list has already been submitted")
	}
	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no items provided")
	}

	for _, pair := range items {
		if pair.ItemID == 0 || pair.AcceptQty < 0 {
			continue
		}

		item, err := s.repo.FindItem(ctx, list.ID, pair.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine item")
		}

		accepted := pair.AcceptQty
		if accepted > item.OfferQty {
			accepted = item.OfferQty
		}
		item.AcceptQty = &accepted

		// Rows persist independently: a failure here leaves prior rows committed.
		if err := s.repo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wine item")
		}
	}

	if err := s.repo.SetStatus(ctx, list.ID, enums.ListStatusSubmitted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wine list status")
	}
	return nil
}

// AmendItems applies staff price and quantity overrides. Offer prices are
// floored at the lot's purchase price so a sale never dips below cost. The
// list's status is left untouched.
func (s *service) AmendItems(ctx context.Context, id uuid.UUID, items []AmendmentInput) error {
	list, err := s.repo.FindByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine list")
	}

	if len(items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no items provided")
	}

	for _, amendment := range items {
		if amendment.ItemID == 0 {
			continue
		}

		item, err := s.repo.FindItem(ctx, list.ID, amendment.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine item")
		}

		if amendment.OfferPrice != nil {
			price := *amendment.OfferPrice
			if item.Inventory != nil && item.Inventory.PurchasePrice.Valid {
				if cost := item.Inventory.PurchasePrice.Decimal; price.LessThan(cost) {
					price = cost
				}
			}
			item.OfferPrice = price
		}

		if amendment.AcceptQty != nil && *amendment.AcceptQty >= 0 {
			accepted := *amendment.AcceptQty
			if accepted > item.OfferQty {
				accepted = item.OfferQty
			}
			item.AcceptQty = &accepted
		}

		if err := s.repo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wine item")
		}
	}
	return nil
}

// UpdateStatuses bulk-moves lists to the target status. Any status can reach
// any other; unknown UUIDs are ignored rather than reported.
func (s *service) UpdateStatuses(ctx context.Context, uuids []uuid.UUID, status string) (int64, error) {
	if len(uuids) == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "no wine lists selected")
	}

	parsed, err := enums.ParseListStatus(status)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	count, err := s.repo.UpdateStatuses(ctx, uuids, parsed)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wine list statuses")
	}
	return count, nil
}

// RenderPDF produces the printable offer table.
func (s *service) RenderPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	list, err := s.repo.FindActiveByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "wine list not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup wine list")
	}

	pdf, err := renderListPDF(list)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render pdf")
	}
	return pdf, nil
}
