package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	pkgpagination "github.com/margauxcellars/cellar-backend/pkg/pagination"
)

type catalogRepository interface {
	FindByID(ctx context.Context, id uint) (*models.WineInventory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.WineInventory, error)
	List(ctx context.Context, opts listQuery) ([]models.WineInventory, error)
	SaveWine(ctx context.Context, wine *models.Wine) error
	UpdateLot(ctx context.Context, id uint, columns map[string]any) error
}

// Service exposes the staff catalog surface: listing, bulk field edits, and
// spreadsheet export.
type Service interface {
	ListInventory(ctx context.Context, params ListParams) (*ListResult, error)
	BulkEdit(ctx context.Context, input BulkEditInput) (*BulkEditResult, error)
	ExportXLSX(ctx context.Context, inventoryIDs []uint) ([]byte, error)
}

type service struct {
	repo catalogRepository
}

// NewService builds the catalog service.
func NewService(repo catalogRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListParams paginates the inventory index.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult is one page of inventory rows.
type ListResult struct {
	Items  []LotView
	Cursor string
}

// LotView is the inventory row joined with its wine definition.
type LotView struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Vintage       string          `json:"vintage"`
	Category      string          `json:"category"`
	Region        *string         `json:"region"`
	Appellation   *string         `json:"appellation"`
	Rating        *string         `json:"rating"`
	Note          *string         `json:"note"`
	BottleSize    *int            `json:"bottle_size"`
	Qty           int             `json:"qty"`
	PurchasePrice *string         `json:"purchase_price"`
	PurchaseDate  *time.Time      `json:"purchase_date"`
	Status        string          `json:"status"`
	Source        *string         `json:"source"`
	Location      *string         `json:"location"`
}

type listQuery struct {
	limit  int
	cursor *pkgpagination.KeyCursor
}

func (s *service) ListInventory(ctx context.Context, params ListParams) (*ListResult, error) {
	limit := pkgpagination.NormalizeLimit(params.Limit)
	query := listQuery{limit: pkgpagination.LimitWithBuffer(params.Limit)}
	if params.Cursor != "" {
		cursor, err := pkgpagination.ParseKeyCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.cursor = cursor
	}

	lots, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}

	nextCursor := ""
	if len(lots) > limit {
		lots = lots[:limit]
		last := lots[limit-1]
		name := ""
		if last.Wine != nil {
			name = last.Wine.Name
		}
		nextCursor = pkgpagination.EncodeKeyCursor(pkgpagination.KeyCursor{
			Key: name,
			ID:  last.ID,
		})
	}

	items := make([]LotView, len(lots))
	for i, lot := range lots {
		items[i] = toLotView(lot)
	}
	return &ListResult{Items: items, Cursor: nextCursor}, nil
}

func toLotView(lot models.WineInventory) LotView {
	view := LotView{
		ID:           lot.ID,
		BottleSize:   lot.BottleSize,
		Qty:          lot.Qty,
		PurchaseDate: lot.PurchaseDate,
		Status:       lot.Status.String(),
		Source:       lot.Source,
		Location:     lot.Location,
	}
	if lot.PurchasePrice.Valid {
		price := lot.PurchasePrice.Decimal.StringFixed(2)
		view.PurchasePrice = &price
	}
	if lot.Wine != nil {
		view.Name = lot.Wine.Name
		view.Vintage = lot.Wine.Vintage
		view.Category = lot.Wine.Category.String()
		view.Region = lot.Wine.Region
		view.Appellation = lot.Wine.Appellation
		view.Rating = lot.Wine.Rating
		view.Note = lot.Wine.Note
	}
	return view
}

// BulkEditInput carries sparse edits for a selection of lots. Raw string
// values mirror the staff form; numeric and enum fields that fail to parse
// are dropped individually rather than failing the batch.
type BulkEditInput struct {
	InventoryIDs []uint

	// Definition-level fields mutate the shared wine.
	Name     *string
	Vintage  *string
	Category *string
	Region   *string

	// Lot-level fields mutate each selected lot.
	BottleSize    *string
	Status        *string
	Qty           *string
	PurchasePrice *string
}

// BulkEditResult reports how many lots were touched. Changed is false when
// every supplied field was dropped or absent.
type BulkEditResult struct {
	Updated int  `json:"updated"`
	Changed bool `json:"changed"`
}

type definitionEdits struct {
	name     *string
	vintage  *string
	category *enums.WineCategory
	region   *string
}

func (e definitionEdits) empty() bool {
	return e.name == nil && e.vintage == nil && e.category == nil && e.region == nil
}

// BulkEdit partitions the supplied fields between the wine definition and the
// lot, then walks the selection applying both sets. A wine shared by several
// selected lots is written once per lot, matching the screen's semantics.
func (s *service) BulkEdit(ctx context.Context, input BulkEditInput) (*BulkEditResult, error) {
	if len(input.InventoryIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no inventory selected")
	}

	defEdits := parseDefinitionEdits(input)
	lotColumns := parseLotColumns(input)

	if defEdits.empty() && len(lotColumns) == 0 {
		return &BulkEditResult{Updated: 0, Changed: false}, nil
	}

	updated := 0
	for _, id := range input.InventoryIDs {
		lot, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup inventory lot")
		}

		if !defEdits.empty() && lot.Wine != nil {
			applyDefinitionEdits(lot.Wine, defEdits)
			if err := s.repo.SaveWine(ctx, lot.Wine); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save wine")
			}
		}

		if len(lotColumns) > 0 {
			if err := s.repo.UpdateLot(ctx, lot.ID, lotColumns); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory lot")
			}
		}

		updated++
	}

	return &BulkEditResult{Updated: updated, Changed: true}, nil
}

func parseDefinitionEdits(input BulkEditInput) definitionEdits {
	edits := definitionEdits{}
	if input.Name != nil && *input.Name != "" {
		edits.name = input.Name
	}
	if input.Vintage != nil && *input.Vintage != "" {
		edits.vintage = input.Vintage
	}
	if input.Category != nil && *input.Category != "" {
		if category, err := enums.ParseWineCategory(*input.Category); err == nil {
			edits.category = &category
		}
	}
	if input.Region != nil && *input.Region != "" {
		edits.region = input.Region
	}
	return edits
}

func parseLotColumns(input BulkEditInput) map[string]any {
	columns := map[string]any{}
	if input.BottleSize != nil && *input.BottleSize != "" {
		if size, err := strconv.Atoi(*input.BottleSize); err == nil {
			columns["bottle_size"] = size
		}
	}
	if input.Qty != nil && *input.Qty != "" {
		if qty, err := strconv.Atoi(*input.Qty); err == nil && qty >= 0 {
			columns["qty"] = qty
		}
	}
	if input.PurchasePrice != nil && *input.PurchasePrice != "" {
		if price, err := decimal.NewFromString(*input.PurchasePrice); err == nil {
			columns["purchase_price"] = price
		}
	}
	if input.Status != nil && *input.Status != "" {
		if status, err := enums.ParseLotStatus(*input.Status); err == nil {
			columns["status"] = status
		}
	}
	return columns
}

func applyDefinitionEdits(wine *models.Wine, edits definitionEdits) {
	if edits.name != nil {
		wine.Name = *edits.name
	}
	if edits.vintage != nil {
		wine.Vintage = *edits.vintage
	}
	if edits.category != nil {
		wine.Category = *edits.category
	}
	if edits.region != nil {
		wine.Region = edits.region
	}
}
