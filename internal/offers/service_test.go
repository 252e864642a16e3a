package offers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
)

type stubListsRepo struct {
	list       *models.WineList
	items      map[uint]*models.WineItem
	saved      []models.WineItem
	setStatus  []enums.ListStatus
	markedSent []uint
	created    *models.WineList
	bulkCount  int64
	bulkStatus enums.ListStatus
}

func (s *stubListsRepo) Create(ctx context.Context, list *models.WineList) error {
	s.created = list
	s.list = list
	return nil
}

func (s *stubListsRepo) FindByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error) {
	if s.list == nil || s.list.UUID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.list, nil
}

func (s *stubListsRepo) FindActiveByUUID(ctx context.Context, id uuid.UUID) (*models.WineList, error) {
	if s.list == nil || s.list.UUID != id || s.list.Status == enums.ListStatusArchived {
		return nil, gorm.ErrRecordNotFound
	}
	return s.list, nil
}

func (s *stubListsRepo) List(ctx context.Context, opts listQuery) ([]models.WineList, error) {
	if s.list == nil {
		return nil, nil
	}
	return []models.WineList{*s.list}, nil
}

func (s *stubListsRepo) FindItem(ctx context.Context, listID, itemID uint) (*models.WineItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubListsRepo) SaveItem(ctx context.Context, item *models.WineItem) error {
	s.saved = append(s.saved, *item)
	return nil
}

func (s *stubListsRepo) SetStatus(ctx context.Context, listID uint, status enums.ListStatus) error {
	s.setStatus = append(s.setStatus, status)
	if s.list != nil {
		s.list.Status = status
	}
	return nil
}

func (s *stubListsRepo) MarkSent(ctx context.Context, listID uint) error {
	s.markedSent = append(s.markedSent, listID)
	if s.list != nil && s.list.ID == listID {
		s.list.SentToClient = true
	}
	return nil
}

func (s *stubListsRepo) UpdateStatuses(ctx context.Context, uuids []uuid.UUID, status enums.ListStatus) (int64, error) {
	s.bulkStatus = status
	return s.bulkCount, nil
}

type stubLotsRepo struct {
	lots map[uint]*models.WineInventory
}

func (s *stubLotsRepo) FindByID(ctx context.Context, id uint) (*models.WineInventory, error) {
	lot, ok := s.lots[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lot, nil
}

func price(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func newOfferList(status enums.ListStatus, items map[uint]*models.WineItem) *stubListsRepo {
	return &stubListsRepo{
		list: &models.WineList{
			ID:     1,
			UUID:   uuid.New(),
			Name:   "Spring offer",
			Status: status,
		},
		items: items,
	}
}

func TestSubmitAcceptancesClampsToOfferQty(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, map[uint]*models.WineItem{
		10: {ID: 10, OfferQty: 6, OfferPrice: price("120")},
	})
	svc, err := NewService(repo, &stubLotsRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	err = svc.SubmitAcceptances(context.Background(), repo.list.UUID, []AcceptanceInput{
		{ItemID: 10, AcceptQty: 99},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved item, got %d", len(repo.saved))
	}
	if got := repo.saved[0].AcceptQty; got == nil || *got != 6 {
		t.Fatalf("expected accept qty clamped to 6, got %v", got)
	}
}

func TestSubmitAcceptancesAlwaysMovesToSubmitted(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, map[uint]*models.WineItem{})
	svc, _ := NewService(repo, &stubLotsRepo{})

	// Every pair is unresolvable, yet the list still transitions.
	err := svc.SubmitAcceptances(context.Background(), repo.list.UUID, []AcceptanceInput{
		{ItemID: 404, AcceptQty: 2},
		{ItemID: 0, AcceptQty: 1},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if len(repo.setStatus) != 1 || repo.setStatus[0] != enums.ListStatusSubmitted {
		t.Fatalf("expected transition to submitted, got %v", repo.setStatus)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("expected no rows saved, got %d", len(repo.saved))
	}
}

func TestSubmitAcceptancesEmptyItemsRejected(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, nil)
	svc, _ := NewService(repo, &stubLotsRepo{})

	err := svc.SubmitAcceptances(context.Background(), repo.list.UUID, nil)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.setStatus) != 0 {
		t.Fatalf("expected no status change on empty submit")
	}
}

func TestSubmitAcceptancesStateConflictLeavesRowsUntouched(t *testing.T) {
	repo := newOfferList(enums.ListStatusSubmitted, map[uint]*models.WineItem{
		10: {ID: 10, OfferQty: 3},
	})
	svc, _ := NewService(repo, &stubLotsRepo{})

	err := svc.SubmitAcceptances(context.Background(), repo.list.UUID, []AcceptanceInput{
		{ItemID: 10, AcceptQty: 1},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("expected no rows saved after conflict, got %d", len(repo.saved))
	}
}

func TestAmendItemsFloorsPriceAtCost(t *testing.T) {
	cost := decimal.NewNullDecimal(price("80"))
	repo := newOfferList(enums.ListStatusSubmitted, map[uint]*models.WineItem{
		10: {
			ID:         10,
			OfferQty:   4,
			OfferPrice: price("100"),
			Inventory:  &models.WineInventory{PurchasePrice: cost},
		},
	})
	svc, _ := NewService(repo, &stubLotsRepo{})

	below := price("50")
	err := svc.AmendItems(context.Background(), repo.list.UUID, []AmendmentInput{
		{ItemID: 10, OfferPrice: &below},
	})
	if err != nil {
		t.Fatalf("amend: %v", err)
	}

	if len(repo.saved) != 1 {
		t.Fatalf("expected 1 saved item, got %d", len(repo.saved))
	}
	if !repo.saved[0].OfferPrice.Equal(price("80")) {
		t.Fatalf("expected price floored at 80, got %s", repo.saved[0].OfferPrice)
	}
}

func TestAmendItemsDoesNotTouchStatus(t *testing.T) {
	repo := newOfferList(enums.ListStatusConfirmed, map[uint]*models.WineItem{
		10: {ID: 10, OfferQty: 4, OfferPrice: price("100")},
	})
	svc, _ := NewService(repo, &stubLotsRepo{})

	qty := 2
	if err := svc.AmendItems(context.Background(), repo.list.UUID, []AmendmentInput{
		{ItemID: 10, AcceptQty: &qty},
	}); err != nil {
		t.Fatalf("amend: %v", err)
	}

	if len(repo.setStatus) != 0 {
		t.Fatalf("amend must not change status, got %v", repo.setStatus)
	}
	if repo.list.Status != enums.ListStatusConfirmed {
		t.Fatalf("status drifted to %s", repo.list.Status)
	}
}

func TestCreateListDefaultsPriceAndQty(t *testing.T) {
	lots := &stubLotsRepo{lots: map[uint]*models.WineInventory{
		7: {
			ID:            7,
			Qty:           12,
			PurchasePrice: decimal.NewNullDecimal(price("45.50")),
			Wine:          &models.Wine{Name: "Meursault", Vintage: "2019", Category: enums.WineCategoryWhite},
		},
	}}
	repo := &stubListsRepo{}
	svc, _ := NewService(repo, lots)

	detail, err := svc.CreateList(context.Background(), CreateListInput{
		Name: "Autumn offer",
		Items: []CreateListItemInput{
			{InventoryID: 7},
			{InventoryID: 7},   // duplicate, skipped
			{InventoryID: 999}, // missing, skipped
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if detail == nil {
		t.Fatalf("expected detail")
	}

	if repo.created == nil || len(repo.created.Items) != 1 {
		t.Fatalf("expected a single surviving item, got %+v", repo.created)
	}
	item := repo.created.Items[0]
	if item.OfferQty != 1 {
		t.Fatalf("expected default offer qty 1, got %d", item.OfferQty)
	}
	if !item.OfferPrice.Equal(price("45.50")) {
		t.Fatalf("expected price defaulted to cost, got %s", item.OfferPrice)
	}
	if repo.created.Status != enums.ListStatusCreated {
		t.Fatalf("expected created status, got %s", repo.created.Status)
	}
	if repo.created.UUID == uuid.Nil {
		t.Fatalf("expected generated uuid")
	}
}

func TestCreateListNothingSurvives(t *testing.T) {
	svc, _ := NewService(&stubListsRepo{}, &stubLotsRepo{})

	_, err := svc.CreateList(context.Background(), CreateListInput{
		Name:  "Empty offer",
		Items: []CreateListItemInput{{InventoryID: 404}},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetByUUIDArchivedReadsAsMissing(t *testing.T) {
	repo := newOfferList(enums.ListStatusArchived, nil)
	svc, _ := NewService(repo, &stubLotsRepo{})

	_, err := svc.GetByUUID(context.Background(), repo.list.UUID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for archived list, got %v", err)
	}
}

func TestGetByUUIDMarksListSentOnce(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, nil)
	svc, _ := NewService(repo, &stubLotsRepo{})

	if _, err := svc.GetByUUID(context.Background(), repo.list.UUID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.GetByUUID(context.Background(), repo.list.UUID); err != nil {
		t.Fatalf("second get: %v", err)
	}

	if len(repo.markedSent) != 1 || repo.markedSent[0] != repo.list.ID {
		t.Fatalf("expected a single mark-sent call, got %v", repo.markedSent)
	}
}

func TestGetForStaffIncludesArchived(t *testing.T) {
	repo := newOfferList(enums.ListStatusArchived, nil)
	svc, _ := NewService(repo, &stubLotsRepo{})

	detail, err := svc.GetForStaff(context.Background(), repo.list.UUID)
	if err != nil {
		t.Fatalf("get for staff: %v", err)
	}
	if detail.Status != enums.ListStatusArchived.String() {
		t.Fatalf("expected archived status, got %s", detail.Status)
	}
	if len(repo.markedSent) != 0 {
		t.Fatalf("staff read must not mark the list sent")
	}
}

func TestUpdateStatusesRejectsUnknownStatus(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, nil)
	svc, _ := NewService(repo, &stubLotsRepo{})

	_, err := svc.UpdateStatuses(context.Background(), []uuid.UUID{repo.list.UUID}, "shipped")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusesCountsRows(t *testing.T) {
	repo := newOfferList(enums.ListStatusCreated, nil)
	repo.bulkCount = 3
	svc, _ := NewService(repo, &stubLotsRepo{})

	count, err := svc.UpdateStatuses(context.Background(), []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}, "delivered")
	if err != nil {
		t.Fatalf("update statuses: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 updated, got %d", count)
	}
	if repo.bulkStatus != enums.ListStatusDelivered {
		t.Fatalf("expected delivered, got %s", repo.bulkStatus)
	}
}
