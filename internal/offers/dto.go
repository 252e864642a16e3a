package offers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/pagination"
)

// CreateListInput carries the offer creation payload.
type CreateListInput struct {
	Name        string
	Description *string
	Items       []CreateListItemInput
}

// CreateListItemInput selects one inventory lot for the offer. OfferQty
// defaults to 1 and OfferPrice to the lot's purchase price when omitted.
type CreateListItemInput struct {
	InventoryID uint
	OfferQty    *int
	OfferPrice  *decimal.Decimal
	Note        *string
}

// AcceptanceInput is one (item, quantity) pair from the client portal.
type AcceptanceInput struct {
	ItemID    uint
	AcceptQty int
}

// AmendmentInput is the staff-side override for one item. Nil fields are
// left untouched.
type AmendmentInput struct {
	ItemID     uint
	OfferPrice *decimal.Decimal
	AcceptQty  *int
}

// ListParams paginates the staff wine list index.
type ListParams struct {
	Limit  int
	Cursor string
}

// ListResult is one page of the staff index.
type ListResult struct {
	Items  []ListSummary
	Cursor string
}

// ListSummary is the staff index row.
type ListSummary struct {
	UUID         uuid.UUID `json:"uuid"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Status       string    `json:"status"`
	SentToClient bool      `json:"sent_to_client"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListDetail is the full offer as shown to staff and clients. Internal row
// ids appear only on items, where the portal needs them to submit quantities.
type ListDetail struct {
	UUID        uuid.UUID    `json:"uuid"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Status      string       `json:"status"`
	Items       []ItemDetail `json:"items"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ItemDetail mirrors the portal line item serialization.
type ItemDetail struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Vintage     string          `json:"vintage"`
	Category    string          `json:"category"`
	Region      *string         `json:"region"`
	Appellation *string         `json:"appellation"`
	BottleSize  *int            `json:"bottle_size"`
	OfferPrice  decimal.Decimal `json:"offer_price"`
	OfferQty    int             `json:"offer_qty"`
	AcceptQty   *int            `json:"accept_qty"`
	Note        *string         `json:"note"`
}

type listQuery struct {
	limit  int
	cursor *pagination.Cursor
}

func toListSummary(row models.WineList) ListSummary {
	return ListSummary{
		UUID:         row.UUID,
		Name:         row.Name,
		Description:  row.Description,
		Status:       row.Status.String(),
		SentToClient: row.SentToClient,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func toListDetail(list *models.WineList) *ListDetail {
	detail := &ListDetail{
		UUID:        list.UUID,
		Name:        list.Name,
		Description: list.Description,
		Status:      list.Status.String(),
		Items:       make([]ItemDetail, 0, len(list.Items)),
		CreatedAt:   list.CreatedAt,
	}
	for _, item := range list.Items {
		detail.Items = append(detail.Items, toItemDetail(item))
	}
	return detail
}

func toItemDetail(item models.WineItem) ItemDetail {
	out := ItemDetail{
		ID:         item.ID,
		OfferPrice: item.OfferPrice,
		OfferQty:   item.OfferQty,
		AcceptQty:  item.AcceptQty,
		Note:       item.Note,
	}
	if item.Inventory != nil {
		out.BottleSize = item.Inventory.BottleSize
		if item.Inventory.Wine != nil {
			wine := item.Inventory.Wine
			out.Name = wine.Name
			out.Vintage = wine.Vintage
			out.Category = wine.Category.String()
			out.Region = wine.Region
			out.Appellation = wine.Appellation
		}
	}
	return out
}
