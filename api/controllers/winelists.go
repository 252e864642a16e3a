package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/api/validators"
	"github.com/margauxcellars/cellar-backend/internal/offers"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// WineListIndex serves the paginated staff wine list index.
func WineListIndex(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListLists(r.Context(), offers.ListParams{
			Limit:  params.Limit,
			Cursor: params.Cursor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createListItem struct {
	InventoryID uint    `json:"inventory_id" validate:"required"`
	OfferQty    *int    `json:"offer_qty"`
	OfferPrice  *string `json:"offer_price"`
	Note        *string `json:"note"`
}

type createListRequest struct {
	Name        string           `json:"name" validate:"required"`
	Description *string          `json:"description"`
	Items       []createListItem `json:"items" validate:"required,min=1"`
}

// WineListCreate assembles a new offer from selected inventory lots.
func WineListCreate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createListRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := offers.CreateListInput{
			Name:        body.Name,
			Description: body.Description,
			Items:       make([]offers.CreateListItemInput, 0, len(body.Items)),
		}
		for _, item := range body.Items {
			candidate := offers.CreateListItemInput{
				InventoryID: item.InventoryID,
				OfferQty:    item.OfferQty,
				Note:        item.Note,
			}
			if item.OfferPrice != nil {
				price, err := decimal.NewFromString(*item.OfferPrice)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer price"))
					return
				}
				candidate.OfferPrice = &price
			}
			input.Items = append(input.Items, candidate)
		}

		detail, err := svc.CreateList(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, detail)
	}
}

// WineListDetail serves one offer by its UUID for the staff console.
func WineListDetail(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "uuid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetForStaff(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

type amendItem struct {
	ItemID     uint    `json:"item_id" validate:"required"`
	OfferPrice *string `json:"offer_price"`
	AcceptQty  *int    `json:"accept_qty"`
}

type amendRequest struct {
	Items []amendItem `json:"items" validate:"required,min=1"`
}

// WineListAmend applies staff price and quantity overrides to an offer.
func WineListAmend(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "uuid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body amendRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		amendments := make([]offers.AmendmentInput, 0, len(body.Items))
		for _, item := range body.Items {
			amendment := offers.AmendmentInput{
				ItemID:    item.ItemID,
				AcceptQty: item.AcceptQty,
			}
			if item.OfferPrice != nil {
				price, err := decimal.NewFromString(*item.OfferPrice)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer price"))
					return
				}
				amendment.OfferPrice = &price
			}
			amendments = append(amendments, amendment)
		}

		if err := svc.AmendItems(r.Context(), id, amendments); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetForStaff(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

type statusUpdateRequest struct {
	UUIDs  []string `json:"uuids" validate:"required,min=1"`
	Status string   `json:"status" validate:"required"`
}

// WineListStatusUpdate bulk-moves the selected lists to a target status.
func WineListStatusUpdate(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body statusUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := parseUUIDs(body.UUIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		count, err := svc.UpdateStatuses(r.Context(), ids, body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"updated": count})
	}
}

// WineListPDF streams the printable offer as a PDF attachment.
func WineListPDF(svc offers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(chi.URLParam(r, "uuid"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.RenderPDF(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="wine_list_`+id.String()+`.pdf"`)
		w.WriteHeader(http.StatusOK)
		w.Write(doc)
	}
}
