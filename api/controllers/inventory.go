package controllers

import (
	"net/http"

	"github.com/margauxcellars/cellar-backend/api/responses"
	"github.com/margauxcellars/cellar-backend/api/validators"
	"github.com/margauxcellars/cellar-backend/internal/catalog"
	"github.com/margauxcellars/cellar-backend/internal/importer"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
)

// maxImportSize caps uploaded workbooks at 20 MiB.
const maxImportSize = 20 << 20

// InventoryList serves the paginated staff inventory index.
func InventoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListInventory(r.Context(), catalog.ListParams{
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

type inventorySelection struct {
	InventoryIDs []uint `json:"inventory_ids" validate:"required,min=1"`
}

// InventoryExport streams the selected lots as an xlsx attachment.
func InventoryExport(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body inventorySelection
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		workbook, err := svc.ExportXLSX(r.Context(), body.InventoryIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+catalog.ExportFilename()+`"`)
		w.WriteHeader(http.StatusOK)
		w.Write(workbook)
	}
}

type bulkEditRequest struct {
	InventoryIDs []uint `json:"inventory_ids" validate:"required,min=1"`

	Name          *string `json:"name"`
	Vintage       *string `json:"vintage"`
	Category      *string `json:"category"`
	Region        *string `json:"region"`
	BottleSize    *string `json:"bottle_size"`
	Status        *string `json:"status"`
	Qty           *string `json:"qty"`
	PurchasePrice *string `json:"purchase_price"`
}

// InventoryBulkEdit applies sparse field edits across a selection of lots.
func InventoryBulkEdit(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body bulkEditRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.BulkEdit(r.Context(), catalog.BulkEditInput{
			InventoryIDs:  body.InventoryIDs,
			Name:          body.Name,
			Vintage:       body.Vintage,
			Category:      body.Category,
			Region:        body.Region,
			BottleSize:    body.BottleSize,
			Status:        body.Status,
			Qty:           body.Qty,
			PurchasePrice: body.PurchasePrice,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// InventoryImport ingests a multipart workbook upload into the catalog.
func InventoryImport(imp *importer.Importer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if imp == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "importer unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := r.ParseMultipartForm(maxImportSize); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, _, err := r.FormFile("workbook")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "workbook file is required"))
			return
		}
		defer file.Close()

		summary, err := imp.Run(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable workbook"))
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
