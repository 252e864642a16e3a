package catalog

import (
	"bytes"
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
)

const exportSheet = "Selected Wines"

var exportHeaders = []string{
	"Name",
	"Category",
	"Vintage",
	"Region",
	"Bottle Size (cl)",
	"Price (€)",
	"Quantity",
	"Status",
	"Total (€)",
	"Source",
	"Purchase Date",
	"Location",
	"Rating",
	"Note",
}

// The staff screen renders blank optionals as an em dash; exports match it.
const blankCell = "—"

// ExportXLSX renders the selected lots as a spreadsheet attachment.
func (s *service) ExportXLSX(ctx context.Context, inventoryIDs []uint) ([]byte, error) {
	if len(inventoryIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no inventory selected")
	}

	lots, err := s.repo.FindByIDs(ctx, inventoryIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	for row, lot := range lots {
		for col, value := range exportRow(lot) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}
	return buf.Bytes(), nil
}

func exportRow(lot models.WineInventory) []any {
	name, category, vintage := "", blankCell, blankCell
	region, rating, note := blankCell, blankCell, ""
	if lot.Wine != nil {
		name = lot.Wine.Name
		category = lot.Wine.Category.Display()
		if lot.Wine.Vintage != "" {
			vintage = lot.Wine.Vintage
		}
		region = orBlank(lot.Wine.Region)
		rating = orBlank(lot.Wine.Rating)
		if lot.Wine.Note != nil {
			note = *lot.Wine.Note
		}
	}

	size := any(blankCell)
	if lot.BottleSize != nil {
		size = *lot.BottleSize
	}

	price, total := 0.0, 0.0
	if lot.PurchasePrice.Valid {
		price, _ = lot.PurchasePrice.Decimal.Float64()
		if value, ok := lot.TotalValue(); ok {
			total, _ = value.Float64()
		}
	}

	purchaseDate := blankCell
	if lot.PurchaseDate != nil {
		purchaseDate = lot.PurchaseDate.Format("2006-01-02")
	}

	return []any{
		name,
		category,
		vintage,
		region,
		size,
		price,
		lot.Qty,
		lot.Status.Display(),
		total,
		orBlank(lot.Source),
		purchaseDate,
		orBlank(lot.Location),
		rating,
		note,
	}
}

func orBlank(value *string) string {
	if value == nil || *value == "" {
		return blankCell
	}
	return *value
}

// ExportFilename is the attachment name served with the workbook.
func ExportFilename() string {
	return "selected_wines.xlsx"
}
