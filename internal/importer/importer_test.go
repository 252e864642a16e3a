package importer

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

type stubCatalogWriter struct {
	wines  []models.Wine
	lots   []models.WineInventory
	nextID uint
}

func (s *stubCatalogWriter) ImportRow(ctx context.Context, wine *models.Wine, lot *models.WineInventory) (*models.Wine, error) {
	persisted := wine
	found := false
	for i := range s.wines {
		existing := &s.wines[i]
		sameRegion := (existing.Region == nil && wine.Region == nil) ||
			(existing.Region != nil && wine.Region != nil && *existing.Region == *wine.Region)
		if existing.Name == wine.Name && existing.Category == wine.Category &&
			existing.Vintage == wine.Vintage && sameRegion {
			persisted = existing
			found = true
			break
		}
	}
	if !found {
		s.nextID++
		wine.ID = s.nextID
		s.wines = append(s.wines, *wine)
	}

	lot.WineID = persisted.ID
	if lot.Status == "" {
		lot.Status = enums.LotStatusInStock
	}
	s.lots = append(s.lots, *lot)
	return persisted, nil
}

func buildWorkbook(t *testing.T, sheet string, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	f.DeleteSheet("Sheet1")

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return &buf
}

func TestRunImportsRowsUnderBannerRegion(t *testing.T) {
	workbook := buildWorkbook(t, "2024-03-01", [][]any{
		{"ARTICLE", "COULEUR", "MILLESIME", "CL", "UNITÉS", "PRICE EN EUROS"},
		{"WHITE WINE 白葡萄酒", "", "", "", "", ""},
		{"BURGUNDY 勃艮第", "", "", "", "", ""},
		{"DRC MONTRACHET", "BLANC", 2019, 75, 3, "€2,400.00"},
		{"CHABLIS 1ER CRU", "BLANC", "NV", 75, 6, 180},
	})

	repo := &stubCatalogWriter{}
	imp, err := New(repo, nil, nil)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}

	summary, err := imp.Run(context.Background(), workbook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Imported != 2 || summary.Skipped != 0 {
		t.Fatalf("expected 2 imported / 0 skipped, got %+v", summary)
	}
	if len(repo.wines) != 2 || len(repo.lots) != 2 {
		t.Fatalf("expected 2 wines and 2 lots, got %d / %d", len(repo.wines), len(repo.lots))
	}

	first := repo.wines[0]
	if first.Name != "DRC Montrachet" {
		t.Fatalf("expected normalized name, got %q", first.Name)
	}
	if first.Region == nil || *first.Region != "Burgundy" {
		t.Fatalf("expected banner region Burgundy, got %v", first.Region)
	}
	if first.Category != enums.WineCategoryWhite {
		t.Fatalf("expected white, got %s", first.Category)
	}

	if repo.wines[1].Vintage != "NV" {
		t.Fatalf("expected NV vintage, got %q", repo.wines[1].Vintage)
	}

	lot := repo.lots[0]
	if lot.Qty != 3 {
		t.Fatalf("expected qty 3, got %d", lot.Qty)
	}
	if lot.BottleSize == nil || *lot.BottleSize != 75 {
		t.Fatalf("expected bottle size 75, got %v", lot.BottleSize)
	}
	if !lot.PurchasePrice.Valid || !lot.PurchasePrice.Decimal.Equal(mustDecimal(t, "2400")) {
		t.Fatalf("expected price 2400, got %v", lot.PurchasePrice)
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if lot.PurchaseDate == nil || !lot.PurchaseDate.Equal(want) {
		t.Fatalf("expected purchase date from sheet name, got %v", lot.PurchaseDate)
	}
}

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return parsed
}

func TestRunMissingColumnsReadAsEmpty(t *testing.T) {
	// No MILLESIME and no PRICE EN EUROS column. Those fields must fall back
	// to their empty-cell defaults, not re-read the ARTICLE cell.
	workbook := buildWorkbook(t, "2024-03-01", [][]any{
		{"ARTICLE", "COULEUR", "CL", "UNITÉS"},
		{"2015", "ROUGE", 75, 2},
	})

	repo := &stubCatalogWriter{}
	imp, err := New(repo, nil, nil)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}

	summary, err := imp.Run(context.Background(), workbook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Imported != 1 || summary.Skipped != 0 {
		t.Fatalf("expected 1 imported / 0 skipped, got %+v", summary)
	}

	wine := repo.wines[0]
	if wine.Name != "2015" {
		t.Fatalf("expected name 2015, got %q", wine.Name)
	}
	if wine.Vintage != "-" {
		t.Fatalf("expected vintage sentinel, got %q", wine.Vintage)
	}

	lot := repo.lots[0]
	if !lot.PurchasePrice.Valid || !lot.PurchasePrice.Decimal.IsZero() {
		t.Fatalf("expected zero price, got %v", lot.PurchasePrice)
	}
	if lot.BottleSize == nil || *lot.BottleSize != 75 {
		t.Fatalf("expected bottle size 75, got %v", lot.BottleSize)
	}
	if lot.Qty != 2 {
		t.Fatalf("expected qty 2, got %d", lot.Qty)
	}
}

func TestRunSkipsRowsWithoutQuantity(t *testing.T) {
	workbook := buildWorkbook(t, "stock", [][]any{
		{"ARTICLE", "COULEUR", "MILLESIME", "CL", "UNITÉS", "PRICE EN EUROS"},
		{"MEURSAULT", "BLANC", "abc", 75, "a few", 90},
		{"VOLNAY", "ROUGE", 2018, 75, 2, 120},
	})

	repo := &stubCatalogWriter{}
	imp, err := New(repo, nil, nil)
	if err != nil {
		t.Fatalf("new importer: %v", err)
	}

	summary, err := imp.Run(context.Background(), workbook)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.Imported != 1 || summary.Skipped != 1 {
		t.Fatalf("expected 1 imported / 1 skipped, got %+v", summary)
	}
	if len(repo.wines) != 1 {
		t.Fatalf("expected only the parsable row, got %d wines", len(repo.wines))
	}
	if repo.wines[0].Name != "Volnay" {
		t.Fatalf("expected Volnay, got %q", repo.wines[0].Name)
	}
	// Non-date sheet names leave the purchase date unset.
	if repo.lots[0].PurchaseDate != nil {
		t.Fatalf("expected nil purchase date, got %v", repo.lots[0].PurchaseDate)
	}
	// Lots without a stated region stay region-less.
	if repo.wines[0].Region != nil {
		t.Fatalf("expected nil region, got %v", repo.wines[0].Region)
	}
}
