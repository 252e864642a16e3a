package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/logger"
	"github.com/margauxcellars/cellar-backend/pkg/metrics"
)

// Workbook column labels as they appear in the merchant's purchase sheets.
const (
	colArticle = "ARTICLE"
	colColour  = "COULEUR"
	colVintage = "MILLESIME"
	colSize    = "CL"
	colQty     = "UNITÉS"
	colPrice   = "PRICE EN EUROS"
)

type catalogWriter interface {
	ImportRow(ctx context.Context, wine *models.Wine, lot *models.WineInventory) (*models.Wine, error)
}

// Importer ingests multi-sheet purchase workbooks into the catalog. Each
// sheet name is read as the purchase date for every lot on that sheet.
type Importer struct {
	repo    catalogWriter
	logg    *logger.Logger
	metrics *metrics.ImportMetrics
}

// Summary aggregates one import run for the operator log.
type Summary struct {
	Sheets   int `json:"sheets"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// New builds an importer.
func New(repo catalogWriter, logg *logger.Logger, m *metrics.ImportMetrics) (*Importer, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog writer required")
	}
	return &Importer{repo: repo, logg: logg, metrics: m}, nil
}

// Run reads the workbook and imports every sheet, row by row. Row failures
// are logged and skipped; only a structurally unreadable workbook fails the
// run.
func (imp *Importer) Run(ctx context.Context, workbook io.Reader) (*Summary, error) {
	f, err := excelize.OpenReader(workbook)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	summary := &Summary{}
	for _, sheet := range f.GetSheetList() {
		summary.Sheets++
		if err := imp.importSheet(ctx, f, sheet, summary); err != nil {
			return nil, err
		}
	}

	imp.info(ctx, fmt.Sprintf("import finished: %d sheet(s), %d row(s) imported, %d skipped",
		summary.Sheets, summary.Imported, summary.Skipped))
	return summary, nil
}

func (imp *Importer) importSheet(ctx context.Context, f *excelize.File, sheet string, summary *Summary) error {
	started := time.Now()
	defer func() {
		imp.metrics.ObserveSheetDuration(sheet, time.Since(started))
	}()

	purchaseDate := parseSheetDate(sheet)
	if imp.logg != nil {
		ctx = imp.logg.WithField(ctx, "sheet", sheet)
	}
	imp.info(ctx, "importing sheet")

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil
	}

	columns := indexColumns(rows[0])

	// Region is fold state: banner rows update it, data rows read it.
	currentRegion := ""
	for _, row := range rows[1:] {
		article := strings.TrimSpace(cell(row, columnIndex(columns, colArticle)))
		if article == "" || IsHeaderRow(article) {
			continue
		}
		if region, ok := BannerRegion(article); ok {
			currentRegion = region
			continue
		}

		qty, ok := ParseQty(cell(row, columnIndex(columns, colQty)))
		if !ok {
			summary.Skipped++
			imp.metrics.IncSkipped(sheet, "bad_qty")
			imp.warn(ctx, fmt.Sprintf("skipping row %q: unparsable quantity", article))
			continue
		}

		wine := &models.Wine{
			Name:     NormalizeName(article),
			Category: MapCategory(cell(row, columnIndex(columns, colColour))),
			Vintage:  NormalizeVintage(cell(row, columnIndex(columns, colVintage))),
		}
		if currentRegion != "" {
			region := currentRegion
			wine.Region = &region
		}

		lot := &models.WineInventory{
			BottleSize:    ParseBottleSize(cell(row, columnIndex(columns, colSize))),
			Qty:           qty,
			PurchasePrice: decimal.NewNullDecimal(decimal.NewFromFloat(ParsePrice(cell(row, columnIndex(columns, colPrice))))),
			PurchaseDate:  purchaseDate,
		}
		persisted, err := imp.repo.ImportRow(ctx, wine, lot)
		if err != nil {
			summary.Skipped++
			imp.metrics.IncSkipped(sheet, "row_write")
			imp.error(ctx, fmt.Sprintf("skipping row %q: write failed", article), err)
			continue
		}

		summary.Imported++
		imp.metrics.IncImported(sheet)
		imp.info(ctx, fmt.Sprintf("imported %s (%s) qty=%d", persisted.Name, persisted.Vintage, qty))
	}
	return nil
}

// parseSheetDate reads the sheet name as an ISO date; sheets with other
// names yield lots without a purchase date.
func parseSheetDate(sheet string) *time.Time {
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(sheet))
	if err != nil {
		return nil
	}
	return &parsed
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, label := range header {
		columns[strings.ToUpper(strings.TrimSpace(label))] = i
	}
	return columns
}

// columnIndex resolves a header label to its column, or -1 when the sheet
// lacks that column so the cell reads as empty instead of column zero.
func columnIndex(columns map[string]int, label string) int {
	index, ok := columns[label]
	if !ok {
		return -1
	}
	return index
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

func (imp *Importer) info(ctx context.Context, msg string) {
	if imp.logg != nil {
		imp.logg.Info(ctx, msg)
	}
}

func (imp *Importer) warn(ctx context.Context, msg string) {
	if imp.logg != nil {
		imp.logg.Warn(ctx, msg)
	}
}

func (imp *Importer) error(ctx context.Context, msg string, err error) {
	if imp.logg != nil {
		imp.logg.Error(ctx, msg, err)
	}
}
