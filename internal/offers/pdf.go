package offers

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
)

var pdfColumns = []struct {
	header string
	width  float64
}{
	{"Name", 70},
	{"Vintage", 18},
	{"Category", 25},
	{"Region", 30},
	{"Bottle Size", 22},
	{"Qty", 12},
	{"Note", 90},
}

// renderListPDF draws the offer as a single bordered table titled by the
// list's name, falling back to the UUID for unnamed lists.
func renderListPDF(list *models.WineList) ([]byte, error) {
	title := list.Name
	if title == "" {
		title = list.UUID.String()
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range list.Items {
		cells := itemPDFRow(item)
		for i, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itemPDFRow(item models.WineItem) []string {
	name, vintage, category, region := "", "", "", ""
	size := ""
	if item.Inventory != nil {
		if item.Inventory.BottleSize != nil {
			size = fmt.Sprintf("%d cl", *item.Inventory.BottleSize)
		}
		if wine := item.Inventory.Wine; wine != nil {
			name = wine.Name
			vintage = wine.Vintage
			category = wine.Category.Display()
			if wine.Region != nil {
				region = *wine.Region
			}
		}
	}
	note := ""
	if item.Note != nil {
		note = *item.Note
	}
	return []string{
		name,
		vintage,
		category,
		region,
		size,
		fmt.Sprintf("%d", item.OfferQty),
		note,
	}
}
