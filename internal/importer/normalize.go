package importer

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

// Source workbooks label colour in French or English; map both onto the
// category enum, defaulting to "other" for anything unrecognised.
var categoryBySourceLabel = map[string]enums.WineCategory{
	"BLANC":          enums.WineCategoryWhite,
	"WHITE":          enums.WineCategoryWhite,
	"ROUGE":          enums.WineCategoryRed,
	"RED":            enums.WineCategoryRed,
	"ROSE":           enums.WineCategoryRose,
	"ROSÉ":           enums.WineCategoryRose,
	"CHAMPAGNE":      enums.WineCategoryChampagne,
	"ROSE CHAMPAGNE": enums.WineCategoryRoseChampagne,
	"SPARKLING":      enums.WineCategorySparkling,
	"YELLOW":         enums.WineCategoryYellow,
	"LIQUEUR":        enums.WineCategoryLiqueur,
	"DESSERT":        enums.WineCategoryDessert,
	"FORTIFIED":      enums.WineCategoryFortified,
	"ORANGE":         enums.WineCategoryOrange,
}

// Section header rows carry no product and no region; they are skipped.
var headerRows = map[string]bool{
	"WHITE WINE 白葡萄酒": true,
	"RED WINE 紅葡萄酒":   true,
}

// Banner rows set the region for every following data row until the next
// banner (the source sheets only name the region once per section).
var bannerRows = map[string]bool{
	"CHAMPAGNE 香檳":       true,
	"BURGUNDY 勃艮第":       true,
	"LOIRE 魯瓦河":          true,
	"VALLEY OF RHONE 隆河谷": true,
	"SAVOIE 薩瓦河":         true,
}

// Producer abbreviations that the title-casing pass must not mangle.
var acronymReplacements = []struct {
	from string
	to   string
}{
	{"Drc ", "DRC "},
	{"1Er ", "1er "},
	{"Vv ", "VV "},
	{"Jfm ", "JFM "},
	{"Jf ", "JF "},
	{" Rdj", " RDJ"},
}

var voSuffixPattern = regexp.MustCompile(` Vo\b`)

var titleCaser = cases.Title(language.English)

// MapCategory resolves the workbook colour label to a category.
func MapCategory(label string) enums.WineCategory {
	if category, ok := categoryBySourceLabel[strings.ToUpper(strings.TrimSpace(label))]; ok {
		return category
	}
	return enums.WineCategoryOther
}

// IsHeaderRow reports whether the article cell is a sheet-section header.
func IsHeaderRow(article string) bool {
	return headerRows[strings.ToUpper(strings.TrimSpace(article))]
}

// BannerRegion extracts the region from a banner row, returning ok=false for
// non-banner rows. The CJK annotation is stripped, leaving the title-cased
// ASCII name ("BURGUNDY 勃艮第" → "Burgundy").
func BannerRegion(article string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(article))
	if !bannerRows[upper] {
		return "", false
	}
	var ascii strings.Builder
	for _, char := range upper {
		if char == ' ' || (char < 128 && char >= 'A' && char <= 'Z') {
			ascii.WriteRune(char)
		}
	}
	return titleCaser.String(strings.TrimSpace(ascii.String())), true
}

// NormalizeVintage keeps "NV" verbatim, renders numeric vintages as 4-digit
// year strings, and falls back to the "-" sentinel for anything unparsable.
func NormalizeVintage(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "NV") {
		return "NV"
	}
	year, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return "-"
	}
	return strconv.Itoa(int(year))
}

// NormalizeName title-cases the article and restores producer acronyms.
func NormalizeName(raw string) string {
	name := titleCaser.String(strings.TrimSpace(raw))
	for _, repl := range acronymReplacements {
		name = strings.ReplaceAll(name, repl.from, repl.to)
	}
	return voSuffixPattern.ReplaceAllString(name, " VO")
}

// ParseQty parses the load-bearing quantity column; failure skips the row.
func ParseQty(raw string) (int, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return int(value), true
}

// ParseBottleSize degrades to nil on failure; size is not load-bearing.
func ParseBottleSize(raw string) *int {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	size := int(value)
	return &size
}

// ParsePrice strips currency noise and degrades to zero on failure.
func ParsePrice(raw string) float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(raw, "€", ""), ",", ""))
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// DedupKey normalizes the get-or-create identity of a wine so repeated
// imports do not mint duplicate definitions over whitespace or case drift.
func DedupKey(name string, category enums.WineCategory, vintage, region string) string {
	parts := []string{
		strings.ToLower(strings.TrimSpace(name)),
		category.String(),
		strings.ToLower(strings.TrimSpace(vintage)),
		strings.ToLower(strings.TrimSpace(region)),
	}
	return strings.Join(parts, "|")
}
