package enums

import "fmt"

// WineCategory is the colour/style classification of a wine definition.
type WineCategory string

const (
	WineCategoryRed           WineCategory = "red"
	WineCategoryWhite         WineCategory = "white"
	WineCategoryRose          WineCategory = "rose"
	WineCategoryChampagne     WineCategory = "champagne"
	WineCategoryRoseChampagne WineCategory = "rose_champagne"
	WineCategorySparkling     WineCategory = "sparkling"
	WineCategoryYellow        WineCategory = "yellow"
	WineCategoryLiqueur       WineCategory = "liqueur"
	WineCategoryDessert       WineCategory = "dessert"
	WineCategoryFortified     WineCategory = "fortified"
	WineCategoryOrange        WineCategory = "orange"
	WineCategoryOther         WineCategory = "other"
)

var validWineCategories = []WineCategory{
	WineCategoryRed,
	WineCategoryWhite,
	WineCategoryRose,
	WineCategoryChampagne,
	WineCategoryRoseChampagne,
	WineCategorySparkling,
	WineCategoryYellow,
	WineCategoryLiqueur,
	WineCategoryDessert,
	WineCategoryFortified,
	WineCategoryOrange,
	WineCategoryOther,
}

var wineCategoryDisplayNames = map[WineCategory]string{
	WineCategoryRed:           "Red",
	WineCategoryWhite:         "White",
	WineCategoryRose:          "Rosé",
	WineCategoryChampagne:     "Champagne",
	WineCategoryRoseChampagne: "Rosé Champagne",
	WineCategorySparkling:     "Sparkling",
	WineCategoryYellow:        "Yellow",
	WineCategoryLiqueur:       "Liqueur",
	WineCategoryDessert:       "Dessert",
	WineCategoryFortified:     "Fortified",
	WineCategoryOrange:        "Orange",
	WineCategoryOther:         "Other",
}

// String implements fmt.Stringer.
func (c WineCategory) String() string {
	return string(c)
}

// Display returns the human-readable label used in exports.
func (c WineCategory) Display() string {
	if label, ok := wineCategoryDisplayNames[c]; ok {
		return label
	}
	return string(c)
}

// IsValid reports whether the value is a known WineCategory.
func (c WineCategory) IsValid() bool {
	for _, candidate := range validWineCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseWineCategory converts raw input into a WineCategory.
func ParseWineCategory(value string) (WineCategory, error) {
	for _, candidate := range validWineCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wine category %q", value)
}
