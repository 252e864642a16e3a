package importer

import (
	"testing"

	"github.com/margauxcellars/cellar-backend/pkg/enums"
)

func TestMapCategory(t *testing.T) {
	cases := []struct {
		label string
		want  enums.WineCategory
	}{
		{"BLANC", enums.WineCategoryWhite},
		{"  rouge ", enums.WineCategoryRed},
		{"Champagne", enums.WineCategoryChampagne},
		{"fizzy", enums.WineCategoryOther},
		{"", enums.WineCategoryOther},
	}
	for _, tc := range cases {
		if got := MapCategory(tc.label); got != tc.want {
			t.Fatalf("MapCategory(%q) = %s, want %s", tc.label, got, tc.want)
		}
	}
}

func TestBannerRegionFold(t *testing.T) {
	region, ok := BannerRegion("BURGUNDY 勃艮第")
	if !ok || region != "Burgundy" {
		t.Fatalf("expected Burgundy banner, got %q %v", region, ok)
	}

	region, ok = BannerRegion("VALLEY OF RHONE 隆河谷")
	if !ok || region != "Valley Of Rhone" {
		t.Fatalf("expected Valley Of Rhone, got %q %v", region, ok)
	}

	if _, ok := BannerRegion("Domaine Leflaive Puligny"); ok {
		t.Fatalf("data row must not read as banner")
	}
}

func TestIsHeaderRow(t *testing.T) {
	if !IsHeaderRow("WHITE WINE 白葡萄酒") {
		t.Fatalf("expected header row")
	}
	if IsHeaderRow("CHAMPAGNE 香檳") {
		t.Fatalf("banner row is not a header row")
	}
}

func TestNormalizeVintage(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"NV", "NV"},
		{"nv", "NV"},
		{"2015", "2015"},
		{"2015.0", "2015"},
		{"abc", "-"},
		{"", "-"},
	}
	for _, tc := range cases {
		if got := NormalizeVintage(tc.raw); got != tc.want {
			t.Fatalf("NormalizeVintage(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeNameRestoresAcronyms(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"DRC ROMANEE CONTI", "DRC Romanee Conti"},
		{"chablis 1er cru vaillons", "Chablis 1er Cru Vaillons"},
		{"meursault vv", "Meursault Vv"},
		{"SANCERRE VO", "Sancerre VO"},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.raw); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseQty(t *testing.T) {
	if qty, ok := ParseQty("12"); !ok || qty != 12 {
		t.Fatalf("expected 12, got %d %v", qty, ok)
	}
	if qty, ok := ParseQty("6.0"); !ok || qty != 6 {
		t.Fatalf("expected 6, got %d %v", qty, ok)
	}
	if _, ok := ParseQty("a few"); ok {
		t.Fatalf("expected failure on non-numeric qty")
	}
}

func TestParseBottleSize(t *testing.T) {
	if size := ParseBottleSize("75"); size == nil || *size != 75 {
		t.Fatalf("expected 75, got %v", size)
	}
	if size := ParseBottleSize("magnum"); size != nil {
		t.Fatalf("expected nil for unparsable size, got %v", size)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"€1,250.00", 1250},
		{"85", 85},
		{"", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.raw); got != tc.want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestDedupKeyNormalizesCaseAndSpace(t *testing.T) {
	a := DedupKey("  Chablis Grand Cru ", enums.WineCategoryWhite, "2019", "Burgundy")
	b := DedupKey("chablis grand cru", enums.WineCategoryWhite, " 2019", " burgundy ")
	if a != b {
		t.Fatalf("expected identical keys, got %q vs %q", a, b)
	}

	c := DedupKey("Chablis Grand Cru", enums.WineCategoryWhite, "2020", "Burgundy")
	if a == c {
		t.Fatalf("different vintages must not collide")
	}
}
