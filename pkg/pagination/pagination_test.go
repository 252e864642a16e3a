package pagination

import (
	"testing"
	"time"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{10, 10},
		{MaxLimit + 1, MaxLimit},
	}
	for _, tc := range cases {
		if got := NormalizeLimit(tc.in); got != tc.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := Cursor{
		CreatedAt: time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC),
		ID:        42,
	}

	encoded := EncodeCursor(cursor)
	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if !decoded.CreatedAt.Equal(cursor.CreatedAt) || decoded.ID != cursor.ID {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestKeyCursorRoundTrip(t *testing.T) {
	cursor := KeyCursor{Key: "Chateau Margaux", ID: 42}

	decoded, err := ParseKeyCursor(EncodeKeyCursor(cursor))
	if err != nil {
		t.Fatalf("parse key cursor: %v", err)
	}
	if decoded.Key != cursor.Key || decoded.ID != cursor.ID {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestKeyCursorKeyMayContainSeparator(t *testing.T) {
	cursor := KeyCursor{Key: "Cuvee | Reserve", ID: 7}

	decoded, err := ParseKeyCursor(EncodeKeyCursor(cursor))
	if err != nil {
		t.Fatalf("parse key cursor: %v", err)
	}
	if decoded.Key != cursor.Key || decoded.ID != cursor.ID {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestParseKeyCursorGarbage(t *testing.T) {
	if _, err := ParseKeyCursor("not-base64!!!"); err == nil {
		t.Fatalf("expected error for invalid key cursor")
	}
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("")
	if err != nil || cursor != nil {
		t.Fatalf("expected nil cursor for empty string, got %v %v", cursor, err)
	}
}

func TestParseCursorGarbage(t *testing.T) {
	if _, err := ParseCursor("not-base64!!!"); err == nil {
		t.Fatalf("expected error for invalid cursor")
	}
}
