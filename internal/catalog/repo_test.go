package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	"github.com/margauxcellars/cellar-backend/pkg/enums"
	"github.com/margauxcellars/cellar-backend/pkg/pagination"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{`
CREATE TABLE IF NOT EXISTS wines (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  vintage TEXT NOT NULL DEFAULT '-',
  category TEXT NOT NULL,
  region TEXT,
  appellation TEXT,
  rating TEXT,
  note TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS wine_inventories (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  wine_id INTEGER NOT NULL,
  bottle_size INTEGER,
  qty INTEGER NOT NULL DEFAULT 0,
  purchase_price NUMERIC,
  purchase_date DATETIME,
  status TEXT NOT NULL DEFAULT 'in_stock',
  source TEXT,
  location TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedLot(t *testing.T, db *gorm.DB, name string) *models.WineInventory {
	t.Helper()

	wine := models.Wine{Name: name, Vintage: "2019", Category: enums.WineCategoryRed}
	require.NoError(t, db.Create(&wine).Error)

	lot := models.WineInventory{
		WineID:        wine.ID,
		Qty:           6,
		PurchasePrice: decimal.NewNullDecimal(decimal.RequireFromString("100.00")),
		Status:        enums.LotStatusInStock,
	}
	require.NoError(t, db.Create(&lot).Error)
	return &lot
}

func TestRepositoryListOrdersByWineName(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	// Insertion order deliberately differs from the display order.
	seedLot(t, db, "Volnay")
	seedLot(t, db, "Chablis")
	seedLot(t, db, "Meursault")

	lots, err := repo.List(context.Background(), listQuery{limit: 10})
	require.NoError(t, err)
	require.Len(t, lots, 3)
	assert.Equal(t, "Chablis", lots[0].Wine.Name)
	assert.Equal(t, "Meursault", lots[1].Wine.Name)
	assert.Equal(t, "Volnay", lots[2].Wine.Name)
}

func TestRepositoryListCursorContinuesWithoutSkipping(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedLot(t, db, "Volnay")
	seedLot(t, db, "Chablis")
	seedLot(t, db, "Meursault")
	seedLot(t, db, "Sancerre")

	first, err := repo.List(context.Background(), listQuery{limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)

	cursor := &pagination.KeyCursor{Key: first[1].Wine.Name, ID: first[1].ID}
	second, err := repo.List(context.Background(), listQuery{limit: 2, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, second, 2)

	// Pages concatenate to the full alphabetical order with no gaps.
	names := []string{
		first[0].Wine.Name, first[1].Wine.Name,
		second[0].Wine.Name, second[1].Wine.Name,
	}
	assert.Equal(t, []string{"Chablis", "Meursault", "Sancerre", "Volnay"}, names)
}

func TestRepositoryListCursorBreaksNameTiesByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	firstLot := seedLot(t, db, "Chablis")
	secondLot := seedLot(t, db, "Chablis")

	cursor := &pagination.KeyCursor{Key: "Chablis", ID: firstLot.ID}
	lots, err := repo.List(context.Background(), listQuery{limit: 10, cursor: cursor})
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, secondLot.ID, lots[0].ID)
}
