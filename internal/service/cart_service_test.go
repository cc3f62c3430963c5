package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCartTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func newCartTestService(t *testing.T, name string) (*CartService, *gorm.DB) {
	db := newCartTestDB(t, name)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewMenuItemRepository(db))
	return svc, db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64, available bool) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Category:    constants.MenuCategoryMain,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		IsAvailable: available,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item failed: %v", err)
	}
	return &item
}

func TestAddItemAccumulatesIntoSingleRow(t *testing.T) {
	svc, db := newCartTestService(t, "cart_add_merge")
	item := seedMenuItem(t, db, "Butter Chicken", 380, true)

	if err := svc.AddItem(1, item.ID, 2); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(1, item.ID, 3); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	var rows []models.CartItem
	if err := db.Where("menu_item_id = ?", item.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load cart rows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 cart row, got %d", len(rows))
	}
	if rows[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", rows[0].Quantity)
	}
}

func TestAddItemCollapsesSeededDuplicateRows(t *testing.T) {
	svc, db := newCartTestService(t, "cart_dup_rows")
	item := seedMenuItem(t, db, "Dal Makhani", 260, true)

	cart := models.Cart{UserID: 1, Status: constants.CartStatusActive}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}
	dups := []models.CartItem{
		{CartID: cart.ID, MenuItemID: item.ID, Quantity: 2},
		{CartID: cart.ID, MenuItemID: item.ID, Quantity: 3},
	}
	if err := db.Create(&dups).Error; err != nil {
		t.Fatalf("seed duplicate rows failed: %v", err)
	}

	if err := svc.AddItem(1, item.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var rows []models.CartItem
	if err := db.Where("cart_id = ? AND menu_item_id = ?", cart.ID, item.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load cart rows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected duplicates collapsed to 1 row, got %d", len(rows))
	}
	if rows[0].Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", rows[0].Quantity)
	}
}

func TestSetItemQuantityZeroRemovesRow(t *testing.T) {
	svc, db := newCartTestService(t, "cart_set_zero")
	item := seedMenuItem(t, db, "Masala Chai", 60, true)

	if err := svc.AddItem(1, item.ID, 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetItemQuantity(1, item.ID, 0); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.CartItem{}).Where("menu_item_id = ?", item.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected row removed, got %d rows", count)
	}
}

func TestAddItemRejectsUnavailableMenuItem(t *testing.T) {
	svc, db := newCartTestService(t, "cart_unavailable")
	item := seedMenuItem(t, db, "Seasonal Special", 300, false)

	err := svc.AddItem(1, item.ID, 1)
	if !errors.Is(err, ErrMenuItemUnavailable) {
		t.Fatalf("expected ErrMenuItemUnavailable, got %v", err)
	}
}

func TestGetActiveCartEmptyForNewUser(t *testing.T) {
	svc, _ := newCartTestService(t, "cart_empty")

	detail, err := svc.GetActiveCart(42)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if detail.CartID != 0 || len(detail.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", detail)
	}
}
