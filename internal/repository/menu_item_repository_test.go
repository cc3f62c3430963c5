package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMenuItemRepositoryTest(t *testing.T) (*GormMenuItemRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:menu_item_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Offer{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewMenuItemRepository(db), db
}

func seedMenuItemRow(t *testing.T, repo *GormMenuItemRepository, name string, price int64, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		IsAvailable: available,
	}
	if err := repo.Create(item); err != nil {
		t.Fatalf("seed menu item %s failed: %v", name, err)
	}
	return item
}

// 停售菜品必须以 is_available = false 落库，否则下单校验形同虚设
func TestMenuItemRepositoryCreatePersistsUnavailable(t *testing.T) {
	repo, db := setupMenuItemRepositoryTest(t)

	item := seedMenuItemRow(t, repo, "Seasonal Thali", 220, false)

	loaded, err := repo.GetByID(item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("menu item not found after create")
	}
	if loaded.IsAvailable {
		t.Fatalf("expected is_available=false to persist, got true")
	}

	var stored bool
	if err := db.Model(&models.MenuItem{}).Where("id = ?", item.ID).Pluck("is_available", &stored).Error; err != nil {
		t.Fatalf("pluck failed: %v", err)
	}
	if stored {
		t.Fatalf("expected stored is_available=false, got true")
	}
}

func TestMenuItemRepositoryGetByIDs(t *testing.T) {
	repo, _ := setupMenuItemRepositoryTest(t)

	first := seedMenuItemRow(t, repo, "Masala Dosa", 90, true)
	second := seedMenuItemRow(t, repo, "Filter Coffee", 40, true)
	seedMenuItemRow(t, repo, "Idli", 60, true)

	items, err := repo.GetByIDs([]uint{first.ID, second.ID, 9999})
	if err != nil {
		t.Fatalf("get by ids failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, item := range items {
		if item.ID != first.ID && item.ID != second.ID {
			t.Fatalf("unexpected item in result: %d", item.ID)
		}
	}

	empty, err := repo.GetByIDs(nil)
	if err != nil {
		t.Fatalf("get by empty ids failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty result, got %d items", len(empty))
	}
}

// 停用的优惠码同样必须以 is_active = false 落库
func TestOfferCreatePersistsInactive(t *testing.T) {
	_, db := setupMenuItemRepositoryTest(t)
	offerRepo := NewOfferRepository(db)

	now := time.Now()
	offer := &models.Offer{
		Code:          "PAUSED10",
		DiscountType:  constants.OfferTypePercentage,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		ValidFrom:     now.Add(-time.Hour),
		ValidTo:       now.Add(time.Hour),
		IsActive:      false,
	}
	if err := offerRepo.Create(offer); err != nil {
		t.Fatalf("create offer failed: %v", err)
	}

	loaded, err := offerRepo.GetByCode("PAUSED10")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("offer not found after create")
	}
	if loaded.IsActive {
		t.Fatalf("expected is_active=false to persist, got true")
	}
}
