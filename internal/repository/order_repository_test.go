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

func setupOrderRepositoryTest(t *testing.T) (*GormOrderRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewOrderRepository(db), db
}

func seedOrder(t *testing.T, db *gorm.DB, orderNo string, userID *uint, status string, amount int64) *models.Order {
	t.Helper()
	now := time.Now()
	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        userID,
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		OrderType:     constants.OrderTypePickup,
		Status:        status,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(amount)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("seed order %s failed: %v", orderNo, err)
	}
	return order
}

func TestOrderRepositoryCreateWithItems(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := &models.Order{
		OrderNo:       "ZK20260830100000000001",
		CustomerName:  "Ravi",
		CustomerPhone: "9876500000",
		OrderType:     constants.OrderTypePickup,
		Status:        constants.OrderStatusPending,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(210)),
	}
	items := []models.OrderItem{
		{MenuItemID: 1, Name: "Paneer Tikka", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(100)), Quantity: 2, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(200))},
		{MenuItemID: 2, Name: "Masala Chai", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 1, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(10))},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded == nil {
		t.Fatalf("order not found after create")
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 preloaded items, got %d", len(loaded.Items))
	}
	for _, item := range loaded.Items {
		if item.OrderID != order.ID {
			t.Fatalf("item not linked to order: %+v", item)
		}
	}

	var itemCount int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count order items failed: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("expected 2 order item rows, got %d", itemCount)
	}
}

func TestOrderRepositoryGetByIDAndUserScoping(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	owner := uint(1)
	stranger := uint(2)
	order := seedOrder(t, db, "ZK20260830100000000002", &owner, constants.OrderStatusPending, 100)

	got, err := repo.GetByIDAndUser(order.ID, owner)
	if err != nil {
		t.Fatalf("get by owner failed: %v", err)
	}
	if got == nil {
		t.Fatalf("owner should see own order")
	}

	got, err = repo.GetByIDAndUser(order.ID, stranger)
	if err != nil {
		t.Fatalf("get by stranger failed: %v", err)
	}
	if got != nil {
		t.Fatalf("stranger must not see foreign order")
	}
}

func TestOrderRepositoryExistsByOrderNoIncludesDeleted(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := seedOrder(t, db, "ZK20260830100000000003", nil, constants.OrderStatusPending, 100)
	if err := repo.SoftDelete(order.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	exists, err := repo.ExistsByOrderNo(order.OrderNo)
	if err != nil {
		t.Fatalf("exists check failed: %v", err)
	}
	if !exists {
		t.Fatalf("soft deleted order no must still count as taken")
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	if got != nil {
		t.Fatalf("soft deleted order must be hidden from reads")
	}
}

func TestOrderRepositoryListFilters(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	user1 := uint(1)
	user2 := uint(2)
	seedOrder(t, db, "ZK20260830100000000004", &user1, constants.OrderStatusPending, 100)
	seedOrder(t, db, "ZK20260830100000000005", &user1, constants.OrderStatusDelivered, 200)
	seedOrder(t, db, "ZK20260830100000000006", &user2, constants.OrderStatusPending, 300)

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: user1, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by user failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders for user1, got total=%d len=%d", total, len(orders))
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusPending, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 pending orders, got %d", total)
	}
	for _, order := range orders {
		if order.Status != constants.OrderStatusPending {
			t.Fatalf("unexpected status in filtered list: %s", order.Status)
		}
	}

	orders, total, err = repo.ListAdmin(OrderListFilter{OrderNo: "ZK20260830100000000006", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list admin by order no failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected exactly one match, got total=%d len=%d", total, len(orders))
	}
}

func TestOrderRepositoryUpdateStatusExtraColumns(t *testing.T) {
	repo, db := setupOrderRepositoryTest(t)

	order := seedOrder(t, db, "ZK20260830100000000007", nil, constants.OrderStatusPreparing, 100)
	now := time.Now()
	err := repo.UpdateStatus(order.ID, constants.OrderStatusDelivered, map[string]interface{}{
		"delivered_at": now,
		"updated_at":   now,
	})
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	loaded, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", loaded.Status)
	}
	if loaded.DeliveredAt == nil {
		t.Fatalf("expected delivered_at set")
	}
}
