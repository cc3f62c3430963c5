package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/provider"
	"github.com/zaika-next/internal/repository"
	"github.com/zaika-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Offer{},
		&models.UsedCoupon{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	pricing := service.NewPricingService(service.PricingConfig{
		GSTRatePercent: decimal.NewFromInt(5),
		DeliveryCharge: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
		ServiceCharge:  models.ZeroMoney(),
	})
	orderService := service.NewOrderService(
		db,
		orderRepo,
		paymentRepo,
		repository.NewMenuItemRepository(db),
		repository.NewCartRepository(db),
		repository.NewUsedCouponRepository(db),
		pricing,
		service.NewCouponService(repository.NewOfferRepository(db), repository.NewUsedCouponRepository(db)),
		nil,
	)
	paymentService := service.NewPaymentService(paymentRepo, orderRepo, nil)

	h := New(&provider.Container{
		OrderService:   orderService,
		PaymentService: paymentService,
	})
	return h, db
}

func newAdminTestRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.POST("/admin/orders", h.AdminCreateOrder)
	r.PUT("/admin/orders/:id/status", h.AdminUpdateOrderStatus)
	r.POST("/admin/payments", h.AdminCreatePayment)
	r.GET("/admin/payments/stats", h.AdminPaymentStats)
	return r
}

func seedAdminMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		Name:        name,
		Category:    constants.MenuCategoryMain,
		Price:       models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		IsAvailable: true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed menu item failed: %v", err)
	}
	return item
}

func TestAdminCreateOrderEndToEnd(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	item := seedAdminMenuItem(t, db, "Butter Chicken", 380)
	r := newAdminTestRouter(h)

	body := fmt.Sprintf(`{
		"items": [{"menu_item_id": %d, "quantity": 2}],
		"customer_name": "Walk-in Guest",
		"customer_phone": "9876543210",
		"order_type": "pickup",
		"payment_method": "cod"
	}`, item.ID)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			ID          uint   `json:"id"`
			OrderNo     string `json:"order_no"`
			Status      string `json:"status"`
			TotalAmount string `json:"total_amount"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d body %s", resp.StatusCode, w.Body.String())
	}
	if !strings.HasPrefix(resp.Data.OrderNo, "ZK") {
		t.Fatalf("unexpected order no: %s", resp.Data.OrderNo)
	}
	if resp.Data.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", resp.Data.Status)
	}
	// 380 x 2 + 5% GST
	if resp.Data.TotalAmount != "798.00" {
		t.Fatalf("total want 798.00 got %s", resp.Data.TotalAmount)
	}

	var paymentCount int64
	db.Model(&models.Payment{}).Where("order_id = ?", resp.Data.ID).Count(&paymentCount)
	if paymentCount != 1 {
		t.Fatalf("expected initial payment row, got %d", paymentCount)
	}
}

func TestAdminUpdateOrderStatusTerminalConflict(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	item := seedAdminMenuItem(t, db, "Dal Makhani", 260)
	r := newAdminTestRouter(h)

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		Items:         []service.CreateOrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
		CustomerName:  "Walk-in Guest",
		CustomerPhone: "9876543211",
		OrderType:     constants.OrderTypePickup,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	update := func(status string) int {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"status": %q}`, status)
		req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/admin/orders/%d/status", order.ID), strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		var resp struct {
			StatusCode int `json:"status_code"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response failed: %v", err)
		}
		return resp.StatusCode
	}

	if code := update(constants.OrderStatusDelivered); code != 0 {
		t.Fatalf("deliver want status_code 0 got %d", code)
	}
	if code := update(constants.OrderStatusPreparing); code != 409 {
		t.Fatalf("terminal update want status_code 409 got %d", code)
	}
}

func TestAdminCreatePaymentMissingOrder(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	r := newAdminTestRouter(h)

	w := httptest.NewRecorder()
	body := `{"order_id": 404, "amount": "100.00", "payment_mode": "cash"}`
	req := httptest.NewRequest(http.MethodPost, "/admin/payments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestAdminPaymentStatsEndpoint(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	item := seedAdminMenuItem(t, db, "Biryani", 100)
	r := newAdminTestRouter(h)

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		Items:         []service.CreateOrderItemInput{{MenuItemID: item.ID, Quantity: 1}},
		CustomerName:  "Walk-in Guest",
		CustomerPhone: "9876543212",
		OrderType:     constants.OrderTypePickup,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if _, err := h.PaymentService.UpdateStatus(order.Payments[0].ID, constants.PaymentStatusCompleted); err != nil {
		t.Fatalf("complete payment failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/payments/stats", nil)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			TotalRevenue string `json:"total_revenue"`
			TotalCount   int64  `json:"total_count"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.TotalCount != 1 {
		t.Fatalf("total_count want 1 got %d", resp.Data.TotalCount)
	}
	if resp.Data.TotalRevenue != "105.00" {
		t.Fatalf("total_revenue want 105.00 got %s", resp.Data.TotalRevenue)
	}
}

func TestParseTimeNullableDateBounds(t *testing.T) {
	got, err := parseTimeNullable("", false)
	if err != nil || got != nil {
		t.Fatalf("empty input should yield nil, got %v / %v", got, err)
	}

	lower, err := parseTimeNullable("2026-08-30", false)
	if err != nil {
		t.Fatalf("parse lower bound failed: %v", err)
	}
	midnight := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !lower.Equal(midnight) {
		t.Fatalf("expected midnight lower bound, got %v", lower)
	}

	// 纯日期上界覆盖整天，否则当天订单全部被排除
	upper, err := parseTimeNullable("2026-08-30", true)
	if err != nil {
		t.Fatalf("parse upper bound failed: %v", err)
	}
	lateSameDay := time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC)
	nextMidnight := midnight.Add(24 * time.Hour)
	if !upper.After(lateSameDay) || !upper.Before(nextMidnight) {
		t.Fatalf("expected end-of-day upper bound, got %v", upper)
	}

	exact, err := parseTimeNullable("2026-08-30T10:00:00Z", true)
	if err != nil {
		t.Fatalf("parse rfc3339 failed: %v", err)
	}
	if !exact.Equal(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("rfc3339 input must not be shifted, got %v", exact)
	}

	if _, err := parseTimeNullable("yesterday", true); err == nil {
		t.Fatalf("expected error for malformed input")
	}
}
