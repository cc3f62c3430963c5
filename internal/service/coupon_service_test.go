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

func newCouponTestService(t *testing.T, name string) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Offer{}, &models.UsedCoupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponService(repository.NewOfferRepository(db), repository.NewUsedCouponRepository(db)), db
}

func seedOffer(t *testing.T, db *gorm.DB, code, discountType string, value int64, active bool, from, to time.Time) {
	t.Helper()
	offer := models.Offer{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(value)),
		ValidFrom:     from,
		ValidTo:       to,
		IsActive:      active,
	}
	if err := db.Create(&offer).Error; err != nil {
		t.Fatalf("seed offer failed: %v", err)
	}
}

func TestValidatePercentageCoupon(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_percentage")
	now := time.Now()
	seedOffer(t, db, "SAVE50", constants.OfferTypePercentage, 50, true, now.Add(-time.Hour), now.Add(time.Hour))

	result, err := svc.Validate("SAVE50", models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Discount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected discount 50, got %s", result.Discount.String())
	}
}

func TestValidateCouponCaseInsensitive(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_case")
	now := time.Now()
	seedOffer(t, db, "WELCOME10", constants.OfferTypePercentage, 10, true, now.Add(-time.Hour), now.Add(time.Hour))

	result, err := svc.Validate("welcome10", models.NewMoneyFromDecimal(decimal.NewFromInt(200)))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Code != "WELCOME10" {
		t.Fatalf("expected canonical code WELCOME10, got %s", result.Code)
	}
	if !result.Discount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected discount 20, got %s", result.Discount.String())
	}
}

func TestValidateFixedCouponCappedAtOrderTotal(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_fixed_cap")
	now := time.Now()
	seedOffer(t, db, "FLAT500", constants.OfferTypeFixed, 500, true, now.Add(-time.Hour), now.Add(time.Hour))

	result, err := svc.Validate("FLAT500", models.NewMoneyFromDecimal(decimal.NewFromInt(300)))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Discount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected discount capped at 300, got %s", result.Discount.String())
	}
}

func TestValidateExpiredCoupon(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_expired")
	now := time.Now()
	seedOffer(t, db, "OLD10", constants.OfferTypePercentage, 10, true, now.Add(-48*time.Hour), now.Add(-24*time.Hour))

	_, err := svc.Validate("OLD10", models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
}

func TestValidateNotStartedCoupon(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_not_started")
	now := time.Now()
	seedOffer(t, db, "SOON10", constants.OfferTypePercentage, 10, true, now.Add(24*time.Hour), now.Add(48*time.Hour))

	_, err := svc.Validate("SOON10", models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("expected ErrCouponNotStarted, got %v", err)
	}
}

func TestValidateInactiveCoupon(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_inactive")
	now := time.Now()
	seedOffer(t, db, "OFF10", constants.OfferTypePercentage, 10, false, now.Add(-time.Hour), now.Add(time.Hour))

	_, err := svc.Validate("OFF10", models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("expected ErrCouponInactive, got %v", err)
	}
}

func TestValidateUnknownCoupon(t *testing.T) {
	svc, _ := newCouponTestService(t, "coupon_unknown")

	_, err := svc.Validate("NOPE", models.NewMoneyFromDecimal(decimal.NewFromInt(100)))
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestValidateForUserReuseLimit(t *testing.T) {
	svc, db := newCouponTestService(t, "coupon_reuse")
	now := time.Now()
	seedOffer(t, db, "ONCE20", constants.OfferTypeFixed, 20, true, now.Add(-time.Hour), now.Add(time.Hour))

	var offer models.Offer
	if err := db.Where("code = ?", "ONCE20").First(&offer).Error; err != nil {
		t.Fatalf("load offer failed: %v", err)
	}
	repeatUser := uint(7)
	usage := models.UsedCoupon{
		OrderID:        1,
		OfferID:        offer.ID,
		UserID:         &repeatUser,
		Code:           "ONCE20",
		DiscountAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
	}
	if err := db.Create(&usage).Error; err != nil {
		t.Fatalf("seed used coupon failed: %v", err)
	}

	total := models.NewMoneyFromDecimal(decimal.NewFromInt(100))
	if _, err := svc.ValidateForUser("ONCE20", total, &repeatUser); !errors.Is(err, ErrCouponAlreadyUsed) {
		t.Fatalf("expected ErrCouponAlreadyUsed, got %v", err)
	}

	freshUser := uint(8)
	if _, err := svc.ValidateForUser("ONCE20", total, &freshUser); err != nil {
		t.Fatalf("fresh user should pass: %v", err)
	}

	// 匿名下单不受次数限制
	if _, err := svc.ValidateForUser("ONCE20", total, nil); err != nil {
		t.Fatalf("anonymous should pass: %v", err)
	}
}
