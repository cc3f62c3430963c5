package service

import (
	"strings"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponResult 优惠码校验结果
type CouponResult struct {
	Code          string       `json:"code"`
	DiscountType  string       `json:"discount_type"`
	DiscountValue models.Money `json:"discount_value"`
	Discount      models.Money `json:"calculated_discount"`
	Offer         *models.Offer `json:"-"`
}

// 同一用户对同一优惠码的核销次数上限
const couponMaxUsesPerUser = 1

// CouponService 优惠码服务
type CouponService struct {
	offerRepo      repository.OfferRepository
	usedCouponRepo repository.UsedCouponRepository
}

// NewCouponService 创建优惠码服务
func NewCouponService(offerRepo repository.OfferRepository, usedCouponRepo repository.UsedCouponRepository) *CouponService {
	return &CouponService{
		offerRepo:      offerRepo,
		usedCouponRepo: usedCouponRepo,
	}
}

// Validate 校验优惠码并计算封顶后的折扣金额
//
// 折扣以传入的订单总额为上限，固定金额券超过总额时按总额计，
// 百分比券按 value/100 计，订单总额不会因折扣为负。
func (s *CouponService) Validate(code string, orderTotal models.Money) (*CouponResult, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, ErrCouponInvalid
	}

	offer, err := s.offerRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrCouponNotFound
	}
	if !offer.IsActive {
		return nil, ErrCouponInactive
	}

	now := time.Now()
	if now.Before(offer.ValidFrom) {
		return nil, ErrCouponNotStarted
	}
	if now.After(offer.ValidTo) {
		return nil, ErrCouponExpired
	}

	discount, err := s.calculateDiscount(offer, orderTotal)
	if err != nil {
		return nil, err
	}

	return &CouponResult{
		Code:          offer.Code,
		DiscountType:  offer.DiscountType,
		DiscountValue: offer.DiscountValue,
		Discount:      discount,
		Offer:         offer,
	}, nil
}

// ValidateForUser 下单路径的校验：在 Validate 之上增加每用户核销次数限制
//
// 匿名下单（userID 为空）不受次数限制，核销台账里 user_id 也为空。
func (s *CouponService) ValidateForUser(code string, orderTotal models.Money, userID *uint) (*CouponResult, error) {
	result, err := s.Validate(code, orderTotal)
	if err != nil {
		return nil, err
	}
	if userID != nil && result.Offer != nil {
		used, err := s.usedCouponRepo.CountByOfferAndUser(result.Offer.ID, *userID)
		if err != nil {
			return nil, err
		}
		if used >= couponMaxUsesPerUser {
			return nil, ErrCouponAlreadyUsed
		}
	}
	return result, nil
}

func (s *CouponService) calculateDiscount(offer *models.Offer, orderTotal models.Money) (models.Money, error) {
	if offer.DiscountValue.Decimal.LessThanOrEqual(decimal.Zero) {
		return models.Money{}, ErrCouponInvalid
	}

	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(offer.DiscountType)) {
	case constants.OfferTypePercentage:
		percent := offer.DiscountValue.Decimal.Div(decimal.NewFromInt(100))
		discount = orderTotal.Decimal.Mul(percent)
	case constants.OfferTypeFixed:
		discount = offer.DiscountValue.Decimal
	default:
		return models.Money{}, ErrCouponInvalid
	}

	if discount.GreaterThan(orderTotal.Decimal) {
		discount = orderTotal.Decimal
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	return models.NewMoneyFromDecimal(discount), nil
}
