package service

import (
	"strings"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"

	"github.com/shopspring/decimal"
)

// PricingConfig 计价配置（税率为百分比数值，如 5 表示 5%）
type PricingConfig struct {
	GSTRatePercent decimal.Decimal
	DeliveryCharge models.Money
	ServiceCharge  models.Money
}

// PricedLine 一条待计价的订单行
type PricedLine struct {
	UnitPrice models.Money
	Quantity  int
}

// Quote 计价结果
type Quote struct {
	Subtotal        models.Money `json:"subtotal"`
	GSTAmount       models.Money `json:"gst_amount"`
	DeliveryCharges models.Money `json:"delivery_charges"`
	ServiceCharges  models.Money `json:"service_charges"`
	DiscountAmount  models.Money `json:"discount_amount"`
	TotalAmount     models.Money `json:"total_amount"`
}

// PricingService 计价服务（纯计算，不落库）
type PricingService struct {
	cfg PricingConfig
}

// NewPricingService 创建计价服务
func NewPricingService(cfg PricingConfig) *PricingService {
	return &PricingService{cfg: cfg}
}

// Subtotal 计算商品小计
func (s *PricingService) Subtotal(lines []PricedLine) models.Money {
	sum := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		sum = sum.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return models.NewMoneyFromDecimal(sum)
}

// Compute 计算订单报价：小计、税额、配送费、服务费与应付总额
//
// total = subtotal + gst + delivery + service - discount，金额全程定点
// 运算并保留 2 位小数，折扣不会使总额为负。
func (s *PricingService) Compute(lines []PricedLine, orderType string, discount models.Money) Quote {
	subtotal := s.Subtotal(lines)

	gst := subtotal.Decimal.Mul(s.cfg.GSTRatePercent).Div(decimal.NewFromInt(100))
	gstAmount := models.NewMoneyFromDecimal(gst)

	delivery := models.ZeroMoney()
	if strings.EqualFold(strings.TrimSpace(orderType), constants.OrderTypeDelivery) {
		delivery = s.cfg.DeliveryCharge
	}
	service := s.cfg.ServiceCharge

	grossTotal := subtotal.Decimal.
		Add(gstAmount.Decimal).
		Add(delivery.Decimal).
		Add(service.Decimal)

	capped := discount.Decimal
	if capped.GreaterThan(grossTotal) {
		capped = grossTotal
	}
	if capped.IsNegative() {
		capped = decimal.Zero
	}

	return Quote{
		Subtotal:        subtotal,
		GSTAmount:       gstAmount,
		DeliveryCharges: delivery,
		ServiceCharges:  service,
		DiscountAmount:  models.NewMoneyFromDecimal(capped),
		TotalAmount:     models.NewMoneyFromDecimal(grossTotal.Sub(capped)),
	}
}
