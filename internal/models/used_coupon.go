package models

import (
	"time"

	"gorm.io/gorm"
)

// UsedCoupon 优惠码核销台账（随订单事务写入，仅作记账）
type UsedCoupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // 订单ID
	OfferID        uint           `gorm:"index;not null" json:"offer_id"`                               // 优惠码ID
	UserID         *uint          `gorm:"index" json:"user_id,omitempty"`                               // 用户ID（游客订单为空）
	Code           string         `gorm:"type:varchar(50);index;not null" json:"code"`                  // 优惠码快照
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"` // 优惠金额
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (UsedCoupon) TableName() string {
	return "used_coupons"
}
