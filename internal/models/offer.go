package models

import (
	"time"

	"gorm.io/gorm"
)

// Offer 优惠码表
type Offer struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                        // 主键
	Code          string         `gorm:"uniqueIndex;not null" json:"code"`                            // 优惠码（统一大写）
	Description   string         `gorm:"type:text" json:"description,omitempty"`                      // 描述
	DiscountType  string         `gorm:"type:varchar(20);not null" json:"discount_type"`              // 折扣类型（percentage/fixed）
	DiscountValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"` // 折扣值（百分比数值或固定金额）
	ValidFrom     time.Time      `gorm:"index" json:"valid_from"`                                     // 生效时间
	ValidTo       time.Time      `gorm:"index" json:"valid_to"`                                       // 失效时间
	IsActive      bool           `gorm:"not null;index" json:"is_active"`                             // 是否启用（不设默认值，否则零值 false 会被建表默认覆盖）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间
}

// TableName 指定表名
func (Offer) TableName() string {
	return "offers"
}
