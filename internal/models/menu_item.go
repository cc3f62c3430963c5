package models

import (
	"time"

	"gorm.io/gorm"
)

// MenuItem 菜品表（目录协作方，本核心只读）
type MenuItem struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                          // 主键
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`                        // 菜品名称
	Description     string         `gorm:"type:text" json:"description,omitempty"`                        // 描述
	Category        string         `gorm:"type:varchar(50);index" json:"category,omitempty"`              // 分类
	Price           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`            // 价格
	DiscountedPrice *Money         `gorm:"type:decimal(20,2)" json:"discounted_price,omitempty"`          // 折扣价
	IsAvailable     bool           `gorm:"not null;index" json:"is_available"`                            // 是否可售（不设默认值，否则零值 false 会被建表默认覆盖）
	ImageURL        string         `gorm:"type:text" json:"image_url,omitempty"`                          // 图片地址
	StockQuantity   int            `gorm:"not null;default:0" json:"stock_quantity"`                      // 库存数量（本核心不扣减）
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                // 软删除时间
}

// TableName 指定表名
func (MenuItem) TableName() string {
	return "menu_items"
}

// EffectivePrice 下单时生效的价格（有折扣价取折扣价）
func (m MenuItem) EffectivePrice() Money {
	if m.DiscountedPrice != nil {
		return *m.DiscountedPrice
	}
	return m.Price
}
