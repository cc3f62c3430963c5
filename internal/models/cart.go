package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表（每个顾客至多一个 active 购物车）
type Cart struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID    uint           `gorm:"not null;index" json:"user_id"`                                // 用户ID
	Status    string         `gorm:"type:varchar(20);not null;default:'active';index" json:"status"` // 状态
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}
