package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
//
// 同一购物车内同一菜品至多一行，由应用层在每次写入时合并维护，
// 并发写入产生的重复行会在下一次写入时被收敛，故不加唯一索引。
type CartItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`               // 主键
	CartID     uint           `gorm:"not null;index" json:"cart_id"`      // 购物车ID
	MenuItemID uint           `gorm:"not null;index" json:"menu_item_id"` // 菜品ID
	Quantity   int            `gorm:"not null" json:"quantity"`           // 数量
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`            // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`            // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                     // 软删除时间

	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"` // 关联菜品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
