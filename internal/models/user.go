package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（顾客与管理员共用，角色区分）
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                 // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`               // 姓名
	Phone     string         `gorm:"type:varchar(20);index" json:"phone"`                  // 手机号
	Email     string         `gorm:"type:varchar(200);index" json:"email,omitempty"`       // 邮箱
	Role      string         `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"` // 角色
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
