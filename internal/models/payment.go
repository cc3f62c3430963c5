package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 支付台账记录（记账凭据，不对接支付网关）
type Payment struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                 // 主键
	TransactionID string         `gorm:"uniqueIndex;not null" json:"transaction_id"`           // 交易流水号
	OrderID       uint           `gorm:"index;not null" json:"order_id"`                       // 订单ID
	UserID        *uint          `gorm:"index" json:"user_id,omitempty"`                       // 用户ID（游客订单为空）
	Amount        Money          `gorm:"type:decimal(20,2);not null" json:"amount"`            // 金额（创建后不可改）
	PaymentMode   string         `gorm:"type:varchar(20);not null;index" json:"payment_mode"`  // 支付方式
	Status        string         `gorm:"type:varchar(20);not null;index" json:"status"`        // 支付状态
	Reference     string         `gorm:"type:varchar(200)" json:"reference,omitempty"`         // 外部参考号
	Notes         string         `gorm:"type:text" json:"notes,omitempty"`                     // 备注
	PaidAt        *time.Time     `gorm:"index" json:"paid_at,omitempty"`                       // 完成时间
	RefundedAt    *time.Time     `gorm:"index" json:"refunded_at,omitempty"`                   // 退款时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                              // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                              // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                       // 软删除时间
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
