package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                           // 主键
	OrderNo         string         `gorm:"uniqueIndex;not null" json:"order_no"`                           // 订单编号
	UserID          *uint          `gorm:"index" json:"user_id,omitempty"`                                 // 用户ID（游客订单为空）
	CustomerName    string         `gorm:"type:varchar(100);not null" json:"customer_name"`                // 顾客姓名快照
	CustomerPhone   string         `gorm:"type:varchar(20);not null" json:"customer_phone"`                // 顾客电话快照
	DeliveryAddress string         `gorm:"type:text" json:"delivery_address,omitempty"`                    // 配送地址
	OrderType       string         `gorm:"type:varchar(20);not null;index" json:"order_type"`              // 订单类型（pickup/delivery）
	Status          string         `gorm:"type:varchar(30);not null;index" json:"status"`                  // 订单状态
	Subtotal        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`          // 商品小计
	GSTAmount       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"gst_amount"`        // 税额
	DeliveryCharges Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_charges"`  // 配送费
	ServiceCharges  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"service_charges"`   // 服务费
	DiscountAmount  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`   // 优惠金额
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`      // 应付总额
	CouponCode      string         `gorm:"type:varchar(50);index" json:"coupon_code,omitempty"`            // 优惠码快照
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`                               // 备注
	ClientIP        string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                    // 下单客户端IP
	CancelledAt     *time.Time     `gorm:"index" json:"cancelled_at,omitempty"`                            // 取消时间
	DeliveredAt     *time.Time     `gorm:"index" json:"delivered_at,omitempty"`                            // 送达时间
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                        // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                        // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                                 // 软删除时间

	Items        []OrderItem  `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // 订单项
	Payments     []Payment    `gorm:"foreignKey:OrderID" json:"payments,omitempty"` // 支付记录
	CouponUsages []UsedCoupon `gorm:"-" json:"coupon_usages,omitempty"`             // 核销记录（管理端详情按需带出）
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
