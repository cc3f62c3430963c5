package constants

// 订单状态常量
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// 订单类型常量
const (
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// 支付方式常量
const (
	PaymentModeCash       = "cash"
	PaymentModeUPI        = "upi"
	PaymentModeCard       = "card"
	PaymentModeNetbanking = "netbanking"
)

// 下单支付入参常量
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// 购物车状态常量
const (
	CartStatusActive    = "active"
	CartStatusOrdered   = "ordered"
	CartStatusAbandoned = "abandoned"
)

// 优惠码类型常量
const (
	OfferTypePercentage = "percentage"
	OfferTypeFixed      = "fixed"
)

// 菜品分类常量
const (
	MenuCategoryStarter = "starter"
	MenuCategoryMain    = "main"
	MenuCategoryDessert = "dessert"
	MenuCategoryDrink   = "drink"
)

// 角色常量
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// 队列常量
const (
	QueueDefault   = "default"
	TaskOrderEvent = "order:event"
)

// 订单事件常量
const (
	OrderEventCreated       = "order_created"
	OrderEventStatusChanged = "order_status_changed"
	OrderEventCancelled     = "order_cancelled"
	OrderEventPaymentMoved  = "payment_status_changed"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "zk"
)
