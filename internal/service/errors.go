package service

import "errors"

// 服务层业务错误，由 HTTP 边界统一映射为响应码
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrMenuItemUnavailable  = errors.New("menu item unavailable")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderEmpty           = errors.New("order has no items")
	ErrOrderTerminal        = errors.New("order in terminal state")
	ErrOrderStatusInvalid   = errors.New("invalid order status")
	ErrOrderCancelForbidden = errors.New("order cannot be cancelled by customer")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentTerminal      = errors.New("payment in terminal state")
	ErrPaymentStatusInvalid = errors.New("invalid payment status")
	ErrPaymentModeInvalid   = errors.New("invalid payment mode")
	ErrCouponInvalid        = errors.New("coupon invalid")
	ErrCouponNotFound       = errors.New("coupon not found")
	ErrCouponInactive       = errors.New("coupon inactive")
	ErrCouponNotStarted     = errors.New("coupon not started")
	ErrCouponAlreadyUsed    = errors.New("coupon already used")
	ErrCouponExpired        = errors.New("coupon expired")
)
