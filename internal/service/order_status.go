package service

import (
	"strings"

	"github.com/zaika-next/internal/constants"
)

// orderStatuses 全部合法订单状态
var orderStatuses = map[string]bool{
	constants.OrderStatusPending:        true,
	constants.OrderStatusConfirmed:      true,
	constants.OrderStatusPreparing:      true,
	constants.OrderStatusOutForDelivery: true,
	constants.OrderStatusDelivered:      true,
	constants.OrderStatusCancelled:      true,
}

// customerCancellableStatuses 顾客可自行取消的状态
var customerCancellableStatuses = map[string]bool{
	constants.OrderStatusPending:   true,
	constants.OrderStatusConfirmed: true,
}

// normalizeOrderStatus 规范化状态串
func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// isValidOrderStatus 是否为合法状态
func isValidOrderStatus(status string) bool {
	return orderStatuses[normalizeOrderStatus(status)]
}

// isTerminalOrderStatus 终态判定，终态订单拒绝一切后续状态变更
func isTerminalOrderStatus(status string) bool {
	normalized := normalizeOrderStatus(status)
	return normalized == constants.OrderStatusDelivered || normalized == constants.OrderStatusCancelled
}

// canCustomerCancel 顾客取消仅限 pending/confirmed
func canCustomerCancel(status string) bool {
	return customerCancellableStatuses[normalizeOrderStatus(status)]
}

// canAdminAssign 管理员可把非终态订单置为任意合法状态（运营兜底，非前向受限）
func canAdminAssign(current, next string) bool {
	if isTerminalOrderStatus(current) {
		return false
	}
	return isValidOrderStatus(next)
}
