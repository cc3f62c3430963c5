package repository

import "time"

// MenuItemListFilter 查询菜品列表的过滤条件
type MenuItemListFilter struct {
	Page          int
	PageSize      int
	Category      string
	Search        string
	OnlyAvailable bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentListFilter 查询支付列表的过滤条件
type PaymentListFilter struct {
	Page        int
	PageSize    int
	OrderID     uint
	UserID      uint
	Status      string
	PaymentMode string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// PaymentStatsFilter 支付统计的过滤条件
type PaymentStatsFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
