package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/queue"
	"github.com/zaika-next/internal/repository"

	"gorm.io/gorm"
)

const orderNoMaxAttempts = 5

// CreateOrderItemInput 下单请求中的一条菜品行
type CreateOrderItemInput struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// CreateOrderInput 下单请求
type CreateOrderInput struct {
	UserID          *uint
	Items           []CreateOrderItemInput
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	OrderType       string
	PaymentMethod   string
	CouponCode      string
	Notes           string
	ClientIP        string
}

// OrderService 订单服务
//
// 下单是本核心唯一的多语句原子操作：订单、订单项、初始支付记录
// 与优惠码核销记录在同一事务内写入，任一步失败则整体回滚。
type OrderService struct {
	db             *gorm.DB
	orderRepo      repository.OrderRepository
	paymentRepo    repository.PaymentRepository
	menuItemRepo   repository.MenuItemRepository
	cartRepo       repository.CartRepository
	usedCouponRepo repository.UsedCouponRepository
	pricing        *PricingService
	coupons        *CouponService
	queueClient    *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	menuItemRepo repository.MenuItemRepository,
	cartRepo repository.CartRepository,
	usedCouponRepo repository.UsedCouponRepository,
	pricing *PricingService,
	coupons *CouponService,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		db:             db,
		orderRepo:      orderRepo,
		paymentRepo:    paymentRepo,
		menuItemRepo:   menuItemRepo,
		cartRepo:       cartRepo,
		usedCouponRepo: usedCouponRepo,
		pricing:        pricing,
		coupons:        coupons,
		queueClient:    queueClient,
	}
}

// CreateOrder 创建订单（订单、订单项、初始支付记录同事务写入）
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	items := mergeCreateOrderItems(input.Items)
	if len(items) == 0 {
		return nil, ErrOrderEmpty
	}
	if strings.TrimSpace(input.CustomerName) == "" || strings.TrimSpace(input.CustomerPhone) == "" {
		return nil, ErrInvalidInput
	}

	orderType := strings.ToLower(strings.TrimSpace(input.OrderType))
	if orderType != constants.OrderTypePickup && orderType != constants.OrderTypeDelivery {
		return nil, ErrInvalidInput
	}
	if orderType == constants.OrderTypeDelivery && strings.TrimSpace(input.DeliveryAddress) == "" {
		return nil, ErrInvalidInput
	}

	// 批量取出菜品后逐条校验，任意一条失败则整单失败，不产生部分订单
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
		ids = append(ids, item.MenuItemID)
	}
	menuItems, err := s.menuItemRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	menuItemByID := make(map[uint]models.MenuItem, len(menuItems))
	for _, menuItem := range menuItems {
		menuItemByID[menuItem.ID] = menuItem
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	lines := make([]PricedLine, 0, len(items))
	for _, item := range items {
		menuItem, ok := menuItemByID[item.MenuItemID]
		if !ok {
			return nil, ErrMenuItemNotFound
		}
		if !menuItem.IsAvailable {
			return nil, ErrMenuItemUnavailable
		}
		unitPrice := menuItem.EffectivePrice()
		lineTotal := s.pricing.Subtotal([]PricedLine{{UnitPrice: unitPrice, Quantity: item.Quantity}})
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			UnitPrice:  unitPrice,
			Quantity:   item.Quantity,
			TotalPrice: lineTotal,
		})
		lines = append(lines, PricedLine{UnitPrice: unitPrice, Quantity: item.Quantity})
	}

	// 优惠码以折前应付总额为基数校验与封顶
	var couponResult *CouponResult
	discount := models.ZeroMoney()
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		grossQuote := s.pricing.Compute(lines, orderType, models.ZeroMoney())
		result, err := s.coupons.ValidateForUser(code, grossQuote.TotalAmount, input.UserID)
		if err != nil {
			return nil, err
		}
		couponResult = result
		discount = result.Discount
	}

	quote := s.pricing.Compute(lines, orderType, discount)

	orderNo, err := s.generateOrderNo()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         orderNo,
		UserID:          input.UserID,
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		OrderType:       orderType,
		Status:          constants.OrderStatusPending,
		Subtotal:        quote.Subtotal,
		GSTAmount:       quote.GSTAmount,
		DeliveryCharges: quote.DeliveryCharges,
		ServiceCharges:  quote.ServiceCharges,
		DiscountAmount:  quote.DiscountAmount,
		TotalAmount:     quote.TotalAmount,
		Notes:           strings.TrimSpace(input.Notes),
		ClientIP:        strings.TrimSpace(input.ClientIP),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if couponResult != nil {
		order.CouponCode = couponResult.Code
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		payment := &models.Payment{
			TransactionID: "TXN" + orderNo,
			OrderID:       order.ID,
			UserID:        input.UserID,
			Amount:        quote.TotalAmount,
			PaymentMode:   paymentModeFromMethod(input.PaymentMethod),
			Status:        constants.PaymentStatusPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.paymentRepo.WithTx(tx).Create(payment); err != nil {
			return err
		}

		if couponResult != nil && couponResult.Offer != nil {
			usage := &models.UsedCoupon{
				OrderID:        order.ID,
				OfferID:        couponResult.Offer.ID,
				UserID:         input.UserID,
				Code:           couponResult.Code,
				DiscountAmount: quote.DiscountAmount,
			}
			if err := s.usedCouponRepo.WithTx(tx).Create(usage); err != nil {
				return err
			}
		}

		// 结账后把顾客的 active 购物车置为 ordered
		if input.UserID != nil {
			cartRepo := s.cartRepo.WithTx(tx)
			cart, err := cartRepo.GetActiveByUser(*input.UserID)
			if err != nil {
				return err
			}
			if cart != nil {
				if err := cartRepo.UpdateStatus(cart.ID, constants.CartStatusOrdered); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderEvent(order, constants.OrderEventCreated, order.Status)

	return s.orderRepo.GetByID(order.ID)
}

// GetOrderAdmin 管理端获取订单详情（用券订单附带核销记录），includeDeleted 时含软删除行
func (s *OrderService) GetOrderAdmin(id uint, includeDeleted bool) (*models.Order, error) {
	var (
		order *models.Order
		err   error
	)
	if includeDeleted {
		order, err = s.orderRepo.GetByIDUnscoped(id)
	} else {
		order, err = s.orderRepo.GetByID(id)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.CouponCode != "" {
		usages, err := s.usedCouponRepo.ListByOrderID(order.ID)
		if err != nil {
			return nil, err
		}
		order.CouponUsages = usages
	}
	return order, nil
}

// GetOrderForUser 获取顾客自己的订单详情
func (s *OrderService) GetOrderForUser(id uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListMine 顾客自己的订单列表
func (s *OrderService) ListMine(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(filter)
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 管理端更新订单状态（非终态订单可置为任意合法状态）
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	status = normalizeOrderStatus(status)
	if !isValidOrderStatus(status) {
		return nil, ErrOrderStatusInvalid
	}
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalOrderStatus(order.Status) {
		return nil, ErrOrderTerminal
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	switch status {
	case constants.OrderStatusDelivered:
		updates["delivered_at"] = now
	case constants.OrderStatusCancelled:
		updates["cancelled_at"] = now
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status, updates); err != nil {
		return nil, err
	}

	s.notifyOrderEvent(order, constants.OrderEventStatusChanged, status)
	return s.orderRepo.GetByID(order.ID)
}

// CancelOrder 顾客取消自己的订单，仅限 pending/confirmed
func (s *OrderService) CancelOrder(id uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if isTerminalOrderStatus(order.Status) {
		return nil, ErrOrderTerminal
	}
	if !canCustomerCancel(order.Status) {
		return nil, ErrOrderCancelForbidden
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":   now,
		"cancelled_at": now,
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled, updates); err != nil {
		return nil, err
	}

	s.notifyOrderEvent(order, constants.OrderEventCancelled, constants.OrderStatusCancelled)
	return s.orderRepo.GetByID(order.ID)
}

// SoftDelete 管理端软删除订单（保留行用于审计，无状态前置条件）
func (s *OrderService) SoftDelete(id uint) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.SoftDelete(id)
}

// notifyOrderEvent 推送订单事件通知，失败只记日志不影响订单
func (s *OrderService) notifyOrderEvent(order *models.Order, event, status string) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueOrderEvent(queue.OrderEventPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
		Event:   event,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("order_event_enqueue_failed",
			"order_id", order.ID,
			"event", event,
			"error", err,
		)
	}
}

// generateOrderNo 生成订单编号：ZK + 时间戳 + 6 位随机数字，碰撞则重试
func (s *OrderService) generateOrderNo() (string, error) {
	for attempt := 0; attempt < orderNoMaxAttempts; attempt++ {
		suffix, err := randNumeric(6)
		if err != nil {
			return "", err
		}
		orderNo := "ZK" + time.Now().Format("20060102150405") + suffix
		exists, err := s.orderRepo.ExistsByOrderNo(orderNo)
		if err != nil {
			return "", err
		}
		if !exists {
			return orderNo, nil
		}
	}
	return "", fmt.Errorf("generate order no: %d attempts exhausted", orderNoMaxAttempts)
}

// mergeCreateOrderItems 合并请求里重复出现的菜品行（数量累加）
func mergeCreateOrderItems(items []CreateOrderItemInput) []CreateOrderItemInput {
	merged := make([]CreateOrderItemInput, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if item.MenuItemID == 0 {
			continue
		}
		if pos, ok := index[item.MenuItemID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.MenuItemID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// paymentModeFromMethod 下单支付方式映射：cod 记为 cash，其余默认 upi
func paymentModeFromMethod(method string) string {
	if strings.EqualFold(strings.TrimSpace(method), constants.PaymentMethodCOD) {
		return constants.PaymentModeCash
	}
	return constants.PaymentModeUPI
}

func randNumeric(length int) (string, error) {
	const digits = "0123456789"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		result[i] = digits[n.Int64()]
	}
	return string(result), nil
}
