package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/queue"
	"github.com/zaika-next/internal/repository"

	"github.com/shopspring/decimal"
)

const paymentTxnMaxAttempts = 5

// paymentStatuses 全部合法支付状态
var paymentStatuses = map[string]bool{
	constants.PaymentStatusPending:   true,
	constants.PaymentStatusCompleted: true,
	constants.PaymentStatusFailed:    true,
	constants.PaymentStatusRefunded:  true,
}

// paymentModes 全部合法支付方式
var paymentModes = map[string]bool{
	constants.PaymentModeCash:       true,
	constants.PaymentModeUPI:        true,
	constants.PaymentModeCard:       true,
	constants.PaymentModeNetbanking: true,
}

// CreatePaymentInput 管理端创建支付记录请求
type CreatePaymentInput struct {
	OrderID     uint
	Amount      models.Money
	PaymentMode string
	Status      string
	Reference   string
	Notes       string
}

// UpdatePaymentInput 管理端更新支付记录请求（金额不可改）
type UpdatePaymentInput struct {
	PaymentMode *string
	Status      *string
	Reference   *string
	Notes       *string
}

// PaymentStats 支付统计汇总
type PaymentStats struct {
	TotalRevenue   models.Money            `json:"total_revenue"`
	PendingAmount  models.Money            `json:"pending_amount"`
	FailedAmount   models.Money            `json:"failed_amount"`
	RefundedAmount models.Money            `json:"refunded_amount"`
	TotalCount     int64                   `json:"total_count"`
	CountByStatus  map[string]int64        `json:"count_by_status"`
	CountByMode    map[string]int64        `json:"count_by_mode"`
	RevenueByMode  map[string]models.Money `json:"revenue_by_mode"`
}

// PaymentService 支付台账服务（记账，不对接支付网关）
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	queueClient *queue.Client
}

// NewPaymentService 创建支付服务
func NewPaymentService(paymentRepo repository.PaymentRepository, orderRepo repository.OrderRepository, queueClient *queue.Client) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		queueClient: queueClient,
	}
}

// Create 管理端补录一条支付记录
func (s *PaymentService) Create(input CreatePaymentInput) (*models.Payment, error) {
	if input.OrderID == 0 || !input.Amount.Decimal.GreaterThan(decimal.Zero) {
		return nil, ErrInvalidInput
	}
	mode := strings.ToLower(strings.TrimSpace(input.PaymentMode))
	if !paymentModes[mode] {
		return nil, ErrPaymentModeInvalid
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	if status == "" {
		status = constants.PaymentStatusPending
	}
	if !paymentStatuses[status] {
		return nil, ErrPaymentStatusInvalid
	}

	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	transactionID, err := s.generateTransactionID(order.OrderNo)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	payment := &models.Payment{
		TransactionID: transactionID,
		OrderID:       order.ID,
		UserID:        order.UserID,
		Amount:        input.Amount,
		PaymentMode:   mode,
		Status:        status,
		Reference:     strings.TrimSpace(input.Reference),
		Notes:         strings.TrimSpace(input.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if status == constants.PaymentStatusCompleted {
		payment.PaidAt = &now
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// generateTransactionID 生成交易流水号：TXN + 订单号 + 4 位随机数字，碰撞则重试
func (s *PaymentService) generateTransactionID(orderNo string) (string, error) {
	for attempt := 0; attempt < paymentTxnMaxAttempts; attempt++ {
		suffix, err := randNumeric(4)
		if err != nil {
			return "", err
		}
		transactionID := "TXN" + orderNo + "-" + suffix
		existing, err := s.paymentRepo.GetByTransactionID(transactionID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return transactionID, nil
		}
	}
	return "", fmt.Errorf("generate transaction id: %d attempts exhausted", paymentTxnMaxAttempts)
}

// GetByID 获取支付记录
func (s *PaymentService) GetByID(id uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	return payment, nil
}

// List 管理端支付列表
func (s *PaymentService) List(filter repository.PaymentListFilter) ([]models.Payment, int64, error) {
	return s.paymentRepo.ListAdmin(filter)
}

// Update 管理端更新支付记录：仅开放方式、状态、参考号与备注，金额不可改
func (s *PaymentService) Update(id uint, input UpdatePaymentInput) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusRefunded {
		return nil, ErrPaymentTerminal
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if input.PaymentMode != nil {
		mode := strings.ToLower(strings.TrimSpace(*input.PaymentMode))
		if !paymentModes[mode] {
			return nil, ErrPaymentModeInvalid
		}
		updates["payment_mode"] = mode
	}
	if input.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*input.Status))
		if err := s.applyStatusUpdates(payment, status, now, updates); err != nil {
			return nil, err
		}
	}
	if input.Reference != nil {
		updates["reference"] = strings.TrimSpace(*input.Reference)
	}
	if input.Notes != nil {
		updates["notes"] = strings.TrimSpace(*input.Notes)
	}

	if err := s.paymentRepo.Update(payment.ID, updates); err != nil {
		return nil, err
	}
	if status, ok := updates["status"].(string); ok && status != payment.Status {
		s.notifyPaymentEvent(payment, status)
	}
	return s.paymentRepo.GetByID(payment.ID)
}

// UpdateStatus 管理端更新支付状态
func (s *PaymentService) UpdateStatus(id uint, status string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if payment.Status == constants.PaymentStatusRefunded {
		return nil, ErrPaymentTerminal
	}

	now := time.Now()
	updates := map[string]interface{}{"updated_at": now}
	if err := s.applyStatusUpdates(payment, strings.ToLower(strings.TrimSpace(status)), now, updates); err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Update(payment.ID, updates); err != nil {
		return nil, err
	}
	if next, ok := updates["status"].(string); ok && next != payment.Status {
		s.notifyPaymentEvent(payment, next)
	}
	return s.paymentRepo.GetByID(payment.ID)
}

// applyStatusUpdates 校验目标状态并补充时间戳字段
//
// pending/completed/failed 之间可直接互转，refunded 为终态，
// 进入 refunded 后一切更新被拒绝（调用方已做前置检查）。
func (s *PaymentService) applyStatusUpdates(payment *models.Payment, status string, now time.Time, updates map[string]interface{}) error {
	if !paymentStatuses[status] {
		return ErrPaymentStatusInvalid
	}
	updates["status"] = status
	switch status {
	case constants.PaymentStatusCompleted:
		if payment.PaidAt == nil {
			updates["paid_at"] = now
		}
	case constants.PaymentStatusRefunded:
		updates["refunded_at"] = now
	}
	return nil
}

// notifyPaymentEvent 推送支付状态变更通知，失败只记日志
func (s *PaymentService) notifyPaymentEvent(payment *models.Payment, status string) {
	if s.queueClient == nil {
		return
	}
	orderNo := ""
	if order, err := s.orderRepo.GetByID(payment.OrderID); err == nil && order != nil {
		orderNo = order.OrderNo
	}
	err := s.queueClient.EnqueueOrderEvent(queue.OrderEventPayload{
		OrderID: payment.OrderID,
		OrderNo: orderNo,
		Event:   constants.OrderEventPaymentMoved,
		Status:  status,
	})
	if err != nil {
		logger.Warnw("payment_event_enqueue_failed",
			"payment_id", payment.ID,
			"order_id", payment.OrderID,
			"status", status,
			"error", err,
		)
	}
}

// Delete 管理端软删除支付记录
func (s *PaymentService) Delete(id uint) error {
	payment, err := s.paymentRepo.GetByID(id)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}
	return s.paymentRepo.SoftDelete(id)
}

// Stats 支付统计：按状态汇总金额、按方式汇总笔数与完成金额
func (s *PaymentService) Stats(filter repository.PaymentStatsFilter) (*PaymentStats, error) {
	rows, err := s.paymentRepo.Stats(filter)
	if err != nil {
		return nil, err
	}

	stats := &PaymentStats{
		TotalRevenue:   models.ZeroMoney(),
		PendingAmount:  models.ZeroMoney(),
		FailedAmount:   models.ZeroMoney(),
		RefundedAmount: models.ZeroMoney(),
		CountByStatus:  map[string]int64{},
		CountByMode:    map[string]int64{},
		RevenueByMode:  map[string]models.Money{},
	}
	for _, row := range rows {
		stats.TotalCount += row.Count
		stats.CountByStatus[row.Status] += row.Count
		stats.CountByMode[row.PaymentMode] += row.Count

		switch row.Status {
		case constants.PaymentStatusCompleted:
			stats.TotalRevenue = models.NewMoneyFromDecimal(stats.TotalRevenue.Decimal.Add(row.Total.Decimal))
			current, ok := stats.RevenueByMode[row.PaymentMode]
			if !ok {
				current = models.ZeroMoney()
			}
			stats.RevenueByMode[row.PaymentMode] = models.NewMoneyFromDecimal(current.Decimal.Add(row.Total.Decimal))
		case constants.PaymentStatusPending:
			stats.PendingAmount = models.NewMoneyFromDecimal(stats.PendingAmount.Decimal.Add(row.Total.Decimal))
		case constants.PaymentStatusFailed:
			stats.FailedAmount = models.NewMoneyFromDecimal(stats.FailedAmount.Decimal.Add(row.Total.Decimal))
		case constants.PaymentStatusRefunded:
			stats.RefundedAmount = models.NewMoneyFromDecimal(stats.RefundedAmount.Decimal.Add(row.Total.Decimal))
		}
	}
	return stats, nil
}
