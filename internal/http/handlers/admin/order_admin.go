package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/zaika-next/internal/http/response"
	"github.com/zaika-next/internal/repository"
	"github.com/zaika-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminCreateOrderRequest 管理端代客下单请求（游客订单，不绑定用户）
type AdminCreateOrderRequest struct {
	Items           []service.CreateOrderItemInput `json:"items" binding:"required"`
	CustomerName    string                         `json:"customer_name" binding:"required"`
	CustomerPhone   string                         `json:"customer_phone" binding:"required"`
	DeliveryAddress string                         `json:"delivery_address"`
	OrderType       string                         `json:"order_type" binding:"required"`
	PaymentMethod   string                         `json:"payment_method"`
	CouponCode      string                         `json:"coupon_code"`
	Notes           string                         `json:"notes"`
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminCreateOrder 管理端代客下单
func (h *Handler) AdminCreateOrder(c *gin.Context) {
	var req AdminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:          nil,
		Items:           req.Items,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		OrderType:       req.OrderType,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		Notes:           req.Notes,
		ClientIP:        c.ClientIP(),
	})
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "order create failed")
		return
	}
	response.Success(c, order)
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	createdFrom, err := parseTimeNullable(strings.TrimSpace(c.Query("created_from")), false)
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	createdTo, err := parseTimeNullable(strings.TrimSpace(c.Query("created_to")), true)
	if err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	var userID uint
	if raw := strings.TrimSpace(c.Query("customer_id")); raw != "" {
		if parsed, parseErr := strconv.ParseUint(raw, 10, 64); parseErr == nil {
			userID = uint(parsed)
		}
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNo:     strings.TrimSpace(c.Query("order_number")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "order fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrderAdmin(id, c.Query("include_deleted") == "true")
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "order fetch failed")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 管理端更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "order update failed")
		return
	}
	response.Success(c, order)
}

// AdminDeleteOrder 管理端软删除订单
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.OrderService.SoftDelete(id); err != nil {
		respondWithMappedError(c, err, adminOrderErrorRules, response.CodeInternal, "order delete failed")
		return
	}
	response.SuccessWithMsg(c, "order deleted", nil)
}

func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(parsed), true
}

// parseTimeNullable 解析时间筛选参数，endOfDay 时纯日期取当天末尾（上界含当天整天）
func parseTimeNullable(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return &parsed, nil
}
