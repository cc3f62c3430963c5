package admin

import (
	"strconv"
	"strings"

	"github.com/zaika-next/internal/http/response"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/repository"
	"github.com/zaika-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreatePaymentRequest 补录支付记录请求
type CreatePaymentRequest struct {
	OrderID     uint         `json:"order_id" binding:"required"`
	Amount      models.Money `json:"amount" binding:"required"`
	PaymentMode string       `json:"payment_mode" binding:"required"`
	Status      string       `json:"status"`
	Reference   string       `json:"reference"`
	Notes       string       `json:"notes"`
}

// UpdatePaymentRequest 更新支付记录请求（金额不可改）
type UpdatePaymentRequest struct {
	PaymentMode *string `json:"payment_mode"`
	Status      *string `json:"status"`
	Reference   *string `json:"reference"`
	Notes       *string `json:"notes"`
}

// UpdatePaymentStatusRequest 更新支付状态请求
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminCreatePayment 管理端补录支付记录
func (h *Handler) AdminCreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	payment, err := h.PaymentService.Create(service.CreatePaymentInput{
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		PaymentMode: req.PaymentMode,
		Status:      req.Status,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, adminPaymentErrorRules, response.CodeInternal, "payment create failed")
		return
	}
	response.Success(c, payment)
}

// AdminListPayments 管理端支付列表
func (h *Handler) AdminListPayments(c *gin.Context) {
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

	var orderID uint
	if raw := strings.TrimSpace(c.Query("order_id")); raw != "" {
		if parsed, parseErr := strconv.ParseUint(raw, 10, 64); parseErr == nil {
			orderID = uint(parsed)
		}
	}

	payments, total, err := h.PaymentService.List(repository.PaymentListFilter{
		Page:        page,
		PageSize:    pageSize,
		OrderID:     orderID,
		Status:      strings.TrimSpace(c.Query("status")),
		PaymentMode: strings.TrimSpace(c.Query("payment_mode")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, payments, pagination)
}

// AdminGetPayment 管理端支付详情
func (h *Handler) AdminGetPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	payment, err := h.PaymentService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, adminPaymentErrorRules, response.CodeInternal, "payment fetch failed")
		return
	}
	response.Success(c, payment)
}

// AdminUpdatePayment 管理端更新支付记录
func (h *Handler) AdminUpdatePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	payment, err := h.PaymentService.Update(id, service.UpdatePaymentInput{
		PaymentMode: req.PaymentMode,
		Status:      req.Status,
		Reference:   req.Reference,
		Notes:       req.Notes,
	})
	if err != nil {
		respondWithMappedError(c, err, adminPaymentErrorRules, response.CodeInternal, "payment update failed")
		return
	}
	response.Success(c, payment)
}

// AdminUpdatePaymentStatus 管理端更新支付状态
func (h *Handler) AdminUpdatePaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	payment, err := h.PaymentService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, adminPaymentErrorRules, response.CodeInternal, "payment update failed")
		return
	}
	response.Success(c, payment)
}

// AdminDeletePayment 管理端软删除支付记录
func (h *Handler) AdminDeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.PaymentService.Delete(id); err != nil {
		respondWithMappedError(c, err, adminPaymentErrorRules, response.CodeInternal, "payment delete failed")
		return
	}
	response.SuccessWithMsg(c, "payment deleted", nil)
}

// AdminPaymentStats 管理端支付统计
func (h *Handler) AdminPaymentStats(c *gin.Context) {
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

	stats, err := h.PaymentService.Stats(repository.PaymentStatsFilter{
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "payment stats failed", err)
		return
	}
	response.Success(c, stats)
}
