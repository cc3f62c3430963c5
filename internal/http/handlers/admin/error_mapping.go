package admin

import (
	"errors"

	"github.com/zaika-next/internal/http/response"
	"github.com/zaika-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var adminOrderErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid order input"},
	{target: service.ErrOrderEmpty, code: response.CodeBadRequest, msg: "order has no items"},
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: "menu item not found"},
	{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, msg: "menu item unavailable"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, msg: "invalid order status"},
	{target: service.ErrOrderTerminal, code: response.CodeConflict, msg: "order in terminal state"},
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "coupon invalid"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon inactive"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon not started"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon expired"},
	{target: service.ErrCouponAlreadyUsed, code: response.CodeConflict, msg: "coupon already used"},
}

var adminPaymentErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid payment input"},
	{target: service.ErrPaymentNotFound, code: response.CodeNotFound, msg: "payment not found"},
	{target: service.ErrPaymentTerminal, code: response.CodeConflict, msg: "payment in terminal state"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeBadRequest, msg: "invalid payment status"},
	{target: service.ErrPaymentModeInvalid, code: response.CodeBadRequest, msg: "invalid payment mode"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}
