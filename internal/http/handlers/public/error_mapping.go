package public

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

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid cart input"},
	{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: "menu item not found"},
	{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, msg: "menu item unavailable"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponInvalid, code: response.CodeBadRequest, msg: "coupon invalid"},
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon inactive"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon not started"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon expired"},
	{target: service.ErrCouponAlreadyUsed, code: response.CodeConflict, msg: "coupon already used"},
}

var orderCreateErrorRules = concatMappedHandlerErrors(
	[]mappedHandlerError{
		{target: service.ErrInvalidInput, code: response.CodeBadRequest, msg: "invalid order input"},
		{target: service.ErrOrderEmpty, code: response.CodeBadRequest, msg: "order has no items"},
		{target: service.ErrMenuItemNotFound, code: response.CodeNotFound, msg: "menu item not found"},
		{target: service.ErrMenuItemUnavailable, code: response.CodeBadRequest, msg: "menu item unavailable"},
	},
	couponErrorRules,
)

var orderLifecycleErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderTerminal, code: response.CodeConflict, msg: "order in terminal state"},
	{target: service.ErrOrderCancelForbidden, code: response.CodeBadRequest, msg: "order cannot be cancelled"},
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
