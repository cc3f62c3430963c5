package public

import (
	"github.com/zaika-next/internal/http/response"
	"github.com/zaika-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ValidateCouponRequest 优惠码校验请求
type ValidateCouponRequest struct {
	Code       string       `json:"code" binding:"required"`
	OrderTotal models.Money `json:"order_total" binding:"required"`
}

// ValidateCoupon 公开校验优惠码并返回封顶折扣
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	result, err := h.CouponService.Validate(req.Code, req.OrderTotal)
	if err != nil {
		respondWithMappedError(c, err, couponErrorRules, response.CodeInternal, "coupon validate failed")
		return
	}
	response.Success(c, result)
}
