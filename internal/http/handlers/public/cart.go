package public

import (
	"strconv"

	"github.com/zaika-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// SetCartItemRequest 设置数量请求
type SetCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart 获取当前购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetActiveCart(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart fetch failed")
		return
	}
	response.Success(c, cart)
}

// AddCartItem 添加菜品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CartService.AddItem(uid, req.MenuItemID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.SuccessWithMsg(c, "item added", nil)
}

// SetCartItemQuantity 设置购物车项数量，<=0 时移除
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	menuItemID, ok := parseMenuItemID(c)
	if !ok {
		return
	}
	var req SetCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if err := h.CartService.SetItemQuantity(uid, menuItemID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.SuccessWithMsg(c, "quantity updated", nil)
}

// RemoveCartItem 从购物车移除菜品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	menuItemID, ok := parseMenuItemID(c)
	if !ok {
		return
	}
	if err := h.CartService.RemoveItem(uid, menuItemID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.SuccessWithMsg(c, "item removed", nil)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.CartService.Clear(uid); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	response.SuccessWithMsg(c, "cart cleared", nil)
}

func parseMenuItemID(c *gin.Context) (uint, bool) {
	raw := c.Param("menu_item_id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		respondError(c, response.CodeBadRequest, "invalid menu item id", nil)
		return 0, false
	}
	return uint(parsed), true
}
