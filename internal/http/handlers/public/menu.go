package public

import (
	"strconv"
	"strings"

	"github.com/zaika-next/internal/http/response"
	"github.com/zaika-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetMenu 公开菜品列表
func (h *Handler) GetMenu(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	items, total, err := h.MenuService.List(repository.MenuItemListFilter{
		Page:          page,
		PageSize:      pageSize,
		Category:      strings.TrimSpace(c.Query("category")),
		Search:        strings.TrimSpace(c.Query("search")),
		OnlyAvailable: c.Query("only_available") == "true",
	})
	if err != nil {
		respondError(c, response.CodeInternal, "menu fetch failed", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, items, pagination)
}

// GetMenuItem 公开菜品详情
func (h *Handler) GetMenuItem(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid menu item id", nil)
		return
	}
	item, getErr := h.MenuService.Get(uint(id))
	if getErr != nil {
		respondWithMappedError(c, getErr, cartErrorRules, response.CodeInternal, "menu fetch failed")
		return
	}
	response.Success(c, item)
}
