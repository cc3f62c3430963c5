package service

import (
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/repository"
)

// MenuService 菜品目录查询服务（目录维护属于外部协作方，这里只读）
type MenuService struct {
	menuItemRepo repository.MenuItemRepository
}

// NewMenuService 创建菜品查询服务
func NewMenuService(menuItemRepo repository.MenuItemRepository) *MenuService {
	return &MenuService{menuItemRepo: menuItemRepo}
}

// List 菜品列表
func (s *MenuService) List(filter repository.MenuItemListFilter) ([]models.MenuItem, int64, error) {
	return s.menuItemRepo.List(filter)
}

// Get 菜品详情
func (s *MenuService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	return item, nil
}
