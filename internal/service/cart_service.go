package service

import (
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/repository"
)

// CartItemDetail 购物车项详情（关联当前菜品信息）
type CartItemDetail struct {
	MenuItemID  uint             `json:"menu_item_id"`
	Quantity    int              `json:"quantity"`
	UnitPrice   models.Money     `json:"unit_price"`
	IsAvailable bool             `json:"is_available"`
	MenuItem    *models.MenuItem `json:"menu_item,omitempty"`
}

// CartDetail 购物车详情
type CartDetail struct {
	CartID uint             `json:"cart_id"`
	Status string           `json:"status"`
	Items  []CartItemDetail `json:"items"`
}

// CartService 购物车服务
//
// 同一购物车内同一菜品至多一行的约束由每次写入时的合并收敛维护：
// 并发写入可能短暂产生重复行，下一次写入会把它们收敛为一行。
type CartService struct {
	cartRepo     repository.CartRepository
	menuItemRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuItemRepo repository.MenuItemRepository) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		menuItemRepo: menuItemRepo,
	}
}

// GetActiveCart 获取用户当前购物车，不存在时返回空购物车
func (s *CartService) GetActiveCart(userID uint) (*CartDetail, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &CartDetail{Items: []CartItemDetail{}}, nil
	}

	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		menuItem := item.MenuItem
		if menuItem == nil || menuItem.ID == 0 {
			m, err := s.menuItemRepo.GetByID(item.MenuItemID)
			if err != nil {
				return nil, err
			}
			menuItem = m
		}
		if menuItem == nil {
			// 菜品已被目录方移除，从购物车里清掉
			_ = s.cartRepo.DeleteItemsByMenuItem(cart.ID, item.MenuItemID)
			continue
		}
		details = append(details, CartItemDetail{
			MenuItemID:  item.MenuItemID,
			Quantity:    item.Quantity,
			UnitPrice:   menuItem.EffectivePrice(),
			IsAvailable: menuItem.IsAvailable,
			MenuItem:    menuItem,
		})
	}
	return &CartDetail{CartID: cart.ID, Status: cart.Status, Items: details}, nil
}

// AddItem 添加菜品到购物车（数量累加）
func (s *CartService) AddItem(userID, menuItemID uint, quantity int) error {
	if userID == 0 || menuItemID == 0 || quantity <= 0 {
		return ErrInvalidInput
	}
	if err := s.checkMenuItem(menuItemID); err != nil {
		return err
	}
	cart, err := s.cartRepo.FindOrCreateActive(userID)
	if err != nil {
		return err
	}
	return s.mergeItemRows(cart.ID, menuItemID, quantity, true)
}

// SetItemQuantity 设置购物车项数量，数量 <= 0 时移除该菜品
func (s *CartService) SetItemQuantity(userID, menuItemID uint, quantity int) error {
	if userID == 0 || menuItemID == 0 {
		return ErrInvalidInput
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	if quantity <= 0 {
		return s.cartRepo.DeleteItemsByMenuItem(cart.ID, menuItemID)
	}
	if err := s.checkMenuItem(menuItemID); err != nil {
		return err
	}
	return s.mergeItemRows(cart.ID, menuItemID, quantity, false)
}

// RemoveItem 从购物车移除菜品（删除该菜品的全部行）
func (s *CartService) RemoveItem(userID, menuItemID uint) error {
	if userID == 0 || menuItemID == 0 {
		return ErrInvalidInput
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.DeleteItemsByMenuItem(cart.ID, menuItemID)
}

// Clear 清空购物车（购物车行保留）
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidInput
	}
	cart, err := s.cartRepo.GetActiveByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearItems(cart.ID)
}

func (s *CartService) checkMenuItem(menuItemID uint) error {
	menuItem, err := s.menuItemRepo.GetByID(menuItemID)
	if err != nil {
		return err
	}
	if menuItem == nil {
		return ErrMenuItemNotFound
	}
	if !menuItem.IsAvailable {
		return ErrMenuItemUnavailable
	}
	return nil
}

// mergeItemRows 合并购物车内某菜品的全部行为一行
//
// 读出全部匹配行，additive 时把已有数量累加进新数量，否则直接取新数量，
// 写入第一行并删除其余行，重复行由此收敛。
func (s *CartService) mergeItemRows(cartID, menuItemID uint, quantity int, additive bool) error {
	rows, err := s.cartRepo.ListItemsByMenuItem(cartID, menuItemID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return s.cartRepo.CreateItem(&models.CartItem{
			CartID:     cartID,
			MenuItemID: menuItemID,
			Quantity:   quantity,
		})
	}

	total := quantity
	if additive {
		for _, row := range rows {
			total += row.Quantity
		}
	}

	if err := s.cartRepo.UpdateItemQuantity(rows[0].ID, total); err != nil {
		return err
	}

	if len(rows) > 1 {
		extra := make([]uint, 0, len(rows)-1)
		for _, row := range rows[1:] {
			extra = append(extra, row.ID)
		}
		if err := s.cartRepo.DeleteItems(extra); err != nil {
			return err
		}
		logger.Warnw("cart_duplicate_rows_merged",
			"cart_id", cartID,
			"menu_item_id", menuItemID,
			"merged_rows", len(rows),
		)
	}
	return nil
}
