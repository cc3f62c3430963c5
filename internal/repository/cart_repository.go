package repository

import (
	"errors"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetActiveByUser(userID uint) (*models.Cart, error)
	FindOrCreateActive(userID uint) (*models.Cart, error)
	UpdateStatus(cartID uint, status string) error
	ListItems(cartID uint) ([]models.CartItem, error)
	ListItemsByMenuItem(cartID, menuItemID uint) ([]models.CartItem, error)
	CreateItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItems(itemIDs []uint) error
	DeleteItemsByMenuItem(cartID, menuItemID uint) error
	ClearItems(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetActiveByUser 获取用户的 active 购物车，不存在返回 nil
func (r *GormCartRepository) GetActiveByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.Where("user_id = ? AND status = ?", userID, constants.CartStatusActive).
		Order("id desc").First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// FindOrCreateActive 获取或创建用户的 active 购物车
func (r *GormCartRepository) FindOrCreateActive(userID uint) (*models.Cart, error) {
	cart, err := r.GetActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID, Status: constants.CartStatusActive}
	if err := r.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateStatus 更新购物车状态
func (r *GormCartRepository) UpdateStatus(cartID uint, status string) error {
	return r.db.Model(&models.Cart{}).Where("id = ?", cartID).Update("status", status).Error
}

// ListItems 获取购物车项（关联当前菜品信息）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("MenuItem").Where("cart_id = ?", cartID).
		Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListItemsByMenuItem 获取购物车内某菜品的全部行（可能因并发写入多于一行）
func (r *GormCartRepository) ListItemsByMenuItem(cartID, menuItemID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_id = ? AND menu_item_id = ?", cartID, menuItemID).
		Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateItem 创建购物车项
func (r *GormCartRepository) CreateItem(item *models.CartItem) error {
	return r.db.Create(item).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItems 删除指定购物车项
func (r *GormCartRepository) DeleteItems(itemIDs []uint) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.Where("id IN ?", itemIDs).Delete(&models.CartItem{}).Error
}

// DeleteItemsByMenuItem 删除购物车内某菜品的全部行
func (r *GormCartRepository) DeleteItemsByMenuItem(cartID, menuItemID uint) error {
	return r.db.Where("cart_id = ? AND menu_item_id = ?", cartID, menuItemID).Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车项（购物车行保留）
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
