package repository

import (
	"github.com/zaika-next/internal/models"

	"gorm.io/gorm"
)

// UsedCouponRepository 优惠码核销台账数据访问接口
type UsedCouponRepository interface {
	Create(usage *models.UsedCoupon) error
	ListByOrderID(orderID uint) ([]models.UsedCoupon, error)
	CountByOfferAndUser(offerID uint, userID uint) (int64, error)
	WithTx(tx *gorm.DB) *GormUsedCouponRepository
}

// GormUsedCouponRepository GORM 实现
type GormUsedCouponRepository struct {
	db *gorm.DB
}

// NewUsedCouponRepository 创建核销台账仓库
func NewUsedCouponRepository(db *gorm.DB) *GormUsedCouponRepository {
	return &GormUsedCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUsedCouponRepository) WithTx(tx *gorm.DB) *GormUsedCouponRepository {
	if tx == nil {
		return r
	}
	return &GormUsedCouponRepository{db: tx}
}

// Create 写入一条核销记录
func (r *GormUsedCouponRepository) Create(usage *models.UsedCoupon) error {
	return r.db.Create(usage).Error
}

// ListByOrderID 获取订单的核销记录
func (r *GormUsedCouponRepository) ListByOrderID(orderID uint) ([]models.UsedCoupon, error) {
	var usages []models.UsedCoupon
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&usages).Error; err != nil {
		return nil, err
	}
	return usages, nil
}

// CountByOfferAndUser 统计用户对某优惠码的核销次数
func (r *GormUsedCouponRepository) CountByOfferAndUser(offerID uint, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.UsedCoupon{}).
		Where("offer_id = ? AND user_id = ?", offerID, userID).
		Count(&count).Error
	return count, err
}
