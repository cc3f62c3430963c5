package repository

import (
	"errors"
	"strings"

	"github.com/zaika-next/internal/models"

	"gorm.io/gorm"
)

// OfferRepository 优惠码数据访问接口
type OfferRepository interface {
	GetByCode(code string) (*models.Offer, error)
	GetByID(id uint) (*models.Offer, error)
	List(page, pageSize int) ([]models.Offer, int64, error)
	Create(offer *models.Offer) error
	WithTx(tx *gorm.DB) *GormOfferRepository
}

// GormOfferRepository GORM 实现
type GormOfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository 创建优惠码仓库
func NewOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOfferRepository) WithTx(tx *gorm.DB) *GormOfferRepository {
	if tx == nil {
		return r
	}
	return &GormOfferRepository{db: tx}
}

// GetByCode 根据优惠码获取（大小写不敏感，统一按大写匹配）
func (r *GormOfferRepository) GetByCode(code string) (*models.Offer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}
	var offer models.Offer
	err := r.db.Where("UPPER(code) = ?", code).First(&offer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetByID 根据 ID 获取优惠码
func (r *GormOfferRepository) GetByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

// List 优惠码列表
func (r *GormOfferRepository) List(page, pageSize int) ([]models.Offer, int64, error) {
	query := r.db.Model(&models.Offer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var offers []models.Offer
	if err := query.Order("id desc").Find(&offers).Error; err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

// Create 创建优惠码
func (r *GormOfferRepository) Create(offer *models.Offer) error {
	if offer != nil {
		offer.Code = strings.ToUpper(strings.TrimSpace(offer.Code))
	}
	return r.db.Create(offer).Error
}
