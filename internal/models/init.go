package models

import (
	"strings"

	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/logger"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(name, phone string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(name) == "" {
		name = "admin"
	}
	if strings.TrimSpace(phone) == "" {
		phone = "9999999999"
	}

	admin := User{
		Name:  name,
		Phone: phone,
		Role:  constants.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warnw("default_admin_created", "name", name, "phone", phone)
	return nil
}
