package main

import (
	"time"

	"github.com/zaika-next/internal/config"
	"github.com/zaika-next/internal/constants"
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/service"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加菜单项
	menuItems := []models.MenuItem{
		{
			Name:          "Paneer Tikka",
			Description:   "Char-grilled cottage cheese cubes marinated in spiced yogurt",
			Category:      constants.MenuCategoryStarter,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(220)),
			IsAvailable:   true,
			StockQuantity: 50,
		},
		{
			Name:          "Veg Spring Rolls",
			Description:   "Crispy rolls stuffed with seasonal vegetables",
			Category:      constants.MenuCategoryStarter,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(160)),
			IsAvailable:   true,
			StockQuantity: 40,
		},
		{
			Name:          "Butter Chicken",
			Description:   "Tandoori chicken simmered in a creamy tomato gravy",
			Category:      constants.MenuCategoryMain,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(380)),
			IsAvailable:   true,
			StockQuantity: 60,
		},
		{
			Name:          "Dal Makhani",
			Description:   "Slow-cooked black lentils finished with butter and cream",
			Category:      constants.MenuCategoryMain,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(260)),
			IsAvailable:   true,
			StockQuantity: 60,
		},
		{
			Name:          "Biryani",
			Description:   "Fragrant basmati rice layered with spices and saffron",
			Category:      constants.MenuCategoryMain,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(320)),
			IsAvailable:   true,
			StockQuantity: 45,
		},
		{
			Name:          "Gulab Jamun",
			Description:   "Soft milk dumplings soaked in rose-scented syrup",
			Category:      constants.MenuCategoryDessert,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(120)),
			IsAvailable:   true,
			StockQuantity: 80,
		},
		{
			Name:          "Masala Chai",
			Description:   "Spiced Indian tea brewed with milk",
			Category:      constants.MenuCategoryDrink,
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(60)),
			IsAvailable:   true,
			StockQuantity: 100,
		},
	}

	for _, item := range menuItems {
		var existing models.MenuItem
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create menu item %s: %v", item.Name, err)
			} else {
				stdLog.Printf("Created menu item: %s", item.Name)
			}
		} else {
			stdLog.Printf("Menu item already exists: %s", item.Name)
		}
	}

	// 添加优惠码
	now := time.Now()
	offers := []models.Offer{
		{
			Code:          "WELCOME10",
			Description:   "10% off for new customers",
			DiscountType:  constants.OfferTypePercentage,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			ValidFrom:     now,
			ValidTo:       now.AddDate(0, 3, 0),
			IsActive:      true,
		},
		{
			Code:          "FLAT50",
			Description:   "Flat 50 off on any order",
			DiscountType:  constants.OfferTypeFixed,
			DiscountValue: models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			ValidFrom:     now,
			ValidTo:       now.AddDate(0, 1, 0),
			IsActive:      true,
		},
	}

	for _, offer := range offers {
		var existing models.Offer
		if err := models.DB.Where("code = ?", offer.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&offer).Error; err != nil {
				stdLog.Printf("Failed to create offer %s: %v", offer.Code, err)
			} else {
				stdLog.Printf("Created offer: %s", offer.Code)
			}
		} else {
			stdLog.Printf("Offer already exists: %s", offer.Code)
		}
	}

	// 初始化默认管理员与演示用户
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	demoCustomer := models.User{
		Name:  "Demo Customer",
		Phone: "9000000001",
		Role:  constants.RoleCustomer,
	}
	var existingCustomer models.User
	if err := models.DB.Where("phone = ?", demoCustomer.Phone).First(&existingCustomer).Error; err != nil {
		if err := models.DB.Create(&demoCustomer).Error; err != nil {
			stdLog.Printf("Failed to create demo customer: %v", err)
		} else {
			stdLog.Printf("Created demo customer: %s", demoCustomer.Phone)
			existingCustomer = demoCustomer
		}
	} else {
		stdLog.Printf("Demo customer already exists: %s", existingCustomer.Phone)
	}

	// 开发环境打印调试令牌，便于直接调用鉴权接口
	if cfg.Server.Mode != "release" && existingCustomer.ID != 0 {
		token, err := service.IssueUserToken(cfg.JWT.SecretKey, cfg.JWT.ExpireHours, &existingCustomer)
		if err != nil {
			stdLog.Printf("Failed to issue demo token: %v", err)
		} else {
			stdLog.Printf("Demo customer token: %s", token)
		}
	}

	stdLog.Println("Seed completed")
}
