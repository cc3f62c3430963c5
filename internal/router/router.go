package router

import (
	"fmt"
	"strings"

	"github.com/zaika-next/internal/cache"
	"github.com/zaika-next/internal/config"
	"github.com/zaika-next/internal/constants"
	adminhandlers "github.com/zaika-next/internal/http/handlers/admin"
	publichandlers "github.com/zaika-next/internal/http/handlers/public"
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	couponRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon", redisPrefix),
		WindowSeconds: cfg.Security.CouponRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CouponRateLimit.MaxAttempts,
		Message:       "too many coupon attempts",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		apiV1.GET("/menu", publicHandler.GetMenu)
		apiV1.GET("/menu/:id", publicHandler.GetMenuItem)
		apiV1.POST("/offers/validate",
			RateLimitMiddleware(redisClient, couponRule, KeyByIPAndJSONField("code")),
			publicHandler.ValidateCoupon,
		)

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/add", publicHandler.AddCartItem)
			user.PUT("/cart/:menu_item_id", publicHandler.SetCartItemQuantity)
			user.DELETE("/cart/:menu_item_id", publicHandler.RemoveCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)
			user.POST("/orders", publicHandler.CreateOrder)
			user.GET("/orders/mine", publicHandler.ListMyOrders)
			user.GET("/orders/:id", publicHandler.GetOrder)
			user.PUT("/orders/:id/cancel", publicHandler.CancelOrder)
		}

		// 管理员接口（需鉴权 + RBAC）
		admin := apiV1.Group("/admin")
		admin.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo), RoleAuthzMiddleware(c.AuthzService))
		{
			admin.POST("/orders", adminHandler.AdminCreateOrder)
			admin.GET("/orders", adminHandler.AdminListOrders)
			admin.GET("/orders/:id", adminHandler.AdminGetOrder)
			admin.PUT("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)
			admin.DELETE("/orders/:id", adminHandler.AdminDeleteOrder)

			admin.POST("/payments", adminHandler.AdminCreatePayment)
			admin.GET("/payments", adminHandler.AdminListPayments)
			admin.GET("/payments/stats", adminHandler.AdminPaymentStats)
			admin.GET("/payments/:id", adminHandler.AdminGetPayment)
			admin.PUT("/payments/:id", adminHandler.AdminUpdatePayment)
			admin.PUT("/payments/:id/status", adminHandler.AdminUpdatePaymentStatus)
			admin.DELETE("/payments/:id", adminHandler.AdminDeletePayment)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
