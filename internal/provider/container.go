package provider

import (
	"github.com/shopspring/decimal"

	"github.com/zaika-next/internal/authz"
	"github.com/zaika-next/internal/cache"
	"github.com/zaika-next/internal/config"
	"github.com/zaika-next/internal/logger"
	"github.com/zaika-next/internal/models"
	"github.com/zaika-next/internal/queue"
	"github.com/zaika-next/internal/repository"
	"github.com/zaika-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	MenuItemRepo   repository.MenuItemRepository
	CartRepo       repository.CartRepository
	OrderRepo      repository.OrderRepository
	PaymentRepo    repository.PaymentRepository
	OfferRepo      repository.OfferRepository
	UsedCouponRepo repository.UsedCouponRepository

	// Services
	AuthzService   *authz.Service
	MenuService    *service.MenuService
	CartService    *service.CartService
	PricingService *service.PricingService
	CouponService  *service.CouponService
	OrderService   *service.OrderService
	PaymentService *service.PaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.MenuItemRepo = repository.NewMenuItemRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
	c.OfferRepo = repository.NewOfferRepository(db)
	c.UsedCouponRepo = repository.NewUsedCouponRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.MenuService = service.NewMenuService(c.MenuItemRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.MenuItemRepo)
	c.PricingService = service.NewPricingService(service.PricingConfig{
		GSTRatePercent: decimal.NewFromFloat(c.Config.Pricing.GSTRatePercent),
		DeliveryCharge: models.NewMoneyFromFloat(c.Config.Pricing.DeliveryCharge),
		ServiceCharge:  models.NewMoneyFromFloat(c.Config.Pricing.ServiceCharge),
	})
	c.CouponService = service.NewCouponService(c.OfferRepo, c.UsedCouponRepo)
	c.OrderService = service.NewOrderService(
		models.DB,
		c.OrderRepo,
		c.PaymentRepo,
		c.MenuItemRepo,
		c.CartRepo,
		c.UsedCouponRepo,
		c.PricingService,
		c.CouponService,
		c.QueueClient,
	)
	c.PaymentService = service.NewPaymentService(c.PaymentRepo, c.OrderRepo, c.QueueClient)
}
