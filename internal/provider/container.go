package provider

import (
	"github.com/shopadmin-next/internal/cache"
	"github.com/shopadmin-next/internal/config"
	"github.com/shopadmin-next/internal/logger"
	"github.com/shopadmin-next/internal/models"
	"github.com/shopadmin-next/internal/queue"
	"github.com/shopadmin-next/internal/repository"
	"github.com/shopadmin-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo             repository.AdminRepository
	CategoryRepo          repository.CategoryRepository
	ProductRepo           repository.ProductRepository
	CustomerRepo          repository.CustomerRepository
	OrderRepo             repository.OrderRepository
	CampaignRepo          repository.CampaignRepository
	TriggeredDiscountRepo repository.TriggeredDiscountRepository
	DashboardRepo         repository.DashboardRepository

	// Services
	AuthService              *service.AuthService
	CategoryService          *service.CategoryService
	ProductService           *service.ProductService
	CustomerService          *service.CustomerService
	CampaignAdminService     *service.CampaignAdminService
	CampaignTriggerService   *service.CampaignTriggerService
	TriggeredDiscountService *service.TriggeredDiscountService
	OrderService             *service.OrderService
	DashboardService         *service.DashboardService
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
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.TriggeredDiscountRepo = repository.NewTriggeredDiscountRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo)
	c.CampaignAdminService = service.NewCampaignAdminService(c.CampaignRepo)
	c.CampaignTriggerService = service.NewCampaignTriggerService(c.Config, c.CampaignRepo, c.OrderRepo, c.TriggeredDiscountRepo, c.QueueClient)
	c.TriggeredDiscountService = service.NewTriggeredDiscountService(c.TriggeredDiscountRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CustomerRepo, c.CampaignTriggerService, c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.Config)
}
