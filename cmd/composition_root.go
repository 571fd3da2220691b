package cmd

import (
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/postgres"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/adapters/out/providers"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/commands"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/core/application/usecases/queries"
	"github.com/yixinglin/ecommerce-v2-sub000/internal/pkg/keylock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *providers.Registry
	locks      *keylock.KeyLock
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   providers.NewRegistry(),
		locks:      keylock.New(),
	}
}

// ProviderRegistry exposes the registry so channel and carrier adapters can
// be registered at startup, before the jobs and HTTP server come up.
func (c *CompositionRoot) ProviderRegistry() *providers.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateOrderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateBatchUoWFactory() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateProcessOrderCommandHandler() commands.ProcessOrderCommandHandler {
	return commands.NewProcessOrderCommandHandler(
		c.CreateOrderUoWFactory(),
		c.registry,
		c.locks,
		c.config.ProviderTimeout,
		c.config.LogisticsAccountID,
	)
}

func (c *CompositionRoot) CreatePullOrdersCommandHandler() commands.PullOrdersCommandHandler {
	return commands.NewPullOrdersCommandHandler(
		c.CreateOrderUoWFactory(),
		c.registry,
		c.config.ProviderTimeout,
	)
}

func (c *CompositionRoot) CreateRefreshTrackingCommandHandler() commands.RefreshTrackingCommandHandler {
	return commands.NewRefreshTrackingCommandHandler(
		c.CreateOrderUoWFactory(),
		c.registry,
		c.config.ProviderTimeout,
		c.config.LogisticsAccountID,
	)
}

func (c *CompositionRoot) CreateGenerateBatchCommandHandler() commands.GenerateBatchCommandHandler {
	return commands.NewGenerateBatchCommandHandler(c.CreateBatchUoWFactory())
}

func (c *CompositionRoot) CreateCompleteBatchCommandHandler() commands.CompleteBatchCommandHandler {
	return commands.NewCompleteBatchCommandHandler(c.CreateBatchUoWFactory())
}

func (c *CompositionRoot) CreateRecordBatchUploadCommandHandler() commands.RecordBatchUploadCommandHandler {
	return commands.NewRecordBatchUploadCommandHandler(c.CreateBatchUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchesQueryHandler() queries.GetBatchesQueryHandler {
	return queries.NewGetBatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchOrdersQueryHandler() queries.GetBatchOrdersQueryHandler {
	return queries.NewGetBatchOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}
