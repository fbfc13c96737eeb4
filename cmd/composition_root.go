package cmd

import (
	"context"
	"fmt"
	"time"

	shophttp "shopfloor/internal/adapters/in/http"
	"shopfloor/internal/adapters/out/erp"
	"shopfloor/internal/adapters/out/facade"
	"shopfloor/internal/adapters/out/httpclient"
	"shopfloor/internal/adapters/out/postgres"
	"shopfloor/internal/adapters/out/postgres/employeerepo"
	"shopfloor/internal/adapters/out/rfid"
	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/jobs"
	"shopfloor/internal/pkg/cache"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const redisKeyPrefix = "shopfloor:"

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	log        zerolog.Logger
	now        commands.Clock

	store  cache.Store
	memory *cache.MemoryStore
	redis  *cache.RedisStore

	erp        ports.ERP
	labels     ports.LabelRegistry
	authorizer ports.Authorizer
	hours      *services.BusinessHoursAccountant
}

// NewCompositionRoot wires the external clients behind the caching facade and
// builds the business hours accountant from cfg.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, log zerolog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		log:        log,
		now:        time.Now,
		authorizer: employeerepo.NewGormAuthorizer(gormDB),
	}

	switch cfg.CacheDriver {
	case "redis":
		rs, err := cache.NewRedisStore(ctx, cfg.RedisAddr, redisKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.redis, c.store = rs, rs
	default:
		c.memory = cache.NewMemoryStore()
		c.store = c.memory
	}

	erpClient, err := erp.NewClient(httpclient.Config{
		BaseURL:       cfg.ERPBaseURL,
		Timeout:       cfg.ERPTimeout,
		RatePerSecond: cfg.ERPRatePerSec,
		Burst:         cfg.ERPBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("erp client: %w", err)
	}
	rfidClient, err := rfid.NewClient(httpclient.Config{
		BaseURL:       cfg.RFIDBaseURL,
		Timeout:       cfg.RFIDTimeout,
		RatePerSecond: cfg.RFIDRatePerSec,
		Burst:         cfg.RFIDBurst,
	})
	if err != nil {
		return nil, fmt.Errorf("rfid client: %w", err)
	}

	retry := facade.DefaultRetryConfig()
	c.erp = facade.NewERP(erpClient, c.store, facade.DefaultERPPolicies(), retry, log)
	c.labels = facade.NewLabelRegistry(rfidClient, c.store, facade.DefaultLabelPolicy(), retry, log)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone %q: %w", cfg.TimeZone, err)
	}
	windows, err := services.ParseWindows(cfg.WorkWindows)
	if err != nil {
		return nil, err
	}
	c.hours, err = services.NewBusinessHoursAccountant(loc, windows)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Jobs returns the background jobs for the configured cache. Redis expires
// keys itself, so only the in-memory store gets a janitor.
func (c *CompositionRoot) Jobs() *jobs.JobManager {
	if c.memory == nil {
		return jobs.NewJobManager()
	}
	return jobs.NewJobManager(
		jobs.NewCacheJanitorJob(c.memory, c.cfg.CacheJanitorCron, c.log),
	)
}

func (c *CompositionRoot) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateCreateProductionOrderCommandHandler() *commands.CreateProductionOrderCommandHandler {
	h := commands.NewCreateProductionOrderCommandHandler(c.commandUoWFactory(), c.authorizer, c.erp, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateCreateShipmentBatchCommandHandler() *commands.CreateShipmentBatchCommandHandler {
	h := commands.NewCreateShipmentBatchCommandHandler(c.commandUoWFactory(), c.authorizer, c.erp, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateOpenRepairTicketCommandHandler() *commands.OpenRepairTicketCommandHandler {
	h := commands.NewOpenRepairTicketCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateApproveRepairBudgetCommandHandler() *commands.ApproveRepairBudgetCommandHandler {
	h := commands.NewApproveRepairBudgetCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateRecordControlEventCommandHandler() *commands.RecordControlEventCommandHandler {
	h := commands.NewRecordControlEventCommandHandler(
		c.commandUoWFactory(), c.authorizer, c.hours, c.cfg.EnforceRetornoHours, c.now, c.log,
	)
	return &h
}

func (c *CompositionRoot) CreateAdvanceProductionOrderCommandHandler() *commands.AdvanceProductionOrderCommandHandler {
	h := commands.NewAdvanceProductionOrderCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateAdvanceShipmentBatchCommandHandler() *commands.AdvanceShipmentBatchCommandHandler {
	h := commands.NewAdvanceShipmentBatchCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateAdvanceRepairTicketCommandHandler() *commands.AdvanceRepairTicketCommandHandler {
	h := commands.NewAdvanceRepairTicketCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateGenerateFinalUnitsCommandHandler() *commands.GenerateFinalUnitsCommandHandler {
	h := commands.NewGenerateFinalUnitsCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateRegisterSubAssemblyCommandHandler() *commands.RegisterSubAssemblyCommandHandler {
	h := commands.NewRegisterSubAssemblyCommandHandler(c.commandUoWFactory(), c.authorizer, c.labels, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateBindSubAssemblyCommandHandler() *commands.BindSubAssemblyCommandHandler {
	h := commands.NewBindSubAssemblyCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateConsumePartCommandHandler() *commands.ConsumePartCommandHandler {
	h := commands.NewConsumePartCommandHandler(c.commandUoWFactory(), c.authorizer, c.erp, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateSubstitutePartCommandHandler() *commands.SubstitutePartCommandHandler {
	h := commands.NewSubstitutePartCommandHandler(c.commandUoWFactory(), c.authorizer, c.now, c.log)
	return &h
}

func (c *CompositionRoot) CreateGetStageDurationsQueryHandler() queries.GetStageDurationsQueryHandler {
	return queries.NewGetStageDurationsQueryHandler(c.uowFactory, c.hours, c.now)
}

func (c *CompositionRoot) CreateGetEntityTimelineQueryHandler() queries.GetEntityTimelineQueryHandler {
	return queries.NewGetEntityTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsumptionStatusQueryHandler() queries.GetConsumptionStatusQueryHandler {
	return queries.NewGetConsumptionStatusQueryHandler(c.uowFactory, c.erp)
}

func (c *CompositionRoot) CreateGetPendingLabelsQueryHandler() queries.GetPendingLabelsQueryHandler {
	return queries.NewGetPendingLabelsQueryHandler(c.uowFactory, c.labels)
}

// HTTPHandlers collects every use case for the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() shophttp.Handlers {
	return shophttp.Handlers{
		CreateProductionOrder: c.CreateCreateProductionOrderCommandHandler(),
		CreateShipmentBatch:   c.CreateCreateShipmentBatchCommandHandler(),
		OpenRepairTicket:      c.CreateOpenRepairTicketCommandHandler(),
		ApproveRepairBudget:   c.CreateApproveRepairBudgetCommandHandler(),
		RegisterSubAssembly:   c.CreateRegisterSubAssemblyCommandHandler(),

		RecordControlEvent: c.CreateRecordControlEventCommandHandler(),
		Advance: map[kernel.EntityKind]shophttp.Handler[commands.AdvanceCommand, commands.AdvanceResult]{
			kernel.ProductionOrder: c.CreateAdvanceProductionOrderCommandHandler(),
			kernel.ShipmentBatch:   c.CreateAdvanceShipmentBatchCommandHandler(),
			kernel.RepairTicket:    c.CreateAdvanceRepairTicketCommandHandler(),
		},
		GenerateFinalUnits: c.CreateGenerateFinalUnitsCommandHandler(),
		BindSubAssembly:    c.CreateBindSubAssemblyCommandHandler(),
		ConsumePart:        c.CreateConsumePartCommandHandler(),
		SubstitutePart:     c.CreateSubstitutePartCommandHandler(),

		StageDurations:    c.CreateGetStageDurationsQueryHandler(),
		Timeline:          c.CreateGetEntityTimelineQueryHandler(),
		ConsumptionStatus: c.CreateGetConsumptionStatusQueryHandler(),
		PendingLabels:     c.CreateGetPendingLabelsQueryHandler(),
	}
}

func (c *CompositionRoot) commandUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
