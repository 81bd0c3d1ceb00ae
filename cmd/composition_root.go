package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	api "livestock/internal/adapters/in/http"
	"livestock/internal/adapters/out/notify"
	"livestock/internal/adapters/out/persistence"
	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/application/usecases/queries"
	"livestock/internal/core/ports"
	"livestock/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const redisPingTimeout = 3 * time.Second

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *persistence.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	redis      *redis.Client
	logger     *slog.Logger
}

// NewCompositionRoot builds the event publisher chain and the unit of work
// factory. Events are always logged; they also go to Redis when REDIS_ADDR is
// set. An unreachable Redis is reported but does not stop the service.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	root := &CompositionRoot{
		cfg:      cfg,
		gormDB:   gormDB,
		registry: registry,
		logger:   logger,
	}

	var publisher ports.EventPublisher = notify.NewLogPublisher(logger)
	if cfg.RedisAddr != "" {
		root.redis = notify.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		if err := root.redis.Ping(pingCtx).Err(); err != nil {
			logger.WarnContext(ctx, "Redis is unreachable, events will only be logged until it recovers",
				"addr", cfg.RedisAddr, "error", err)
		}
		cancel()
		publisher = notify.Fanout{publisher, notify.NewRedisPublisher(root.redis, cfg.EventsChannel)}
	}

	metered, err := notify.NewMetricsPublisher(publisher, registry)
	if err != nil {
		return nil, fmt.Errorf("event metrics: %w", err)
	}
	root.uowFactory = persistence.NewGormUnitOfWorkFactory(gormDB, metered, logger)
	return root, nil
}

func (c *CompositionRoot) Registry() *prometheus.Registry { return c.registry }

// Close releases the Redis connection pool. The database is owned by the caller.
func (c *CompositionRoot) Close() error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Close()
}

func (c *CompositionRoot) siteUoWs() commands.SiteUoWFactory {
	return FuncSiteUoWFactory(func() commands.SiteUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) animalUoWs() commands.AnimalUoWFactory {
	return FuncAnimalUoWFactory(func() commands.AnimalUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) holdingUoWs() commands.HoldingUoWFactory {
	return FuncHoldingUoWFactory(func() commands.HoldingUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) transferUoWs() commands.TransferUoWFactory {
	return FuncTransferUoWFactory(func() commands.TransferUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWs() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) CreateCreateSiteCommandHandler() commands.CreateSiteCommandHandler {
	return commands.NewCreateSiteCommandHandler(c.siteUoWs())
}

func (c *CompositionRoot) CreateSetSiteCapacityCommandHandler() commands.SetSiteCapacityCommandHandler {
	return commands.NewSetSiteCapacityCommandHandler(c.siteUoWs())
}

func (c *CompositionRoot) CreateRegisterAnimalCommandHandler() commands.RegisterAnimalCommandHandler {
	return commands.NewRegisterAnimalCommandHandler(c.animalUoWs())
}

func (c *CompositionRoot) CreateChangeAnimalStatusCommandHandler() commands.ChangeAnimalStatusCommandHandler {
	return commands.NewChangeAnimalStatusCommandHandler(c.animalUoWs())
}

func (c *CompositionRoot) CreateRecordColdWeightCommandHandler() commands.RecordColdWeightCommandHandler {
	return commands.NewRecordColdWeightCommandHandler(c.animalUoWs())
}

func (c *CompositionRoot) CreateSetAnimalHealthCommandHandler() commands.SetAnimalHealthCommandHandler {
	return commands.NewSetAnimalHealthCommandHandler(c.animalUoWs())
}

func (c *CompositionRoot) CreateCreateHoldingCommandHandler() commands.CreateHoldingCommandHandler {
	return commands.NewCreateHoldingCommandHandler(c.holdingUoWs())
}

func (c *CompositionRoot) CreateAdmitToHoldingCommandHandler() commands.AdmitToHoldingCommandHandler {
	return commands.NewAdmitToHoldingCommandHandler(c.holdingUoWs())
}

func (c *CompositionRoot) CreateWithdrawFromHoldingCommandHandler() commands.WithdrawFromHoldingCommandHandler {
	return commands.NewWithdrawFromHoldingCommandHandler(c.holdingUoWs())
}

func (c *CompositionRoot) CreateCancelHoldingCommandHandler() commands.CancelHoldingCommandHandler {
	return commands.NewCancelHoldingCommandHandler(c.holdingUoWs())
}

func (c *CompositionRoot) CreateFinalizeHoldingCommandHandler() commands.FinalizeHoldingCommandHandler {
	return commands.NewFinalizeHoldingCommandHandler(c.holdingUoWs())
}

func (c *CompositionRoot) CreateCreateTransferCommandHandler() commands.CreateTransferCommandHandler {
	return commands.NewCreateTransferCommandHandler(c.transferUoWs())
}

func (c *CompositionRoot) CreateAddToTransferCommandHandler() commands.AddToTransferCommandHandler {
	return commands.NewAddToTransferCommandHandler(c.transferUoWs())
}

func (c *CompositionRoot) CreateRemoveFromTransferCommandHandler() commands.RemoveFromTransferCommandHandler {
	return commands.NewRemoveFromTransferCommandHandler(c.transferUoWs())
}

func (c *CompositionRoot) CreateTransferActionCommandHandler() commands.TransferActionCommandHandler {
	return commands.NewTransferActionCommandHandler(c.transferUoWs())
}

func (c *CompositionRoot) CreateConfirmReceptionCommandHandler() commands.ConfirmReceptionCommandHandler {
	return commands.NewConfirmReceptionCommandHandler(c.transferUoWs())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateSetOrderStatusCommandHandler() commands.SetOrderStatusCommandHandler {
	return commands.NewSetOrderStatusCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWs())
}

func (c *CompositionRoot) CreateGetSiteCapacityQueryHandler() queries.GetSiteCapacityQueryHandler {
	return queries.NewGetSiteCapacityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStaleTransfersQueryHandler() queries.GetStaleTransfersQueryHandler {
	return queries.NewGetStaleTransfersQueryHandler(c.gormDB)
}

// NewRouter wires every handler behind the HTTP adapter.
func (c *CompositionRoot) NewRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.LoadAPIDocument(ctx)
	if err != nil {
		return nil, err
	}
	server := api.NewServer(api.Handlers{
		CreateSite:          c.CreateCreateSiteCommandHandler(),
		SetSiteCapacity:     c.CreateSetSiteCapacityCommandHandler(),
		RegisterAnimal:      c.CreateRegisterAnimalCommandHandler(),
		ChangeAnimalStatus:  c.CreateChangeAnimalStatusCommandHandler(),
		RecordColdWeight:    c.CreateRecordColdWeightCommandHandler(),
		SetAnimalHealth:     c.CreateSetAnimalHealthCommandHandler(),
		CreateHolding:       c.CreateCreateHoldingCommandHandler(),
		AdmitToHolding:      c.CreateAdmitToHoldingCommandHandler(),
		WithdrawFromHolding: c.CreateWithdrawFromHoldingCommandHandler(),
		CancelHolding:       c.CreateCancelHoldingCommandHandler(),
		FinalizeHolding:     c.CreateFinalizeHoldingCommandHandler(),
		CreateTransfer:      c.CreateCreateTransferCommandHandler(),
		AddToTransfer:       c.CreateAddToTransferCommandHandler(),
		RemoveFromTransfer:  c.CreateRemoveFromTransferCommandHandler(),
		TransferAction:      c.CreateTransferActionCommandHandler(),
		ConfirmReception:    c.CreateConfirmReceptionCommandHandler(),
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		UpdateOrder:         c.CreateUpdateOrderCommandHandler(),
		SetOrderStatus:      c.CreateSetOrderStatusCommandHandler(),
		DeleteOrder:         c.CreateDeleteOrderCommandHandler(),
		SiteCapacity:        c.CreateGetSiteCapacityQueryHandler(),
		StaleTransfers:      c.CreateGetStaleTransfersQueryHandler(),
	}, c.logger, c.cfg.StaleTransferAfter)
	return api.NewRouter(server, doc, c.registry, c.logger), nil
}

func (c *CompositionRoot) NewJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateGetStaleTransfersQueryHandler(),
		c.cfg.StaleTransferSchedule,
		c.cfg.StaleTransferAfter,
		c.registry,
		c.logger,
	)
}

type FuncSiteUoWFactory func() commands.SiteUoW

func (f FuncSiteUoWFactory) Create() commands.SiteUoW {
	return f()
}

type FuncAnimalUoWFactory func() commands.AnimalUoW

func (f FuncAnimalUoWFactory) Create() commands.AnimalUoW {
	return f()
}

type FuncHoldingUoWFactory func() commands.HoldingUoW

func (f FuncHoldingUoWFactory) Create() commands.HoldingUoW {
	return f()
}

type FuncTransferUoWFactory func() commands.TransferUoW

func (f FuncTransferUoWFactory) Create() commands.TransferUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
