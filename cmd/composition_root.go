package cmd

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"partsdesk/internal/adapters/out/notify"
	"partsdesk/internal/adapters/out/postgres"
	"partsdesk/internal/core/application/usecases/commands"
	"partsdesk/internal/core/application/usecases/queries"
	"partsdesk/internal/core/ports"
)

// CompositionRoot wires infrastructure into the application layer. Handlers
// are built on demand; the unit of work factory and notifier are shared.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var notifier ports.Notifier
	if config.NotifierKind == "redis" {
		client := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
		notifier = notify.NewRedisNotifier(client, logger)
	} else {
		notifier = notify.NewHub(logger)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		logger:     logger,
	}
}

// Notifier exposes the change-notification fan-out for the SSE bridge.
func (c *CompositionRoot) Notifier() ports.Notifier {
	return c.notifier
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAddYardEntryCommandHandler() commands.AddYardEntryCommandHandler {
	return commands.NewAddYardEntryCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateYardEntryCommandHandler() commands.UpdateYardEntryCommandHandler {
	return commands.NewUpdateYardEntryCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	return commands.NewAddNoteCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
