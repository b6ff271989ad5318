package cmd

import (
	"log/slog"

	httpin "orderhub/internal/adapters/in/http"
	"orderhub/internal/adapters/out/postgres"
	"orderhub/internal/adapters/out/rooms"
	"orderhub/internal/core/application/usecases/commands"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/services"
	"orderhub/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use case handlers.
// Everything hangs off one GORM connection and one process-local room
// registry.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	registry   *rooms.Registry
	router     services.NotificationRouter
	logger     *slog.Logger
}

func NewCompositionRoot(gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	registry := rooms.NewRegistry()
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		router:     services.NewNotificationRouter(registry),
		logger:     logger,
	}
}

// RoomRegistry exposes the registry so the transport layer can attach and
// detach connections.
func (c *CompositionRoot) RoomRegistry() *rooms.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateRequestTransitionCommandHandler() (commands.RequestTransitionCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestTransitionCommandHandler(f, services.NewAuthorizationGate(), c.router)
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() (commands.SetRiderAvailabilityCommandHandler, error) {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetRiderAvailabilityCommandHandler(f, c.router)
}

func (c *CompositionRoot) CreateReleaseStuckRidersCommandHandler() (commands.ReleaseStuckRidersCommandHandler, error) {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseStuckRidersCommandHandler(f, c.router)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableRidersQueryHandler() queries.GetAvailableRidersQueryHandler {
	return queries.NewGetAvailableRidersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the inbound HTTP adapter.
func (c *CompositionRoot) CreateHTTPServer() (*httpin.Server, error) {
	transitionHandler, err := c.CreateRequestTransitionCommandHandler()
	if err != nil {
		return nil, err
	}
	availabilityHandler, err := c.CreateSetRiderAvailabilityCommandHandler()
	if err != nil {
		return nil, err
	}

	return httpin.NewServer(
		transitionHandler,
		availabilityHandler,
		c.CreateGetActiveOrdersQueryHandler(),
		c.CreateGetAvailableRidersQueryHandler(),
	), nil
}

// CreateJobManager wires the background jobs.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	releaseHandler, err := c.CreateReleaseStuckRidersCommandHandler()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(releaseHandler, c.logger), nil
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}
