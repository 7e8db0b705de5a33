package cmd

import (
	"fmt"
	"log/slog"

	httpin "podowl/internal/adapters/in/http"
	"podowl/internal/adapters/out/postgres"
	"podowl/internal/adapters/out/sms"
	"podowl/internal/core/application/usecases/commands"
	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/notification"
	"podowl/internal/core/domain/services"
	"podowl/internal/core/ports"
	"podowl/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	jobFactory job.Factory
	sender     ports.SmsSender
	dispatcher *services.NotificationDispatcher
}

// NewCompositionRoot builds the shared dependencies. It fails on
// configuration that cannot produce a working service, such as an invalid
// phone override or POD base URL.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}

	defaults, err := job.PlaceholderDetails(config.Phones)
	if err != nil {
		return nil, fmt.Errorf("job defaults: %w", err)
	}
	if c.jobFactory, err = job.NewFactory(defaults); err != nil {
		return nil, fmt.Errorf("job factory: %w", err)
	}

	composer, err := notification.NewComposer(config.PodBaseURL)
	if err != nil {
		return nil, fmt.Errorf("POD_BASE_URL: %w", err)
	}

	policy := notification.DefaultRecipientPolicy()
	if config.NotifyOnComplete != "" {
		roles, rolesErr := notification.ParseRoles(config.NotifyOnComplete)
		if rolesErr != nil {
			return nil, fmt.Errorf("NOTIFY_ON_COMPLETE: %w", rolesErr)
		}
		if policy, err = policy.With(notification.Completed, roles...); err != nil {
			return nil, fmt.Errorf("NOTIFY_ON_COMPLETE: %w", err)
		}
	}

	if c.sender, err = newSmsSender(config.SMS, logger); err != nil {
		return nil, err
	}

	c.dispatcher = services.NewNotificationDispatcher(
		c.sender,
		composer,
		policy,
		logger,
		services.WithMaxConcurrency(config.NotifyMaxConcurrency),
	)

	return c, nil
}

func newSmsSender(config sms.GatewayConfig, logger *slog.Logger) (ports.SmsSender, error) {
	if config.URL == "" {
		logger.Warn("SMS_GATEWAY_URL is not set, messages are logged instead of sent")
		return sms.NewLogSender(logger), nil
	}
	gateway, err := sms.NewHTTPGateway(config)
	if err != nil {
		return nil, fmt.Errorf("sms gateway: %w", err)
	}
	return gateway, nil
}

func (c *CompositionRoot) SmsSender() ports.SmsSender {
	return c.sender
}

func (c *CompositionRoot) Dispatcher() *services.NotificationDispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.jobFactory, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateUpdateJobStatusCommandHandler() commands.UpdateJobStatusCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateJobStatusCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllJobsQueryHandler() queries.GetAllJobsQueryHandler {
	return queries.NewGetAllJobsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateConnectivityChecker() *postgres.ConnectivityChecker {
	return postgres.NewConnectivityChecker(c.gormDB, c.config.DB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateConnectivityChecker(), c.config.ConnectivityCheckSchedule, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer(opts ...httpin.ServerOption) *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateJobCommandHandler(),
		c.CreateUpdateJobStatusCommandHandler(),
		c.CreateGetJobQueryHandler(),
		c.CreateGetAllJobsQueryHandler(),
		c.logger,
		opts...,
	)
}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}
