package http

import (
	"context"
	"log/slog"
	"net/http"

	"podowl/internal/core/application/usecases/commands"
	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	CreateJobHandler interface {
		Handle(ctx context.Context, cmd commands.CreateJobCommand) (commands.CreateJobResult, error)
	}
	UpdateJobStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateJobStatusCommand) (commands.UpdateJobStatusResult, error)
	}
	GetJobHandler interface {
		Handle(ctx context.Context, query queries.GetJobQuery) (queries.JobView, error)
	}
	GetAllJobsHandler interface {
		Handle(ctx context.Context, query queries.GetAllJobsQuery) ([]queries.JobView, error)
	}
	// HealthReporter reports the outcome of the last backend check. ok is
	// false while no check has run yet.
	HealthReporter interface {
		Healthy() (healthy bool, ok bool)
	}
)

// ServerOption customizes a Server.
type ServerOption func(*Server)

// WithHealthReporter makes /health answer 503 while the reporter is unhealthy.
func WithHealthReporter(h HealthReporter) ServerOption {
	return func(s *Server) {
		s.health = h
	}
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createJobHandler       CreateJobHandler
	updateJobStatusHandler UpdateJobStatusHandler

	// Query handlers
	getJobHandler     GetJobHandler
	getAllJobsHandler GetAllJobsHandler

	health HealthReporter
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createJobHandler CreateJobHandler,
	updateJobStatusHandler UpdateJobStatusHandler,
	getJobHandler GetJobHandler,
	getAllJobsHandler GetAllJobsHandler,
	logger *slog.Logger,
	opts ...ServerOption,
) *Server {
	s := &Server{
		createJobHandler:       createJobHandler,
		updateJobStatusHandler: updateJobStatusHandler,
		getJobHandler:          getJobHandler,
		getAllJobsHandler:      getAllJobsHandler,
		logger:                 logger.With("component", "HTTPServer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListJobs handles GET /api/v1/jobs - retrieves all jobs, newest first.
func (s *Server) ListJobs(ctx echo.Context) error {
	views, err := s.getAllJobsHandler.Handle(ctx.Request().Context(), queries.NewGetAllJobsQuery())
	if err != nil {
		return s.fail(ctx, "Failed to retrieve jobs", err)
	}

	return ctx.JSON(http.StatusOK, toJobs(views))
}

// CreateJob handles POST /api/v1/jobs - books a job and sends the Waiting notifications.
func (s *Server) CreateJob(ctx echo.Context) error {
	var body servers.CreateJobJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewCreateJobCommand(
		commands.JobFormData{
			SenderName:        body.SenderName,
			ReceiverName:      body.ReceiverName,
			Address:           body.Address,
			ConsignmentNumber: deref(body.ConsignmentNumber),
			ReferenceNumber:   deref(body.ReferenceNumber),
			Items:             body.Items,
		},
		commands.ContactFormData{
			SenderPhone:   deref(body.SenderPhone),
			ReceiverPhone: deref(body.ReceiverPhone),
			CourierName:   deref(body.CourierName),
			CourierPhone:  deref(body.CourierPhone),
			SenderEmail:   deref(body.SenderEmail),
			ReceiverEmail: deref(body.ReceiverEmail),
			CourierEmail:  deref(body.CourierEmail),
			OriginAddress: deref(body.OriginAddress),
		},
	)
	if err != nil {
		return s.fail(ctx, "Invalid job data", err)
	}

	res, err := s.createJobHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "Failed to create job", err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedJob{
		Id:        res.ID.Bytes(),
		Code:      res.Code.Int(),
		Reference: res.Reference,
	})
}

// GetJob handles GET /api/v1/jobs/{reference} - reads one job by id or consignment number.
func (s *Server) GetJob(ctx echo.Context, reference servers.Reference) error {
	query, err := queries.NewGetJobQuery(reference)
	if err != nil {
		return s.fail(ctx, "Invalid reference", err)
	}

	view, err := s.getJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve job", err)
	}

	return ctx.JSON(http.StatusOK, toJob(view))
}

// UpdateJobStatus handles PUT /api/v1/jobs/{reference}/status - moves a job forward.
func (s *Server) UpdateJobStatus(ctx echo.Context, reference servers.Reference) error {
	var body servers.UpdateJobStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	res, err := s.updateStatus(ctx.Request().Context(), reference, string(body.Status), deref(body.Signature))
	if err != nil {
		return s.fail(ctx, "Failed to update job status", err)
	}

	return ctx.JSON(http.StatusOK, servers.StatusUpdated{
		Id:      res.ID.Bytes(),
		Status:  servers.JobStatus(res.Status.String()),
		Updated: res.Updated,
	})
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	if s.health != nil {
		if healthy, ok := s.health.Healthy(); ok && !healthy {
			return ctx.String(http.StatusServiceUnavailable, "Unhealthy")
		}
	}
	return ctx.String(http.StatusOK, "Healthy")
}

func (s *Server) updateStatus(
	ctx context.Context,
	reference, status, signature string,
) (commands.UpdateJobStatusResult, error) {
	cmd, err := commands.NewUpdateJobStatusCommand(reference, status, signature)
	if err != nil {
		return commands.UpdateJobStatusResult{}, err
	}
	return s.updateJobStatusHandler.Handle(ctx, cmd)
}

// fail writes err as a servers.Error. Internal errors keep their details in
// the log only.
func (s *Server) fail(ctx echo.Context, message string, err error) error {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), message, slog.Any("error", err))
	} else {
		message += ": " + err.Error()
	}

	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}
