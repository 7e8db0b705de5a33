// Package servers provides primitives to interact with the openapi HTTP API.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for JobStatus.
const (
	Completed JobStatus = "Completed"
	Transit   JobStatus = "Transit"
	Waiting   JobStatus = "Waiting"
)

// Contact defines model for Contact.
type Contact struct {
	Email *string `json:"email,omitempty"`
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
}

// CreatedJob defines model for CreatedJob.
type CreatedJob struct {
	Code      int                `json:"code"`
	Id        openapi_types.UUID `json:"id"`
	Reference string             `json:"reference"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Item defines model for Item.
type Item struct {
	Delivered   bool   `json:"delivered"`
	Description string `json:"description"`
}

// Job defines model for Job.
type Job struct {
	Code               int                `json:"code"`
	ConsignmentNumber  *string            `json:"consignmentNumber,omitempty"`
	Courier            Contact            `json:"courier"`
	Created            time.Time          `json:"created"`
	DestinationAddress string             `json:"destinationAddress"`
	Id                 openapi_types.UUID `json:"id"`
	Items              []Item             `json:"items"`
	OriginAddress      string             `json:"originAddress"`
	Receiver           Contact            `json:"receiver"`
	Reference          string             `json:"reference"`
	ReferenceNumber    *string            `json:"referenceNumber,omitempty"`
	Sender             Contact            `json:"sender"`
	Signature          *string            `json:"signature,omitempty"`
	Status             JobStatus          `json:"status"`
	Updated            time.Time          `json:"updated"`
}

// JobStatus defines model for JobStatus.
type JobStatus string

// NewJob defines model for NewJob.
type NewJob struct {
	Address string `json:"address"`

	// ConsignmentNumber External tracking number used in confirmation links
	ConsignmentNumber *string `json:"consignmentNumber,omitempty"`
	CourierEmail      *string `json:"courierEmail,omitempty"`
	CourierName       *string `json:"courierName,omitempty"`
	CourierPhone      *string `json:"courierPhone,omitempty"`

	// Items Comma, semicolon or new line separated item descriptions
	Items           string  `json:"items"`
	OriginAddress   *string `json:"originAddress,omitempty"`
	ReceiverEmail   *string `json:"receiverEmail,omitempty"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverPhone   *string `json:"receiverPhone,omitempty"`
	ReferenceNumber *string `json:"referenceNumber,omitempty"`
	SenderEmail     *string `json:"senderEmail,omitempty"`
	SenderName      string  `json:"senderName"`
	SenderPhone     *string `json:"senderPhone,omitempty"`
}

// StatusUpdate defines model for StatusUpdate.
type StatusUpdate struct {
	Signature *string   `json:"signature,omitempty"`
	Status    JobStatus `json:"status"`
}

// StatusUpdated defines model for StatusUpdated.
type StatusUpdated struct {
	Id      openapi_types.UUID `json:"id"`
	Status  JobStatus          `json:"status"`
	Updated time.Time          `json:"updated"`
}

// Reference defines model for Reference.
type Reference = string

// CreateJobJSONRequestBody defines body for CreateJob for application/json ContentType.
type CreateJobJSONRequestBody = NewJob

// UpdateJobStatusJSONRequestBody defines body for UpdateJobStatus for application/json ContentType.
type UpdateJobStatusJSONRequestBody = StatusUpdate

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List jobs, newest first
	// (GET /api/v1/jobs)
	ListJobs(ctx echo.Context) error
	// Book a job and notify its contacts
	// (POST /api/v1/jobs)
	CreateJob(ctx echo.Context) error
	// Get a job by id or consignment number
	// (GET /api/v1/jobs/{reference})
	GetJob(ctx echo.Context, reference Reference) error
	// Move a job to Transit or Completed
	// (PUT /api/v1/jobs/{reference}/status)
	UpdateJobStatus(ctx echo.Context, reference Reference) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListJobs converts echo context to params.
func (w *ServerInterfaceWrapper) ListJobs(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListJobs(ctx)
	return err
}

// CreateJob converts echo context to params.
func (w *ServerInterfaceWrapper) CreateJob(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateJob(ctx)
	return err
}

// GetJob converts echo context to params.
func (w *ServerInterfaceWrapper) GetJob(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "reference" -------------
	var reference Reference

	err = runtime.BindStyledParameterWithOptions("simple", "reference", ctx.Param("reference"), &reference, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter reference: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetJob(ctx, reference)
	return err
}

// UpdateJobStatus converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateJobStatus(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "reference" -------------
	var reference Reference

	err = runtime.BindStyledParameterWithOptions("simple", "reference", ctx.Param("reference"), &reference, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter reference: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.UpdateJobStatus(ctx, reference)
	return err
}

// EchoRouter is an interface that wraps the methods of echo.Echo and echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/jobs", wrapper.ListJobs)
	router.POST(baseURL+"/api/v1/jobs", wrapper.CreateJob)
	router.GET(baseURL+"/api/v1/jobs/:reference", wrapper.GetJob)
	router.PUT(baseURL+"/api/v1/jobs/:reference/status", wrapper.UpdateJobStatus)
}
