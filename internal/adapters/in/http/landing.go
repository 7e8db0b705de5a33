package http

import (
	"net/http"

	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/core/domain/model/job"
	"podowl/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Landing views, selected by query parameter in this order.
const (
	ViewConfirm = "confirm"
	ViewJobs    = "jobs"
	ViewTerms   = "terms"
	ViewCreate  = "create"
)

const termsText = `PODOWL records who handed over a parcel, who received it and when.
Contact details entered in a job are used only to send the SMS updates of that job.
Phone numbers receive at most one message per status change. A signature captured
on the confirmation page is stored with the job as its proof of delivery.`

// LandingPage is the body of GET /. Only the fields of the selected view are set.
type LandingPage struct {
	View  string              `json:"view"`
	Job   *servers.Job        `json:"job,omitempty"`
	Next  []servers.JobStatus `json:"next,omitempty"`
	Jobs  []servers.Job       `json:"jobs,omitempty"`
	Terms string              `json:"terms,omitempty"`
	Steps []FormStep          `json:"steps,omitempty"`
}

// FormStep is one page of the two step creation form.
type FormStep struct {
	Title  string      `json:"title"`
	Fields []FormField `json:"fields"`
}

type FormField struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

var creationSteps = []FormStep{
	{
		Title: "Job details",
		Fields: []FormField{
			{Name: "senderName", Required: true},
			{Name: "receiverName", Required: true},
			{Name: "address", Required: true},
			{Name: "consignmentNumber"},
			{Name: "referenceNumber"},
			{Name: "items", Required: true},
		},
	},
	{
		Title: "Contact details",
		Fields: []FormField{
			{Name: "senderPhone"},
			{Name: "receiverPhone"},
			{Name: "courierName"},
			{Name: "courierPhone"},
			{Name: "senderEmail"},
			{Name: "receiverEmail"},
			{Name: "courierEmail"},
			{Name: "originAddress"},
		},
	},
}

// Landing handles GET /. ?confirm=<reference> shows the job behind a POD
// link, ?jobs lists jobs, ?terms shows the terms, anything else describes
// the creation form.
func (s *Server) Landing(ctx echo.Context) error {
	params := ctx.QueryParams()

	switch {
	case params.Has(ViewConfirm):
		return s.confirmView(ctx, params.Get(ViewConfirm))
	case params.Has(ViewJobs):
		views, err := s.getAllJobsHandler.Handle(ctx.Request().Context(), queries.NewGetAllJobsQuery())
		if err != nil {
			return s.fail(ctx, "Failed to retrieve jobs", err)
		}
		return ctx.JSON(http.StatusOK, LandingPage{View: ViewJobs, Jobs: toJobs(views)})
	case params.Has(ViewTerms):
		return ctx.JSON(http.StatusOK, LandingPage{View: ViewTerms, Terms: termsText})
	default:
		return ctx.JSON(http.StatusOK, LandingPage{View: ViewCreate, Steps: creationSteps})
	}
}

// ConfirmDelivery handles POST /?confirm=<reference> from the confirmation
// page: it completes the job with the submitted signature and sends the
// browser to the jobs list.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	reference := ctx.QueryParam(ViewConfirm)

	_, err := s.updateStatus(ctx.Request().Context(), reference, job.Completed.String(), ctx.FormValue("signature"))
	if err != nil {
		return s.fail(ctx, "Failed to confirm delivery", err)
	}

	return ctx.Redirect(http.StatusSeeOther, "/?"+ViewJobs)
}

func (s *Server) confirmView(ctx echo.Context, reference string) error {
	query, err := queries.NewGetJobQuery(reference)
	if err != nil {
		return s.fail(ctx, "Invalid reference", err)
	}

	view, err := s.getJobHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "Failed to retrieve job", err)
	}

	next := make([]servers.JobStatus, 0, 2)
	for _, st := range []job.Status{job.Transit, job.Completed} {
		if view.Status.CanMoveTo(st) == nil {
			next = append(next, servers.JobStatus(st.String()))
		}
	}

	j := toJob(view)
	return ctx.JSON(http.StatusOK, LandingPage{View: ViewConfirm, Job: &j, Next: next})
}
