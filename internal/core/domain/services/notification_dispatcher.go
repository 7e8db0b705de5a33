package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/notification"
	"podowl/internal/core/ports"
)

// ErrNoRecipients is returned when the policy names nobody for an event.
var ErrNoRecipients = errors.New("no recipients configured for event")

// SendResult is the outcome of one message.
type SendResult struct {
	Role      notification.Role
	Phone     string
	MessageID string
	Err       error
	Duration  time.Duration
}

// OK reports whether the message was accepted by the sender.
func (r SendResult) OK() bool {
	return r.Err == nil
}

// DispatchReport lists one SendResult per recipient in policy order.
type DispatchReport struct {
	JobID   string
	Event   notification.Event
	Results []SendResult
}

// Succeeded counts accepted messages.
func (r DispatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() {
			n++
		}
	}
	return n
}

// Failed counts rejected messages.
func (r DispatchReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Errors joins the errors of all failed sends, nil when everything went out.
func (r DispatchReport) Errors() error {
	errList := make([]error, 0, len(r.Results))
	for _, res := range r.Results {
		if res.Err != nil {
			errList = append(errList, res.Err)
		}
	}
	return errors.Join(errList...)
}

// NotificationDispatcher is a domain service that tells a job's contacts
// about a lifecycle event.
//
// Key responsibilities:
//   - Resolving recipients through a notification.RecipientPolicy
//   - Composing one message per recipient with a notification.Composer
//   - Sending all messages concurrently and waiting for every one of them
//
// Business rules:
//   - A failed send never cancels or fails the others
//   - Failures are reported, not retried
//   - The job is only read
//
// Example usage:
//
//	dispatcher := services.NewNotificationDispatcher(smsSender, composer, policy, logger)
//	report, err := dispatcher.OnWaiting(ctx, j)
//	if err != nil {
//	    // the job was invalid or nobody is configured for the event
//	    return
//	}
//	log.Printf("%d sent, %d failed", report.Succeeded(), report.Failed())
type NotificationDispatcher struct {
	sender         ports.SmsSender
	composer       notification.Composer
	policy         notification.RecipientPolicy
	maxConcurrency int
	logger         *slog.Logger
}

// DispatcherOption customizes a NotificationDispatcher.
type DispatcherOption func(*NotificationDispatcher)

// WithMaxConcurrency bounds the number of sends in flight per dispatch.
// Zero or negative means one goroutine per recipient.
func WithMaxConcurrency(n int) DispatcherOption {
	return func(d *NotificationDispatcher) {
		d.maxConcurrency = n
	}
}

// NewNotificationDispatcher creates a dispatcher.
//
// Parameters:
//   - sender: SMS port, called concurrently
//   - composer: builds message texts
//   - policy: recipients per event
//   - logger: receives one entry per dispatch
func NewNotificationDispatcher(
	sender ports.SmsSender,
	composer notification.Composer,
	policy notification.RecipientPolicy,
	logger *slog.Logger,
	opts ...DispatcherOption,
) *NotificationDispatcher {
	d := &NotificationDispatcher{
		sender:   sender,
		composer: composer,
		policy:   policy,
		logger:   logger.With("component", "NotificationDispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// OnWaiting notifies about a newly created job.
func (d *NotificationDispatcher) OnWaiting(ctx context.Context, j *job.Job) (DispatchReport, error) {
	return d.Dispatch(ctx, notification.Waiting, j)
}

// OnTransit notifies about a job picked up by the courier.
func (d *NotificationDispatcher) OnTransit(ctx context.Context, j *job.Job) (DispatchReport, error) {
	return d.Dispatch(ctx, notification.Transit, j)
}

// OnComplete notifies about a confirmed delivery.
func (d *NotificationDispatcher) OnComplete(ctx context.Context, j *job.Job) (DispatchReport, error) {
	return d.Dispatch(ctx, notification.Completed, j)
}

// Dispatch sends the messages of one event and returns once every send has
// finished.
//
// Returns:
//   - DispatchReport: one result per recipient, failures included
//   - error: only for an invalid job, an invalid event or an empty policy
func (d *NotificationDispatcher) Dispatch(
	ctx context.Context,
	event notification.Event,
	j *job.Job,
) (DispatchReport, error) {
	if err := j.Validate(); err != nil {
		return DispatchReport{}, err
	}
	if err := event.Validate(); err != nil {
		return DispatchReport{}, err
	}

	roles := d.policy.Recipients(event)
	if len(roles) == 0 {
		return DispatchReport{}, ErrNoRecipients
	}

	// Texts are composed up front so the goroutines never touch the job.
	messages := make([]notification.Message, 0, len(roles))
	for _, role := range roles {
		msg, err := d.composer.Compose(event, role, j)
		if err != nil {
			return DispatchReport{}, err
		}
		messages = append(messages, msg)
	}

	report := DispatchReport{
		JobID:   j.ID().String(),
		Event:   event,
		Results: make([]SendResult, len(messages)),
	}

	var g errgroup.Group
	if d.maxConcurrency > 0 {
		g.SetLimit(d.maxConcurrency)
	}
	for i, msg := range messages {
		g.Go(func() error {
			report.Results[i] = d.send(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	d.log(ctx, report)
	return report, nil
}

func (d *NotificationDispatcher) send(ctx context.Context, msg notification.Message) SendResult {
	start := time.Now()
	res := SendResult{Role: msg.Role, Phone: msg.Phone}

	if err := ctx.Err(); err != nil {
		res.Err = err
	} else {
		res.MessageID, res.Err = d.sender.Send(ctx, msg.Phone, msg.Text)
	}

	res.Duration = time.Since(start)
	return res
}

func (d *NotificationDispatcher) log(ctx context.Context, report DispatchReport) {
	attrs := []any{
		slog.String("job_id", report.JobID),
		slog.String("event", report.Event.String()),
		slog.Int("sent", report.Succeeded()),
		slog.Int("failed", report.Failed()),
	}
	if report.Failed() == 0 {
		d.logger.InfoContext(ctx, "notifications sent", attrs...)
		return
	}

	for _, res := range report.Results {
		if res.Err != nil {
			d.logger.WarnContext(ctx, "notification failed",
				slog.String("job_id", report.JobID),
				slog.String("event", report.Event.String()),
				slog.String("role", res.Role.String()),
				slog.String("error", res.Err.Error()),
			)
		}
	}
	d.logger.WarnContext(ctx, "notifications partially sent", attrs...)
}
