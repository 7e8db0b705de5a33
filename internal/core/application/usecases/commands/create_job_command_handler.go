package commands

import (
	"context"
	"errors"
	"log/slog"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
)

// CreateJobResult identifies the created job.
type CreateJobResult struct {
	ID        kernel.UUID
	Code      job.Code
	Reference string
}

// CreateJobCommandHandler books a job and sends the Waiting notifications.
//
// Example:
//
//	handler := NewCreateJobCommandHandler(uowFactory, factory, dispatcher, logger)
//	res, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("job creation failed: %w", err)
//	}
//	// res.ID is stored; SMS outcomes are only logged
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	factory    job.Factory
	notifier   Notifier
	logger     *slog.Logger
}

// NewCreateJobCommandHandler creates a handler. The factory provides
// identity, code and the defaults for fields the forms leave blank.
func NewCreateJobCommandHandler(
	uowFactory JobUoWFactory,
	factory job.Factory,
	notifier Notifier,
	logger *slog.Logger,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		factory:    factory,
		notifier:   notifier,
		logger:     logger.With("component", "CreateJobCommandHandler"),
	}
}

// Handle creates the job inside a transaction and notifies after commit.
// A failed notification never fails the command.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (CreateJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateJobResult{}, err
	}

	details, err := h.details(cmd)
	if err != nil {
		return CreateJobResult{}, err
	}

	created, err := h.factory.Create(details)
	if err != nil {
		return CreateJobResult{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CreateJobResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, created); err != nil {
		return CreateJobResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateJobResult{}, err
	}

	h.logger.InfoContext(ctx, "job created",
		slog.String("job_id", created.ID().String()),
		slog.String("reference", created.Reference()),
	)
	notify(ctx, h.logger, created, h.notifier.OnWaiting)

	return CreateJobResult{
		ID:        created.ID(),
		Code:      created.Code(),
		Reference: created.Reference(),
	}, nil
}

// details lays the form over the factory defaults.
func (h CreateJobCommandHandler) details(cmd CreateJobCommand) (job.Details, error) {
	d := h.factory.Defaults()
	form := cmd.Form()
	contacts := cmd.Contacts()

	sender, senderErr := kernel.NewContact(
		form.SenderName,
		orDefault(contacts.SenderPhone, d.Sender.Phone()),
		orDefault(contacts.SenderEmail, d.Sender.Email()),
	)
	receiver, receiverErr := kernel.NewContact(
		form.ReceiverName,
		orDefault(contacts.ReceiverPhone, d.Receiver.Phone()),
		orDefault(contacts.ReceiverEmail, d.Receiver.Email()),
	)
	courier, courierErr := kernel.NewContact(
		orDefault(contacts.CourierName, d.Courier.Name()),
		orDefault(contacts.CourierPhone, d.Courier.Phone()),
		orDefault(contacts.CourierEmail, d.Courier.Email()),
	)
	origin, originErr := kernel.NewLocation(orDefault(contacts.OriginAddress, d.Origin.Address()))
	destination, destinationErr := kernel.NewLocation(form.Address)

	if err := errors.Join(
		wrapField("sender", senderErr),
		wrapField("receiver", receiverErr),
		wrapField("courier", courierErr),
		wrapField("origin", originErr),
		wrapField("destination", destinationErr),
	); err != nil {
		return job.Details{}, err
	}

	return job.Details{
		Sender:            sender,
		Receiver:          receiver,
		Courier:           courier,
		Origin:            origin,
		Destination:       destination,
		Items:             cmd.Items(),
		ConsignmentNumber: form.ConsignmentNumber,
		ReferenceNumber:   form.ReferenceNumber,
	}, nil
}
