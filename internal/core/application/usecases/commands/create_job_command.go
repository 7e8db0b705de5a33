package commands

import (
	"errors"
	"strings"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// JobFormData is the first step of the job creation form.
type JobFormData struct {
	SenderName        string
	ReceiverName      string
	Address           string
	ConsignmentNumber string
	ReferenceNumber   string
	Items             string
}

// ContactFormData is the second step of the job creation form. Every field is
// optional; blanks keep the factory defaults.
type ContactFormData struct {
	SenderPhone   string
	ReceiverPhone string
	CourierName   string
	CourierPhone  string
	SenderEmail   string
	ReceiverEmail string
	CourierEmail  string
	OriginAddress string
}

// CreateJobCommand represents a request to book a new delivery.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(
//	    JobFormData{SenderName: "ntr", ReceiverName: "kotsi", Address: "12 Wharf St", Items: "desk, chair"},
//	    ContactFormData{CourierPhone: "+61400000000"},
//	)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//	res, err := handler.Handle(ctx, cmd)
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	form     JobFormData
	contacts ContactFormData
	items    []job.Item

	guard guard.ConstructorGuard
}

// NewCreateJobCommand checks the form fields that have no default: sender
// and receiver names, delivery address and at least one item.
func NewCreateJobCommand(form JobFormData, contacts ContactFormData) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		contacts: trimContacts(contacts),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setForm(form),
		cmd.setItems(form.Items),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) Form() JobFormData {
	return c.form
}

func (c CreateJobCommand) Contacts() ContactFormData {
	return c.contacts
}

// Items returns the parsed item list.
func (c CreateJobCommand) Items() []job.Item {
	return append([]job.Item(nil), c.items...)
}

func (c *CreateJobCommand) setForm(form JobFormData) error {
	form = JobFormData{
		SenderName:        strings.TrimSpace(form.SenderName),
		ReceiverName:      strings.TrimSpace(form.ReceiverName),
		Address:           strings.TrimSpace(form.Address),
		ConsignmentNumber: strings.TrimSpace(form.ConsignmentNumber),
		ReferenceNumber:   strings.TrimSpace(form.ReferenceNumber),
		Items:             strings.TrimSpace(form.Items),
	}

	var errList []error
	if form.SenderName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("senderName"))
	}
	if form.ReceiverName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("receiverName"))
	}
	if form.Address == "" {
		errList = append(errList, errs.NewValueIsRequiredError("address"))
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}

	c.form = form
	return nil
}

func (c *CreateJobCommand) setItems(text string) error {
	items, err := job.ParseItems(text)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

func trimContacts(c ContactFormData) ContactFormData {
	return ContactFormData{
		SenderPhone:   strings.TrimSpace(c.SenderPhone),
		ReceiverPhone: strings.TrimSpace(c.ReceiverPhone),
		CourierName:   strings.TrimSpace(c.CourierName),
		CourierPhone:  strings.TrimSpace(c.CourierPhone),
		SenderEmail:   strings.TrimSpace(c.SenderEmail),
		ReceiverEmail: strings.TrimSpace(c.ReceiverEmail),
		CourierEmail:  strings.TrimSpace(c.CourierEmail),
		OriginAddress: strings.TrimSpace(c.OriginAddress),
	}
}
