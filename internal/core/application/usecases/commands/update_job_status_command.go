package commands

import (
	"errors"
	"strings"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

var ErrUpdateJobStatusCommandIsNotConstructed = errors.New(
	"UpdateJobStatusCommand must be created via NewUpdateJobStatusCommand constructor",
)

// UpdateJobStatusCommand moves a job forward. Reference is either the job id
// or its consignment number, as carried by confirmation links.
//
// Example:
//
//	cmd, err := NewUpdateJobStatusCommand("CN-100", "Completed", "kotsi")
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
type UpdateJobStatusCommand struct { //nolint:recvcheck //using for validation
	reference string
	status    job.Status
	signature string

	guard guard.ConstructorGuard
}

// NewUpdateJobStatusCommand parses the target status. A Completed target
// requires a signature.
func NewUpdateJobStatusCommand(reference, status, signature string) (UpdateJobStatusCommand, error) {
	cmd := UpdateJobStatusCommand{
		signature: strings.TrimSpace(signature),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReference(reference),
		cmd.setStatus(status),
	); err != nil {
		return UpdateJobStatusCommand{}, err
	}

	if cmd.status == job.Completed && cmd.signature == "" {
		return UpdateJobStatusCommand{}, errs.NewValueIsRequiredError("signature")
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateJobStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobStatusCommandIsNotConstructed)
}

func (c UpdateJobStatusCommand) Reference() string {
	return c.reference
}

func (c UpdateJobStatusCommand) Status() job.Status {
	return c.status
}

func (c UpdateJobStatusCommand) Signature() string {
	return c.signature
}

func (c *UpdateJobStatusCommand) setReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	c.reference = reference
	return nil
}

func (c *UpdateJobStatusCommand) setStatus(status string) error {
	s, err := job.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
