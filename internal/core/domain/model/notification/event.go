package notification

import (
	"fmt"
	"strings"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"
)

// Event is a job lifecycle event that triggers notifications.
type Event string

const (
	Waiting   Event = "waiting"
	Transit   Event = "transit"
	Completed Event = "completed"
)

// EventFor maps the status a job has just entered to its event.
func EventFor(status job.Status) (Event, error) {
	switch status {
	case job.Waiting:
		return Waiting, nil
	case job.Transit:
		return Transit, nil
	case job.Completed:
		return Completed, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("no event for status %s", status))
	}
}

func (e Event) Validate() error {
	switch e {
	case Waiting, Transit, Completed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("event", fmt.Errorf("%q is not an event", string(e)))
	}
}

func (e Event) String() string {
	return string(e)
}

// Role is the part a contact plays in a job.
type Role string

const (
	Courier  Role = "courier"
	Sender   Role = "sender"
	Receiver Role = "receiver"
)

// ParseRole is case-insensitive.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

// ParseRoles reads a comma separated role list such as "sender,receiver".
// Duplicates are dropped, the first occurrence keeps its position.
func ParseRoles(s string) ([]Role, error) {
	var roles []Role
	seen := make(map[Role]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseRole(part)
		if err != nil {
			return nil, err
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}
	if len(roles) == 0 {
		return nil, errs.NewValueIsRequiredError("roles")
	}
	return roles, nil
}

func (r Role) Validate() error {
	switch r {
	case Courier, Sender, Receiver:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a role", string(r)))
	}
}

func (r Role) String() string {
	return string(r)
}

// ContactOf returns the job contact playing the role.
func ContactOf(j *job.Job, r Role) (kernel.Contact, error) {
	switch r {
	case Courier:
		return j.Courier(), nil
	case Sender:
		return j.Sender(), nil
	case Receiver:
		return j.Receiver(), nil
	default:
		return kernel.Contact{}, r.Validate()
	}
}
