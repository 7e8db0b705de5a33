package job

import (
	"fmt"
	"strings"

	"podowl/internal/pkg/errs"
)

// Status represents the lifecycle state of a job.
//
// State transitions:
//
//	Waiting ──> Transit ──> Completed
//	   │                        ^
//	   └────────────────────────┘
//	  (confirmed from the POD link)
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Waiting is the initial status: the parcel is booked and waits for pickup.
	Waiting

	// Transit means the courier has the parcel.
	Transit

	// Completed means a proof of delivery was captured. It is final.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Waiting:   "Waiting",
		Transit:   "Transit",
		Completed: "Completed",
	}
}

// ParseStatus maps a case-insensitive status name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && strings.EqualFold(name, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. read from the database.
func (s Status) Validate() error {
	if s < Waiting || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Completed
}

// CanMoveTo checks a transition without performing it.
func (s Status) CanMoveTo(next Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if next <= s {
		return errs.NewStateConflictErrorWithCause(
			"status",
			fmt.Errorf("%s cannot move to %s", s, next),
		)
	}
	return nil
}

// Transit moves Waiting to Transit.
func (s Status) Transit() (Status, error) {
	if err := s.CanMoveTo(Transit); err != nil {
		return Unknown, err
	}
	return Transit, nil
}

// Complete moves Waiting or Transit to Completed.
func (s Status) Complete() (Status, error) {
	if err := s.CanMoveTo(Completed); err != nil {
		return Unknown, err
	}
	return Completed, nil
}
