package job

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"
)

// MaxSignatureLength bounds the signer's name, in characters. The signature
// is quoted in the completion SMS.
const MaxSignatureLength = 100

// ErrJobIsNotConstructed is returned when a Job was not created by a Factory or RestoreJob.
var ErrJobIsNotConstructed = errors.New("Job must be created via Factory or RestoreJob")

// Details is everything a new job is made of besides its identity, timestamps,
// status and code. The factory holds one as its defaults; the creation form
// produces another.
type Details struct {
	Sender      kernel.Contact
	Receiver    kernel.Contact
	Courier     kernel.Contact
	Origin      kernel.Location
	Destination kernel.Location
	Items       []Item

	// ConsignmentNumber is the external tracking number used in POD links. Optional.
	ConsignmentNumber string
	// ReferenceNumber is the sender's own reference. Optional.
	ReferenceNumber string
}

// Snapshot is the persisted state of a job, used to restore it.
type Snapshot struct {
	ID        kernel.UUID
	Created   time.Time
	Updated   time.Time
	Status    Status
	Details   Details
	Code      Code
	Signature string
}

// Job is the aggregate root of one delivery. The state machine lives in
// Status; Job adds the timestamps, signature and item bookkeeping that go
// with each transition.
//
// Job follows these invariants:
//   - id, code, parties, addresses and created never change
//   - created <= updated, updated is non-decreasing
//   - a Completed job carries a signature
type Job struct {
	id      kernel.UUID
	created time.Time
	updated time.Time
	status  Status

	sender      kernel.Contact
	receiver    kernel.Contact
	courier     kernel.Contact
	origin      kernel.Location
	destination kernel.Location
	items       []Item

	code              Code
	consignmentNumber string
	referenceNumber   string
	signature         string

	isConstructed bool
}

func newJob(id kernel.UUID, now time.Time, details Details, code Code) (*Job, error) {
	j := &Job{
		created:       now,
		updated:       now,
		status:        Waiting,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setDetails(details),
		j.setCode(code),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// RestoreJob rebuilds a job from persisted state, re-checking every invariant.
func RestoreJob(s Snapshot) (*Job, error) {
	j := &Job{
		created:       s.Created,
		updated:       s.Updated,
		status:        s.Status,
		signature:     strings.TrimSpace(s.Signature),
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(s.ID),
		j.setDetails(s.Details),
		j.setCode(s.Code),
		s.Status.Validate(),
		j.validateTimestamps(),
		j.validateCompletion(),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the job was properly constructed.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// IsEqual compares jobs by identity.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

func (j *Job) ID() kernel.UUID {
	return j.id
}

func (j *Job) Created() time.Time {
	return j.created
}

func (j *Job) Updated() time.Time {
	return j.updated
}

func (j *Job) Status() Status {
	return j.status
}

func (j *Job) Sender() kernel.Contact {
	return j.sender
}

func (j *Job) Receiver() kernel.Contact {
	return j.receiver
}

func (j *Job) Courier() kernel.Contact {
	return j.courier
}

func (j *Job) Origin() kernel.Location {
	return j.origin
}

func (j *Job) Destination() kernel.Location {
	return j.destination
}

// Items returns a copy of the item list in its original order.
func (j *Job) Items() []Item {
	out := make([]Item, len(j.items))
	copy(out, j.items)
	return out
}

// ItemsDescription joins item descriptions for messages and list views.
func (j *Job) ItemsDescription() string {
	return DescribeItems(j.items)
}

func (j *Job) Code() Code {
	return j.code
}

func (j *Job) ConsignmentNumber() string {
	return j.consignmentNumber
}

func (j *Job) ReferenceNumber() string {
	return j.referenceNumber
}

// Signature is empty until the job is completed.
func (j *Job) Signature() string {
	return j.signature
}

// Reference is the key used in confirmation links: the consignment number
// when the sender gave one, the job id otherwise.
func (j *Job) Reference() string {
	if j.consignmentNumber != "" {
		return j.consignmentNumber
	}
	return j.id.String()
}

// Details returns the descriptive part of the job.
func (j *Job) Details() Details {
	return Details{
		Sender:            j.sender,
		Receiver:          j.receiver,
		Courier:           j.courier,
		Origin:            j.origin,
		Destination:       j.destination,
		Items:             j.Items(),
		ConsignmentNumber: j.consignmentNumber,
		ReferenceNumber:   j.referenceNumber,
	}
}

// Transit records that the courier picked the parcel up.
func (j *Job) Transit(now time.Time) error {
	newStatus, err := j.status.Transit()
	if err != nil {
		return err
	}

	j.status = newStatus
	j.touch(now)
	return nil
}

// Complete records the proof of delivery. Every item is flagged delivered.
func (j *Job) Complete(now time.Time, signature string) error {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return errs.NewValueIsRequiredError("signature")
	}
	if n := utf8.RuneCountInString(signature); n > MaxSignatureLength {
		return errs.NewValueIsOutOfRangeError("signature length", n, 1, MaxSignatureLength)
	}

	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}

	for i := range j.items {
		j.items[i] = j.items[i].Delivered()
	}
	j.status = newStatus
	j.signature = signature
	j.touch(now)
	return nil
}

// MoveTo applies the transition towards target.
func (j *Job) MoveTo(target Status, now time.Time, signature string) error {
	switch target {
	case Transit:
		return j.Transit(now)
	case Completed:
		return j.Complete(now, signature)
	case Unknown, Waiting:
		return j.status.CanMoveTo(target)
	default:
		return target.Validate()
	}
}

// touch advances updated; a clock that went backwards leaves it unchanged.
func (j *Job) touch(now time.Time) {
	if now.After(j.updated) {
		j.updated = now
	}
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setCode(code Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	j.code = code
	return nil
}

func (j *Job) setDetails(d Details) error {
	if err := errors.Join(
		wrapParty("sender", d.Sender.Validate()),
		wrapParty("receiver", d.Receiver.Validate()),
		wrapParty("courier", d.Courier.Validate()),
		wrapParty("origin", d.Origin.Validate()),
		wrapParty("destination", d.Destination.Validate()),
		validateItems(d.Items),
	); err != nil {
		return err
	}

	j.sender = d.Sender
	j.receiver = d.Receiver
	j.courier = d.Courier
	j.origin = d.Origin
	j.destination = d.Destination
	j.items = make([]Item, len(d.Items))
	copy(j.items, d.Items)
	j.consignmentNumber = strings.TrimSpace(d.ConsignmentNumber)
	j.referenceNumber = strings.TrimSpace(d.ReferenceNumber)
	return nil
}

func (j *Job) validateTimestamps() error {
	if j.created.IsZero() {
		return errs.NewValueIsRequiredError("created")
	}
	if j.updated.Before(j.created) {
		return errs.NewValueIsInvalidErrorWithCause(
			"updated is invalid",
			fmt.Errorf("%s is before created %s", j.updated.Format(time.RFC3339Nano), j.created.Format(time.RFC3339Nano)),
		)
	}
	return nil
}

func (j *Job) validateCompletion() error {
	if j.status != Completed {
		return nil
	}
	if j.signature == "" {
		return errs.NewValueIsRequiredError("signature of a completed job")
	}
	return nil
}

func validateItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func wrapParty(role string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", role, err)
}
