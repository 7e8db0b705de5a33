// Package jobrepo provides data transfer objects and mapping functions for job persistence.
// It implements the repository pattern for the job aggregate, handling the
// conversion between domain entities and database representations.
package jobrepo

import (
	"errors"
	"time"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// Created and Updated are deliberately not named CreatedAt/UpdatedAt so that
// GORM leaves the domain timestamps alone.
type JobDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Created            time.Time  `gorm:"column:created_at;not null;index"`
	Updated            time.Time  `gorm:"column:updated_at;not null"`
	Status             int        `gorm:"type:smallint;not null;index"`
	Sender             ContactDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Receiver           ContactDTO `gorm:"embedded;embeddedPrefix:receiver_"`
	Courier            ContactDTO `gorm:"embedded;embeddedPrefix:courier_"`
	OriginAddress      string     `gorm:"type:text;not null"`
	DestinationAddress string     `gorm:"type:text;not null"`
	Code               int        `gorm:"type:smallint;not null"`
	ConsignmentNumber  string     `gorm:"type:varchar(64);index"`
	ReferenceNumber    string     `gorm:"type:varchar(64)"`
	Signature          string     `gorm:"type:text"`
	Items              []ItemDTO  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// ContactDTO is embedded three times in the jobs table, once per party.
type ContactDTO struct {
	Name  string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(32);not null"`
	Email string `gorm:"type:varchar(255)"`
}

// ItemDTO is one item line. Position keeps the order of the creation form.
type ItemDTO struct {
	JobID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position    int       `gorm:"primaryKey;autoIncrement:false"`
	Description string    `gorm:"type:text;not null"`
	Delivered   bool      `gorm:"not null;default:false"`
}

// TableName overrides GORM's default naming convention to use "job_items".
func (ItemDTO) TableName() string {
	return "job_items"
}

func fromDomain(aggregate *job.Job) JobDTO {
	id := aggregate.ID().Bytes()
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for i, it := range aggregate.Items() {
		items = append(items, ItemDTO{
			JobID:       id,
			Position:    i,
			Description: it.Description(),
			Delivered:   it.IsDelivered(),
		})
	}

	return JobDTO{
		ID:                 id,
		Created:            aggregate.Created(),
		Updated:            aggregate.Updated(),
		Status:             int(aggregate.Status()),
		Sender:             contactFromDomain(aggregate.Sender()),
		Receiver:           contactFromDomain(aggregate.Receiver()),
		Courier:            contactFromDomain(aggregate.Courier()),
		OriginAddress:      aggregate.Origin().Address(),
		DestinationAddress: aggregate.Destination().Address(),
		Code:               aggregate.Code().Int(),
		ConsignmentNumber:  aggregate.ConsignmentNumber(),
		ReferenceNumber:    aggregate.ReferenceNumber(),
		Signature:          aggregate.Signature(),
		Items:              items,
	}
}

func contactFromDomain(c kernel.Contact) ContactDTO {
	return ContactDTO{
		Name:  c.Name(),
		Phone: c.Phone(),
		Email: c.Email(),
	}
}

// toDomain rebuilds the aggregate with RestoreJob, which re-checks every invariant.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sender, senderErr := kernel.NewContact(dto.Sender.Name, dto.Sender.Phone, dto.Sender.Email)
	receiver, receiverErr := kernel.NewContact(dto.Receiver.Name, dto.Receiver.Phone, dto.Receiver.Email)
	courier, courierErr := kernel.NewContact(dto.Courier.Name, dto.Courier.Phone, dto.Courier.Email)
	origin, originErr := kernel.NewLocation(dto.OriginAddress)
	destination, destinationErr := kernel.NewLocation(dto.DestinationAddress)
	if err = errors.Join(senderErr, receiverErr, courierErr, originErr, destinationErr); err != nil {
		return nil, err
	}

	items := make([]job.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		it, itemErr := job.RestoreItem(itemDTO.Description, itemDTO.Delivered)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, it)
	}

	return job.RestoreJob(job.Snapshot{
		ID:      id,
		Created: dto.Created.UTC(),
		Updated: dto.Updated.UTC(),
		Status:  job.Status(dto.Status),
		Details: job.Details{
			Sender:            sender,
			Receiver:          receiver,
			Courier:           courier,
			Origin:            origin,
			Destination:       destination,
			Items:             items,
			ConsignmentNumber: dto.ConsignmentNumber,
			ReferenceNumber:   dto.ReferenceNumber,
		},
		Code:      job.Code(dto.Code),
		Signature: dto.Signature,
	})
}
