package queries

import (
	"context"
	"errors"
	"time"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the service runs without a database connection.
var ErrNoDatabase = errors.New("database connection is not open")

// JobView is the read model of one job.
type JobView struct {
	ID                 kernel.UUID
	Created            time.Time
	Updated            time.Time
	Status             job.Status
	Code               int
	Sender             ContactView
	Receiver           ContactView
	Courier            ContactView
	OriginAddress      string
	DestinationAddress string
	ConsignmentNumber  string
	ReferenceNumber    string
	Signature          string
	Items              []ItemView
}

type ContactView struct {
	Name  string
	Phone string
	Email string
}

type ItemView struct {
	Description string
	Delivered   bool
}

// Reference mirrors job.Job.Reference: the consignment number if present, the id otherwise.
func (v JobView) Reference() string {
	if v.ConsignmentNumber != "" {
		return v.ConsignmentNumber
	}
	return v.ID.String()
}

const selectJobColumns = `
	SELECT
		id,
		created_at,
		updated_at,
		status,
		code,
		sender_name,
		sender_phone,
		sender_email,
		receiver_name,
		receiver_phone,
		receiver_email,
		courier_name,
		courier_phone,
		courier_email,
		origin_address,
		destination_address,
		consignment_number,
		reference_number,
		signature
	FROM jobs`

// scanJobs runs a jobs query and loads the items of every returned job.
func scanJobs(ctx context.Context, db *gorm.DB, sql string, args ...any) ([]JobView, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	rows, err := db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobView, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var v JobView
		var id uuid.UUID
		var status int
		var senderEmail, receiverEmail, courierEmail *string
		var consignment, reference, signature *string

		err = rows.Scan(
			&id,
			&v.Created,
			&v.Updated,
			&status,
			&v.Code,
			&v.Sender.Name,
			&v.Sender.Phone,
			&senderEmail,
			&v.Receiver.Name,
			&v.Receiver.Phone,
			&receiverEmail,
			&v.Courier.Name,
			&v.Courier.Phone,
			&courierEmail,
			&v.OriginAddress,
			&v.DestinationAddress,
			&consignment,
			&reference,
			&signature,
		)
		if err != nil {
			return nil, err
		}

		jobID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		v.ID = jobID
		v.Status = job.Status(status)
		v.Created = v.Created.UTC()
		v.Updated = v.Updated.UTC()
		v.Sender.Email = deref(senderEmail)
		v.Receiver.Email = deref(receiverEmail)
		v.Courier.Email = deref(courierEmail)
		v.ConsignmentNumber = deref(consignment)
		v.ReferenceNumber = deref(reference)
		v.Signature = deref(signature)
		v.Items = make([]ItemView, 0)

		jobs = append(jobs, v)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		return jobs, nil
	}
	if err = loadItems(ctx, db, ids, jobs); err != nil {
		return nil, err
	}

	return jobs, nil
}

func loadItems(ctx context.Context, db *gorm.DB, ids []uuid.UUID, jobs []JobView) error {
	index := make(map[uuid.UUID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			job_id,
			description,
			delivered
		FROM job_items
		WHERE job_id IN ?
		ORDER BY job_id, position
	`, ids).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID uuid.UUID
		var item ItemView
		if err = rows.Scan(&jobID, &item.Description, &item.Delivered); err != nil {
			return err
		}
		if i, ok := index[jobID]; ok {
			jobs[i].Items = append(jobs[i].Items, item)
		}
	}

	return rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
