package http

import (
	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/generated/servers"
)

func toJobs(views []queries.JobView) []servers.Job {
	out := make([]servers.Job, len(views))
	for i, v := range views {
		out[i] = toJob(v)
	}
	return out
}

func toJob(v queries.JobView) servers.Job {
	items := make([]servers.Item, len(v.Items))
	for i, it := range v.Items {
		items[i] = servers.Item{Description: it.Description, Delivered: it.Delivered}
	}

	return servers.Job{
		Id:                 v.ID.Bytes(),
		Reference:          v.Reference(),
		Created:            v.Created,
		Updated:            v.Updated,
		Status:             servers.JobStatus(v.Status.String()),
		Code:               v.Code,
		Sender:             toContact(v.Sender),
		Receiver:           toContact(v.Receiver),
		Courier:            toContact(v.Courier),
		OriginAddress:      v.OriginAddress,
		DestinationAddress: v.DestinationAddress,
		ConsignmentNumber:  optional(v.ConsignmentNumber),
		ReferenceNumber:    optional(v.ReferenceNumber),
		Signature:          optional(v.Signature),
		Items:              items,
	}
}

func toContact(c queries.ContactView) servers.Contact {
	return servers.Contact{
		Name:  c.Name,
		Phone: c.Phone,
		Email: optional(c.Email),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
