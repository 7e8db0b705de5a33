package notification

import (
	"fmt"
	"net/url"
	"strings"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/pkg/errs"
)

// DefaultPodBaseURL is the public site confirmation links point to.
const DefaultPodBaseURL = "https://podowl.com.au"

// Message is one SMS to one contact.
type Message struct {
	Role  Role
	Name  string
	Phone string
	Text  string
}

type template func(j *job.Job, name, link string) string

// Composer builds message texts. It holds no state besides the link base.
type Composer struct {
	baseURL   *url.URL
	templates map[Event]map[Role]template
}

// NewComposer parses the POD base URL; an empty value selects DefaultPodBaseURL.
func NewComposer(podBaseURL string) (Composer, error) {
	if strings.TrimSpace(podBaseURL) == "" {
		podBaseURL = DefaultPodBaseURL
	}
	u, err := url.Parse(strings.TrimSpace(podBaseURL))
	if err != nil {
		return Composer{}, errs.NewValueIsInvalidErrorWithCause("pod base url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Composer{}, errs.NewValueIsInvalidErrorWithCause(
			"pod base url",
			fmt.Errorf("%q is not an absolute http(s) url", podBaseURL),
		)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""

	return Composer{baseURL: u, templates: defaultTemplates()}, nil
}

// PodLink is the confirmation link for a job: <base>/?confirm=<reference>.
func (c Composer) PodLink(j *job.Job) string {
	u := *c.baseURL
	u.Path += "/"
	u.RawQuery = url.Values{"confirm": {j.Reference()}}.Encode()
	return u.String()
}

// Compose builds the message for one role of one event.
func (c Composer) Compose(event Event, role Role, j *job.Job) (Message, error) {
	if err := j.Validate(); err != nil {
		return Message{}, err
	}
	if err := event.Validate(); err != nil {
		return Message{}, err
	}
	contact, err := ContactOf(j, role)
	if err != nil {
		return Message{}, err
	}
	tmpl, ok := c.templates[event][role]
	if !ok {
		return Message{}, errs.NewValueIsInvalidErrorWithCause(
			"message template",
			fmt.Errorf("no template for %s/%s", event, role),
		)
	}

	return Message{
		Role:  role,
		Name:  contact.Name(),
		Phone: contact.Phone(),
		Text:  tmpl(j, contact.Name(), c.PodLink(j)),
	}, nil
}

func defaultTemplates() map[Event]map[Role]template {
	return map[Event]map[Role]template{
		Waiting: {
			Courier: func(j *job.Job, name, link string) string {
				return fmt.Sprintf(
					"Hey %s, click this link to capture a Proof of Delivery for the %s going to %s. Job code %s. %s",
					name, j.ItemsDescription(), j.Destination(), j.Code(), link,
				)
			},
			Sender: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, your delivery of %s to %s is booked. Courier %s will collect it. Job code %s.",
					name, j.ItemsDescription(), j.Destination(), j.Courier().Name(), j.Code(),
				)
			},
			Receiver: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, %s is sending you %s, to be delivered to %s. Job code %s.",
					name, j.Sender().Name(), j.ItemsDescription(), j.Destination(), j.Code(),
				)
			},
		},
		Transit: {
			Courier: func(j *job.Job, name, link string) string {
				return fmt.Sprintf(
					"Hey %s, you are on the way to %s with %s. Capture the Proof of Delivery on arrival. Job code %s. %s",
					name, j.Destination(), j.ItemsDescription(), j.Code(), link,
				)
			},
			Sender: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, %s picked up %s and is heading to %s. Job code %s.",
					name, j.Courier().Name(), j.ItemsDescription(), j.Destination(), j.Code(),
				)
			},
			Receiver: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, %s is on the way to %s. Job code %s.",
					name, j.ItemsDescription(), j.Destination(), j.Code(),
				)
			},
		},
		Completed: {
			Courier: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Thanks %s, the delivery of %s to %s is complete. Job code %s.",
					name, j.ItemsDescription(), j.Destination(), j.Code(),
				)
			},
			Sender: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, %s was delivered to %s and signed for by %s. Job code %s.",
					name, j.ItemsDescription(), j.Destination(), j.Signature(), j.Code(),
				)
			},
			Receiver: func(j *job.Job, name, _ string) string {
				return fmt.Sprintf(
					"Hi %s, thanks for confirming delivery of %s at %s. Job code %s.",
					name, j.ItemsDescription(), j.Destination(), j.Code(),
				)
			},
		},
	}
}
