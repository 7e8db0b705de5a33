package notification

import (
	"errors"
	"fmt"
)

// RecipientPolicy lists, per event, the roles to notify and in which order.
// The order is the order of messages in a dispatch report.
type RecipientPolicy struct {
	byEvent map[Event][]Role
}

// DefaultRecipientPolicy notifies everyone on Waiting and Transit and only
// the sender on completion.
func DefaultRecipientPolicy() RecipientPolicy {
	return RecipientPolicy{
		byEvent: map[Event][]Role{
			Waiting:   {Courier, Sender, Receiver},
			Transit:   {Courier, Sender, Receiver},
			Completed: {Sender},
		},
	}
}

// NewRecipientPolicy validates every event and role. Events left out of the
// map have no recipients.
func NewRecipientPolicy(byEvent map[Event][]Role) (RecipientPolicy, error) {
	p := RecipientPolicy{byEvent: make(map[Event][]Role, len(byEvent))}
	for event, roles := range byEvent {
		if err := p.set(event, roles); err != nil {
			return RecipientPolicy{}, err
		}
	}
	return p, nil
}

// With returns a copy of the policy with the roles for one event replaced.
func (p RecipientPolicy) With(event Event, roles ...Role) (RecipientPolicy, error) {
	out := RecipientPolicy{byEvent: make(map[Event][]Role, len(p.byEvent)+1)}
	for e, r := range p.byEvent {
		out.byEvent[e] = r
	}
	if err := out.set(event, roles); err != nil {
		return RecipientPolicy{}, err
	}
	return out, nil
}

// Recipients returns a copy of the roles notified for the event.
func (p RecipientPolicy) Recipients(event Event) []Role {
	return append([]Role(nil), p.byEvent[event]...)
}

func (p RecipientPolicy) set(event Event, roles []Role) error {
	if err := event.Validate(); err != nil {
		return err
	}
	errList := make([]error, 0, len(roles))
	for _, r := range roles {
		if err := r.Validate(); err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", event, err))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return err
	}
	p.byEvent[event] = append([]Role(nil), roles...)
	return nil
}
