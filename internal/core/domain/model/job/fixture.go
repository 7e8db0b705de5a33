package job

import (
	"errors"

	"podowl/internal/core/domain/model/kernel"
)

// Placeholder phone numbers used when no override is configured.
const (
	PlaceholderSenderPhone   = "+4444444444"
	PlaceholderReceiverPhone = "+8888888888"
	PlaceholderCourierPhone  = "+9999999999"
)

// PhoneOverrides replaces the placeholder phone numbers. Empty fields keep the placeholder.
type PhoneOverrides struct {
	Sender   string
	Receiver string
	Courier  string
}

// PlaceholderDetails is the documented fixture of a demo delivery: a cup of
// hot tea carried from the kitchen to the couch. It fills in whatever the
// creation forms do not ask for and backs Factory.NewJob in development.
func PlaceholderDetails(phones PhoneOverrides) (Details, error) {
	sender, senderErr := kernel.NewContact("ntr", orDefault(phones.Sender, PlaceholderSenderPhone), "ntr@podowl.north")
	receiver, receiverErr := kernel.NewContact("kotsi", orDefault(phones.Receiver, PlaceholderReceiverPhone), "kotsi@podowl.west")
	courier, courierErr := kernel.NewContact("adri", orDefault(phones.Courier, PlaceholderCourierPhone), "adri@bp.p")
	origin, originErr := kernel.NewLocation("kitchen, your place, westside 0420")
	destination, destinationErr := kernel.NewLocation("couch, your place, westside 0420")
	tea, teaErr := NewItem("hot tea")

	if err := errors.Join(senderErr, receiverErr, courierErr, originErr, destinationErr, teaErr); err != nil {
		return Details{}, err
	}

	return Details{
		Sender:      sender,
		Receiver:    receiver,
		Courier:     courier,
		Origin:      origin,
		Destination: destination,
		Items:       []Item{tea},
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
