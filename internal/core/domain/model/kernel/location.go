package kernel

import (
	"strings"

	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

// ErrLocationIsNotConstructed is returned when a Location was not built with NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation constructor")

// Location is the address a parcel is collected from or delivered to.
type Location struct { //nolint:recvcheck //using for validation
	address string
	guard   guard.ConstructorGuard
}

// NewLocation builds a Location from a free-form, non-empty address.
// Surrounding whitespace is trimmed and inner runs of whitespace are collapsed.
func NewLocation(address string) (Location, error) {
	address = strings.Join(strings.Fields(address), " ")
	if address == "" {
		return Location{}, errs.NewValueIsRequiredError("address")
	}

	return Location{
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

func (l Location) Address() string {
	return l.address
}

func (l Location) String() string {
	return l.address
}

// IsEqual compares two constructed locations by address.
func (l Location) IsEqual(other Location) bool {
	return l.Validate() == nil && other.Validate() == nil && l.address == other.address
}
