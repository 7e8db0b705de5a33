package kernel

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when a Contact was not built with NewContact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError("contact must be created via NewContact constructor")

var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// Contact is one party of a delivery. Phone numbers are stored in a compact
// E.164-like form (an optional leading plus followed by 6 to 15 digits);
// spaces, dashes, dots and parentheses are dropped on construction.
// Email is optional.
//
// Example:
//
//	courier, err := kernel.NewContact("adri", "+61 400 000 000", "")
//	// courier.Phone() == "+61400000000"
type Contact struct { //nolint:recvcheck //using for validation
	name  string
	phone string
	email string
	guard guard.ConstructorGuard
}

// NewContact validates and builds a Contact. All validation errors are joined.
func NewContact(name, phone, email string) (Contact, error) {
	c := Contact{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setName(name),
		c.setPhone(phone),
		c.setEmail(email),
	); err != nil {
		return Contact{}, err
	}

	return c, nil
}

// NormalizePhone strips the separators people type into phone numbers.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", ".", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

func (c Contact) Name() string {
	return c.name
}

func (c Contact) Phone() string {
	return c.phone
}

func (c Contact) Email() string {
	return c.email
}

// WithPhone returns a copy of the contact with another phone number.
func (c Contact) WithPhone(phone string) (Contact, error) {
	if err := c.Validate(); err != nil {
		return Contact{}, err
	}
	return NewContact(c.name, phone, c.email)
}

func (c Contact) String() string {
	return fmt.Sprintf("%s <%s>", c.name, c.phone)
}

func (c *Contact) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("contact name")
	}
	c.name = name
	return nil
}

func (c *Contact) setPhone(phone string) error {
	phone = NormalizePhone(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("contact phone")
	}
	if !phonePattern.MatchString(phone) {
		return errs.NewValueIsInvalidErrorWithCause(
			"contact phone",
			fmt.Errorf("%q is not a phone number", phone),
		)
	}
	c.phone = phone
	return nil
}

func (c *Contact) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("contact email", err)
	}
	c.email = addr.Address
	return nil
}
