package job

import (
	"strings"

	"podowl/internal/pkg/errs"
	"podowl/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when an Item was not built with NewItem or RestoreItem.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError("item must be created via NewItem constructor")

// Item is one line of a parcel. Items are values: marking one delivered
// returns a new Item.
type Item struct { //nolint:recvcheck //using for validation
	description string
	delivered   bool
	guard       guard.ConstructorGuard
}

// NewItem creates an undelivered item.
func NewItem(description string) (Item, error) {
	return RestoreItem(description, false)
}

// RestoreItem rebuilds an item from persistence.
func RestoreItem(description string, delivered bool) (Item, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Item{}, errs.NewValueIsRequiredError("item description")
	}
	return Item{
		description: description,
		delivered:   delivered,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// ParseItems splits the free-text items field of the creation form on
// commas, semicolons and new lines. Empty entries are skipped.
func ParseItems(text string) ([]Item, error) {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	items := make([]Item, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		it, err := NewItem(p)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	return items, nil
}

func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i Item) Description() string {
	return i.description
}

func (i Item) IsDelivered() bool {
	return i.delivered
}

// Delivered returns a delivered copy of the item.
func (i Item) Delivered() Item {
	i.delivered = true
	return i
}

// DescribeItems renders items the way messages and list views show them.
func DescribeItems(items []Item) string {
	descriptions := make([]string, 0, len(items))
	for _, it := range items {
		descriptions = append(descriptions, it.description)
	}
	return strings.Join(descriptions, ", ")
}
