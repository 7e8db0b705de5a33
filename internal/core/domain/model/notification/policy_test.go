package notification_test

import (
	"testing"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/notification"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRecipientPolicy(t *testing.T) {
	p := notification.DefaultRecipientPolicy()

	everyone := []notification.Role{notification.Courier, notification.Sender, notification.Receiver}
	assert.Equal(t, everyone, p.Recipients(notification.Waiting))
	assert.Equal(t, everyone, p.Recipients(notification.Transit))
	assert.Equal(t, []notification.Role{notification.Sender}, p.Recipients(notification.Completed))
}

func TestRecipientPolicy_With(t *testing.T) {
	base := notification.DefaultRecipientPolicy()

	p, err := base.With(notification.Completed, notification.Sender, notification.Receiver, notification.Courier)

	require.NoError(t, err)
	assert.Len(t, p.Recipients(notification.Completed), 3)
	assert.Len(t, base.Recipients(notification.Completed), 1, "original policy must not change")

	_, err = base.With(notification.Event("cancelled"), notification.Sender)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = base.With(notification.Completed, notification.Role("dispatcher"))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRecipientPolicy_RecipientsIsCopy(t *testing.T) {
	p := notification.DefaultRecipientPolicy()

	roles := p.Recipients(notification.Waiting)
	roles[0] = notification.Receiver

	assert.Equal(t, notification.Courier, p.Recipients(notification.Waiting)[0])
}

func TestNewRecipientPolicy(t *testing.T) {
	p, err := notification.NewRecipientPolicy(map[notification.Event][]notification.Role{
		notification.Transit: {notification.Receiver},
	})

	require.NoError(t, err)
	assert.Equal(t, []notification.Role{notification.Receiver}, p.Recipients(notification.Transit))
	assert.Empty(t, p.Recipients(notification.Waiting))
}

func TestParseRoles(t *testing.T) {
	roles, err := notification.ParseRoles(" Sender, receiver ,sender,,COURIER")

	require.NoError(t, err)
	assert.Equal(t, []notification.Role{notification.Sender, notification.Receiver, notification.Courier}, roles)

	_, err = notification.ParseRoles("sender,boss")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = notification.ParseRoles(" , ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestEventFor(t *testing.T) {
	tests := map[job.Status]notification.Event{
		job.Waiting:   notification.Waiting,
		job.Transit:   notification.Transit,
		job.Completed: notification.Completed,
	}
	for status, want := range tests {
		got, err := notification.EventFor(status)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := notification.EventFor(job.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
