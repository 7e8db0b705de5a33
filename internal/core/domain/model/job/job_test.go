package job_test

import (
	"strings"
	"testing"
	"time"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func placeholderDetails(t *testing.T) job.Details {
	t.Helper()
	d, err := job.PlaceholderDetails(job.PhoneOverrides{})
	require.NoError(t, err)
	return d
}

func createWaitingJob(t *testing.T) *job.Job {
	t.Helper()
	f, err := job.NewFactory(
		placeholderDetails(t),
		job.WithClock(func() time.Time { return baseTime }),
		job.WithCodeSource(func() job.Code { return 4321 }),
	)
	require.NoError(t, err)

	j, err := f.NewJob()
	require.NoError(t, err)
	return j
}

func TestJob_Transit(t *testing.T) {
	t.Run("waiting job moves to transit", func(t *testing.T) {
		j := createWaitingJob(t)
		later := baseTime.Add(time.Minute)

		require.NoError(t, j.Transit(later))

		assert.Equal(t, job.Transit, j.Status())
		assert.Equal(t, later, j.Updated())
		assert.Equal(t, baseTime, j.Created())
	})

	t.Run("second transit conflicts and keeps state", func(t *testing.T) {
		j := createWaitingJob(t)
		require.NoError(t, j.Transit(baseTime.Add(time.Minute)))

		err := j.Transit(baseTime.Add(time.Hour))

		require.ErrorIs(t, err, errs.ErrStateConflict)
		assert.Equal(t, job.Transit, j.Status())
		assert.Equal(t, baseTime.Add(time.Minute), j.Updated())
	})

	t.Run("clock going backwards does not move updated back", func(t *testing.T) {
		j := createWaitingJob(t)

		require.NoError(t, j.Transit(baseTime.Add(-time.Hour)))

		assert.Equal(t, baseTime, j.Updated())
	})
}

func TestJob_Complete(t *testing.T) {
	t.Run("records signature and delivers items", func(t *testing.T) {
		j := createWaitingJob(t)
		require.NoError(t, j.Transit(baseTime.Add(time.Minute)))

		require.NoError(t, j.Complete(baseTime.Add(time.Hour), " kotsi "))

		assert.Equal(t, job.Completed, j.Status())
		assert.Equal(t, "kotsi", j.Signature())
		assert.Equal(t, baseTime.Add(time.Hour), j.Updated())
		for _, it := range j.Items() {
			assert.True(t, it.IsDelivered())
		}
	})

	t.Run("waiting job can be completed directly", func(t *testing.T) {
		j := createWaitingJob(t)

		require.NoError(t, j.Complete(baseTime.Add(time.Minute), "kotsi"))

		assert.Equal(t, job.Completed, j.Status())
	})

	t.Run("signature is capped", func(t *testing.T) {
		j := createWaitingJob(t)

		err := j.Complete(baseTime.Add(time.Minute), "data:image/png;base64,"+strings.Repeat("A", 4096))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, job.Waiting, j.Status())
		assert.Empty(t, j.Signature())

		require.NoError(t, j.Complete(baseTime.Add(time.Minute), strings.Repeat("ё", job.MaxSignatureLength)))
	})

	t.Run("signature is required", func(t *testing.T) {
		j := createWaitingJob(t)

		err := j.Complete(baseTime.Add(time.Minute), "  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, job.Waiting, j.Status())
	})

	t.Run("completed job is final", func(t *testing.T) {
		j := createWaitingJob(t)
		require.NoError(t, j.Complete(baseTime.Add(time.Minute), "kotsi"))

		require.ErrorIs(t, j.Complete(baseTime.Add(time.Hour), "again"), errs.ErrStateConflict)
		require.ErrorIs(t, j.Transit(baseTime.Add(time.Hour)), errs.ErrStateConflict)
		assert.Equal(t, "kotsi", j.Signature())
	})
}

func TestJob_MoveTo(t *testing.T) {
	j := createWaitingJob(t)

	require.ErrorIs(t, j.MoveTo(job.Waiting, baseTime, ""), errs.ErrStateConflict)
	require.NoError(t, j.MoveTo(job.Transit, baseTime.Add(time.Minute), ""))
	require.NoError(t, j.MoveTo(job.Completed, baseTime.Add(time.Hour), "kotsi"))
	require.ErrorIs(t, j.MoveTo(job.Unknown, baseTime, ""), errs.ErrValueIsInvalid)
}

func TestJob_ItemsAreCopied(t *testing.T) {
	j := createWaitingJob(t)

	items := j.Items()
	items[0] = items[0].Delivered()

	assert.False(t, j.Items()[0].IsDelivered())
	assert.Equal(t, "hot tea", j.ItemsDescription())
}

func TestJob_Reference(t *testing.T) {
	j := createWaitingJob(t)
	assert.Equal(t, j.ID().String(), j.Reference())

	d := placeholderDetails(t)
	d.ConsignmentNumber = " CN-100 "
	f, err := job.NewFactory(d)
	require.NoError(t, err)
	withConsignment, err := f.NewJob()
	require.NoError(t, err)

	assert.Equal(t, "CN-100", withConsignment.Reference())
}

func TestRestoreJob(t *testing.T) {
	valid := func(t *testing.T) job.Snapshot {
		t.Helper()
		return job.Snapshot{
			ID:      kernel.NewUUID(),
			Created: baseTime,
			Updated: baseTime.Add(time.Minute),
			Status:  job.Transit,
			Details: placeholderDetails(t),
			Code:    1234,
		}
	}

	t.Run("restores a valid snapshot", func(t *testing.T) {
		s := valid(t)

		j, err := job.RestoreJob(s)

		require.NoError(t, err)
		require.NoError(t, j.Validate())
		assert.True(t, j.ID().IsEqual(s.ID))
		assert.Equal(t, job.Transit, j.Status())
		assert.Equal(t, job.Code(1234), j.Code())
		assert.Equal(t, s.Updated, j.Updated())
	})

	t.Run("updated before created", func(t *testing.T) {
		s := valid(t)
		s.Updated = baseTime.Add(-time.Second)

		_, err := job.RestoreJob(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("completed without signature", func(t *testing.T) {
		s := valid(t)
		s.Status = job.Completed

		_, err := job.RestoreJob(s)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("code out of range", func(t *testing.T) {
		s := valid(t)
		s.Code = 99

		_, err := job.RestoreJob(s)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unknown status", func(t *testing.T) {
		s := valid(t)
		s.Status = job.Unknown

		_, err := job.RestoreJob(s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestJob_ZeroValueIsNotConstructed(t *testing.T) {
	var j *job.Job
	require.ErrorIs(t, j.Validate(), job.ErrJobIsNotConstructed)
	require.ErrorIs(t, (&job.Job{}).Validate(), job.ErrJobIsNotConstructed)
}
