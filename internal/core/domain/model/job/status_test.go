package job_test

import (
	"testing"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want job.Status
	}{
		{"Waiting", job.Waiting},
		{"transit", job.Transit},
		{" COMPLETED ", job.Completed},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := job.ParseStatus(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, in := range []string{"", "Unknown", "delivered"} {
			_, err := job.ParseStatus(in)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, in)
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Waiting", job.Waiting.String())
	assert.Equal(t, "Transit", job.Transit.String())
	assert.Equal(t, "Completed", job.Completed.String())
	assert.Equal(t, "Unknown", job.Status(42).String())
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, job.Waiting.Validate())
	require.NoError(t, job.Completed.Validate())
	require.ErrorIs(t, job.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, job.Status(4).Validate(), errs.ErrValueIsInvalid)
}

func TestStatus_Transitions(t *testing.T) {
	t.Run("forward moves are allowed", func(t *testing.T) {
		next, err := job.Waiting.Transit()
		require.NoError(t, err)
		assert.Equal(t, job.Transit, next)

		next, err = job.Transit.Complete()
		require.NoError(t, err)
		assert.Equal(t, job.Completed, next)

		next, err = job.Waiting.Complete()
		require.NoError(t, err)
		assert.Equal(t, job.Completed, next)
	})

	t.Run("repeated and backward moves conflict", func(t *testing.T) {
		_, err := job.Transit.Transit()
		require.ErrorIs(t, err, errs.ErrStateConflict)

		_, err = job.Completed.Complete()
		require.ErrorIs(t, err, errs.ErrStateConflict)

		_, err = job.Completed.Transit()
		require.ErrorIs(t, err, errs.ErrStateConflict)

		require.ErrorIs(t, job.Transit.CanMoveTo(job.Waiting), errs.ErrStateConflict)
	})

	t.Run("only Completed is final", func(t *testing.T) {
		assert.False(t, job.Waiting.IsFinal())
		assert.False(t, job.Transit.IsFinal())
		assert.True(t, job.Completed.IsFinal())
	})
}
