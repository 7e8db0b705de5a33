package job_test

import (
	"testing"

	"podowl/internal/core/domain/model/job"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	it, err := job.NewItem("  hot tea ")

	require.NoError(t, err)
	require.NoError(t, it.Validate())
	assert.Equal(t, "hot tea", it.Description())
	assert.False(t, it.IsDelivered())

	_, err = job.NewItem("   ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestItem_Delivered(t *testing.T) {
	it, err := job.NewItem("box")
	require.NoError(t, err)

	delivered := it.Delivered()

	assert.True(t, delivered.IsDelivered())
	assert.False(t, it.IsDelivered(), "original item must not change")
	require.NoError(t, delivered.Validate())
}

func TestItem_ZeroValueIsNotConstructed(t *testing.T) {
	var it job.Item

	require.ErrorIs(t, it.Validate(), job.ErrItemIsNotConstructed)
}

func TestParseItems(t *testing.T) {
	t.Run("splits on separators", func(t *testing.T) {
		items, err := job.ParseItems("2 boxes, 1 envelope;\nfragile vase,,")

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "2 boxes, 1 envelope, fragile vase", job.DescribeItems(items))
	})

	t.Run("empty input is rejected", func(t *testing.T) {
		_, err := job.ParseItems(" , ;\n")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
