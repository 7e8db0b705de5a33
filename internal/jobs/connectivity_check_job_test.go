package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"podowl/internal/adapters/out/postgres"
	"podowl/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConnectivityChecker struct {
	mock.Mock
}

func (m *MockConnectivityChecker) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type countingChecker struct {
	calls atomic.Int32
}

func (c *countingChecker) Check(context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestConnectivityCheckJob_RunOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	checker := new(MockConnectivityChecker)
	failure := &postgres.ConnectivityError{
		Kind:  postgres.FailureAuth,
		Hint:  "check DB_USER and DB_PASSWORD",
		Cause: errors.New("password authentication failed"),
	}
	mock.InOrder(
		checker.On("Check", mock.Anything).Return(failure).Once(),
		checker.On("Check", mock.Anything).Return(nil).Once(),
		checker.On("Check", mock.Anything).Return(nil).Once(),
	)
	job := jobs.NewConnectivityCheckJob(checker, "", logger)

	_, ok := job.Healthy()
	assert.False(t, ok)

	err := job.RunOnce(context.Background())
	require.ErrorIs(t, err, failure)
	healthy, ok := job.Healthy()
	assert.True(t, ok)
	assert.False(t, healthy)
	assert.Contains(t, buf.String(), "kind=auth")

	require.NoError(t, job.RunOnce(context.Background()))
	require.NoError(t, job.RunOnce(context.Background()))
	healthy, _ = job.Healthy()
	assert.True(t, healthy)
	assert.Equal(t, 1, strings.Count(buf.String(), "Database is reachable"))

	checker.AssertExpectations(t)
}

func TestConnectivityCheckJob_Schedule(t *testing.T) {
	checker := &countingChecker{}
	job := jobs.NewConnectivityCheckJob(checker, "* * * * * *", slog.New(slog.DiscardHandler))

	require.NoError(t, job.Start())
	assert.Eventually(t, func() bool { return checker.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestConnectivityCheckJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewConnectivityCheckJob(&countingChecker{}, "every now and then", slog.New(slog.DiscardHandler))

	require.Error(t, job.Start())
}

func TestJobManager_StartAllChecksImmediately(t *testing.T) {
	checker := &countingChecker{}
	manager := jobs.NewJobManager(checker, "@every 1h", slog.New(slog.DiscardHandler))

	require.NoError(t, manager.StartAll(context.Background()))
	defer manager.StopAll()

	assert.Equal(t, int32(1), checker.calls.Load())
	healthy, ok := manager.ConnectivityCheck().Healthy()
	assert.True(t, ok)
	assert.True(t, healthy)
}
