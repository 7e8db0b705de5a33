package commands_test

import (
	"context"
	"log/slog"

	"podowl/internal/core/application/usecases/commands"
	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/core/domain/services"
	"podowl/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, j *job.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if j := args.Get(0); j != nil {
		return j.(*job.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJobRepository) GetByConsignmentNumber(ctx context.Context, n string) (*job.Job, error) {
	args := m.Called(ctx, n)
	if j := args.Get(0); j != nil {
		return j.(*job.Job), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockJobUoW struct{ mock.Mock }

func (m *MockJobUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockJobUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) OnWaiting(ctx context.Context, j *job.Job) (services.DispatchReport, error) {
	args := m.Called(ctx, j)
	return args.Get(0).(services.DispatchReport), args.Error(1)
}

func (m *MockNotifier) OnTransit(ctx context.Context, j *job.Job) (services.DispatchReport, error) {
	args := m.Called(ctx, j)
	return args.Get(0).(services.DispatchReport), args.Error(1)
}

func (m *MockNotifier) OnComplete(ctx context.Context, j *job.Job) (services.DispatchReport, error) {
	args := m.Called(ctx, j)
	return args.Get(0).(services.DispatchReport), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type MockSmsSender struct{ mock.Mock }

func (m *MockSmsSender) Send(ctx context.Context, phone, text string) (string, error) {
	args := m.Called(ctx, phone, text)
	return args.String(0), args.Error(1)
}
