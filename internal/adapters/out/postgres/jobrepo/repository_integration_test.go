package jobrepo_test

import (
	"context"
	"testing"
	"time"

	"podowl/internal/adapters/out/postgres/jobrepo"
	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// JobRepositoryIntegrationTestSuite runs GormJobRepository against a real PostgreSQL.
type JobRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *jobrepo.GormJobRepository
	tracker    *MockAggregateTracker
	factory    job.Factory
}

func (suite *JobRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&jobrepo.JobDTO{}, &jobrepo.ItemDTO{}))

	defaults, err := job.PlaceholderDetails(job.PhoneOverrides{})
	suite.Require().NoError(err)
	suite.factory, err = job.NewFactory(defaults)
	suite.Require().NoError(err)
}

func (suite *JobRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = jobrepo.NewGormJobRepository(suite.db, suite.tracker)
}

func (suite *JobRepositoryIntegrationTestSuite) newJob(consignment string, items string) *job.Job {
	d := suite.factory.Defaults()
	d.ConsignmentNumber = consignment
	if items != "" {
		parsed, err := job.ParseItems(items)
		suite.Require().NoError(err)
		d.Items = parsed
	}
	j, err := suite.factory.Create(d)
	suite.Require().NoError(err)
	return j
}

func (suite *JobRepositoryIntegrationTestSuite) TestAdd_And_Get() {
	ctx := context.Background()
	j := suite.newJob("CN-1", "desk, chair, lamp")
	suite.tracker.On("TrackAggregate", j.ID(), j).Once()

	suite.Require().NoError(suite.repository.Add(ctx, j))
	suite.tracker.AssertExpectations(suite.T())

	got, err := suite.repository.Get(ctx, j.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(j.ID()))
	suite.Equal(job.Waiting, got.Status())
	suite.Equal(j.Code(), got.Code())
	suite.True(j.Created().Equal(got.Created()))
	suite.True(j.Updated().Equal(got.Updated()))
	suite.Equal(j.Sender().Phone(), got.Sender().Phone())
	suite.Equal(j.Receiver().Email(), got.Receiver().Email())
	suite.Equal(j.Courier().Name(), got.Courier().Name())
	suite.Equal(j.Origin().Address(), got.Origin().Address())
	suite.Equal(j.Destination().Address(), got.Destination().Address())
	suite.Equal("desk, chair, lamp", got.ItemsDescription())
	suite.Equal("CN-1", got.ConsignmentNumber())
}

func (suite *JobRepositoryIntegrationTestSuite) TestAdd_Duplicate() {
	ctx := context.Background()
	j := suite.newJob("", "")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, j))

	err := suite.repository.Add(ctx, j)

	suite.Require().ErrorIs(err, errs.ErrStateConflict)
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_PersistsTransitions() {
	ctx := context.Background()
	j := suite.newJob("CN-2", "box, bag")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, j))

	suite.Require().NoError(j.Transit(j.Created().Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, j))
	suite.Require().NoError(j.Complete(j.Created().Add(time.Hour), "kotsi"))
	suite.Require().NoError(suite.repository.Update(ctx, j))

	got, err := suite.repository.Get(ctx, j.ID())

	suite.Require().NoError(err)
	suite.Equal(job.Completed, got.Status())
	suite.Equal("kotsi", got.Signature())
	suite.True(j.Created().Add(time.Hour).Equal(got.Updated()))
	suite.True(j.Created().Equal(got.Created()))
	suite.Require().Len(got.Items(), 2)
	for _, it := range got.Items() {
		suite.True(it.IsDelivered())
	}
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_StaleCopyCannotMoveBackwards() {
	ctx := context.Background()
	j := suite.newJob("CN-5", "")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, j))

	courierCopy, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	receiverCopy, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(receiverCopy.Complete(j.Created().Add(time.Minute), "kotsi"))
	suite.Require().NoError(suite.repository.Update(ctx, receiverCopy))

	suite.Require().NoError(courierCopy.Transit(j.Created().Add(2 * time.Minute)))
	err = suite.repository.Update(ctx, courierCopy)

	suite.Require().ErrorIs(err, errs.ErrStateConflict)
	got, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	suite.Equal(job.Completed, got.Status())
	suite.Equal("kotsi", got.Signature())
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_RepeatedTransitionConflicts() {
	ctx := context.Background()
	j := suite.newJob("CN-6", "")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, j))

	first, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, j.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Transit(j.Created().Add(time.Minute)))
	suite.Require().NoError(second.Transit(j.Created().Add(time.Minute)))

	suite.Require().NoError(suite.repository.Update(ctx, first))
	suite.Require().ErrorIs(suite.repository.Update(ctx, second), errs.ErrStateConflict)
}

func (suite *JobRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	j := suite.newJob("", "")

	err := suite.repository.Update(context.Background(), j)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGet_InvalidID() {
	_, err := suite.repository.Get(context.Background(), kernel.UUID{})

	suite.Require().ErrorIs(err, kernel.ErrUUIDIsNotConstructed)
}

func (suite *JobRepositoryIntegrationTestSuite) TestGetByConsignmentNumber_ReturnsNewest() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	older := suite.newJob("CN-3", "")
	suite.Require().NoError(suite.repository.Add(ctx, older))
	time.Sleep(5 * time.Millisecond)
	newer := suite.newJob("CN-3", "")
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newJob("CN-4", "")))

	got, err := suite.repository.GetByConsignmentNumber(ctx, "CN-3")

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(newer.ID()))

	_, err = suite.repository.GetByConsignmentNumber(ctx, "CN-404")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestJobRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(JobRepositoryIntegrationTestSuite))
}
