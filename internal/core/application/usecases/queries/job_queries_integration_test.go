package queries_test

import (
	"context"
	"testing"
	"time"

	pgstore "podowl/internal/adapters/out/postgres"
	"podowl/internal/adapters/out/postgres/jobrepo"
	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/core/domain/model/job"
	"podowl/internal/core/domain/model/kernel"
	"podowl/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type JobQueriesTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *jobrepo.GormJobRepository
	clock     time.Time
	factory   job.Factory
}

func (suite *JobQueriesTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pgstore.Migrate(ctx, db))
	suite.repo = jobrepo.NewGormJobRepository(db, noopTracker{})

	defaults, err := job.PlaceholderDetails(job.PhoneOverrides{})
	suite.Require().NoError(err)
	suite.factory, err = job.NewFactory(defaults, job.WithClock(func() time.Time {
		suite.clock = suite.clock.Add(time.Minute)
		return suite.clock
	}))
	suite.Require().NoError(err)
}

func (suite *JobQueriesTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *JobQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE jobs CASCADE").Error)
	suite.clock = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
}

func (suite *JobQueriesTestSuite) saveJob(consignment, items string) *job.Job {
	d := suite.factory.Defaults()
	d.ConsignmentNumber = consignment
	parsed, err := job.ParseItems(items)
	suite.Require().NoError(err)
	d.Items = parsed

	j, err := suite.factory.Create(d)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), j))
	return j
}

func (suite *JobQueriesTestSuite) TestGetAllJobs_Empty() {
	result, err := queries.NewGetAllJobsQueryHandler(suite.db).Handle(context.Background(), queries.NewGetAllJobsQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *JobQueriesTestSuite) TestGetAllJobs_NewestFirstWithItems() {
	first := suite.saveJob("CN-1", "desk, chair")
	second := suite.saveJob("", "hot tea")

	result, err := queries.NewGetAllJobsQueryHandler(suite.db).Handle(context.Background(), queries.NewGetAllJobsQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.True(second.ID().IsEqual(result[0].ID))
	suite.Equal(second.ID().String(), result[0].Reference())
	suite.Equal([]queries.ItemView{{Description: "hot tea"}}, result[0].Items)

	suite.True(first.ID().IsEqual(result[1].ID))
	suite.Equal("CN-1", result[1].Reference())
	suite.Equal(job.Waiting, result[1].Status)
	suite.Equal(first.Code().Int(), result[1].Code)
	suite.Equal(first.Sender().Phone(), result[1].Sender.Phone)
	suite.Equal(first.Receiver().Email(), result[1].Receiver.Email)
	suite.Equal(first.Courier().Name(), result[1].Courier.Name)
	suite.Equal(first.Destination().Address(), result[1].DestinationAddress)
	suite.True(first.Created().Equal(result[1].Created))
	suite.Equal([]queries.ItemView{{Description: "desk"}, {Description: "chair"}}, result[1].Items)
}

func (suite *JobQueriesTestSuite) TestGetJob_ByIDAndConsignment() {
	j := suite.saveJob("CN-42", "lamp")
	handler := queries.NewGetJobQueryHandler(suite.db)

	for _, ref := range []string{j.ID().String(), "CN-42"} {
		query, err := queries.NewGetJobQuery(ref)
		suite.Require().NoError(err)

		view, err := handler.Handle(context.Background(), query)

		suite.Require().NoError(err)
		suite.True(j.ID().IsEqual(view.ID))
		suite.Equal("lamp", view.Items[0].Description)
	}
}

func (suite *JobQueriesTestSuite) TestGetJob_ShowsCompletion() {
	j := suite.saveJob("CN-9", "lamp")
	suite.Require().NoError(j.Complete(suite.clock.Add(time.Hour), "kotsi"))
	suite.Require().NoError(suite.repo.Update(context.Background(), j))

	query, err := queries.NewGetJobQuery("CN-9")
	suite.Require().NoError(err)
	view, err := queries.NewGetJobQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(job.Completed, view.Status)
	suite.Equal("kotsi", view.Signature)
	suite.True(view.Items[0].Delivered)
}

func (suite *JobQueriesTestSuite) TestGetJob_NotFound() {
	handler := queries.NewGetJobQueryHandler(suite.db)

	for _, ref := range []string{kernel.NewUUID().String(), "CN-missing"} {
		query, err := queries.NewGetJobQuery(ref)
		suite.Require().NoError(err)

		_, err = handler.Handle(context.Background(), query)

		suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	}
}

func (suite *JobQueriesTestSuite) TestGetJob_InvalidQuery() {
	_, err := queries.NewGetJobQueryHandler(suite.db).Handle(context.Background(), queries.GetJobQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetJobQueryIsNotConstructed)
}

func (suite *JobQueriesTestSuite) TestGetAllJobs_ContextCancellation() {
	suite.saveJob("CN-1", "desk")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := queries.NewGetAllJobsQueryHandler(suite.db).Handle(ctx, queries.NewGetAllJobsQuery())

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestJobQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(JobQueriesTestSuite))
}
