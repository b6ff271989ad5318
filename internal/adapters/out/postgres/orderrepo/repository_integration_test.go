package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderhub/internal/adapters/out/postgres/orderrepo"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"
	"orderhub/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence and the
// conditional status update against a real PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	connStr    string
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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
	suite.connStr = connStr

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(status order.Status, riderID *kernel.UUID) *order.Order {
	restaurantID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), "Margherita", 1100, 2, restaurantID)
	suite.Require().NoError(err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{restaurantID}, riderID,
		[]order.Item{item}, status, order.PaymentPaid,
		"5 River Rd", "+15550103", now, now,
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Pending, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.True(loaded.CustomerID().IsEqual(testOrder.CustomerID()))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(order.PaymentPaid, loaded.PaymentStatus())
	suite.Equal(testOrder.TotalAmount(), loaded.TotalAmount())
	suite.Len(loaded.Items(), 1)
	suite.Len(loaded.RestaurantIDs(), 1)
	suite.Nil(loaded.RiderID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ExpectedMatches() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Pending, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Accepted))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Pending))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpectedConflicts() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Accepted, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.Preparing))
	err := suite.repository.UpdateStatus(ctx, testOrder, order.Pending)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrConflict)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_MissingOrderNotFound() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Pending, nil)
	suite.Require().NoError(testOrder.ChangeStatus(order.Accepted))

	err := suite.repository.UpdateStatus(ctx, testOrder, order.Pending)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_PersistsRiderBinding() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Preparing, nil)
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	riderID := kernel.NewUUID()
	suite.Require().NoError(testOrder.AssignRider(riderID))
	suite.Require().NoError(testOrder.ChangeStatus(order.Assigned))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, testOrder, order.Preparing))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.RiderID())
	suite.True(loaded.RiderID().IsEqual(riderID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ConcurrentSingleWinner() {
	ctx := context.Background()

	testOrder := suite.createTestOrder(order.Pending, nil)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	const workers = 8

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			repo := orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
			loaded, err := repo.Get(ctx, testOrder.ID())
			if err != nil {
				results <- err
				return
			}
			if err = loaded.ChangeStatus(order.Accepted); err != nil {
				results <- err
				return
			}
			results <- repo.UpdateStatus(ctx, loaded, order.Pending)
		}()
	}

	wg.Wait()
	close(results)

	wins, conflicts := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		default:
			suite.Require().ErrorIs(err, errs.ErrConflict)
			conflicts++
		}
	}

	suite.Equal(1, wins)
	suite.Equal(workers-1, conflicts)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ClosedConnectionStorageUnavailable() {
	ctx := context.Background()

	deadDB, err := gorm.Open(postgresdriver.Open(suite.connStr), &gorm.Config{})
	suite.Require().NoError(err)
	sqlDB, err := deadDB.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	repo := orderrepo.NewGormOrderRepository(deadDB, suite.tracker)
	_, err = repo.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrStorageUnavailable)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveByRider() {
	ctx := context.Background()

	riderID := kernel.NewUUID()
	active := suite.createTestOrder(order.Assigned, &riderID)
	delivered := suite.createTestOrder(order.Delivered, &riderID)
	otherRider := suite.createTestOrder(order.Assigned, nil)

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	for _, o := range []*order.Order{active, delivered, otherRider} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	orders, err := suite.repository.GetActiveByRider(ctx, riderID)

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(active.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
