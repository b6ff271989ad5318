package queries_test

import (
	"context"
	"testing"
	"time"

	"orderhub/internal/adapters/out/postgres/orderrepo"
	"orderhub/internal/core/application/usecases/queries"
	"orderhub/internal/core/domain/model/kernel"
	"orderhub/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// ActiveOrdersQueryIntegrationTestSuite verifies the active-orders read model
// against a real PostgreSQL container: terminal statuses are excluded, rows
// come back oldest first, and every column reaches the response.
type ActiveOrdersQueryIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) seedOrder(status order.Status, createdAt time.Time) *order.Order {
	restaurantID := kernel.NewUUID()
	item, err := order.NewItem(kernel.NewUUID(), "Pad Thai", 950, 2, restaurantID)
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), []kernel.UUID{restaurantID}, nil,
		[]order.Item{item}, status, order.PaymentPaid,
		"3 Mill Way", "+15550105", createdAt, createdAt.Add(time.Minute),
	)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
	return o
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) TestHandle_ReturnsActiveOrdersOldestFirst() {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	newer := suite.seedOrder(order.Accepted, base)
	older := suite.seedOrder(order.Pending, base.Add(-time.Hour))
	suite.seedOrder(order.Delivered, base.Add(-2*time.Hour))
	suite.seedOrder(order.Cancelled, base.Add(-3*time.Hour))

	orders, err := suite.handler.Handle(ctx, queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(orders, 2)
	suite.True(orders[0].ID.IsEqual(older.ID()))
	suite.True(orders[1].ID.IsEqual(newer.ID()))
	suite.Equal(order.Pending, orders[0].Status)
	suite.Equal(order.Accepted, orders[1].Status)
}

func (suite *ActiveOrdersQueryIntegrationTestSuite) TestHandle_CarriesTimestamps() {
	ctx := context.Background()
	createdAt := time.Now().UTC().Truncate(time.Microsecond).Add(-time.Hour)

	seeded := suite.seedOrder(order.Preparing, createdAt)

	orders, err := suite.handler.Handle(ctx, queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].CreatedAt.UTC().Equal(seeded.CreatedAt()))
	suite.True(orders[0].UpdatedAt.UTC().Equal(seeded.UpdatedAt()))
	suite.False(orders[0].UpdatedAt.IsZero())
	suite.Equal(seeded.TotalAmount(), orders[0].TotalAmount)
}

func TestActiveOrdersQueryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ActiveOrdersQueryIntegrationTestSuite))
}
