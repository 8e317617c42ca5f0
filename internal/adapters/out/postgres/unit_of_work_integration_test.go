package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierdir"
	"dispatch/internal/adapters/out/postgres/dispatchrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work and
// its repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts a PostgreSQL container, connects and migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError lets unique-index violations surface as gorm.ErrDuplicatedKey.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierdir.CourierDTO{},
		&dispatchrepo.ConfigDTO{},
		&dispatchrepo.ZoneDTO{},
		&dispatchrepo.LogDTO{},
		&dispatchrepo.SearchAttemptDTO{},
		&dispatchrepo.AssignmentAttemptDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE orders, couriers, dispatch_configs, dispatch_zones,
		dispatch_logs, dispatch_log_search_attempts, dispatch_log_assignment_attempts CASCADE`).Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated begin calls must not open nested transactions.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "commit without an active transaction should fail")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "rollback without an active transaction should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_RoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testOrder := suite.createTestOrder(41.3111, 69.2797)
	courierID := kernel.NewUUID()

	err := uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testOrder.Assign(courierID)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, testOrder)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, retrieved.Status())
	suite.Require().NotNil(retrieved.Courier())
	suite.True(courierID.IsEqual(*retrieved.Courier()))
	suite.InDelta(41.3111, retrieved.DeliveryLocation().Latitude(), 1e-9)
	suite.InDelta(69.2797, retrieved.DeliveryLocation().Longitude(), 1e-9)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_CountActiveByCourier() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()
	courierID := kernel.NewUUID()

	assigned := suite.createTestOrder(41.31, 69.28)
	suite.Require().NoError(assigned.Assign(courierID))

	pickedUp := suite.createTestOrder(41.32, 69.28)
	suite.Require().NoError(pickedUp.Assign(courierID))
	suite.Require().NoError(pickedUp.PickUp())

	delivered := suite.createTestOrder(41.33, 69.28)
	suite.Require().NoError(delivered.Assign(courierID))
	suite.Require().NoError(delivered.PickUp())
	suite.Require().NoError(delivered.Deliver())

	waiting := suite.createTestOrder(41.34, 69.28)

	for _, o := range []*order.Order{assigned, pickedUp, delivered, waiting} {
		suite.Require().NoError(repo.Add(ctx, o))
	}

	count, err := repo.CountActiveByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Equal(2, count, "only assigned and picked up orders count toward the load cap")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_LockCourierAssignments() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))

	suite.Require().NoError(first.OrderRepository().LockCourierAssignments(ctx, courierID))

	bound := suite.createTestOrder(41.31, 69.28)
	suite.Require().NoError(bound.Assign(courierID))
	suite.Require().NoError(first.OrderRepository().Add(ctx, bound))

	// A second transaction queueing on the same courier's lock must, once it
	// gets through, count the binding the first transaction committed.
	observed := make(chan int, 1)
	var group errgroup.Group
	group.Go(func() error {
		second := suite.factory.Create()
		if err := second.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = second.Rollback(ctx)
		}()

		if err := second.OrderRepository().LockCourierAssignments(ctx, courierID); err != nil {
			return err
		}
		count, err := second.OrderRepository().CountActiveByCourier(ctx, courierID)
		if err != nil {
			return err
		}
		observed <- count
		return nil
	})

	time.Sleep(200 * time.Millisecond)
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(group.Wait())
	suite.Equal(1, <-observed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_GetAllInPlacedStatus() {
	ctx := context.Background()
	repo := suite.factory.Create().OrderRepository()

	waiting := suite.createTestOrder(41.31, 69.28)
	taken := suite.createTestOrder(41.32, 69.28)
	suite.Require().NoError(taken.Assign(kernel.NewUUID()))

	suite.Require().NoError(repo.Add(ctx, waiting))
	suite.Require().NoError(repo.Add(ctx, taken))

	placed, err := repo.GetAllInPlacedStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(placed, 1)
	suite.True(waiting.ID().IsEqual(placed[0].ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestConfigRepository_SingletonLifecycle() {
	ctx := context.Background()
	repo := suite.factory.Create().DispatchConfigRepository()

	// First read materializes the defaults.
	cfg, err := repo.GetOrCreate(ctx)
	suite.Require().NoError(err)
	suite.Equal(dispatch.DefaultConfig(), cfg)

	// Second read must not create a second row.
	again, err := repo.GetOrCreate(ctx)
	suite.Require().NoError(err)
	suite.Equal(cfg, again)

	var count int64
	err = suite.db.Model(&dispatchrepo.ConfigDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.EqualValues(1, count)

	cfg.SearchRadius = 2000
	cfg.MaxOrdersPerCourier = 3
	err = repo.Save(ctx, cfg)
	suite.Require().NoError(err)

	saved, err := repo.GetOrCreate(ctx)
	suite.Require().NoError(err)
	suite.Equal(2000, saved.SearchRadius)
	suite.Equal(3, saved.MaxOrdersPerCourier)
	suite.Equal(dispatch.DefaultIncrementalRadius, saved.IncrementalRadius)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestZoneRepository_RoundTripAndDuplicateName() {
	ctx := context.Background()
	repo := suite.factory.Create().DispatchZoneRepository()

	zone := suite.createTestZone("Center")
	err := repo.Add(ctx, zone)
	suite.Require().NoError(err)

	duplicate := suite.createTestZone("Center")
	err = repo.Add(ctx, duplicate)
	suite.Require().ErrorIs(err, dispatch.ErrDuplicateZoneName)

	retrieved, err := repo.Get(ctx, zone.ID())
	suite.Require().NoError(err)
	suite.Equal("Center", retrieved.Name())
	suite.Equal(zone.Boundary(), retrieved.Boundary())
	suite.InDelta(zone.DeliveryFee(), retrieved.DeliveryFee(), 1e-9)
	suite.True(retrieved.IsActive())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestZoneRepository_GetAllActive() {
	ctx := context.Background()
	repo := suite.factory.Create().DispatchZoneRepository()

	active := suite.createTestZone("Airport")
	suite.Require().NoError(repo.Add(ctx, active))

	retired := suite.createTestZone("Old Town")
	retired.SetActive(false)
	suite.Require().NoError(repo.Add(ctx, retired))

	all, err := repo.GetAll(ctx)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	serving, err := repo.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(serving, 1)
	suite.Equal("Airport", serving[0].Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLogRepository_UpsertReplacesJourney() {
	ctx := context.Background()
	repo := suite.factory.Create().DispatchLogRepository()
	orderID := kernel.NewUUID()

	first, err := dispatch.NewLog(orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(first.RecordSearch(1000, 0))
	suite.Require().NoError(first.MarkFailed())
	suite.Require().NoError(repo.Upsert(ctx, first))

	courierID := kernel.NewUUID()
	second, err := dispatch.NewLog(orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(second.RecordSearch(1000, 0))
	suite.Require().NoError(second.RecordSearch(1500, 2))
	suite.Require().NoError(second.RecordOffer(courierID, dispatch.OutcomeAccepted))
	suite.Require().NoError(second.MarkAssigned(courierID))
	suite.Require().NoError(repo.Upsert(ctx, second))

	var rows int64
	err = suite.db.Model(&dispatchrepo.LogDTO{}).Where("order_id = ?", orderID.Bytes()).Count(&rows).Error
	suite.Require().NoError(err)
	suite.EqualValues(1, rows, "an order carries exactly one journey")

	journal, err := repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(second.ID().IsEqual(journal.ID()))
	suite.Equal(dispatch.LogAssigned, journal.Status())
	suite.Require().NotNil(journal.Courier())
	suite.True(courierID.IsEqual(*journal.Courier()))

	searches := journal.SearchAttempts()
	suite.Require().Len(searches, 2)
	suite.Equal(1000, searches[0].RadiusMeters)
	suite.Equal(1500, searches[1].RadiusMeters)
	suite.Equal(2, searches[1].CouriersFound)

	offers := journal.AssignmentAttempts()
	suite.Require().Len(offers, 1)
	suite.Equal(dispatch.OutcomeAccepted, offers[0].Outcome)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestLogRepository_ZoneSnapshotRoundTrip() {
	ctx := context.Background()
	repo := suite.factory.Create().DispatchLogRepository()
	orderID := kernel.NewUUID()

	journal, err := dispatch.NewLog(orderID)
	suite.Require().NoError(err)
	zone := suite.createTestZone("Riverside")
	journal.AttachZone(zone.Snapshot())
	suite.Require().NoError(journal.RecordSearch(1000, 0))
	suite.Require().NoError(journal.MarkFailed())
	suite.Require().NoError(repo.Upsert(ctx, journal))

	retrieved, err := repo.GetByOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.Zone())
	suite.True(zone.ID().IsEqual(retrieved.Zone().ZoneID))
	suite.InDelta(zone.DeliveryFee(), retrieved.Zone().DeliveryFee, 1e-9)
	suite.Equal(zone.MinimumDeliveryTime(), retrieved.Zone().MinimumDeliveryTime)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_BindingCommitAndRollback() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	testOrder := suite.createTestOrder(41.3111, 69.2797)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.OrderRepository().Add(ctx, testOrder))

	// A rolled-back binding leaves both the order and the journey untouched.
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(testOrder.Assign(courierID))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))

	journal, err := dispatch.NewLog(testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(journal.RecordOffer(courierID, dispatch.OutcomeAccepted))
	suite.Require().NoError(journal.MarkAssigned(courierID))
	suite.Require().NoError(uow.DispatchLogRepository().Upsert(ctx, journal))

	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	unassigned, err := fresh.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Placed, unassigned.Status())

	_, err = fresh.DispatchLogRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().Error(err, "journey should not exist after rollback")

	// The same binding committed persists atomically.
	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(uow.DispatchLogRepository().Upsert(ctx, journal))
	suite.Require().NoError(uow.Commit(ctx))

	bound, err := fresh.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, bound.Status())

	persisted, err := fresh.DispatchLogRepository().GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(dispatch.LogAssigned, persisted.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCourierDirectory_FindNearby() {
	ctx := context.Background()
	directory := courierdir.NewGormCourierDirectory(suite.db)
	center := suite.mustGeoPoint(41.3111, 69.2797)

	near := suite.seedCourier("Near", "active", 41.3111, 69.2850)
	far := suite.seedCourier("Far", "active", 41.3200, 69.2797)
	suite.seedCourier("Distant", "active", 41.4000, 69.2797)
	suite.seedCourier("Resting", "on_break", 41.3111, 69.2797)

	found, err := directory.FindNearby(ctx, center, 1500)
	suite.Require().NoError(err)
	suite.Require().Len(found, 2, "distant and off-duty couriers are excluded")
	suite.True(near.IsEqual(found[0].ID()), "nearest courier comes first")
	suite.True(far.IsEqual(found[1].ID()))

	tight, err := directory.FindNearby(ctx, center, 500)
	suite.Require().NoError(err)
	suite.Require().Len(tight, 1)
	suite.True(near.IsEqual(tight[0].ID()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCourierDirectory_Get() {
	ctx := context.Background()
	directory := courierdir.NewGormCourierDirectory(suite.db)

	id := suite.seedCourier("Bekzod", "active", 41.31, 69.28)

	found, err := directory.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Bekzod", found.Name())
	suite.Equal(courier.StatusActive, found.Status())

	_, err = directory.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder(lat, lng float64) *order.Order {
	location := suite.mustGeoPoint(lat, lng)
	o, err := order.NewOrder(kernel.NewUUID(), location)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestZone(name string) *dispatch.Zone {
	ring := []kernel.GeoPoint{
		suite.mustGeoPoint(41.0, 69.0),
		suite.mustGeoPoint(41.0, 69.5),
		suite.mustGeoPoint(41.5, 69.5),
		suite.mustGeoPoint(41.5, 69.0),
	}
	zone, err := dispatch.NewZone(kernel.NewUUID(), name, ring, 15000, 40)
	suite.Require().NoError(err)
	return zone
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCourier(name, status string, lat, lng float64) kernel.UUID {
	id := kernel.NewUUID()
	dto := courierdir.CourierDTO{
		ID:     id.Bytes(),
		Name:   name,
		Status: status,
		Location: courierdir.GeoPointDTO{
			Latitude:  lat,
			Longitude: lng,
		},
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return id
}

func (suite *UnitOfWorkIntegrationTestSuite) mustGeoPoint(lat, lng float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lng)
	suite.Require().NoError(err)
	return point
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
