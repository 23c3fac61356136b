package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/honeynutbd/landing_shop/internal/courier"
	"github.com/honeynutbd/landing_shop/internal/models"
	"github.com/honeynutbd/landing_shop/internal/repo"
	"github.com/honeynutbd/landing_shop/internal/service/settings"
)

type fakeCourier struct {
	createCalls int
	statusCalls int

	createErr error
	statusErr error

	consignment courier.Consignment
	status      string

	failFor map[string]error

	lastCreate courier.CreateOrderRequest
}

func (f *fakeCourier) CreateOrder(_ context.Context, _ courier.Credentials, req courier.CreateOrderRequest) (*courier.Consignment, error) {
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	c := f.consignment
	return &c, nil
}

func (f *fakeCourier) Status(_ context.Context, _ courier.Credentials, cid string) (string, error) {
	f.statusCalls++
	if err, ok := f.failFor[cid]; ok {
		return "", err
	}
	if f.statusErr != nil {
		return "", f.statusErr
	}
	return f.status, nil
}

func newCoordinator(t *testing.T, client CourierClient, configured bool) (*Coordinator, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.ProductSetting{}))

	r := &repo.GormRepo{DB: db}
	svc := settings.New(r)

	if configured {
		cfg, err := svc.Get(context.Background())
		require.NoError(t, err)
		cfg.CourierAPIKey = "key"
		cfg.CourierSecretKey = "secret"
		require.NoError(t, r.SaveSettings(context.Background(), cfg))
	}

	return &Coordinator{Client: client, Repo: r, Settings: svc}, db
}

func seedOrder(t *testing.T, db *gorm.DB, mutate func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		FullName:        "Rahim Uddin",
		ShippingAddress: "Dhanmondi, Dhaka",
		MobileNumber:    "+8801712345678",
		Quantity:        2,
		TotalPrice:      1980,
		Status:          models.OrderStatusPending,
		Timestamp:       time.Now().UTC(),
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestDispatch_Success(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{consignment: courier.Consignment{ID: "987654", Status: "in_review"}}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, nil)

	res, err := coord.Dispatch(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, "987654", res.ConsignmentID)
	assert.Equal(t, "in_review", res.Status)
	assert.False(t, res.AlreadySent)
	assert.Equal(t, 1, fake.createCalls)

	// payload is built from the order, phone trimmed to 11 digits
	assert.Equal(t, "01712345678", fake.lastCreate.RecipientPhone)
	assert.Equal(t, int64(1980), fake.lastCreate.CODAmount)
	assert.Equal(t, "Qty: 2", fake.lastCreate.Note)

	stored, err := coord.Repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "987654", stored.ConsignmentID)
	assert.Equal(t, "in_review", stored.CourierStatus)
}

func TestDispatch_IsIdempotent(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{consignment: courier.Consignment{ID: "987654", Status: "in_review"}}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, nil)

	first, err := coord.Dispatch(context.Background(), order)
	require.NoError(t, err)

	second, err := coord.Dispatch(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, 1, fake.createCalls, "second dispatch must not create a second consignment")
	assert.True(t, second.AlreadySent)
	assert.Equal(t, first.ConsignmentID, second.ConsignmentID)
}

func TestDispatch_ConcurrentClaimLosesGracefully(t *testing.T) {
	t.Parallel()

	// simulate the read-check racing another dispatch: the row already
	// carries a consignment even though our in-memory copy does not
	fake := &fakeCourier{consignment: courier.Consignment{ID: "222", Status: "pending"}}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, nil)

	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Updates(map[string]interface{}{"consignment_id": "111", "courier_status": "in_review"}).Error)

	res, err := coord.Dispatch(context.Background(), order)
	require.NoError(t, err)

	assert.True(t, res.AlreadySent)
	assert.Equal(t, "111", res.ConsignmentID, "the first claim wins")

	stored, err := coord.Repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "111", stored.ConsignmentID)
}

func TestDispatch_NotConfigured(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{}
	coord, db := newCoordinator(t, fake, false)
	order := seedOrder(t, db, nil)

	_, err := coord.Dispatch(context.Background(), order)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Zero(t, fake.createCalls)
}

func TestDispatch_UpstreamFailureLeavesOrderUnsent(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{createErr: errors.New("invalid recipient phone")}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, nil)

	_, err := coord.Dispatch(context.Background(), order)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatch)
	assert.Contains(t, err.Error(), "invalid recipient phone")

	stored, err := coord.Repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ConsignmentID, "failed dispatch must keep the order retryable")
}

func TestRefreshStatus(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{status: "delivered"}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ConsignmentID = "987654"
		o.CourierStatus = "in_review"
	})

	status, err := coord.RefreshStatus(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "delivered", status)

	stored, err := coord.Repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "delivered", stored.CourierStatus)
}

func TestRefreshStatus_NotDispatched(t *testing.T) {
	t.Parallel()

	coord, db := newCoordinator(t, &fakeCourier{}, true)
	order := seedOrder(t, db, nil)

	_, err := coord.RefreshStatus(context.Background(), order)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotDispatched)
}

func TestRefreshStatus_FailureKeepsPriorStatus(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{statusErr: errors.New("timeout")}
	coord, db := newCoordinator(t, fake, true)
	order := seedOrder(t, db, func(o *models.Order) {
		o.ConsignmentID = "987654"
		o.CourierStatus = "in_review"
	})

	_, err := coord.RefreshStatus(context.Background(), order)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatusQuery)

	stored, err := coord.Repo.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "in_review", stored.CourierStatus)
}

func TestBulkRefresh_IsolatesFailures(t *testing.T) {
	t.Parallel()

	fake := &fakeCourier{
		status:  "delivered",
		failFor: map[string]error{"bad": errors.New("consignment not found")},
	}
	coord, db := newCoordinator(t, fake, true)

	seedOrder(t, db, func(o *models.Order) { o.ConsignmentID = "100"; o.CourierStatus = "in_review"; o.MobileNumber = "01712345601" })
	seedOrder(t, db, func(o *models.Order) { o.ConsignmentID = "bad"; o.CourierStatus = "pending"; o.MobileNumber = "01712345602" })
	seedOrder(t, db, func(o *models.Order) { o.ConsignmentID = "300"; o.CourierStatus = "in_review"; o.MobileNumber = "01712345603" })
	// terminal and undispatched orders stay out of the batch
	seedOrder(t, db, func(o *models.Order) { o.ConsignmentID = "400"; o.CourierStatus = "Delivered"; o.MobileNumber = "01712345604" })
	seedOrder(t, db, func(o *models.Order) { o.MobileNumber = "01712345605" })

	processed, updated, err := coord.BulkRefresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, processed)
	assert.Equal(t, 2, updated)
	assert.Equal(t, 3, fake.statusCalls)
}

func TestBulkRefresh_NotConfigured(t *testing.T) {
	t.Parallel()

	coord, _ := newCoordinator(t, &fakeCourier{}, false)

	_, _, err := coord.BulkRefresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.True(t, IsTerminal("delivered"))
	assert.True(t, IsTerminal("Delivered"))
	assert.True(t, IsTerminal("CANCELLED"))
	assert.False(t, IsTerminal("in_review"))
	assert.False(t, IsTerminal(""))
}
