package admin

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikas-mobiles/be/clients"
	"github.com/vikas-mobiles/be/models"
)

var errRemote = &models.RemoteError{Op: "test", StatusCode: http.StatusInternalServerError}

type fakeAPI struct {
	products []models.Product
	orders   []models.Order
	err      error
	lists    int
}

func (f *fakeAPI) ListProducts(context.Context) ([]models.Product, error) {
	f.lists++
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Product(nil), f.products...), nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, req models.CreateProductRequest, _ clients.ImageUpload) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := models.Product{ID: "new", Name: req.Name, Price: decimal.RequireFromString(req.Price), Stock: req.Stock}
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeAPI) DeleteProduct(context.Context, string) error { return f.err }

func (f *fakeAPI) ListOrders(context.Context) ([]models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeAPI) UpdateOrderStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: id, Status: status}, nil
}

func (f *fakeAPI) DeleteOrder(context.Context, string) error { return f.err }

func quietLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func seededProducts(t *testing.T) (*ProductBoard, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{products: []models.Product{
		{ID: "p1", Name: "Galaxy S21", Price: decimal.NewFromInt(30000), Stock: 2},
		{ID: "p2", Name: "Charger", Price: decimal.NewFromInt(999), Stock: 10},
	}}
	board := NewProductBoard(api, quietLog())
	_, err := board.Refresh(context.Background())
	require.NoError(t, err)
	return board, api
}

func seededOrders(t *testing.T) (*OrderBoard, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{orders: []models.Order{
		{ID: "o1", Status: models.StatusPending},
		{ID: "o2", Status: models.StatusPending},
	}}
	board := NewOrderBoard(api, quietLog())
	_, err := board.Refresh(context.Background())
	require.NoError(t, err)
	return board, api
}

func TestProductBoard_CreateAndDelete(t *testing.T) {
	board, _ := seededProducts(t)
	ctx := context.Background()

	created, err := board.Create(ctx, models.CreateProductRequest{Name: "Pixel 6", Price: "21000", Stock: 1}, clients.ImageUpload{})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	require.Len(t, board.List(), 3)

	require.NoError(t, board.Delete(ctx, "p1"))
	ids := []string{}
	for _, p := range board.List() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"p2", "new"}, ids)
}

func TestProductBoard_RemoteFailureKeepsListing(t *testing.T) {
	board, api := seededProducts(t)
	before := board.List()
	api.err = errRemote
	ctx := context.Background()

	_, err := board.Create(ctx, models.CreateProductRequest{Name: "x", Price: "1"}, clients.ImageUpload{})
	assert.Error(t, err)
	err = board.Delete(ctx, "p1")
	var rerr *models.RemoteError
	assert.True(t, errors.As(err, &rerr))
	_, err = board.Refresh(ctx)
	assert.Error(t, err)

	assert.Equal(t, before, board.List())
}

func TestProductBoard_ListIsACopy(t *testing.T) {
	board, _ := seededProducts(t)

	list := board.List()
	list[0].Name = "changed"

	p, ok := board.Get("p1")
	require.True(t, ok)
	assert.Equal(t, "Galaxy S21", p.Name)
}

func TestProductBoard_LookupRefreshesOnMiss(t *testing.T) {
	board, api := seededProducts(t)
	ctx := context.Background()
	api.products = append(api.products, models.Product{ID: "p3", Name: "Case", Price: decimal.NewFromInt(200), Stock: 4})

	p, ok, err := board.Lookup(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Galaxy S21", p.Name)
	assert.Equal(t, 1, api.lists)

	p, ok, err = board.Lookup(ctx, "p3")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Case", p.Name)
	assert.Equal(t, 2, api.lists)

	_, ok, err = board.Lookup(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderBoard_MarkDelivered(t *testing.T) {
	board, _ := seededOrders(t)

	require.NoError(t, board.MarkDelivered(context.Background(), "o2"))

	orders := board.List()
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, models.StatusDelivered, orders[1].Status)
}

func TestOrderBoard_RejectsUnknownStatus(t *testing.T) {
	board, _ := seededOrders(t)

	err := board.UpdateStatus(context.Background(), "o1", "shipped")

	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, models.StatusPending, board.List()[0].Status)
}

func TestOrderBoard_RemoteFailureKeepsListing(t *testing.T) {
	board, api := seededOrders(t)
	before := board.List()
	api.err = errRemote
	ctx := context.Background()

	assert.Error(t, board.MarkDelivered(ctx, "o1"))
	assert.Error(t, board.Delete(ctx, "o1"))

	assert.Equal(t, before, board.List())
}

func TestOrderBoard_Delete(t *testing.T) {
	board, _ := seededOrders(t)

	require.NoError(t, board.Delete(context.Background(), "o1"))

	orders := board.List()
	require.Len(t, orders, 1)
	assert.Equal(t, "o2", orders[0].ID)
}
