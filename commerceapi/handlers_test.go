package commerceapi

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikas-mobiles/be/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *Store, *FaultInjector, string) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	log := logrus.NewEntry(logger)

	dir := t.TempDir()
	store := NewStore()
	faults := NewFaultInjector(0, 1)
	return NewRouter(NewHandler(store, dir, log), faults, log), store, faults, dir
}

func doJSON(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func multipartProduct(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, form.WriteField(k, v))
	}
	if withImage {
		part, err := form.CreateFormFile("image", "pixel.PNG")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake-png"))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())
	return body, form.FormDataContentType()
}

func validProductFields() map[string]string {
	return map[string]string{
		"name":        "Pixel 7",
		"description": "Refurbished, 128GB",
		"price":       "24999.50",
		"category":    "phones",
		"condition":   "refurbished",
		"stock":       "3",
	}
}

func validOrder(productID string) models.OrderRequest {
	return models.OrderRequest{
		Products: []models.OrderLine{{Product: productID, Quantity: 2}},
		Total:    "200",
		ContactDetails: models.ContactDetails{
			Name:    "Asha Rao",
			Email:   "asha@example.com",
			Phone:   "9876543210",
			Address: "12 MG Road",
		},
	}
}

func TestCreateProduct_StoresImageAndLists(t *testing.T) {
	router, _, _, dir := newTestRouter(t)

	body, contentType := multipartProduct(t, validProductFields(), true)
	req := httptest.NewRequest(http.MethodPost, "/api/products", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("24999.5")))
	assert.True(t, strings.HasPrefix(created.Image, "uploads/"))
	assert.True(t, strings.HasSuffix(created.Image, ".png"))

	_, err := os.Stat(filepath.Join(dir, filepath.Base(created.Image)))
	assert.NoError(t, err, "image should be written to the upload dir")

	w = doJSON(router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	w = doJSON(router, http.MethodGet, "/"+created.Image, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateProduct_RejectsBadInput(t *testing.T) {
	router, _, _, _ := newTestRouter(t)

	noImage, ct := multipartProduct(t, validProductFields(), false)
	req := httptest.NewRequest(http.MethodPost, "/api/products", noImage)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	fields := validProductFields()
	fields["condition"] = "broken"
	badCondition, ct := multipartProduct(t, fields, true)
	req = httptest.NewRequest(http.MethodPost, "/api/products", badCondition)
	req.Header.Set("Content-Type", ct)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	router, store, _, _ := newTestRouter(t)
	p := store.AddProduct(models.Product{Name: "Case", Price: decimal.NewFromInt(10), Stock: 1})

	w := doJSON(router, http.MethodDelete, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.ListProducts())

	w = doJSON(router, http.MethodDelete, "/api/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrders_Lifecycle(t *testing.T) {
	router, store, _, _ := newTestRouter(t)
	p := store.AddProduct(models.Product{Name: "Charger", Price: decimal.NewFromInt(100), Stock: 5})

	w := doJSON(router, http.MethodPost, "/api/orders", validOrder(p.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.True(t, created.Total.Equal(decimal.NewFromInt(200)))

	w = doJSON(router, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Products[0].Product.Product, "listing populates products")
	assert.Equal(t, "Charger", orders[0].Products[0].Product.Product.Name)

	w = doJSON(router, http.MethodPut, "/api/orders/"+created.ID, models.UpdateOrderStatusRequest{Status: models.StatusDelivered})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusDelivered, store.ListOrders()[0].Status)

	w = doJSON(router, http.MethodPut, "/api/orders/"+created.ID, map[string]string{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodDelete, "/api/orders/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, store.ListOrders())
}

func TestCreateOrder_Rejections(t *testing.T) {
	router, store, _, _ := newTestRouter(t)
	p := store.AddProduct(models.Product{Name: "Charger", Price: decimal.NewFromInt(100), Stock: 5})

	unknown := validOrder("missing")
	w := doJSON(router, http.MethodPost, "/api/orders", unknown)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	zeroTotal := validOrder(p.ID)
	zeroTotal.Total = "0"
	w = doJSON(router, http.MethodPost, "/api/orders", zeroTotal)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	noEmail := validOrder(p.ID)
	noEmail.Email = ""
	w = doJSON(router, http.MethodPost, "/api/orders", noEmail)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, store.ListOrders())
}

func TestFaultInjector_FailsEverythingAtRateOne(t *testing.T) {
	router, _, faults, _ := newTestRouter(t)
	faults.SetRate(1)

	w := doJSON(router, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "health is outside the faulty group")
}
