package commerceapi

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/logging"
	"github.com/vikas-mobiles/be/models"
	"github.com/vikas-mobiles/be/validators"
)

type Handler struct {
	store     *Store
	uploadDir string
	contacts  *validators.ContactValidator
	log       *logrus.Entry
}

func NewHandler(store *Store, uploadDir string, log *logrus.Entry) *Handler {
	return &Handler{
		store:     store,
		uploadDir: uploadDir,
		contacts:  validators.NewContactValidator(),
		log:       log,
	}
}

// ListProducts handles GET /api/products
func (h *Handler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListProducts())
}

// CreateProduct handles POST /api/products (multipart/form-data)
func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid product fields",
			Details: err.Error(),
		})
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid product price",
			Details: "Price must be a non-negative decimal number",
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Product image is required",
			Details: err.Error(),
		})
		return
	}

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		h.log.WithError(err).Error("failed to store product image")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "INTERNAL_ERROR",
			Message: "Failed to store product image",
		})
		return
	}

	product := h.store.AddProduct(models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Category:    req.Category,
		Condition:   req.Condition,
		Stock:       req.Stock,
		Image:       path.Join("uploads", filename),
	})

	h.log.WithField("product_id", product.ID).Info("created product")
	c.JSON(http.StatusCreated, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteProduct(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Product not found",
		})
		return
	}

	h.log.WithField("product_id", id).Info("deleted product")
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ListOrders handles GET /api/orders
func (h *Handler) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ListOrders())
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Order must contain at least one product",
		})
		return
	}
	for _, line := range req.Products {
		if line.Quantity < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "INVALID_INPUT",
				Message: "Invalid product quantity",
				Details: "Quantity must be a positive integer",
			})
			return
		}
	}

	total, err := decimal.NewFromString(req.Total.String())
	if err != nil || !total.IsPositive() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid total amount",
		})
		return
	}

	if err := h.contacts.Validate(req.ContactDetails); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid contact details",
			Details: err.Error(),
		})
		return
	}

	order, err := h.store.CreateOrder(req.Products, total, req.ContactDetails)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Order references an unknown product",
		})
		return
	}

	h.log.WithFields(logrus.Fields{"order_id": order.ID, "total": order.Total.String()}).Info("created order")
	c.JSON(http.StatusCreated, order)
}

// UpdateOrder handles PUT /api/orders/:id
func (h *Handler) UpdateOrder(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid order status",
			Details: "Status must be one of: pending, delivered",
		})
		return
	}

	order, err := h.store.UpdateOrderStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
		return
	}

	h.log.WithFields(logrus.Fields{"order_id": order.ID, "status": order.Status}).Info("updated order status")
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteOrder(id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
		return
	}

	h.log.WithField("order_id", id).Info("deleted order")
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}

// NewRouter wires the handler under /api, serves uploaded images under
// /uploads, and injects failures according to faults.
func NewRouter(h *Handler, faults *FaultInjector, log *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.Static("/uploads", h.uploadDir)

	api := router.Group("/api")
	if faults != nil {
		api.Use(faults.Middleware(log))
	}
	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)
	api.GET("/orders", h.ListOrders)
	api.POST("/orders", h.CreateOrder)
	api.PUT("/orders/:id", h.UpdateOrder)
	api.DELETE("/orders/:id", h.DeleteOrder)

	return router
}
