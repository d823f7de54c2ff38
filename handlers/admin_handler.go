package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikas-mobiles/be/admin"
	"github.com/vikas-mobiles/be/clients"
	"github.com/vikas-mobiles/be/models"
)

type AdminHandler struct {
	products *admin.ProductBoard
	orders   *admin.OrderBoard
	images   ImageResolver
}

func NewAdminHandler(products *admin.ProductBoard, orders *admin.OrderBoard, images ImageResolver) *AdminHandler {
	return &AdminHandler{products: products, orders: orders, images: images}
}

// ListProducts handles GET /admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.products.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, productViews(products, h.images))
}

// CreateProduct handles POST /admin/products (multipart/form-data)
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "Invalid product fields", err)
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c, "Product image is required", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "Unreadable product image", err)
		return
	}
	defer file.Close()

	product, err := h.products.Create(c.Request.Context(), req, clients.ImageUpload{
		Filename: header.Filename,
		Content:  file,
	})
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, models.ProductView{Product: *product, ImageURL: h.images.ProductImageURL(*product)})
}

// DeleteProduct handles DELETE /admin/products/:productId
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err, codeRemoteError, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrders handles GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to load orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// UpdateOrder handles PUT /admin/orders/:orderId
func (h *AdminHandler) UpdateOrder(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status); err != nil {
		respondError(c, err, codeRemoteError, "Failed to update order")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteOrder handles DELETE /admin/orders/:orderId
func (h *AdminHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("orderId")); err != nil {
		respondError(c, err, codeRemoteError, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}
