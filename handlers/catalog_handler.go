package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikas-mobiles/be/admin"
	"github.com/vikas-mobiles/be/models"
)

// ImageResolver turns a product's stored image path into a fetchable URL.
type ImageResolver interface {
	ProductImageURL(p models.Product) string
}

type CatalogHandler struct {
	products *admin.ProductBoard
	images   ImageResolver
}

func NewCatalogHandler(products *admin.ProductBoard, images ImageResolver) *CatalogHandler {
	return &CatalogHandler{products: products, images: images}
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to load products")
		return
	}
	c.JSON(http.StatusOK, productViews(products, h.images))
}

func productViews(products []models.Product, images ImageResolver) []models.ProductView {
	views := make([]models.ProductView, len(products))
	for i, p := range products {
		views[i] = models.ProductView{Product: p, ImageURL: images.ProductImageURL(p)}
	}
	return views
}
