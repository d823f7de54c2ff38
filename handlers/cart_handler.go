package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vikas-mobiles/be/admin"
	"github.com/vikas-mobiles/be/cart"
	"github.com/vikas-mobiles/be/models"
)

type CartHandler struct {
	products *admin.ProductBoard
	images   ImageResolver
	log      *logrus.Entry
}

func NewCartHandler(products *admin.ProductBoard, images ImageResolver, log *logrus.Entry) *CartHandler {
	return &CartHandler{products: products, images: images, log: log}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	var resp models.CartResponse
	_ = currentSession(c).Do(func(store *cart.Store) error {
		resp = cartResponse(store.Snapshot(), h.images)
		return nil
	})
	c.JSON(http.StatusOK, resp)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	product, found, err := h.products.Lookup(c.Request.Context(), req.ProductID)
	if err != nil {
		respondError(c, err, codeRemoteError, "Failed to load products")
		return
	}
	if !found {
		notFound(c, "Product not found")
		return
	}

	s := currentSession(c)
	var resp models.CartResponse
	err = s.Do(func(store *cart.Store) error {
		if err := store.Add(product); err != nil {
			return err
		}
		resp = cartResponse(store.Snapshot(), h.images)
		return nil
	})
	if err != nil {
		respondError(c, err, codeRemoteError, "")
		return
	}

	h.log.WithFields(logrus.Fields{"session_id": s.ID, "product_id": product.ID}).Debug("added item to cart")
	c.JSON(http.StatusOK, resp)
}

// UpdateQuantity handles PUT /cart/items/:productId
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	h.mutate(c, func(store *cart.Store) {
		store.SetQuantity(c.Param("productId"), *req.Quantity)
	})
}

// RemoveItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.mutate(c, func(store *cart.Store) {
		store.Remove(c.Param("productId"))
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.mutate(c, func(store *cart.Store) {
		store.Clear()
	})
}

// mutate applies fn under the session lock and answers with the new cart.
// Unknown product ids leave the cart as it was.
func (h *CartHandler) mutate(c *gin.Context, fn func(store *cart.Store)) {
	var resp models.CartResponse
	_ = currentSession(c).Do(func(store *cart.Store) error {
		fn(store)
		resp = cartResponse(store.Snapshot(), h.images)
		return nil
	})
	c.JSON(http.StatusOK, resp)
}

func cartResponse(items []cart.LineItem, images ImageResolver) models.CartResponse {
	views := make([]models.CartItemView, len(items))
	for i, item := range items {
		views[i] = models.CartItemView{
			ProductID:      item.ProductID,
			Name:           item.Name,
			ImageURL:       images.ProductImageURL(models.Product{Image: item.Image}),
			Condition:      item.Condition,
			UnitPrice:      item.UnitPrice,
			AvailableStock: item.AvailableStock,
			Quantity:       item.Quantity,
			Subtotal:       item.Subtotal(),
		}
	}
	return models.CartResponse{Items: views, Total: cart.Total(items)}
}
